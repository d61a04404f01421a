package preview

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"journal2ebook/internal/margins"
)

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read page count: %w", err)
	}
	return n, nil
}

// FirstPageSize returns the size of page one in inches.
func FirstPageSize(path string) (margins.PageSize, error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return margins.PageSize{}, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return margins.PageSize{}, fmt.Errorf("document has no pages")
	}
	return margins.PageSizeFromPoints(dims[0].Width, dims[0].Height), nil
}

// ClampPage keeps a requested page number inside 1..count.
func ClampPage(page, count int) int {
	if page > count {
		page = count
	}
	if page <= 0 {
		page = 1
	}
	return page
}
