package converter

import (
	"errors"
	"fmt"

	"journal2ebook/internal/margins"
)

var (
	ErrConverterNotFound = errors.New("k2pdfopt not found. Please install k2pdfopt to convert documents")
	ErrNothingToConvert  = errors.New("document has no pages left after skipping the first page")
	ErrNoInput           = errors.New("no input file")
)

// Options describe a single k2pdfopt run.
type Options struct {
	Input     string          `json:"input"`
	Output    string          `json:"output"`
	Margins   margins.Margins `json:"margins"`
	Columns   int             `json:"columns"`
	PageRange string          `json:"page_range,omitempty"`
}

// Request is what the caller knows before the page count is read.
type Request struct {
	Input     string
	Output    string
	Format    string
	SkipFirst bool
	Columns   bool
	Sliders   margins.Sliders
	PageSize  margins.PageSize
}

// RunError carries the converter's output when it exits unsuccessfully.
type RunError struct {
	Input  string
	Output string
	Err    error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("k2pdfopt failed for %s: %v, output: %s", e.Input, e.Err, e.Output)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
