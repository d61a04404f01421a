package app

import (
	"os"
	"path/filepath"
	"strings"

	"journal2ebook/internal/common"
	"journal2ebook/internal/config"
	"journal2ebook/internal/margins"
	"journal2ebook/internal/preview"
	"journal2ebook/internal/transport"
)

// ChooseDocument asks for a PDF and opens it. A cancelled dialog keeps
// the current document and returns nil.
func (a *App) ChooseDocument() (*DocumentInfo, error) {
	if a.settings == nil {
		return nil, ErrNotStarted
	}

	path, err := a.dialogs.OpenPDFDialog(a.settings.LastDir())
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}

	a.mu.Lock()
	same := a.doc != nil && a.doc.Path == path
	a.mu.Unlock()
	if same {
		return a.CurrentDocument(), nil
	}

	return a.OpenDocument(path)
}

// OpenDocument opens the PDF at path and renders its first page
func (a *App) OpenDocument(path string) (*DocumentInfo, error) {
	if a.settings == nil {
		return nil, ErrNotStarted
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, NewDocumentError("open", path, ErrNotPDF)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, NewDocumentError("open", path, err)
	}

	count, err := a.pageCount(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}

	a.mu.Lock()
	pageSize := a.config.PageSize
	detect := a.config.DetectPageSize
	a.mu.Unlock()
	if detect {
		if size, err := a.pageSize(path); err == nil {
			pageSize = size
		} else {
			a.config.Logger.Warn("Failed to read page size, using default", "file", path, "error", err)
		}
	}

	doc := &document{
		Path:      path,
		WorkDir:   filepath.Join(a.config.WorkingDir, common.GenerateUUID()),
		PageCount: count,
		Page:      1,
		PageSize:  pageSize,
	}

	p, err := a.renderer.Render(a.ctx, path, 1, count, doc.WorkDir)
	if err != nil {
		a.cleanupDocument(doc)
		return nil, NewDocumentError("render", path, err)
	}
	doc.Preview = p

	a.mu.Lock()
	old := a.doc
	a.doc = doc
	a.settings.Set(config.KeyLastDir, filepath.Dir(path))
	err = a.settings.Save()
	a.mu.Unlock()
	a.cleanupDocument(old)

	if err != nil {
		a.config.Logger.Warn("Failed to save settings", "error", err)
	}

	a.config.Logger.Info("Opened document", "file", path, "pages", count, "page_size", pageSize)

	info := a.CurrentDocument()
	a.emit(transport.EventDocumentOpened, info)
	return info, nil
}

// CurrentDocument returns the open document, or nil
func (a *App) CurrentDocument() *DocumentInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.doc == nil {
		return nil
	}
	return &DocumentInfo{
		Path:      a.doc.Path,
		Name:      filepath.Base(a.doc.Path),
		PageCount: a.doc.PageCount,
		Page:      a.doc.Page,
		PageSize:  a.doc.PageSize,
		Preview:   a.doc.Preview,
	}
}

// LoadPage renders page n, clamped into the document's page range
func (a *App) LoadPage(n int) (*preview.Preview, error) {
	a.mu.Lock()
	doc := a.doc
	a.mu.Unlock()
	if doc == nil {
		return nil, ErrNoDocument
	}

	page := preview.ClampPage(n, doc.PageCount)
	p, err := a.renderer.Render(a.ctx, doc.Path, page, doc.PageCount, doc.WorkDir)
	if err != nil {
		return nil, NewDocumentError("render", doc.Path, err)
	}

	a.mu.Lock()
	if a.doc == doc {
		doc.Page = p.Page
		doc.Preview = p
	}
	a.mu.Unlock()

	a.emit(transport.EventPreviewUpdated, p)
	return p, nil
}

// NextPage shows the following page
func (a *App) NextPage() (*preview.Preview, error) {
	return a.LoadPage(a.currentPage() + 1)
}

// PrevPage shows the previous page
func (a *App) PrevPage() (*preview.Preview, error) {
	return a.LoadPage(a.currentPage() - 1)
}

func (a *App) currentPage() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.doc == nil {
		return 1
	}
	return a.doc.Page
}

// pageSizeLocked returns the page size margins are computed against.
// Callers hold a.mu.
func (a *App) pageSizeLocked() margins.PageSize {
	if a.doc != nil && a.doc.PageSize.Width > 0 {
		return a.doc.PageSize
	}
	return a.config.PageSize
}
