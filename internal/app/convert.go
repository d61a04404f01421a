package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"journal2ebook/internal/app/concurrency"
	"journal2ebook/internal/common"
	"journal2ebook/internal/converter"
	"journal2ebook/internal/models"
	"journal2ebook/internal/profiles"
	"journal2ebook/internal/transport"
)

// Convert asks where to save the result and runs k2pdfopt on the open
// document with s. Failures are shown to the user and kept in history.
func (a *App) Convert(s profiles.Settings) ConvertResponse {
	if a.conversions == nil {
		return ConvertResponse{Error: ErrNotStarted.Error()}
	}

	a.mu.Lock()
	doc := a.doc
	profile := a.selectedNameLocked()
	pageSize := a.pageSizeLocked()
	a.mu.Unlock()

	if doc == nil {
		return ConvertResponse{Error: ErrNoDocument.Error()}
	}

	output, err := a.dialogs.SaveOutputDialog(filepath.Dir(doc.Path), common.Stem(doc.Path)+"_k2opt.pdf")
	if err != nil {
		return ConvertResponse{Input: doc.Path, Error: err.Error()}
	}
	if output == "" {
		return ConvertResponse{Input: doc.Path, Cancelled: true}
	}

	req := converter.Request{
		Input:     doc.Path,
		Output:    output,
		Format:    outputFormat(output),
		SkipFirst: s.SkipFirst,
		Columns:   s.Columns,
		Sliders:   s.Sliders.Clamp().Quantize(),
		PageSize:  pageSize,
	}

	a.emit(transport.EventConvertStarted, doc.Path)
	resp := a.runConversion(a.ctx, req, profile)
	a.emit(transport.EventConvertFinished, resp)

	if !resp.Success && !resp.Cancelled {
		a.dialogs.ShowError("Conversion failed", resp.Error)
	}

	a.rememberSettings(s, "", req.Format)
	return resp
}

// ChooseBatchFiles asks for several PDFs to convert with the same settings
func (a *App) ChooseBatchFiles() ([]string, error) {
	if a.settings == nil {
		return nil, ErrNotStarted
	}
	return a.dialogs.OpenPDFsDialog(a.settings.LastDir())
}

// ConvertBatch converts files with s, writing each result next to its input.
// Progress is reported through convert:progress events.
func (a *App) ConvertBatch(files []string, s profiles.Settings) concurrency.BatchResult {
	if a.conversions == nil {
		return concurrency.BatchResult{Error: ErrNotStarted.Error()}
	}

	a.mu.Lock()
	profile := a.selectedNameLocked()
	pageSize := a.config.PageSize
	detect := a.config.DetectPageSize
	a.mu.Unlock()

	sliders := s.Sliders.Clamp().Quantize()
	pool := concurrency.NewWorkerPool(a.config.MaxWorkers, func(ctx context.Context, item concurrency.WorkItem) (string, error) {
		req := converter.Request{
			Input:     item.FilePath,
			SkipFirst: s.SkipFirst,
			Columns:   s.Columns,
			Sliders:   sliders,
			PageSize:  pageSize,
		}
		if detect {
			if size, err := a.pageSize(item.FilePath); err == nil {
				req.PageSize = size
			}
		}
		opts, err := a.conversions.Convert(ctx, req, profile)
		return opts.Output, err
	})
	pool.OnResult(func(done, total int, r concurrency.FileResult) {
		a.emit(transport.EventConvertProgress, map[string]interface{}{
			"done":   done,
			"total":  total,
			"result": r,
		})
	})

	a.config.Logger.Info("Starting batch conversion", "files", len(files), "workers", a.config.MaxWorkers)
	result := pool.ProcessBatch(a.ctx, files)
	a.emit(transport.EventConvertFinished, result)
	return result
}

// History returns the most recent conversions, newest first
func (a *App) History(limit int) ([]models.ConversionRecord, error) {
	if a.conversions == nil {
		return nil, ErrNotStarted
	}
	return a.conversions.Recent(limit)
}

// ClearHistory deletes all conversion history
func (a *App) ClearHistory() error {
	if a.container == nil {
		return ErrNotStarted
	}
	return a.container.GetHistoryService().Clear()
}

func (a *App) runConversion(ctx context.Context, req converter.Request, profile string) ConvertResponse {
	opts, err := a.conversions.Convert(ctx, req, profile)
	resp := ConvertResponse{
		Input:     req.Input,
		Output:    opts.Output,
		Columns:   opts.Columns,
		PageRange: opts.PageRange,
		Success:   err == nil,
	}
	if err != nil {
		resp.Error = err.Error()
		resp.Cancelled = errors.Is(err, context.Canceled)
	}
	return resp
}

func (a *App) selectedNameLocked() string {
	if a.store == nil || a.selected < 0 {
		return ""
	}
	p, err := a.store.Get(a.selected)
	if err != nil {
		return ""
	}
	return p.Name
}

func outputFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".epub") {
		return "epub"
	}
	return "pdf"
}
