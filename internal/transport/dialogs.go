package transport

import (
	"context"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

var pdfFilter = wailsruntime.FileFilter{
	DisplayName: "PDF Files (*.pdf)",
	Pattern:     "*.pdf",
}

type dialogsHandler struct {
	ctx context.Context
}

func NewDialogsHandler(ctx context.Context) DialogHandler {
	return &dialogsHandler{
		ctx: ctx,
	}
}

func (h *dialogsHandler) OpenPDFDialog(initialDir string) (string, error) {
	return wailsruntime.OpenFileDialog(h.ctx, wailsruntime.OpenDialogOptions{
		Title:            "Select a PDF to convert",
		DefaultDirectory: initialDir,
		Filters:          []wailsruntime.FileFilter{pdfFilter},
	})
}

func (h *dialogsHandler) OpenPDFsDialog(initialDir string) ([]string, error) {
	return wailsruntime.OpenMultipleFilesDialog(h.ctx, wailsruntime.OpenDialogOptions{
		Title:            "Select PDFs to convert",
		DefaultDirectory: initialDir,
		Filters:          []wailsruntime.FileFilter{pdfFilter},
	})
}

func (h *dialogsHandler) SaveOutputDialog(initialDir, defaultName string) (string, error) {
	return wailsruntime.SaveFileDialog(h.ctx, wailsruntime.SaveDialogOptions{
		Title:            "Save the converted document as",
		DefaultDirectory: initialDir,
		DefaultFilename:  defaultName,
		Filters: []wailsruntime.FileFilter{
			pdfFilter,
			{
				DisplayName: "EPUB Files (*.epub)",
				Pattern:     "*.epub",
			},
		},
	})
}

func (h *dialogsHandler) SaveProfilesDialog(initialDir, defaultName string) (string, error) {
	return wailsruntime.SaveFileDialog(h.ctx, wailsruntime.SaveDialogOptions{
		Title:            "Select the file in which to save your profiles",
		DefaultDirectory: initialDir,
		DefaultFilename:  defaultName,
		Filters: []wailsruntime.FileFilter{
			{
				DisplayName: "Profile Files (*.txt)",
				Pattern:     "*.txt",
			},
		},
	})
}

func (h *dialogsHandler) ShowInfo(title, message string) error {
	_, err := wailsruntime.MessageDialog(h.ctx, wailsruntime.MessageDialogOptions{
		Type:    wailsruntime.InfoDialog,
		Title:   title,
		Message: message,
	})
	return err
}

func (h *dialogsHandler) ShowError(title, message string) error {
	_, err := wailsruntime.MessageDialog(h.ctx, wailsruntime.MessageDialogOptions{
		Type:    wailsruntime.ErrorDialog,
		Title:   title,
		Message: message,
	})
	return err
}
