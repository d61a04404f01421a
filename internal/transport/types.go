package transport

// Events emitted to the frontend
const (
	EventDocumentOpened     = "document:opened"
	EventPreviewUpdated     = "preview:updated"
	EventProfilesChanged    = "profiles:changed"
	EventProfileSaveRequest = "profiles:save-requested"
	EventProfilesSetup      = "profiles:setup-required"
	EventConvertStarted     = "convert:started"
	EventConvertProgress    = "convert:progress"
	EventConvertFinished    = "convert:finished"
)

// DialogHandler is the set of native dialogs the app needs
type DialogHandler interface {
	OpenPDFDialog(initialDir string) (string, error)
	OpenPDFsDialog(initialDir string) ([]string, error)
	SaveOutputDialog(initialDir, defaultName string) (string, error)
	SaveProfilesDialog(initialDir, defaultName string) (string, error)
	ShowInfo(title, message string) error
	ShowError(title, message string) error
}

// EventHandler pushes state to the frontend and controls the window
type EventHandler interface {
	Emit(name string, data ...interface{})
	Quit()
}
