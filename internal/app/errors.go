package app

import (
	"errors"
	"fmt"
)

// Application error types
var (
	ErrNoDocument            = errors.New("no document is open")
	ErrNotPDF                = errors.New("not a PDF file")
	ErrProfilesNotConfigured = errors.New("profile file has not been set up")
	ErrNotStarted            = errors.New("application has not finished starting")
)

// Messages shown in info dialogs
const (
	msgSettingsCreated = "No configuration file found. A new configuration file has been created for you."
	msgNoSelection     = "No selection was made.\n\n" +
		"To update a profile, first select it from the menu. Make your changes within the main window. " +
		"Then use \"Update Selected Profile\" from the Tools menu."
	msgProfilesSetup = "This is your first time accessing profiles!\n\n" +
		"Profiles allow you to save settings that work well for a particular journal or set of journals.\n\n" +
		"To begin, select the file in which to save your profile parameters:"
)

// DocumentError represents a failure to open or render a document
type DocumentError struct {
	Operation string
	FilePath  string
	Err       error
}

func (e *DocumentError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s failed for file %s: %v", e.Operation, e.FilePath, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, filePath string, err error) *DocumentError {
	return &DocumentError{
		Operation: operation,
		FilePath:  filePath,
		Err:       err,
	}
}

// ProfileError represents profile-related errors
type ProfileError struct {
	Operation string
	Err       error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("profile %s failed: %v", e.Operation, e.Err)
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new profile error
func NewProfileError(operation string, err error) *ProfileError {
	return &ProfileError{
		Operation: operation,
		Err:       err,
	}
}
