package app

import (
	"context"
	"errors"
	"os"

	"journal2ebook/internal/config"
	"journal2ebook/internal/container"
	"journal2ebook/internal/models"
	"journal2ebook/internal/preview"
	"journal2ebook/internal/profiles"
	"journal2ebook/internal/transport"
)

// NewApp creates a new application instance. initialFile, when set, is
// opened once the window is ready.
func NewApp(cfg *config.Config, initialFile string) *App {
	return &App{
		config:      cfg,
		initialFile: initialFile,
		pageCount:   preview.PageCount,
		pageSize:    preview.FirstPageSize,
		selected:    -1,
	}
}

// OnStartup is called when the app context is ready
func (a *App) OnStartup(ctx context.Context) {
	a.ctx, a.cancel = context.WithCancel(ctx)

	if err := a.startup(transport.NewDialogsHandler(ctx), transport.NewEventsHandler(ctx)); err != nil {
		a.config.Logger.Error("Failed to start application", "error", err)
		a.dialogs.ShowError("Error", err.Error())
		return
	}

	a.config.Logger.Info("Wails app initialized successfully")
}

// startup wires services and loads the settings and profile files.
func (a *App) startup(dialogs transport.DialogHandler, events transport.EventHandler) error {
	if a.ctx == nil {
		a.ctx, a.cancel = context.WithCancel(context.Background())
	}
	a.dialogs = dialogs
	a.events = events

	c, err := container.New(a.config)
	if err != nil {
		return err
	}
	a.container = c
	a.conversions = c.GetConversionService()
	a.preferences = c.GetPreferencesService()
	a.renderer = c.GetRenderer()

	settings, created, err := config.LoadSettings(a.config.SettingsPath)
	if err != nil {
		return err
	}
	a.settings = settings
	if created {
		a.config.Logger.Info("Created settings file", "path", a.config.SettingsPath)
		a.dialogs.ShowInfo("Info", msgSettingsCreated)
	}

	if path, ok := settings.ProfilesPath(); ok {
		if err := a.openProfiles(path); err != nil {
			a.config.Logger.Warn("Failed to load profiles", "path", path, "error", err)
			a.dialogs.ShowError("Profiles", err.Error())
		}
	}

	a.restorePreferences()

	a.config.Logger.Info("Application configuration",
		"settings_path", a.config.SettingsPath,
		"database_path", a.config.DatabasePath,
		"working_directory", a.config.WorkingDir,
		"k2pdfopt_available", a.conversions.Runner().IsAvailable(),
		"renderer_available", a.renderer.IsAvailable())

	return nil
}

// OnDomReady opens the document given on the command line, or asks for one.
func (a *App) OnDomReady(ctx context.Context) {
	if a.settings == nil {
		return
	}

	var err error
	if a.initialFile != "" {
		_, err = a.OpenDocument(a.initialFile)
	} else {
		_, err = a.ChooseDocument()
	}
	if err != nil {
		a.config.Logger.Error("Failed to open document", "error", err)
		a.dialogs.ShowError("Error", err.Error())
	}
}

// OnShutdown cancels running conversions and removes preview files
func (a *App) OnShutdown(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	a.mu.Lock()
	doc := a.doc
	a.doc = nil
	a.mu.Unlock()
	a.cleanupDocument(doc)

	if a.container != nil {
		if err := a.container.Close(); err != nil {
			a.config.Logger.Warn("Failed to close database", "error", err)
		}
		a.container = nil
	}
}

// Quit closes the window. Cleanup runs in OnShutdown.
func (a *App) Quit() {
	if a.events != nil {
		a.events.Quit()
	}
}

// AppStatus returns application status information
func (a *App) AppStatus() map[string]interface{} {
	status := map[string]interface{}{
		"status":            "running",
		"framework":         "Wails",
		"app_name":          "journal2ebook",
		"settings_path":     a.config.SettingsPath,
		"working_directory": a.config.WorkingDir,
		"pdftoppm_path":     a.config.PdftoppmPath,
		"ghostscript_path":  a.config.GhostscriptPath,
	}
	if a.conversions != nil {
		status["k2pdfopt_path"] = a.conversions.Runner().BinaryPath()
		status["k2pdfopt_available"] = a.conversions.Runner().IsAvailable()
	}
	if a.renderer != nil {
		status["renderer_available"] = a.renderer.IsAvailable()
	}
	return status
}

// restorePreferences loads the last used settings into the window state.
func (a *App) restorePreferences() {
	prefs, err := a.preferences.GetPreferences()
	if err != nil {
		a.config.Logger.Warn("Failed to load preferences, using defaults", "error", err)
		prefs = ptr(models.DefaultPreferences())
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = profiles.Settings{
		SkipFirst: prefs.SkipFirst,
		Columns:   prefs.Columns,
		Sliders:   prefs.Sliders,
	}
	if a.store != nil && prefs.LastProfile != "" {
		if _, i, err := a.store.Find(prefs.LastProfile); err == nil {
			a.selected = i
		}
	}
	if prefs.DetectPageSize {
		a.config.DetectPageSize = true
	}
}

// rememberSettings persists settings as the starting point for the next launch.
func (a *App) rememberSettings(s profiles.Settings, profile string, format string) {
	if a.preferences == nil {
		return
	}
	err := a.preferences.UpdatePreferences(func(p *models.UserPreferencesData) {
		p.Sliders = s.Sliders
		p.SkipFirst = s.SkipFirst
		p.Columns = s.Columns
		if profile != "" {
			p.LastProfile = profile
		}
		if format != "" {
			p.OutputFormat = format
		}
	})
	if err != nil {
		a.config.Logger.Warn("Failed to save preferences", "error", err)
	}
}

// GetPreferences returns the remembered settings
func (a *App) GetPreferences() (*models.UserPreferencesData, error) {
	if a.preferences == nil {
		return nil, ErrNotStarted
	}
	return a.preferences.GetPreferences()
}

// SetDetectPageSize toggles using the document's own page size instead of letter
func (a *App) SetDetectPageSize(enabled bool) error {
	if a.preferences == nil {
		return ErrNotStarted
	}
	a.mu.Lock()
	a.config.DetectPageSize = enabled
	a.mu.Unlock()
	return a.preferences.UpdatePreferences(func(p *models.UserPreferencesData) {
		p.DetectPageSize = enabled
	})
}

func (a *App) emit(name string, data ...interface{}) {
	if a.events != nil {
		a.events.Emit(name, data...)
	}
}

func (a *App) cleanupDocument(doc *document) {
	if doc == nil || doc.WorkDir == "" {
		return
	}
	if err := os.RemoveAll(doc.WorkDir); err != nil && !errors.Is(err, os.ErrNotExist) {
		a.config.Logger.Warn("Failed to remove preview directory", "path", doc.WorkDir, "error", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
