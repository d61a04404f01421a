package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"journal2ebook/internal/config"
	"journal2ebook/internal/margins"
	"journal2ebook/internal/profiles"
	"journal2ebook/internal/transport"
)

// UpdateSettings records the current slider and checkbox state and returns
// the margins and guide positions it implies
func (a *App) UpdateSettings(s profiles.Settings) SettingsState {
	s.Sliders = s.Sliders.Clamp().Quantize()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = s
	return a.stateLocked()
}

// CurrentSettings returns the current settings state
func (a *App) CurrentSettings() SettingsState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

// Margins converts slider positions into margins in inches
func (a *App) Margins(s margins.Sliders) margins.Margins {
	a.mu.Lock()
	defer a.mu.Unlock()
	return margins.Compute(s.Clamp(), a.pageSizeLocked())
}

// Guides places the preview guide lines for an image of width x height pixels
func (a *App) Guides(s margins.Sliders, width, height float64) margins.Guides {
	return margins.ComputeGuides(s.Clamp(), width, height)
}

func (a *App) stateLocked() SettingsState {
	state := SettingsState{
		Settings: a.current,
		Margins:  margins.Compute(a.current.Sliders, a.pageSizeLocked()),
		Selected: a.selected,
	}
	if a.doc != nil && a.doc.Preview != nil {
		state.Guides = margins.ComputeGuides(a.current.Sliders, float64(a.doc.Preview.Width), float64(a.doc.Preview.Height))
	}
	return state
}

// ListProfiles returns the profile names for the list box
func (a *App) ListProfiles() ProfilesState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profilesLocked()
}

func (a *App) profilesLocked() ProfilesState {
	state := ProfilesState{
		DefaultPath: a.config.ProfilesPath,
		Names:       []string{},
		Selected:    a.selected,
	}
	if a.store != nil {
		state.Configured = true
		state.Path = a.store.Path()
		state.Names = a.store.Names()
	}
	return state
}

// SelectProfile applies the profile at index i to the current settings
func (a *App) SelectProfile(i int) (SettingsState, error) {
	a.mu.Lock()
	if a.store == nil {
		a.mu.Unlock()
		return SettingsState{}, ErrProfilesNotConfigured
	}
	p, err := a.store.Get(i)
	if err != nil {
		a.mu.Unlock()
		return SettingsState{}, NewProfileError("select", err)
	}
	a.selected = i
	a.current = p.Settings
	state := a.stateLocked()
	a.mu.Unlock()

	a.rememberSettings(p.Settings, p.Name, "")
	return state, nil
}

// RequestSaveProfile starts the save-profile flow from the menu. The frontend
// asks for a name, or for the profile file when none is set up yet.
func (a *App) RequestSaveProfile() {
	state := a.ListProfiles()
	if !state.Configured {
		a.emit(transport.EventProfilesSetup, map[string]string{
			"message":      msgProfilesSetup,
			"default_path": state.DefaultPath,
		})
		return
	}
	a.emit(transport.EventProfileSaveRequest, state)
}

// SaveProfile stores settings under name and appends it to the profile file
func (a *App) SaveProfile(name string, s profiles.Settings) (ProfilesState, error) {
	name = strings.TrimSpace(name)
	s.Sliders = s.Sliders.Clamp().Quantize()

	a.mu.Lock()
	if a.store == nil {
		a.mu.Unlock()
		a.RequestSaveProfile()
		return ProfilesState{}, ErrProfilesNotConfigured
	}
	if err := a.store.Add(profiles.Profile{Name: name, Settings: s}); err != nil {
		a.mu.Unlock()
		return ProfilesState{}, NewProfileError("save", err)
	}
	a.selected = a.store.Len() - 1
	a.current = s
	state := a.profilesLocked()
	a.mu.Unlock()

	a.config.Logger.Info("Saved profile", "name", name, "path", state.Path)
	a.rememberSettings(s, name, "")
	a.emit(transport.EventProfilesChanged, state)
	return state, nil
}

// UpdateSelectedProfile overwrites the selected profile with s. With no
// selection the user is told how to pick one.
func (a *App) UpdateSelectedProfile(s profiles.Settings) error {
	s.Sliders = s.Sliders.Clamp().Quantize()

	a.mu.Lock()
	if a.store == nil || a.selected < 0 {
		a.mu.Unlock()
		a.dialogs.ShowInfo("Info", msgNoSelection)
		return profiles.ErrNoProfileSelected
	}
	p, err := a.store.Update(a.selected, s)
	if err != nil {
		a.mu.Unlock()
		if errors.Is(err, profiles.ErrNoProfileSelected) {
			a.dialogs.ShowInfo("Info", msgNoSelection)
		}
		return NewProfileError("update", err)
	}
	a.current = s
	state := a.profilesLocked()
	a.mu.Unlock()

	a.config.Logger.Info("Updated profile", "name", p.Name)
	a.rememberSettings(s, p.Name, "")
	a.emit(transport.EventProfilesChanged, state)
	return nil
}

// updateSelectedFromMenu updates the selected profile with the window's current settings.
func (a *App) updateSelectedFromMenu() {
	a.mu.Lock()
	s := a.current
	a.mu.Unlock()

	if err := a.UpdateSelectedProfile(s); err != nil && !errors.Is(err, profiles.ErrNoProfileSelected) {
		a.dialogs.ShowError("Error", err.Error())
	}
}

// ChooseProfilesFile asks where the profile file should live
func (a *App) ChooseProfilesFile() (string, error) {
	return a.dialogs.SaveProfilesDialog(a.config.AppDataDir, filepath.Base(a.config.ProfilesPath))
}

// SetupProfiles records path as the profile file and loads it, creating it
// when missing. An empty path uses the default location.
func (a *App) SetupProfiles(path string) (ProfilesState, error) {
	if a.settings == nil {
		return ProfilesState{}, ErrNotStarted
	}
	if path == "" {
		path = a.config.ProfilesPath
	}

	if err := a.openProfiles(path); err != nil {
		return ProfilesState{}, NewProfileError("setup", err)
	}

	a.mu.Lock()
	a.settings.Set(config.KeyProfiles, path)
	err := a.settings.Save()
	state := a.profilesLocked()
	a.mu.Unlock()
	if err != nil {
		return state, err
	}

	a.config.Logger.Info("Profiles configured", "path", path)
	a.emit(transport.EventProfilesChanged, state)
	return state, nil
}

// ExportProfiles renders all profiles as yaml or json
func (a *App) ExportProfiles(format string) (string, error) {
	a.mu.Lock()
	if a.store == nil {
		a.mu.Unlock()
		return "", ErrProfilesNotConfigured
	}
	list := a.store.List()
	a.mu.Unlock()

	var buf bytes.Buffer
	if err := profiles.Export(&buf, list, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (a *App) openProfiles(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := profiles.Rewrite(path, nil); err != nil {
			return err
		}
	}

	store, err := profiles.Open(path)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.store = store
	a.selected = -1
	a.mu.Unlock()
	return nil
}
