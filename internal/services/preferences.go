package services

import (
	"journal2ebook/internal/models"

	"gorm.io/gorm"
)

// PreferencesService remembers the last used conversion settings
type PreferencesService struct {
	db *gorm.DB
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{db: db}
}

// GetPreferences gets the current user preferences
func (s *PreferencesService) GetPreferences() (*models.UserPreferencesData, error) {
	prefs, err := models.GetOrCreatePreferences(s.db)
	if err != nil {
		return nil, err
	}

	prefsData := prefs.GetPreferences()
	return &prefsData, nil
}

// UpdatePreferences applies fn to the stored preferences and saves the result
func (s *PreferencesService) UpdatePreferences(fn func(*models.UserPreferencesData)) error {
	prefs, err := models.GetOrCreatePreferences(s.db)
	if err != nil {
		return err
	}

	currentPrefs := prefs.GetPreferences()
	fn(&currentPrefs)

	if currentPrefs.OutputFormat != "epub" {
		currentPrefs.OutputFormat = "pdf"
	}
	currentPrefs.Sliders = currentPrefs.Sliders.Clamp()

	if err := prefs.SetPreferences(currentPrefs); err != nil {
		return err
	}

	return s.db.Save(prefs).Error
}
