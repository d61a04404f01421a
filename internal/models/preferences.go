package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"journal2ebook/internal/margins"
)

// UserPreferences represents user preferences in the database
type UserPreferences struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PreferencesJSON string    `gorm:"type:text" json:"preferences_json"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserPreferencesData is the session state restored on the next launch
type UserPreferencesData struct {
	Sliders        margins.Sliders `json:"sliders"`
	SkipFirst      bool            `json:"skip_first"`
	Columns        bool            `json:"columns"`
	OutputFormat   string          `json:"output_format"`
	LastProfile    string          `json:"last_profile"`
	DetectPageSize bool            `json:"detect_page_size"`
}

// DefaultPreferences returns default preference values
func DefaultPreferences() UserPreferencesData {
	return UserPreferencesData{
		Sliders:      margins.DefaultSliders(),
		OutputFormat: "pdf",
	}
}

// GetPreferences parses and returns the preferences data
func (up *UserPreferences) GetPreferences() UserPreferencesData {
	if up.PreferencesJSON == "" {
		return DefaultPreferences()
	}

	prefs := DefaultPreferences()
	if err := json.Unmarshal([]byte(up.PreferencesJSON), &prefs); err != nil {
		return DefaultPreferences()
	}

	return prefs
}

// SetPreferences sets the preferences data
func (up *UserPreferences) SetPreferences(prefs UserPreferencesData) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	up.PreferencesJSON = string(data)
	return nil
}

// GetOrCreatePreferences gets or creates the global preferences instance
func GetOrCreatePreferences(db *gorm.DB) (*UserPreferences, error) {
	var prefs UserPreferences

	result := db.First(&prefs, 1)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			return nil, result.Error
		}

		prefs = UserPreferences{ID: 1}
		if err := prefs.SetPreferences(DefaultPreferences()); err != nil {
			return nil, err
		}
		if err := db.Create(&prefs).Error; err != nil {
			return nil, err
		}
	}

	return &prefs, nil
}
