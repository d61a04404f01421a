package common

const (
	// Conversion constants
	MaxConcurrencyLimit  = 4
	DefaultPreviewHeight = 600
	DefaultColumns       = 2
	ExtraColumns         = 4

	// File names inside the app data directory
	SettingsFileName        = "journal2ebook.conf"
	DefaultProfilesFileName = "journal2ebook.txt"

	// File operation constants
	DefaultFilePermissions = 0755
)
