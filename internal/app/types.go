package app

import (
	"context"
	"sync"

	"journal2ebook/internal/config"
	"journal2ebook/internal/container"
	"journal2ebook/internal/margins"
	"journal2ebook/internal/preview"
	"journal2ebook/internal/profiles"
	"journal2ebook/internal/services"
	"journal2ebook/internal/transport"
)

// pageRenderer renders one PDF page into a frontend preview.
type pageRenderer interface {
	Render(ctx context.Context, pdfPath string, page, pageCount int, dir string) (*preview.Preview, error)
	IsAvailable() bool
}

// App represents the main application structure
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	config      *config.Config
	container   *container.Container
	settings    *config.Settings
	store       *profiles.Store
	conversions *services.ConversionService
	preferences *services.PreferencesService
	renderer    pageRenderer
	pageCount   func(path string) (int, error)
	pageSize    func(path string) (margins.PageSize, error)

	dialogs transport.DialogHandler
	events  transport.EventHandler

	initialFile string

	mu       sync.Mutex
	doc      *document
	current  profiles.Settings
	selected int
}

// document is the open PDF and its render directory.
type document struct {
	Path      string
	WorkDir   string
	PageCount int
	Page      int
	PageSize  margins.PageSize
	Preview   *preview.Preview
}

// DocumentInfo describes the open document to the frontend
type DocumentInfo struct {
	Path      string           `json:"path"`
	Name      string           `json:"name"`
	PageCount int              `json:"page_count"`
	Page      int              `json:"page"`
	PageSize  margins.PageSize `json:"page_size"`
	Preview   *preview.Preview `json:"preview"`
}

// SettingsState is the current slider/checkbox state and what it implies
type SettingsState struct {
	Settings profiles.Settings `json:"settings"`
	Margins  margins.Margins   `json:"margins"`
	Guides   margins.Guides    `json:"guides"`
	Selected int               `json:"selected"`
}

// ProfilesState is the profile list box content
type ProfilesState struct {
	Configured  bool     `json:"configured"`
	Path        string   `json:"path"`
	DefaultPath string   `json:"default_path"`
	Names       []string `json:"names"`
	Selected    int      `json:"selected"`
}

// ConvertResponse represents the result of a single conversion
type ConvertResponse struct {
	Success   bool   `json:"success"`
	Cancelled bool   `json:"cancelled"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Columns   int    `json:"columns"`
	PageRange string `json:"page_range,omitempty"`
	Error     string `json:"error,omitempty"`
}
