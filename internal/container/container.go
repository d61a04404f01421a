package container

import (
	"log/slog"

	"gorm.io/gorm"

	"journal2ebook/internal/config"
	"journal2ebook/internal/converter"
	"journal2ebook/internal/database"
	"journal2ebook/internal/preview"
	"journal2ebook/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	config *config.Config
	db     *gorm.DB
	logger *slog.Logger

	// Services
	converter   *converter.Converter
	renderer    *preview.Renderer
	history     *services.HistoryService
	preferences *services.PreferencesService
	conversions *services.ConversionService
}

// New opens the database and builds every service from cfg
func New(cfg *config.Config) (*Container, error) {
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	c := &Container{
		config: cfg,
		db:     db,
		logger: cfg.Logger,
	}

	c.initServices()
	return c, nil
}

// initServices initializes all services with their dependencies
func (c *Container) initServices() {
	c.converter = converter.New(c.config.K2pdfoptPath, preview.PageCount, c.logger)
	c.renderer = preview.NewRenderer(c.config.PdftoppmPath, c.config.GhostscriptPath, c.config.PreviewHeight, c.logger)
	c.history = services.NewHistoryService(c.db)
	c.preferences = services.NewPreferencesService(c.db)
	c.conversions = services.NewConversionService(c.converter, c.history, c.logger)
}

// Close releases the database
func (c *Container) Close() error {
	return database.Close(c.db)
}

// GetConfig returns the application configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetConverter returns the k2pdfopt converter
func (c *Container) GetConverter() *converter.Converter {
	return c.converter
}

// GetRenderer returns the preview renderer
func (c *Container) GetRenderer() *preview.Renderer {
	return c.renderer
}

// GetHistoryService returns the history service
func (c *Container) GetHistoryService() *services.HistoryService {
	return c.history
}

// GetPreferencesService returns the preferences service
func (c *Container) GetPreferencesService() *services.PreferencesService {
	return c.preferences
}

// GetConversionService returns the conversion service
func (c *Container) GetConversionService() *services.ConversionService {
	return c.conversions
}
