package config

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"journal2ebook/internal/common"
	"journal2ebook/internal/margins"
)

// Config holds application configuration
type Config struct {
	AppDataDir   string
	WorkingDir   string
	SettingsPath string
	DatabasePath string
	ProfilesPath string

	K2pdfoptPath    string
	PdftoppmPath    string
	GhostscriptPath string

	PreviewHeight  int
	PageSize       margins.PageSize
	DetectPageSize bool
	MaxWorkers     int

	Logger *slog.Logger
}

// Options overrides the defaults picked by New. Zero values keep the default.
type Options struct {
	AppDataDir      string
	SettingsPath    string
	K2pdfoptPath    string
	PdftoppmPath    string
	GhostscriptPath string
	PreviewHeight   int
	DetectPageSize  bool
	MaxWorkers      int
	Logger          *slog.Logger
}

// New creates a new configuration instance
func New(opts Options) *Config {
	cfg := &Config{
		PreviewHeight:  common.DefaultPreviewHeight,
		PageSize:       margins.Letter,
		DetectPageSize: opts.DetectPageSize,
		MaxWorkers:     defaultWorkers(),
		Logger:         slog.Default(),
	}
	if opts.Logger != nil {
		cfg.Logger = opts.Logger
	}
	if opts.PreviewHeight > 0 {
		cfg.PreviewHeight = opts.PreviewHeight
	}
	if opts.MaxWorkers > 0 {
		cfg.MaxWorkers = opts.MaxWorkers
	}

	cfg.setupDirectories(opts.AppDataDir, opts.SettingsPath)
	cfg.K2pdfoptPath = cfg.resolveTool(opts.K2pdfoptPath, "k2pdfopt")
	cfg.PdftoppmPath = cfg.resolveTool(opts.PdftoppmPath, "pdftoppm")
	cfg.GhostscriptPath = cfg.resolveTool(opts.GhostscriptPath, ghostscriptName())

	return cfg
}

func (c *Config) setupDirectories(appDataDir, settingsPath string) {
	// Preview renders live under the system temp dir
	c.WorkingDir = filepath.Join(os.TempDir(), "journal2ebook")
	if err := os.MkdirAll(c.WorkingDir, common.DefaultFilePermissions); err != nil {
		c.Logger.Warn("Failed to create working directory", "path", c.WorkingDir, "error", err)
	}

	if appDataDir == "" {
		appDataDir = getAppDataDir()
	}
	c.AppDataDir = appDataDir
	if err := os.MkdirAll(c.AppDataDir, common.DefaultFilePermissions); err != nil {
		c.Logger.Warn("Failed to create app data directory", "path", c.AppDataDir, "error", err)
	}

	c.SettingsPath = settingsPath
	if c.SettingsPath == "" {
		c.SettingsPath = filepath.Join(c.AppDataDir, common.SettingsFileName)
	}
	c.DatabasePath = filepath.Join(c.AppDataDir, "history.sqlite3")
	c.ProfilesPath = filepath.Join(c.AppDataDir, common.DefaultProfilesFileName)
}

// resolveTool returns the configured path, or the first match for name on PATH.
func (c *Config) resolveTool(configured, name string) string {
	if configured != "" {
		return configured
	}
	path, err := exec.LookPath(name)
	if err != nil {
		c.Logger.Debug("Tool not found on PATH", "tool", name)
		return ""
	}
	return path
}

func ghostscriptName() string {
	if runtime.GOOS == "windows" {
		return "gswin64c"
	}
	return "gs"
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > common.MaxConcurrencyLimit {
		n = common.MaxConcurrencyLimit
	}
	return n
}

func getAppDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "journal2ebook")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".journal2ebook")
}
