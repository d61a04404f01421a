package container

import (
	"path/filepath"
	"testing"

	"journal2ebook/internal/config"
)

func TestNew(t *testing.T) {
	cfg := config.New(config.Options{
		AppDataDir:   t.TempDir(),
		K2pdfoptPath: "/opt/k2pdfopt",
		PdftoppmPath: "/opt/pdftoppm",
	})

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer c.Close()

	if c.GetConfig() != cfg {
		t.Error("Expected config to be kept")
	}
	if c.GetConverter().BinaryPath() != "/opt/k2pdfopt" {
		t.Errorf("Expected configured k2pdfopt path, got %s", c.GetConverter().BinaryPath())
	}
	if !c.GetRenderer().IsAvailable() {
		t.Error("Expected renderer to be available with pdftoppm configured")
	}
	if c.GetConversionService().Runner() != c.GetConverter() {
		t.Error("Expected conversion service to use the converter")
	}
	if c.GetHistoryService() == nil || c.GetPreferencesService() == nil {
		t.Error("Expected history and preferences services")
	}

	if filepath.Dir(cfg.DatabasePath) != cfg.AppDataDir {
		t.Errorf("Expected database inside app data dir, got %s", cfg.DatabasePath)
	}
}
