package main

import (
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"journal2ebook/internal/app"
	"journal2ebook/internal/config"
)

// runGUI opens the desktop window and blocks until it is closed.
func runGUI(cfg *config.Config, file string) error {
	// Create an instance of the app structure
	application := app.NewApp(cfg, file)

	// Create application with options
	return wails.Run(&options.App{
		Title:     "journal2ebook",
		Width:     1000,
		Height:    cfg.PreviewHeight + 160,
		MinWidth:  640,
		MinHeight: 480,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		Menu:             application.Menu(),
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 1},
		OnStartup:        application.OnStartup,
		OnDomReady:       application.OnDomReady,
		OnShutdown:       application.OnShutdown,
		Bind: []interface{}{
			application,
		},
	})
}
