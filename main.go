package main

import (
	"embed"

	"accessly/internal/app"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// Create an instance of the app structure
	overlay := app.NewApp()

	// Create application with options
	err := wails.Run(&options.App{
		Title:  "Accessly",
		Width:  1024,
		Height: 768,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		OnStartup: overlay.OnStartup,
		Bind: []interface{}{
			overlay,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
