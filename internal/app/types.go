package app

import (
	"context"

	"accessly/internal/config"
	"accessly/internal/inspector"
	"accessly/internal/services"
	"accessly/internal/transport"
)

// App represents the main application structure
type App struct {
	ctx      context.Context
	config   *config.Config
	settings *services.SettingsService
	bridge   transport.DOMBridge
	dialogs  transport.DialogHandler
	stats    *AppStats
	ui       UIState
}

// UIState holds the ephemeral widget-shell state. It is never
// persisted and resets on every application start.
type UIState struct {
	PanelOpen     bool `json:"panel_open"`
	WidgetHidden  bool `json:"widget_hidden"`
	WidgetRemoved bool `json:"widget_removed"`
}

// AppStats holds session statistics
type AppStats struct {
	SettingsChanges int `json:"settings_changes"`
	ResetsPerformed int `json:"resets_performed"`
	InspectionsRun  int `json:"inspections_run"`
}

// PageStructureResponse is the result of a page-structure toggle.
// Structure is only present when the dialog transitions to open.
type PageStructureResponse struct {
	Open      bool                     `json:"open"`
	Structure *inspector.PageStructure `json:"structure,omitempty"`
}
