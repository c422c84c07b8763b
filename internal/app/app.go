package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"

	"accessly/internal/common"
	"accessly/internal/config"
	"accessly/internal/database"
	"accessly/internal/dom"
	"accessly/internal/effects"
	"accessly/internal/inspector"
	"accessly/internal/models"
	"accessly/internal/services"
	"accessly/internal/transport"
)

// NewApp creates a new application instance
func NewApp() *App {
	return &App{}
}

// OnStartup is called when the app context is ready
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	// Initialize configuration
	a.config = config.New()

	// Initialize database
	db, err := database.NewDatabase(a.config.DatabasePath)
	if err != nil {
		a.config.Logger.Error("Failed to initialize database", "error", err)
		return
	}

	a.initServices(db, transport.NewWebviewBridge(ctx), transport.NewDialogsHandler(ctx))

	a.config.Logger.Info("Accessly initialized successfully")
	a.config.Logger.Info("Application configuration", "database_path", a.config.DatabasePath)
}

// initServices wires the service layer. Tests call it directly with an
// in-memory database and fake transport implementations.
func (a *App) initServices(db *gorm.DB, bridge transport.DOMBridge, dialogs transport.DialogHandler) {
	a.settings = services.NewSettingsService(db)
	a.bridge = bridge
	a.dialogs = dialogs
	a.stats = &AppStats{}
}

// GetSettings returns the current accessibility settings
func (a *App) GetSettings() (*models.AccessibilitySettingsData, error) {
	return a.settings.GetSettings()
}

// UpdateSettings mutates settings fields, persists the record and
// re-applies the full effect plan to the page. Persistence always
// happens before application.
func (a *App) UpdateSettings(data map[string]interface{}) (*models.AccessibilitySettingsData, error) {
	updated, err := a.settings.UpdateSettings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	a.applySettings(*updated)
	a.stats.SettingsChanges++
	a.bridge.Emit(common.EventStatsUpdate, a.stats)

	return updated, nil
}

// ResetSettings restores the documented defaults, persists them and
// re-applies the resulting effect plan
func (a *App) ResetSettings() (*models.AccessibilitySettingsData, error) {
	reset, err := a.settings.ResetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to reset settings: %w", err)
	}

	a.applySettings(*reset)
	a.stats.ResetsPerformed++
	a.bridge.Emit(common.EventStatsUpdate, a.stats)

	return reset, nil
}

// ApplyCurrentSettings re-applies the persisted settings to the page.
// The frontend calls this once the page has rendered.
func (a *App) ApplyCurrentSettings() (*models.AccessibilitySettingsData, error) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	a.applySettings(*settings)
	return settings, nil
}

// applySettings recomputes the effect plan for the record and hands it
// to the page bridge. DOM state is always rebuilt from the in-memory
// record, never from storage.
func (a *App) applySettings(settings models.AccessibilitySettingsData) {
	plan := effects.Compute(settings)
	if err := a.bridge.Apply(plan); err != nil {
		a.config.Logger.Error("Failed to apply effect plan", "error", err)
		return
	}

	a.bridge.Emit(common.EventSettingsChanged, settings)
}

// TogglePanel flips the control panel open/closed and returns the new state
func (a *App) TogglePanel() bool {
	a.ui.PanelOpen = !a.ui.PanelOpen
	return a.ui.PanelOpen
}

// HideWidget hides the widget shell for this session
func (a *App) HideWidget() {
	a.ui.WidgetHidden = true
	a.ui.PanelOpen = false
}

// RemoveWidget removes the widget shell for this session
func (a *App) RemoveWidget() {
	a.ui.WidgetRemoved = true
	a.ui.PanelOpen = false
}

// GetUIState returns the ephemeral widget-shell state
func (a *App) GetUIState() UIState {
	return a.ui
}

// TogglePageStructure toggles the page-structure dialog. Opening scans
// the provided page source and returns a fresh snapshot; closing
// returns no structure. The open/closed flag lives in the persisted
// settings record.
func (a *App) TogglePageStructure(pageHTML string) (*PageStructureResponse, error) {
	current, err := a.settings.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	// Validate and parse the page source before mutating the record so
	// a failed open cannot persist the dialog as open.
	opening := !current.ShowPageStructure

	var doc *dom.Document
	if opening {
		if pageHTML == "" {
			return nil, ErrNoPageSource
		}

		doc, err = dom.ParseString(pageHTML)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageParse, err)
		}
	}

	updated, err := a.settings.UpdateSettings(map[string]interface{}{
		"show_page_structure": opening,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	a.applySettings(*updated)

	if !updated.ShowPageStructure {
		return &PageStructureResponse{Open: false}, nil
	}

	scope := doc.Scope()
	if !doc.HasMount() {
		a.config.Logger.Warn("Application mount point not found, scanning full document",
			"mount_id", dom.MountElementID)
	}

	structure := inspector.Inspect(scope)
	a.stats.InspectionsRun++
	a.bridge.Emit(common.EventStatsUpdate, a.stats)

	return &PageStructureResponse{Open: true, Structure: structure}, nil
}

// ExportSettings writes the current settings record to a user-chosen
// JSON file. Returns the chosen path, or an empty string when the
// dialog was cancelled.
func (a *App) ExportSettings() (string, error) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}

	path, err := a.dialogs.ShowExportDialog(common.DefaultExportFilename)
	if err != nil {
		return "", err
	}

	if path == "" {
		return "", nil
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, common.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to write settings file: %w", err)
	}

	return path, nil
}

// ImportSettings loads a settings record from a user-chosen JSON file,
// persists it and applies it. Returns nil settings when the dialog was
// cancelled.
func (a *App) ImportSettings() (*models.AccessibilitySettingsData, error) {
	path, err := a.dialogs.ShowImportDialog()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	// Unmarshal over a default record so fields absent from the file
	// keep their documented defaults and the record stays fully
	// populated.
	imported := models.DefaultSettings()
	if err := json.Unmarshal(data, &imported); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettingsFile, err)
	}

	if !imported.TextSize.Valid() || !imported.Spacing.Valid() || !imported.Font.Valid() {
		return nil, fmt.Errorf("%w: unknown enum value", ErrInvalidSettingsFile)
	}

	updated, err := a.settings.ReplaceSettings(imported)
	if err != nil {
		return nil, fmt.Errorf("failed to persist imported settings: %w", err)
	}

	a.applySettings(*updated)
	a.stats.SettingsChanges++
	a.bridge.Emit(common.EventStatsUpdate, a.stats)

	return updated, nil
}

// GetAppStatus returns application status information
func (a *App) GetAppStatus() map[string]interface{} {
	return map[string]interface{}{
		"status":        "running",
		"app_name":      "Accessly",
		"database_path": a.config.DatabasePath,
	}
}

// GetStats returns session statistics
func (a *App) GetStats() *AppStats {
	return a.stats
}
