package app

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"accessly/internal/common"
	"accessly/internal/config"
	"accessly/internal/effects"
	"accessly/internal/models"
)

type fakeBridge struct {
	plans  []effects.Plan
	events []string
}

func (b *fakeBridge) Apply(plan effects.Plan) error {
	b.plans = append(b.plans, plan)
	return nil
}

func (b *fakeBridge) Emit(event string, payload interface{}) {
	b.events = append(b.events, event)
}

func (b *fakeBridge) lastPlan(t *testing.T) effects.Plan {
	t.Helper()

	if len(b.plans) == 0 {
		t.Fatal("Expected at least one applied plan")
	}

	return b.plans[len(b.plans)-1]
}

type fakeDialogs struct {
	exportPath string
	importPath string
}

func (d *fakeDialogs) ShowExportDialog(filename string) (string, error) {
	return d.exportPath, nil
}

func (d *fakeDialogs) ShowImportDialog() (string, error) {
	return d.importPath, nil
}

func newTestApp(t *testing.T) (*App, *fakeBridge, *fakeDialogs) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(&models.AccessibilitySettings{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	bridge := &fakeBridge{}
	dialogs := &fakeDialogs{}

	a := NewApp()
	a.config = &config.Config{Logger: slog.Default()}
	a.initServices(db, bridge, dialogs)

	return a, bridge, dialogs
}

func findRule(t *testing.T, plan effects.Plan, selector, property string) effects.StyleRule {
	t.Helper()

	for _, rule := range plan.Rules {
		if rule.Selector == selector && rule.Property == property {
			return rule
		}
	}

	t.Fatalf("Expected rule for %s/%s in plan", selector, property)
	return effects.StyleRule{}
}

func TestUpdateSettings_AppliesPlanAndEmits(t *testing.T) {
	a, bridge, _ := newTestApp(t)

	updated, err := a.UpdateSettings(map[string]interface{}{"high_contrast": true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !updated.HighContrast {
		t.Error("Expected high contrast to be enabled")
	}

	plan := bridge.lastPlan(t)
	if rule := findRule(t, plan, "html", "filter"); rule.Value != "contrast(1.5)" {
		t.Errorf("Expected contrast filter in applied plan, got %q", rule.Value)
	}

	sawChange := false
	for _, event := range bridge.events {
		if event == common.EventSettingsChanged {
			sawChange = true
		}
	}
	if !sawChange {
		t.Error("Expected settings:changed event")
	}

	if a.stats.SettingsChanges != 1 {
		t.Errorf("Expected 1 settings change, got %d", a.stats.SettingsChanges)
	}
}

func TestUpdateSettings_PersistsBeforeApply(t *testing.T) {
	a, bridge, _ := newTestApp(t)

	if _, err := a.UpdateSettings(map[string]interface{}{"guide_enabled": true}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The applied plan must reflect the persisted record
	persisted, err := a.GetSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if !persisted.GuideEnabled {
		t.Error("Expected guide flag to be persisted")
	}

	if !bridge.lastPlan(t).ShowGuide {
		t.Error("Expected applied plan to show the guide")
	}
}

func TestResetSettings_RestoresDefaults(t *testing.T) {
	a, bridge, _ := newTestApp(t)

	_, err := a.UpdateSettings(map[string]interface{}{
		"highlight_links": true,
		"images_visible":  false,
	})
	if err != nil {
		t.Fatalf("Failed to mutate settings: %v", err)
	}

	reset, err := a.ResetSettings()
	if err != nil {
		t.Fatalf("Expected no error resetting, got %v", err)
	}

	if *reset != models.DefaultSettings() {
		t.Errorf("Expected defaults after reset, got %+v", *reset)
	}

	plan := bridge.lastPlan(t)
	if rule := findRule(t, plan, "a", "background-color"); rule.Value != "" {
		t.Errorf("Expected cleared link highlight after reset, got %q", rule.Value)
	}

	if a.stats.ResetsPerformed != 1 {
		t.Errorf("Expected 1 reset, got %d", a.stats.ResetsPerformed)
	}
}

func TestApplyCurrentSettings(t *testing.T) {
	a, bridge, _ := newTestApp(t)

	if _, err := a.UpdateSettings(map[string]interface{}{"guide_enabled": true}); err != nil {
		t.Fatalf("Failed to mutate settings: %v", err)
	}

	bridge.plans = nil

	settings, err := a.ApplyCurrentSettings()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !settings.GuideEnabled {
		t.Error("Expected persisted guide flag")
	}

	if !bridge.lastPlan(t).ShowGuide {
		t.Error("Expected re-applied plan to show the guide")
	}
}

func TestPanelAndWidgetState(t *testing.T) {
	a, _, _ := newTestApp(t)

	if open := a.TogglePanel(); !open {
		t.Error("Expected panel to open")
	}

	if open := a.TogglePanel(); open {
		t.Error("Expected panel to close")
	}

	a.TogglePanel()
	a.HideWidget()

	state := a.GetUIState()
	if !state.WidgetHidden {
		t.Error("Expected widget to be hidden")
	}
	if state.PanelOpen {
		t.Error("Expected panel to close when hiding the widget")
	}

	a.RemoveWidget()
	if !a.GetUIState().WidgetRemoved {
		t.Error("Expected widget to be removed")
	}
}

const structurePage = `<html><body><div id="app">
	<h1>Title</h1>
	<h2>Section</h2>
	<p>No landmarks here.</p>
</div></body></html>`

func TestTogglePageStructure(t *testing.T) {
	a, _, _ := newTestApp(t)

	response, err := a.TogglePageStructure(structurePage)
	if err != nil {
		t.Fatalf("Expected no error opening, got %v", err)
	}

	if !response.Open {
		t.Fatal("Expected dialog to open")
	}

	if response.Structure == nil {
		t.Fatal("Expected a structure snapshot")
	}

	if len(response.Structure.Headings) != 2 {
		t.Errorf("Expected 2 headings, got %d", len(response.Structure.Headings))
	}

	if len(response.Structure.Landmarks) != 0 {
		t.Errorf("Expected no landmarks, got %d", len(response.Structure.Landmarks))
	}

	settings, err := a.GetSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if !settings.ShowPageStructure {
		t.Error("Expected open state to be persisted")
	}

	// Toggling again closes the dialog
	response, err = a.TogglePageStructure(structurePage)
	if err != nil {
		t.Fatalf("Expected no error closing, got %v", err)
	}

	if response.Open {
		t.Error("Expected dialog to close")
	}

	if response.Structure != nil {
		t.Error("Expected no structure on close")
	}

	settings, _ = a.GetSettings()
	if settings.ShowPageStructure {
		t.Error("Expected closed state to be persisted")
	}

	if a.stats.InspectionsRun != 1 {
		t.Errorf("Expected 1 inspection, got %d", a.stats.InspectionsRun)
	}
}

func TestTogglePageStructure_NoSource(t *testing.T) {
	a, _, _ := newTestApp(t)

	_, err := a.TogglePageStructure("")
	if !errors.Is(err, ErrNoPageSource) {
		t.Errorf("Expected ErrNoPageSource, got %v", err)
	}

	// The failed open must not flip the persisted flag
	settings, _ := a.GetSettings()
	if settings.ShowPageStructure {
		t.Error("Expected dialog state to stay closed")
	}
}

func TestTogglePageStructure_CloseWithoutSource(t *testing.T) {
	a, _, _ := newTestApp(t)

	if _, err := a.TogglePageStructure(structurePage); err != nil {
		t.Fatalf("Expected no error opening, got %v", err)
	}

	// Closing never scans the page, so missing source is fine
	response, err := a.TogglePageStructure("")
	if err != nil {
		t.Fatalf("Expected no error closing, got %v", err)
	}

	if response.Open {
		t.Error("Expected dialog to close")
	}

	settings, _ := a.GetSettings()
	if settings.ShowPageStructure {
		t.Error("Expected closed state to be persisted")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	a, _, dialogs := newTestApp(t)

	tempDir := t.TempDir()
	exportPath := filepath.Join(tempDir, "settings.json")
	dialogs.exportPath = exportPath
	dialogs.importPath = exportPath

	_, err := a.UpdateSettings(map[string]interface{}{
		"high_contrast": true,
		"font":          "serif",
	})
	if err != nil {
		t.Fatalf("Failed to mutate settings: %v", err)
	}

	path, err := a.ExportSettings()
	if err != nil {
		t.Fatalf("Expected no error exporting, got %v", err)
	}

	if path != exportPath {
		t.Errorf("Expected export path %s, got %s", exportPath, path)
	}

	// Reset, then import the exported snapshot back
	if _, err := a.ResetSettings(); err != nil {
		t.Fatalf("Failed to reset settings: %v", err)
	}

	imported, err := a.ImportSettings()
	if err != nil {
		t.Fatalf("Expected no error importing, got %v", err)
	}

	if !imported.HighContrast {
		t.Error("Expected imported high contrast")
	}

	if imported.Font != models.FontSerif {
		t.Errorf("Expected imported serif font, got %s", imported.Font)
	}

	persisted, _ := a.GetSettings()
	if *persisted != *imported {
		t.Error("Expected imported settings to be persisted")
	}
}

func TestExportSettings_Cancelled(t *testing.T) {
	a, _, dialogs := newTestApp(t)
	dialogs.exportPath = ""

	path, err := a.ExportSettings()
	if err != nil {
		t.Fatalf("Expected no error on cancel, got %v", err)
	}

	if path != "" {
		t.Errorf("Expected empty path on cancel, got %s", path)
	}
}

func TestImportSettings_InvalidFile(t *testing.T) {
	a, _, dialogs := newTestApp(t)

	tempDir := t.TempDir()
	badPath := filepath.Join(tempDir, "bad.json")
	if err := os.WriteFile(badPath, []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write bad file: %v", err)
	}
	dialogs.importPath = badPath

	_, err := a.ImportSettings()
	if !errors.Is(err, ErrInvalidSettingsFile) {
		t.Errorf("Expected ErrInvalidSettingsFile, got %v", err)
	}
}

func TestImportSettings_PartialFileKeepsDefaults(t *testing.T) {
	a, _, dialogs := newTestApp(t)

	tempDir := t.TempDir()
	partialPath := filepath.Join(tempDir, "partial.json")
	if err := os.WriteFile(partialPath, []byte(`{"high_contrast": true}`), 0644); err != nil {
		t.Fatalf("Failed to write partial file: %v", err)
	}
	dialogs.importPath = partialPath

	imported, err := a.ImportSettings()
	if err != nil {
		t.Fatalf("Expected no error importing, got %v", err)
	}

	if !imported.HighContrast {
		t.Error("Expected imported high contrast")
	}

	// Fields absent from the file keep their defaults
	if !imported.AnimationsEnabled {
		t.Error("Expected animations to stay enabled")
	}
	if !imported.ImagesVisible {
		t.Error("Expected images to stay visible")
	}
	if imported.TextSize != models.TextSizeNormal {
		t.Errorf("Expected normal text size, got %q", imported.TextSize)
	}
	if imported.Spacing != models.SpacingNormal {
		t.Errorf("Expected normal spacing, got %q", imported.Spacing)
	}
	if imported.Font != models.FontSansSerif {
		t.Errorf("Expected sans-serif font, got %q", imported.Font)
	}

	persisted, _ := a.GetSettings()
	if *persisted != *imported {
		t.Error("Expected imported settings to be persisted")
	}
}

func TestImportSettings_UnknownEnum(t *testing.T) {
	a, _, dialogs := newTestApp(t)

	tempDir := t.TempDir()
	badPath := filepath.Join(tempDir, "enum.json")
	if err := os.WriteFile(badPath, []byte(`{"font": "huge"}`), 0644); err != nil {
		t.Fatalf("Failed to write enum file: %v", err)
	}
	dialogs.importPath = badPath

	_, err := a.ImportSettings()
	if !errors.Is(err, ErrInvalidSettingsFile) {
		t.Errorf("Expected ErrInvalidSettingsFile, got %v", err)
	}

	// The rejected file must not touch the persisted record
	settings, _ := a.GetSettings()
	if *settings != models.DefaultSettings() {
		t.Errorf("Expected defaults after rejected import, got %+v", *settings)
	}
}
