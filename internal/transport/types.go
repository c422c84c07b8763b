package transport

import "accessly/internal/effects"

// Transport layer types for the Wails API

// DOMBridge applies effect plans to the rendered page and publishes
// application events. The webview implementation executes JavaScript;
// tests substitute an in-memory implementation.
type DOMBridge interface {
	Apply(plan effects.Plan) error
	Emit(event string, payload interface{})
}

// DialogHandler provides the system dialogs for settings export/import
type DialogHandler interface {
	ShowExportDialog(filename string) (string, error)
	ShowImportDialog() (string, error)
}
