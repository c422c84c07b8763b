package transport

import (
	"context"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"accessly/internal/effects"
)

type webviewBridge struct {
	ctx context.Context
}

// NewWebviewBridge creates a DOMBridge backed by the Wails webview
func NewWebviewBridge(ctx context.Context) DOMBridge {
	return &webviewBridge{
		ctx: ctx,
	}
}

// Apply renders the plan as JavaScript and executes it on the page
func (b *webviewBridge) Apply(plan effects.Plan) error {
	script, err := BuildScript(plan)
	if err != nil {
		return err
	}

	wailsruntime.WindowExecJS(b.ctx, script)
	return nil
}

// Emit publishes an application event to the frontend
func (b *webviewBridge) Emit(event string, payload interface{}) {
	wailsruntime.EventsEmit(b.ctx, event, payload)
}
