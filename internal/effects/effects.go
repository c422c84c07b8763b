// Package effects computes the visual adjustments for a settings record.
// Computation is a pure function of the full record so it can be unit
// tested without a rendering environment; applying the resulting plan is
// the job of a thin adapter (internal/dom for parsed documents,
// internal/transport for the live webview).
package effects

import (
	"strings"

	"accessly/internal/models"
)

// StyleRule is a single inline-style mutation. An empty Value clears
// the property instead of setting it.
type StyleRule struct {
	Selector string `json:"selector"`
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Plan is the full set of visual effects for one settings record.
// ShowGuide controls the zero-or-one reading-guide element.
type Plan struct {
	Rules     []StyleRule `json:"rules"`
	ShowGuide bool        `json:"show_guide"`
}

// Style values for the individual adjustments
const (
	LinkHighlightColor = "yellow"
	LargeTextSize      = "125%"
	NormalTextSize     = "100%"
	WideLetterSpacing  = "2px"
	FocusOutline       = "2px solid #1e90ff"

	contrastFilter = "contrast(1.5)"
	invertFilter   = "invert(1)"
)

// Compute translates a settings record into an ordered plan of style
// rules. Rules are emitted for every adjustment, set or cleared, so a
// plan always describes the complete visual state.
func Compute(settings models.AccessibilitySettingsData) Plan {
	var rules []StyleRule

	linkHighlight := ""
	if settings.HighlightLinks {
		linkHighlight = LinkHighlightColor
	}
	rules = append(rules, StyleRule{Selector: "a", Property: "background-color", Value: linkHighlight})

	textSize := NormalTextSize
	if settings.TextSize == models.TextSizeLarge {
		textSize = LargeTextSize
	}
	rules = append(rules, StyleRule{Selector: "html", Property: "font-size", Value: textSize})

	rules = append(rules, StyleRule{Selector: "html", Property: "filter", Value: FilterValue(settings)})

	spacing := "normal"
	if settings.Spacing == models.SpacingWide {
		spacing = WideLetterSpacing
	}
	rules = append(rules, StyleRule{Selector: "html", Property: "letter-spacing", Value: spacing})

	rules = append(rules, StyleRule{Selector: "html", Property: "font-family", Value: string(settings.Font)})

	animation := ""
	if !settings.AnimationsEnabled {
		animation = "none"
	}
	rules = append(rules,
		StyleRule{Selector: "*", Property: "animation", Value: animation},
		StyleRule{Selector: "*", Property: "transition", Value: animation},
	)

	outline := ""
	if settings.FocusEnabled {
		outline = FocusOutline
	}
	rules = append(rules, StyleRule{Selector: "*", Property: "outline", Value: outline})

	cursor := ""
	if settings.CursorEnabled {
		cursor = "pointer"
	}
	rules = append(rules, StyleRule{Selector: "body", Property: "cursor", Value: cursor})

	display := ""
	if !settings.ImagesVisible {
		display = "none"
	}
	rules = append(rules, StyleRule{Selector: "img", Property: "display", Value: display})

	return Plan{
		Rules:     rules,
		ShowGuide: settings.GuideEnabled,
	}
}

// FilterValue composes the page-level visual filter: a contrast boost
// when high contrast is on, a color inversion when color shift is on,
// both when both are on, "none" when neither is.
func FilterValue(settings models.AccessibilitySettingsData) string {
	var parts []string

	if settings.HighContrast {
		parts = append(parts, contrastFilter)
	}

	if settings.ColorShift {
		parts = append(parts, invertFilter)
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, " ")
}
