package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// TextSize is the root font-size scale.
type TextSize string

// Spacing is the root letter-spacing scale.
type Spacing string

// Font is the root font family.
type Font string

const (
	TextSizeNormal TextSize = "normal"
	TextSizeLarge  TextSize = "large"

	SpacingNormal Spacing = "normal"
	SpacingWide   Spacing = "wide"

	FontSansSerif Font = "sans-serif"
	FontSerif     Font = "serif"
)

// Valid reports whether the value is one of the declared scales
func (t TextSize) Valid() bool {
	return t == TextSizeNormal || t == TextSizeLarge
}

// Valid reports whether the value is one of the declared scales
func (s Spacing) Valid() bool {
	return s == SpacingNormal || s == SpacingWide
}

// Valid reports whether the value is one of the declared families
func (f Font) Valid() bool {
	return f == FontSansSerif || f == FontSerif
}

// AccessibilitySettings represents the persisted accessibility settings row
type AccessibilitySettings struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SettingsJSON string    `gorm:"type:text" json:"settings_json"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccessibilitySettingsData represents the structured settings data
type AccessibilitySettingsData struct {
	HighlightLinks    bool     `json:"highlight_links"`
	ColorShift        bool     `json:"color_shift"`
	AnimationsEnabled bool     `json:"animations_enabled"`
	HighContrast      bool     `json:"high_contrast"`
	FocusEnabled      bool     `json:"focus_enabled"`
	CursorEnabled     bool     `json:"cursor_enabled"`
	TextSize          TextSize `json:"text_size"`
	Spacing           Spacing  `json:"spacing"`
	Font              Font     `json:"font"`
	ImagesVisible     bool     `json:"images_visible"`
	ShowPageStructure bool     `json:"show_page_structure"`
	GuideEnabled      bool     `json:"guide_enabled"`
}

// DefaultSettings returns default accessibility settings values
func DefaultSettings() AccessibilitySettingsData {
	return AccessibilitySettingsData{
		HighlightLinks:    false,
		ColorShift:        false,
		AnimationsEnabled: true,
		HighContrast:      false,
		FocusEnabled:      false,
		CursorEnabled:     false,
		TextSize:          TextSizeNormal,
		Spacing:           SpacingNormal,
		Font:              FontSansSerif,
		ImagesVisible:     true,
		ShowPageStructure: false,
		GuideEnabled:      false,
	}
}

// GetSettings parses and returns the settings data. An empty or
// unparseable column falls back to defaults rather than erroring.
func (as *AccessibilitySettings) GetSettings() AccessibilitySettingsData {
	if as.SettingsJSON == "" {
		return DefaultSettings()
	}

	var settings AccessibilitySettingsData
	if err := json.Unmarshal([]byte(as.SettingsJSON), &settings); err != nil {
		return DefaultSettings()
	}

	return settings
}

// SetSettings sets the settings data
func (as *AccessibilitySettings) SetSettings(settings AccessibilitySettingsData) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	as.SettingsJSON = string(data)
	return nil
}

// GetOrCreateSettings gets or creates the global settings row
func GetOrCreateSettings(db *gorm.DB) (*AccessibilitySettings, error) {
	var settings AccessibilitySettings

	// Try to get the existing settings row with ID = 1
	result := db.First(&settings, 1)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			// Create default settings
			settings = AccessibilitySettings{
				ID: 1,
			}

			defaultSettings := DefaultSettings()
			if err := settings.SetSettings(defaultSettings); err != nil {
				return nil, err
			}

			if err := db.Create(&settings).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, result.Error
		}
	}

	return &settings, nil
}
