package services

import (
	"accessly/internal/models"

	"gorm.io/gorm"
)

// SettingsService handles accessibility settings operations
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new settings service
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetSettings gets the current accessibility settings
func (s *SettingsService) GetSettings() (*models.AccessibilitySettingsData, error) {
	settings, err := models.GetOrCreateSettings(s.db)
	if err != nil {
		return nil, err
	}

	settingsData := settings.GetSettings()
	return &settingsData, nil
}

// UpdateSettings applies field updates to the settings record and
// persists the result in the same call. One call, one write.
func (s *SettingsService) UpdateSettings(data map[string]interface{}) (*models.AccessibilitySettingsData, error) {
	settings, err := models.GetOrCreateSettings(s.db)
	if err != nil {
		return nil, err
	}

	currentSettings := settings.GetSettings()

	// Update fields from request data
	if val, ok := data["highlight_links"]; ok {
		if highlight, ok := val.(bool); ok {
			currentSettings.HighlightLinks = highlight
		}
	}

	if val, ok := data["color_shift"]; ok {
		if shift, ok := val.(bool); ok {
			currentSettings.ColorShift = shift
		}
	}

	if val, ok := data["animations_enabled"]; ok {
		if enabled, ok := val.(bool); ok {
			currentSettings.AnimationsEnabled = enabled
		}
	}

	if val, ok := data["high_contrast"]; ok {
		if contrast, ok := val.(bool); ok {
			currentSettings.HighContrast = contrast
		}
	}

	if val, ok := data["focus_enabled"]; ok {
		if enabled, ok := val.(bool); ok {
			currentSettings.FocusEnabled = enabled
		}
	}

	if val, ok := data["cursor_enabled"]; ok {
		if enabled, ok := val.(bool); ok {
			currentSettings.CursorEnabled = enabled
		}
	}

	if val, ok := data["text_size"]; ok {
		if size, ok := val.(string); ok {
			if textSize := models.TextSize(size); textSize.Valid() {
				currentSettings.TextSize = textSize
			}
		}
	}

	if val, ok := data["spacing"]; ok {
		if spacing, ok := val.(string); ok {
			if scale := models.Spacing(spacing); scale.Valid() {
				currentSettings.Spacing = scale
			}
		}
	}

	if val, ok := data["font"]; ok {
		if font, ok := val.(string); ok {
			if family := models.Font(font); family.Valid() {
				currentSettings.Font = family
			}
		}
	}

	if val, ok := data["images_visible"]; ok {
		if visible, ok := val.(bool); ok {
			currentSettings.ImagesVisible = visible
		}
	}

	if val, ok := data["show_page_structure"]; ok {
		if show, ok := val.(bool); ok {
			currentSettings.ShowPageStructure = show
		}
	}

	if val, ok := data["guide_enabled"]; ok {
		if enabled, ok := val.(bool); ok {
			currentSettings.GuideEnabled = enabled
		}
	}

	// Save updated settings
	if err := settings.SetSettings(currentSettings); err != nil {
		return nil, err
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}

	return &currentSettings, nil
}

// ReplaceSettings overwrites the full settings record and persists it
func (s *SettingsService) ReplaceSettings(data models.AccessibilitySettingsData) (*models.AccessibilitySettingsData, error) {
	settings, err := models.GetOrCreateSettings(s.db)
	if err != nil {
		return nil, err
	}

	if err := settings.SetSettings(data); err != nil {
		return nil, err
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}

	return &data, nil
}

// ResetSettings restores the documented defaults and persists them
func (s *SettingsService) ResetSettings() (*models.AccessibilitySettingsData, error) {
	return s.ReplaceSettings(models.DefaultSettings())
}
