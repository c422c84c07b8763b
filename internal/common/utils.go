package common

import (
	"github.com/google/uuid"
)

const (
	// Event names published to the frontend
	EventSettingsChanged = "settings:changed"
	EventStatsUpdate     = "stats:update"

	// Default filename offered by the export dialog
	DefaultExportFilename = "accessibility-settings.json"

	// File operation constants
	DefaultFilePermissions = 0644
)

// GenerateUUID generates a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}
