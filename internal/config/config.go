package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Config holds application configuration
type Config struct {
	AppDataDir   string
	DatabasePath string
	Logger       *slog.Logger
}

// New creates a new configuration instance
func New() *Config {
	cfg := &Config{
		Logger: slog.Default(),
	}

	cfg.setupDirectories()

	return cfg
}

func (c *Config) setupDirectories() {
	// Set up app data directory (settings database)
	c.AppDataDir = getAppDataDir()
	os.MkdirAll(c.AppDataDir, 0755)

	// Database path
	c.DatabasePath = filepath.Join(c.AppDataDir, "settings.sqlite3")
}

func getAppDataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		configDir = homeDir
	}

	return filepath.Join(configDir, "Accessly")
}
