package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ziadkadry99/coursesite/internal/highlight"
)

// DefaultWatchPatterns match every file the content loader reads.
var DefaultWatchPatterns = []string{
	"course.yml",
	"days/**/*.{yml,yaml}",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:   "public",
		BaseURL:     "/",
		Language:    "dart",
		LightStyle:  "github",
		DarkStyle:   "dracula",
		LoadTimeout: highlight.DefaultLoadTimeout,
		DataDir:     defaultDataDir(),
		LogLevel:    "info",
		Serve: ServeConfig{
			Port:          8080,
			WatchPatterns: DefaultWatchPatterns,
			Debounce:      200 * time.Millisecond,
		},
	}
}

// defaultDataDir is the per-user directory for device state such as the
// theme preference.
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "coursesite")
	}
	return ".coursesite"
}

// StatePath returns the path of the per-device state database.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, "state.db")
}
