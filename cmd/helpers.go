package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ziadkadry99/coursesite/internal/config"
	"github.com/ziadkadry99/coursesite/internal/content"
	"github.com/ziadkadry99/coursesite/internal/db"
	"github.com/ziadkadry99/coursesite/internal/logging"
	"github.com/ziadkadry99/coursesite/internal/theme"
)

// loadConfig loads and validates the config and applies its log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `coursesite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if err := logging.Init(logLevel(cfg.LogLevel), os.Stderr); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadCourse reads the course from the configured content directory, or the
// bundled sample course when none is set.
func loadCourse(cfg *config.Config) (*content.Course, error) {
	if cfg.ContentDir == "" {
		log.Debug().Msg("no content_dir configured, using the sample course")
		return content.Sample()
	}
	course, err := content.Load(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("loading course: %w", err)
	}
	return course, nil
}

// openThemeStore opens the preference database. The caller closes the
// returned DB.
func openThemeStore(cfg *config.Config) (*db.DB, *theme.Store, error) {
	d, err := db.Open(cfg.StatePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening state database: %w", err)
	}
	return d, theme.NewStore(d), nil
}
