package config

import "time"

// FileName is the default configuration file, looked up in the working
// directory.
const FileName = ".coursesite.yml"

// Config is the top-level coursesite configuration, corresponding to
// .coursesite.yml.
type Config struct {
	// ContentDir holds course.yml and days/. Empty uses the built-in sample
	// course.
	ContentDir string `yaml:"content_dir" koanf:"content_dir"`
	OutputDir  string `yaml:"output_dir" koanf:"output_dir"`
	BaseURL    string `yaml:"base_url" koanf:"base_url"`

	// Language is the fixed display language of every code panel.
	Language   string `yaml:"language" koanf:"language"`
	LightStyle string `yaml:"light_style" koanf:"light_style"`
	DarkStyle  string `yaml:"dark_style" koanf:"dark_style"`

	// LoadTimeout bounds one load of the highlighting engine. Zero waits
	// forever.
	LoadTimeout time.Duration `yaml:"load_timeout" koanf:"load_timeout"`

	DataDir  string      `yaml:"data_dir" koanf:"data_dir"`
	LogLevel string      `yaml:"log_level" koanf:"log_level"`
	Serve    ServeConfig `yaml:"serve" koanf:"serve"`
}

// ServeConfig holds settings for the development server.
type ServeConfig struct {
	Port  int  `yaml:"port" koanf:"port"`
	Watch bool `yaml:"watch" koanf:"watch"`
	// WatchPatterns are doublestar globs, relative to ContentDir, whose
	// changes trigger a rebuild.
	WatchPatterns []string      `yaml:"watch_patterns" koanf:"watch_patterns"`
	Debounce      time.Duration `yaml:"debounce" koanf:"debounce"`
}
