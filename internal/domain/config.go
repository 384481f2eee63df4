package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	Relay   RelayConfig   `mapstructure:"relay"`
	View    ViewConfig    `mapstructure:"view"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// BackendConfig points at the scraping API that resolves a post URL into metadata
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero means requests are never cut short.
	Timeout time.Duration `mapstructure:"timeout"`
}

// RelayConfig contains the CORS relay used to embed third-party media
type RelayConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// ViewConfig contains page layout configuration
type ViewConfig struct {
	Sections       []string      `mapstructure:"sections"`
	DefaultSection string        `mapstructure:"default_section"`
	ResultsSection string        `mapstructure:"results_section"`
	LabelInterval  time.Duration `mapstructure:"label_interval"`
	LabelFade      time.Duration `mapstructure:"label_fade"`
}

// HistoryConfig contains card history storage configuration
type HistoryConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	LogsDir    string `mapstructure:"logs_dir"`    // categorized JSON logs, empty disables them
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
		},
		Relay: RelayConfig{
			BaseURL: "https://api.cors.lol",
		},
		View: ViewConfig{
			Sections:       []string{"home", "save", "about", "privacy"},
			DefaultSection: "home",
			ResultsSection: "save",
			LabelInterval:  8 * time.Second,
			LabelFade:      500 * time.Millisecond,
		},
		History: HistoryConfig{
			DatabasePath: "$HOME/.mediascraper/history.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
			LogsDir:    "$HOME/.mediascraper/logs",
		},
	}
}
