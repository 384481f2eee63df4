package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.mediascraper")
		v.AddConfigPath("/etc/mediascraper")
	}

	// MEDIASCRAPER_BACKEND_BASE_URL overrides backend.base_url
	v.SetEnvPrefix("MEDIASCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// AutomaticEnv only resolves keys viper already knows about
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.host",
		"server.port",
		"backend.base_url",
		"backend.timeout",
		"relay.base_url",
		"history.database_path",
		"logging.level",
		"logging.format",
		"logging.output_path",
		"logging.logs_dir",
	} {
		_ = v.BindEnv(key)
	}
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	if config.History.DatabasePath != ":memory:" {
		config.History.DatabasePath = expandPath(config.History.DatabasePath)
	}
	config.Logging.LogsDir = expandPath(config.Logging.LogsDir)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	if strings.Contains(path, "$HOME") {
		if home, err := os.UserHomeDir(); err == nil {
			path = strings.ReplaceAll(path, "$HOME", home)
		}
	}

	return os.ExpandEnv(path)
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if err := validateBaseURL("backend", config.Backend.BaseURL); err != nil {
		return err
	}

	if config.Backend.Timeout < 0 {
		return fmt.Errorf("backend timeout cannot be negative")
	}

	if config.Relay.BaseURL == "" {
		return fmt.Errorf("relay base URL not configured")
	}

	if len(config.View.Sections) == 0 {
		return fmt.Errorf("no page sections configured")
	}

	view := NewViewController(&config.View)
	if !view.HasSection(config.View.DefaultSection) {
		return fmt.Errorf("default section %q is not a page section", config.View.DefaultSection)
	}
	if !view.HasSection(config.View.ResultsSection) {
		return fmt.Errorf("results section %q is not a page section", config.View.ResultsSection)
	}

	if config.View.LabelInterval <= 0 {
		return fmt.Errorf("label interval must be positive")
	}

	if config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}

func validateBaseURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s base URL not configured", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s base URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s base URL must be http or https: %s", name, raw)
	}
	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("server.host", config.Server.Host)
	v.Set("server.port", config.Server.Port)
	v.Set("backend.base_url", config.Backend.BaseURL)
	v.Set("backend.timeout", config.Backend.Timeout.String())
	v.Set("relay.base_url", config.Relay.BaseURL)
	v.Set("view.sections", config.View.Sections)
	v.Set("view.default_section", config.View.DefaultSection)
	v.Set("view.results_section", config.View.ResultsSection)
	v.Set("view.label_interval", config.View.LabelInterval.String())
	v.Set("view.label_fade", config.View.LabelFade.String())
	v.Set("history.database_path", config.History.DatabasePath)
	v.Set("logging.level", config.Logging.Level)
	v.Set("logging.format", config.Logging.Format)
	v.Set("logging.output_path", config.Logging.OutputPath)
	v.Set("logging.logs_dir", config.Logging.LogsDir)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
