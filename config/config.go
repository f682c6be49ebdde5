package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. GAMEPANEL_PANEL_HOSTNAME
const EnvPrefix = "GAMEPANEL"

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".gamepanel"))
		}

		// Check /etc
		v.AddConfigPath("/etc/gamepanel/")
	}

	// Read config file; without an explicit path the file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Panel defaults; bound so environment overrides are picked up by Unmarshal
	v.SetDefault("panel.hostname", "")
	v.SetDefault("panel.token", "")

	// HTTP defaults
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.user_agent", "gamepanel-cli")

	// Keyring defaults
	v.SetDefault("keyring.backend", "auto")
	v.SetDefault("keyring.file_dir", "")

	// Output defaults
	v.SetDefault("output.format", "json")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid. The panel hostname is checked
// when a client is created, since it may also come from the command line.
func validate(cfg *Config) error {
	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative")
	}

	validBackends := map[string]bool{
		"auto":   true,
		"file":   true,
		"system": true,
	}
	if !validBackends[cfg.Keyring.Backend] {
		return fmt.Errorf("invalid keyring backend: %s (must be 'auto', 'file' or 'system')", cfg.Keyring.Backend)
	}

	validOutputs := map[string]bool{
		"json":  true,
		"table": true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
