package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Panel   PanelConfig   `mapstructure:"panel"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Keyring KeyringConfig `mapstructure:"keyring"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PanelConfig holds the panel connection details
type PanelConfig struct {
	Hostname string `mapstructure:"hostname"`
	// Token is optional; the keyring entry for Hostname is used when empty
	Token string `mapstructure:"token"`
}

// HTTPConfig contains transport settings
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// KeyringConfig selects where stored tokens live
type KeyringConfig struct {
	Backend string `mapstructure:"backend"`
	FileDir string `mapstructure:"file_dir"`
}

// OutputConfig contains CLI output settings
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
