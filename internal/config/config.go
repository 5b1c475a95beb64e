package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sadopc/apptime/internal/store"
)

// Config holds the complete application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Tracker  TrackerConfig  `mapstructure:"tracker"`
	UI       UIConfig       `mapstructure:"ui"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig defines log output. An empty File means stderr.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
	File   string `mapstructure:"file"`
}

// TrackerConfig drives update and watch.
type TrackerConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	MetricsFile   string        `mapstructure:"metrics_file"` // node-exporter textfile, empty disables
	Notifications bool          `mapstructure:"notifications"`
}

type UIConfig struct {
	Color bool `mapstructure:"color"`
}

// DefaultPath returns <user config dir>/apptime/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "apptime", "config.yaml")
}

// Load reads configuration from configPath, the APPTIME_* environment and
// defaults. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("APPTIME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", store.DefaultDBPath())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	v.SetDefault("tracker.interval", "1m")
	v.SetDefault("tracker.metrics_file", "")
	v.SetDefault("tracker.notifications", true)

	v.SetDefault("ui.color", true)
}

func validate(cfg *Config) error {
	if cfg.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %q", cfg.Logging.Format)
	}

	if cfg.Tracker.Interval < time.Second {
		return fmt.Errorf("tracker interval must be at least 1s, got %s", cfg.Tracker.Interval)
	}

	return nil
}
