package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mag-rock/smart-nippo/internal/constants"
	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
)

// Config is the YAML-backed application configuration. The core consumes
// only the database path and the editor command; the rest is carried for the
// display layer.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Editor   EditorConfig   `mapstructure:"editor"`
	Display  DisplayConfig  `mapstructure:"display"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type EditorConfig struct {
	Command string `mapstructure:"command"`
}

type DisplayConfig struct {
	DateFormat string `mapstructure:"date_format"`
	TimeFormat string `mapstructure:"time_format"`
	Language   string `mapstructure:"language"`
	Timezone   string `mapstructure:"timezone"`
}

type DefaultsConfig struct {
	Project      string `mapstructure:"project"`
	Template     string `mapstructure:"template"`
	ExportFormat string `mapstructure:"export_format"`
}

// DefaultDir returns the per-user application directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return constants.ConfigDirName
	}
	return filepath.Join(home, constants.ConfigDirName)
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), constants.ConfigFileName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(DefaultDir(), constants.DatabaseFileName))
	v.SetDefault("editor.command", "vim")
	v.SetDefault("display.date_format", "2006-01-02")
	v.SetDefault("display.time_format", "15:04")
	v.SetDefault("display.language", "en")
	v.SetDefault("display.timezone", "Local")
	v.SetDefault("defaults.project", "")
	v.SetDefault("defaults.template", "default")
	v.SetDefault("defaults.export_format", "markdown")
}

// Load reads the config file at path (the default path when empty). A
// missing file is created with defaults; a malformed file is a
// ConfigurationError.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeDefaults(v, path); writeErr != nil {
				return nil, writeErr
			}
		} else {
			return nil, apperrors.Configuration(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Configuration(err, "invalid config file %s", path)
	}
	return &cfg, nil
}

func writeDefaults(v *viper.Viper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return apperrors.Configuration(err, "failed to create config directory")
	}
	if err := v.WriteConfigAs(path); err != nil {
		return apperrors.Configuration(err, "failed to write default config %s", path)
	}
	return nil
}

// DatabasePath returns the configured database path with a leading ~
// expanded to the user's home directory.
func (c *Config) DatabasePath() string {
	path := c.Database.Path
	if path == "" {
		return filepath.Join(DefaultDir(), constants.DatabaseFileName)
	}
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
