// Package config loads the fin settings from fintrack.yaml, the environment and
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/etnz/fintrack/date"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds the fin settings.
type Config struct {
	Store           string `mapstructure:"store"`            // Store is the storage uri, see kv.Open.
	Currency        string `mapstructure:"currency"`         // Currency is the ISO code amounts are displayed in.
	LogLevel        string `mapstructure:"log_level"`        // LogLevel is debug, info, warn or error.
	Listen          string `mapstructure:"listen"`           // Listen is the HTTP server address.
	RefreshSchedule string `mapstructure:"refresh_schedule"` // RefreshSchedule is the cron spec of the installment refresh.
	Today           string `mapstructure:"today"`            // Today, when set, pins the current day.
}

// defaults for every key.
var defaults = map[string]string{
	"store":            "dir:.fintrack",
	"currency":         "INR",
	"log_level":        "info",
	"listen":           ":8080",
	"refresh_schedule": "@daily",
	"today":            "",
}

// Load reads the optional .env file in the working directory, then fintrack.yaml
// from the working directory or $HOME/.config/fintrack, and FINTRACK_* variables.
// Environment variables win over the file, which wins over the defaults.
func Load() (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "fintrack"))
	}
	return load(viper.New(), dirs...)
}

// LoadDotEnv sets the variables of a .env file. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := gotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load %q: %w", path, err)
	}
	return nil
}

func load(v *viper.Viper, dirs ...string) (*Config, error) {
	v.SetConfigName("fintrack")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("FINTRACK")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	return &cfg, cfg.Validate()
}

// Validate checks the values that must parse.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Clock(); err != nil {
		errs = append(errs, err)
	}
	if c.Store == "" {
		errs = append(errs, errors.New("store cannot be empty"))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c *Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Clock returns the function giving the current day: the pinned Today if set,
// the system date otherwise.
func (c *Config) Clock() (func() date.Date, error) {
	if c.Today == "" {
		return date.Today, nil
	}
	d, err := date.Parse(c.Today)
	if err != nil {
		return nil, fmt.Errorf("invalid today: %w", err)
	}
	return func() date.Date { return d }, nil
}

// NewLogger returns the logger configured at the settings level.
func (c *Config) NewLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fin",
	})
	if lvl, err := c.Level(); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
