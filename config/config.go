// Package config loads CLI settings from ~/.omchain/config.yaml and OMCHAIN_* environment variables
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/omchainkit/omchain/api"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "OMCHAIN"
	configName = "config.yaml"
)

type Config struct {
	APIURL          string        `mapstructure:"api_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	LogLevel        string        `mapstructure:"log_level"`
	DataDir         string        `mapstructure:"data_dir"`
	SessionDuration time.Duration `mapstructure:"session_duration"`
}

// DefaultDir returns ~/.omchain
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".omchain"
	}
	return filepath.Join(home, ".omchain")
}

// DefaultPath returns the config file used when none is given
func DefaultPath() string {
	return filepath.Join(DefaultDir(), configName)
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("api_url", api.DefaultBaseURL)
	v.SetDefault("timeout", api.DefaultTimeout.String())
	v.SetDefault("log_level", "warn")
	v.SetDefault("data_dir", DefaultDir())
	v.SetDefault("session_duration", "30m")
	return v
}

// Load reads the config file at path when it exists. An empty path means DefaultPath.
// Environment variables override the file and defaults fill in the rest.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := newViper(path)
	if err := readIfExists(v, path); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("api_url must not be empty")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.SessionDuration <= 0 {
		return nil, fmt.Errorf("session_duration must be positive, got %s", cfg.SessionDuration)
	}

	return &cfg, nil
}

// SaveAPIURL stores apiURL in the config file at path, keeping the other keys in it
func SaveAPIURL(path, apiURL string) error {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := readIfExists(v, path); err != nil {
		return err
	}

	v.Set("api_url", strings.TrimRight(apiURL, "/"))

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func readIfExists(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}
