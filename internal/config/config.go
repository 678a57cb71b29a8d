// Package config loads MindMate settings from defaults, an optional YAML
// file, a .env file, and MINDMATE_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MINDMATE_LOG_LEVEL.
const EnvPrefix = "MINDMATE"

type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	Responder ResponderConfig `mapstructure:"responder"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or memory
	Path   string `mapstructure:"path"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type ResponderConfig struct {
	Provider string        `mapstructure:"provider"` // canned or openai
	Delay    time.Duration `mapstructure:"delay"`
	OpenAI   OpenAIConfig  `mapstructure:"openai"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// DefaultDBPath is ~/.mindmate/mindmate.db.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mindmate", "mindmate.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", DefaultDBPath())
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	v.SetDefault("responder.provider", "canned")
	v.SetDefault("responder.delay", "800ms")
	v.SetDefault("responder.openai.api_key", "")
	v.SetDefault("responder.openai.base_url", "")
	v.SetDefault("responder.openai.model", "gpt-3.5-turbo")
	v.SetDefault("responder.openai.max_tokens", 150)
	v.SetDefault("responder.openai.temperature", 0.7)
}

// Load reads the configuration. path names a YAML file and may be empty.
// A .env file in the working directory is loaded first when present; it
// never overrides variables already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Shorter and conventional names.
	v.BindEnv("storage.path", EnvPrefix+"_STORAGE_PATH", EnvPrefix+"_DB")
	v.BindEnv("responder.openai.api_key", EnvPrefix+"_RESPONDER_OPENAI_API_KEY", "OPENAI_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

var validLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path cannot be empty")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.driver must be sqlite or memory, got %q", c.Storage.Driver)
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Responder.Provider {
	case "canned":
	case "openai":
		if c.Responder.OpenAI.APIKey == "" {
			return fmt.Errorf("responder.openai.api_key is required for the openai provider (or set OPENAI_API_KEY)")
		}
	default:
		return fmt.Errorf("responder.provider must be canned or openai, got %q", c.Responder.Provider)
	}
	if c.Responder.Delay < 0 {
		return fmt.Errorf("responder.delay must be >= 0")
	}
	return nil
}
