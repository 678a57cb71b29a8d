package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, DefaultDBPath(), cfg.Storage.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "canned", cfg.Responder.Provider)
	assert.Equal(t, 800*time.Millisecond, cfg.Responder.Delay)
	assert.Equal(t, 150, cfg.Responder.OpenAI.MaxTokens)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindmate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: memory
log:
  level: debug
  development: true
responder:
  delay: 50ms
`), 0o644))
	t.Setenv("MINDMATE_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "error", cfg.Log.Level, "environment beats the file")
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, 50*time.Millisecond, cfg.Responder.Delay)
}

func TestLoadEnvAliases(t *testing.T) {
	t.Setenv("MINDMATE_DB", "/tmp/alias.db")
	t.Setenv("MINDMATE_RESPONDER_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/alias.db", cfg.Storage.Path)
	assert.Equal(t, "sk-test", cfg.Responder.OpenAI.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage:   StorageConfig{Driver: "sqlite", Path: "x.db"},
			Log:       LogConfig{Level: "info"},
			Responder: ResponderConfig{Provider: "canned"},
		}
	}
	c := valid()
	require.NoError(t, c.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad driver", func(c *Config) { c.Storage.Driver = "postgres" }, "storage.driver"},
		{"empty path", func(c *Config) { c.Storage.Path = "" }, "storage.path"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"openai without key", func(c *Config) { c.Responder.Provider = "openai" }, "api_key"},
		{"bad provider", func(c *Config) { c.Responder.Provider = "ollama" }, "responder.provider"},
		{"negative delay", func(c *Config) { c.Responder.Delay = -time.Second }, "responder.delay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
