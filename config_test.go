// FILE: lixenwraith/lazylog/config_test.go
package lazylog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, int64(LevelDebug), cfg.Level)
	assert.Equal(t, int64(512), cfg.ParseCacheSize)
	assert.Equal(t, "txt", cfg.Format)
	assert.Equal(t, time.RFC3339Nano, cfg.TimestampFormat)
	assert.Equal(t, "line", cfg.Sanitization)
	assert.True(t, cfg.EnableConsole)
	assert.Equal(t, "stderr", cfg.ConsoleTarget)
	assert.Equal(t, int64(LevelInfo), cfg.ConsoleLevel)
	assert.False(t, cfg.EnableFile)
	assert.Equal(t, "app", cfg.Name)
	assert.Equal(t, "log", cfg.Extension)
	assert.NoError(t, cfg.Validate())

	// Each call returns an independent copy
	cfg.Name = "changed"
	assert.Equal(t, "app", DefaultConfig().Name)
}

func TestConfigClone(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg1.Level = int64(LevelWarn)

	cfg2 := cfg1.Clone()
	cfg1.Level = int64(LevelError)

	assert.Equal(t, int64(LevelWarn), cfg2.Level)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:      "valid config",
			modify:    func(c *Config) {},
			wantError: "",
		},
		{
			name:      "invalid format",
			modify:    func(c *Config) { c.Format = "invalid" },
			wantError: "invalid format",
		},
		{
			name:      "empty timestamp format",
			modify:    func(c *Config) { c.TimestampFormat = " " },
			wantError: "timestamp_format cannot be empty",
		},
		{
			name:      "unknown sanitization",
			modify:    func(c *Config) { c.Sanitization = "html" },
			wantError: "invalid sanitization policy",
		},
		{
			name:      "bad console target",
			modify:    func(c *Config) { c.ConsoleTarget = "tty" },
			wantError: "invalid console_target",
		},
		{
			name:      "negative cache",
			modify:    func(c *Config) { c.ParseCacheSize = -1 },
			wantError: "parse_cache_size cannot be negative",
		},
		{
			name:      "empty name ignored without file",
			modify:    func(c *Config) { c.Name = "" },
			wantError: "",
		},
		{
			name: "empty name with file",
			modify: func(c *Config) {
				c.EnableFile = true
				c.Name = ""
			},
			wantError: "log name cannot be empty",
		},
		{
			name: "extension with dot",
			modify: func(c *Config) {
				c.EnableFile = true
				c.Extension = ".log"
			},
			wantError: "extension should not start with dot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.wantError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.Contains(t, err.Error(), "lazylog: ")
			}
		})
	}
}

func TestNewConfigFromFile(t *testing.T) {
	t.Run("loads lazylog table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.toml")
		content := `
[lazylog]
format = "json"
console_level = 8
show_name = false
name = "svc"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := NewConfigFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, int64(LevelError), cfg.ConsoleLevel)
		assert.False(t, cfg.ShowName)
		assert.Equal(t, "svc", cfg.Name)
		assert.Equal(t, "stderr", cfg.ConsoleTarget)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := NewConfigFromFile(filepath.Join(t.TempDir(), "absent.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[lazylog]\nformat = \"yaml\"\n"), 0644))

		_, err := NewConfigFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}

func TestNewConfigFromDefaults(t *testing.T) {
	cfg, err := NewConfigFromDefaults(map[string]any{
		"level":         "warn",
		"console_level": LevelError,
		"file_level":    4,
		"enable_file":   true,
		"directory":     "/tmp/logs",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(LevelWarn), cfg.Level)
	assert.Equal(t, int64(LevelError), cfg.ConsoleLevel)
	assert.Equal(t, int64(LevelWarn), cfg.FileLevel)
	assert.True(t, cfg.EnableFile)

	_, err = NewConfigFromDefaults(map[string]any{"buffer_size": 10})
	assert.ErrorContains(t, err, "unknown config key")

	_, err = NewConfigFromDefaults(map[string]any{"enable_file": "yes"})
	assert.ErrorContains(t, err, "expected bool")

	_, err = NewConfigFromDefaults(map[string]any{"format": "csv"})
	assert.ErrorContains(t, err, "invalid format")
}
