// FILE: lixenwraith/lazylog/config.go
package lazylog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
	"github.com/lixenwraith/lazylog/formatter"
	"github.com/lixenwraith/lazylog/sanitizer"
)

// configPrefix is the TOML table holding logger settings
const configPrefix = "lazylog."

// Config holds all logger configuration values
type Config struct {
	// Dispatch
	Level          int64 `toml:"level"`            // Minimum severity of every logger
	ParseCacheSize int64 `toml:"parse_cache_size"` // Parsed format strings kept, 0 disables

	// Line layout
	Format          string `toml:"format"` // "txt", "raw", or "json"
	ShowTimestamp   bool   `toml:"show_timestamp"`
	ShowLevel       bool   `toml:"show_level"`
	ShowName        bool   `toml:"show_name"`
	TimestampFormat string `toml:"timestamp_format"` // Time format for log timestamps
	Sanitization    string `toml:"sanitization"`     // Sanitizer policy applied to messages

	// Console sink
	EnableConsole bool   `toml:"enable_console"`
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"
	ConsoleLevel  int64  `toml:"console_level"`

	// File sink
	EnableFile bool   `toml:"enable_file"`
	Directory  string `toml:"directory"`
	Name       string `toml:"name"` // Base name for the log file
	Extension  string `toml:"extension"`
	FileLevel  int64  `toml:"file_level"`

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Level:          int64(LevelDebug),
	ParseCacheSize: 512,

	Format:          formatter.TypeTxt,
	ShowTimestamp:   true,
	ShowLevel:       true,
	ShowName:        true,
	TimestampFormat: time.RFC3339Nano,
	Sanitization:    string(sanitizer.PolicyLine),

	EnableConsole: true,
	ConsoleTarget: "stderr",
	ConsoleLevel:  int64(LevelInfo),

	EnableFile: false,
	Directory:  "./logs",
	Name:       "app",
	Extension:  "log",
	FileLevel:  int64(LevelDebug),

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [lazylog] table of a TOML file and
// returns a validated Config. A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct(configPrefix, *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, configPrefix, cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
// keyed by toml tag
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case Level:
			field.SetInt(int64(v))
		case string:
			// Level fields accept names in config files
			level, err := ParseLevel(v)
			if err != nil {
				return err
			}
			field.SetInt(int64(level))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate checks field values and cross-field constraints
func (c *Config) Validate() error {
	if c.Format != formatter.TypeTxt && c.Format != formatter.TypeJSON && c.Format != formatter.TypeRaw {
		return fmtErrorf("invalid format: '%s' (use txt, json, or raw)", c.Format)
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if !sanitizer.IsPolicy(c.Sanitization) {
		return fmtErrorf("invalid sanitization policy: '%s'", c.Sanitization)
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if c.ParseCacheSize < 0 {
		return fmtErrorf("parse_cache_size cannot be negative: %d", c.ParseCacheSize)
	}

	if c.EnableFile {
		if strings.TrimSpace(c.Name) == "" {
			return fmtErrorf("log name cannot be empty")
		}
		if strings.TrimSpace(c.Directory) == "" {
			return fmtErrorf("directory cannot be empty when file output is enabled")
		}
		if strings.HasPrefix(c.Extension, ".") {
			return fmtErrorf("extension should not start with dot: %s", c.Extension)
		}
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// layout applies the line layout settings to a sink formatter
func (c *Config) layout(f *formatter.Formatter) {
	f.Type(c.Format).
		TimestampFormat(c.TimestampFormat).
		ShowTimestamp(c.ShowTimestamp).
		ShowLevel(c.ShowLevel).
		ShowName(c.ShowName)
	f.Sanitizer(sanitizer.New().Policy(sanitizer.PolicyPreset(c.Sanitization)))
}
