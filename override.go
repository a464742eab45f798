// FILE: lixenwraith/lazylog/override.go
package lazylog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ApplyOverride applies "key=value" overrides to the configuration, keyed by toml tag.
// The configuration is left unchanged if any override is invalid or the result
// fails validation.
//
// Example:
//
//	cfg := lazylog.DefaultConfig()
//	err := cfg.ApplyOverride(
//	    "level=debug",
//	    "console_level=warn",
//	    "format=json",
//	)
func (c *Config) ApplyOverride(overrides ...string) error {
	cfg := c.Clone()

	var errs []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	*c = *cfg
	return nil
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var sb strings.Builder
	sb.WriteString("lazylog: multiple configuration errors:")
	for i, err := range errs {
		errMsg := strings.TrimPrefix(err.Error(), "lazylog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField parses a string value into the field tagged with key
func applyConfigField(cfg *Config, key, value string) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") != key {
			continue
		}
		field := v.Field(i)

		switch field.Kind() {
		case reflect.String:
			field.SetString(value)

		case reflect.Bool:
			boolVal, err := strconv.ParseBool(value)
			if err != nil {
				return fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
			}
			field.SetBool(boolVal)

		case reflect.Int64:
			// Level fields accept both numeric and named values
			if key == "level" || strings.HasSuffix(key, "_level") {
				level, err := ParseLevel(value)
				if err != nil {
					return fmtErrorf("invalid level value for %s '%s': %w", key, value, err)
				}
				field.SetInt(int64(level))
				return nil
			}
			intVal, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
			}
			field.SetInt(intVal)
		}
		return nil
	}

	return fmtErrorf("unknown configuration key '%s'", key)
}
