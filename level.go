// FILE: lixenwraith/lazylog/level.go
package lazylog

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/lazylog/formatter"
)

// Level is an ordered log severity
type Level int64

// Log level constants
const (
	LevelDebug    Level = -4
	LevelInfo     Level = 0
	LevelWarn     Level = 4
	LevelError    Level = 8
	LevelCritical Level = 12
)

// String returns the upper case level name
func (l Level) String() string {
	return formatter.LevelToString(int64(l))
}

// ParseLevel converts a level name or integer string to a Level.
// Names are case-insensitive; "warning" is an alias of "warn".
func ParseLevel(levelStr string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	switch s {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Level(n), nil
	}
	return 0, fmtErrorf("invalid level string: '%s' (use debug, info, warn, error, critical)", levelStr)
}
