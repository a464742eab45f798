// FILE: lixenwraith/lazylog/compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/lazylog"
	"github.com/valyala/fasthttp"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter wraps a lazylog.Logger to implement fasthttp Logger interface
type FastHTTPAdapter struct {
	logger        *lazylog.Logger
	defaultLevel  lazylog.Level
	levelDetector func(string) lazylog.Level // Function to detect log level from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *lazylog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  lazylog.LevelInfo,
		levelDetector: DetectLogLevel,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when detection finds nothing
func WithDefaultLevel(level lazylog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content.
// A nil detector logs everything at the default level.
func WithLevelDetector(detector func(string) lazylog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	// Nothing fasthttp logs is above ERROR
	if !a.logger.Enabled(lazylog.LevelError) && !a.logger.Enabled(a.defaultLevel) {
		return
	}

	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected, ok := detect(a.levelDetector, msg); ok {
			level = detected
		}
	}

	a.logger.Log(level, msg)
}

// detect treats INFO as "no signal" so the configured default applies
func detect(detector func(string) lazylog.Level, msg string) (lazylog.Level, bool) {
	level := detector(msg)
	return level, level != lazylog.LevelInfo
}

// DetectLogLevel attempts to detect log level from message content
func DetectLogLevel(msg string) lazylog.Level {
	msgLower := strings.ToLower(msg)

	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return lazylog.LevelError
	}

	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return lazylog.LevelWarn
	}

	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return lazylog.LevelDebug
	}

	return lazylog.LevelInfo
}
