// FILE: lixenwraith/lazylog/compat/gnet.go
package compat

import (
	"fmt"
	"os"

	"github.com/lixenwraith/lazylog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps a lazylog.Logger to implement gnet logging.Logger interface.
// gnet format strings use Go fmt verbs, so they are rendered with fmt and the
// result is emitted as a plain message.
type GnetAdapter struct {
	logger       *lazylog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *lazylog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

func (a *GnetAdapter) logf(level lazylog.Level, format string, args []any) {
	if !a.logger.Enabled(level) {
		return
	}
	a.logger.Log(level, fmt.Sprintf(format, args...))
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logf(lazylog.LevelDebug, format, args)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logf(lazylog.LevelInfo, format, args)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logf(lazylog.LevelWarn, format, args)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logf(lazylog.LevelError, format, args)
}

// Fatalf logs at critical level and triggers fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Log(lazylog.LevelCritical, msg)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
