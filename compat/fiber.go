// FILE: lixenwraith/lazylog/compat/fiber.go
package compat

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/lazylog"
)

// FiberAdapter wraps a lazylog.Logger to implement Fiber's CommonLogger method set
// (Logger, FormatLogger and WithLogger) plus io.Writer. Fiber has no trace level
// here, so Trace calls log at debug; Fatal and Panic log at critical.
type FiberAdapter struct {
	logger       *lazylog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
	panicHandler func(msg string) // Customizable panic behavior
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter
func NewFiberAdapter(logger *lazylog.Logger, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior
		},
		panicHandler: func(msg string) {
			panic(msg) // Default behavior
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FiberOption allows customizing adapter behavior
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.fatalHandler = handler
	}
}

// WithFiberPanicHandler sets a custom panic handler
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.panicHandler = handler
	}
}

// fiberFields pairs keys with values; a trailing key without a value gets "!BADKEY"
func fiberFields(keysAndValues []any) map[string]any {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(map[string]any, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 == len(keysAndValues) {
			fields["!BADKEY"] = keysAndValues[i]
			break
		}
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func (a *FiberAdapter) print(level lazylog.Level, v []any) {
	if a.logger.Enabled(level) {
		a.logger.Log(level, fmt.Sprint(v...))
	}
}

func (a *FiberAdapter) printf(level lazylog.Level, format string, v []any) {
	if a.logger.Enabled(level) {
		a.logger.Log(level, fmt.Sprintf(format, v...))
	}
}

// printw logs msg followed by the key/value pairs as one JSON object
func (a *FiberAdapter) printw(level lazylog.Level, msg string, keysAndValues []any) {
	if !a.logger.Enabled(level) {
		return
	}
	fields := fiberFields(keysAndValues)
	if len(fields) == 0 {
		a.logger.Log(level, msg)
		return
	}
	a.logger.Log(level, "%s %j", msg, fields)
}

// --- Logger ---

// Trace logs at debug level
func (a *FiberAdapter) Trace(v ...any) { a.print(lazylog.LevelDebug, v) }

// Debug logs at debug level
func (a *FiberAdapter) Debug(v ...any) { a.print(lazylog.LevelDebug, v) }

// Info logs at info level
func (a *FiberAdapter) Info(v ...any) { a.print(lazylog.LevelInfo, v) }

// Warn logs at warn level
func (a *FiberAdapter) Warn(v ...any) { a.print(lazylog.LevelWarn, v) }

// Error logs at error level
func (a *FiberAdapter) Error(v ...any) { a.print(lazylog.LevelError, v) }

// Fatal logs at critical level and triggers the fatal handler
func (a *FiberAdapter) Fatal(v ...any) {
	msg := fmt.Sprint(v...)
	a.logger.Log(lazylog.LevelCritical, msg)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// Panic logs at critical level and triggers the panic handler
func (a *FiberAdapter) Panic(v ...any) {
	msg := fmt.Sprint(v...)
	a.logger.Log(lazylog.LevelCritical, msg)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// Write makes FiberAdapter an io.Writer logging each write at info level
func (a *FiberAdapter) Write(p []byte) (n int, err error) {
	a.logger.Log(lazylog.LevelInfo, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// --- FormatLogger ---

// Tracef logs at debug level with Go fmt formatting
func (a *FiberAdapter) Tracef(format string, v ...any) { a.printf(lazylog.LevelDebug, format, v) }

// Debugf logs at debug level with Go fmt formatting
func (a *FiberAdapter) Debugf(format string, v ...any) { a.printf(lazylog.LevelDebug, format, v) }

// Infof logs at info level with Go fmt formatting
func (a *FiberAdapter) Infof(format string, v ...any) { a.printf(lazylog.LevelInfo, format, v) }

// Warnf logs at warn level with Go fmt formatting
func (a *FiberAdapter) Warnf(format string, v ...any) { a.printf(lazylog.LevelWarn, format, v) }

// Errorf logs at error level with Go fmt formatting
func (a *FiberAdapter) Errorf(format string, v ...any) { a.printf(lazylog.LevelError, format, v) }

// Fatalf logs at critical level and triggers the fatal handler
func (a *FiberAdapter) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.logger.Log(lazylog.LevelCritical, msg)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// Panicf logs at critical level and triggers the panic handler
func (a *FiberAdapter) Panicf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.logger.Log(lazylog.LevelCritical, msg)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// --- WithLogger ---

// Tracew logs at debug level with key/value pairs
func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	a.printw(lazylog.LevelDebug, msg, keysAndValues)
}

// Debugw logs at debug level with key/value pairs
func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	a.printw(lazylog.LevelDebug, msg, keysAndValues)
}

// Infow logs at info level with key/value pairs
func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	a.printw(lazylog.LevelInfo, msg, keysAndValues)
}

// Warnw logs at warn level with key/value pairs
func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	a.printw(lazylog.LevelWarn, msg, keysAndValues)
}

// Errorw logs at error level with key/value pairs
func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	a.printw(lazylog.LevelError, msg, keysAndValues)
}

// Fatalw logs at critical level with key/value pairs and triggers the fatal handler
func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	a.printw(lazylog.LevelCritical, msg, keysAndValues)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// Panicw logs at critical level with key/value pairs and triggers the panic handler
func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	a.printw(lazylog.LevelCritical, msg, keysAndValues)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}
