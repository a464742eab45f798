// FILE: lixenwraith/lazylog/default.go
package lazylog

import (
	"sync/atomic"
)

// defaultRegistry backs the package-level functions
var defaultRegistry atomic.Pointer[Registry]

func init() {
	defaultRegistry.Store(newStandardRegistry())
}

// newStandardRegistry writes INFO and above to stderr
func newStandardRegistry() *Registry {
	console, _ := NewConsoleSink("stderr", LevelInfo)
	return NewRegistry(WithDefaultSinks(console))
}

// DefaultRegistry returns the registry behind the package-level functions
func DefaultRegistry() *Registry {
	return defaultRegistry.Load()
}

// SetDefaultRegistry replaces the registry behind the package-level functions.
// Loggers obtained earlier keep working against the previous registry.
func SetDefaultRegistry(r *Registry) {
	if r != nil {
		defaultRegistry.Store(r)
	}
}

// Init builds a registry from cfg and installs it as the default.
// Sinks created by the previous default registry are closed.
func Init(cfg *Config) error {
	r, err := NewRegistryFromConfig(cfg)
	if err != nil {
		return err
	}
	old := defaultRegistry.Swap(r)
	if old != nil {
		return old.Close()
	}
	return nil
}

// GetLogger returns the named logger of the default registry; "" is the default logger
func GetLogger(name string) *Logger {
	return defaultRegistry.Load().Get(name)
}

// Default returns the default logger of the default registry
func Default() *Logger {
	return defaultRegistry.Load().Default()
}

// AttachSink appends s to the named logger of the default registry
func AttachSink(name string, s Sink) {
	defaultRegistry.Load().AttachSink(name, s)
}

// DetachSink removes s from the named logger of the default registry
func DetachSink(name string, s Sink) {
	defaultRegistry.Load().DetachSink(name, s)
}

// Debug logs a message at debug level on the default logger
func Debug(format string, args ...any) {
	Default().log(LevelDebug, format, args)
}

// Info logs a message at info level on the default logger
func Info(format string, args ...any) {
	Default().log(LevelInfo, format, args)
}

// Warn logs a message at warning level on the default logger
func Warn(format string, args ...any) {
	Default().log(LevelWarn, format, args)
}

// Warning is an alias of Warn
func Warning(format string, args ...any) {
	Default().log(LevelWarn, format, args)
}

// Error logs a message at error level on the default logger
func Error(format string, args ...any) {
	Default().log(LevelError, format, args)
}

// Critical logs a message at critical level on the default logger
func Critical(format string, args ...any) {
	Default().log(LevelCritical, format, args)
}

// Exception logs an error value on the default logger
func Exception(err error) {
	Default().Exception(err)
}
