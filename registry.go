// FILE: lixenwraith/lazylog/registry.go
package lazylog

import (
	"io"
	"sort"
	"sync"

	"github.com/lixenwraith/lazylog/printf"
)

// Registry caches loggers by name. Loggers are created on first request and kept for
// the registry's lifetime. A logger created by Get starts with a snapshot of the
// default logger's sinks taken at creation time; later changes to either list are
// independent.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
	root    *Logger
	engine  *printf.Engine
	diag    func(msg string)
	level   Level
	owned   []io.Closer // sinks created by the registry itself
}

type registryOptions struct {
	sinks     []Sink
	diag      func(msg string)
	level     Level
	cacheSize int
}

// RegistryOption configures a Registry
type RegistryOption func(*registryOptions)

// WithDefaultSinks sets the sinks of the default logger
func WithDefaultSinks(sinks ...Sink) RegistryOption {
	return func(o *registryOptions) {
		o.sinks = append(o.sinks, sinks...)
	}
}

// WithDiagnostics sets the internal error channel receiving conversion misuse
// and sink failures
func WithDiagnostics(fn func(msg string)) RegistryOption {
	return func(o *registryOptions) {
		o.diag = fn
	}
}

// WithLevel sets the minimum severity of loggers created by the registry
func WithLevel(level Level) RegistryOption {
	return func(o *registryOptions) {
		o.level = level
	}
}

// WithParseCache sets the number of parsed format strings kept; zero disables caching
func WithParseCache(size int) RegistryOption {
	return func(o *registryOptions) {
		o.cacheSize = size
	}
}

// NewRegistry creates an empty registry with a default logger
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{
		diag:      discardDiagnostics,
		level:     LevelDebug,
		cacheSize: printf.DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.diag == nil {
		o.diag = discardDiagnostics
	}

	r := &Registry{
		loggers: make(map[string]*Logger),
		diag:    o.diag,
		level:   o.level,
	}
	r.engine = printf.New(
		printf.WithReporter(o.diag),
		printf.WithCacheSize(o.cacheSize),
	)
	r.root = newLogger(newBase("", o.level, o.sinks, o.diag), r.engine)
	return r
}

// Default returns the default logger
func (r *Registry) Default() *Logger {
	return r.root
}

// Get returns the logger registered under name, creating it on first request.
// An empty name returns the default logger.
func (r *Registry) Get(name string) *Logger {
	if name == "" {
		return r.root
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l
	}
	l := newLogger(newBase(name, r.level, r.root.Sinks(), r.diag), r.engine)
	r.loggers[name] = l
	return l
}

// AttachSink appends s to the named logger; an empty name targets the default logger
func (r *Registry) AttachSink(name string, s Sink) {
	r.Get(name).AttachSink(s)
}

// DetachSink removes the first reference to s from the named logger
func (r *Registry) DetachSink(name string, s Sink) {
	r.Get(name).DetachSink(s)
}

// Names lists the registered logger names in sorted order, excluding the default logger
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// own records a sink the registry created and must close
func (r *Registry) own(c io.Closer) {
	r.mu.Lock()
	r.owned = append(r.owned, c)
	r.mu.Unlock()
}

// Close closes the sinks the registry created from configuration.
// Sinks supplied by callers are left open.
func (r *Registry) Close() error {
	r.mu.Lock()
	owned := r.owned
	r.owned = nil
	r.mu.Unlock()

	var err error
	for _, c := range owned {
		err = combineErrors(err, c.Close())
	}
	return err
}

// NewRegistryFromConfig builds a registry whose default logger carries the console
// and file sinks enabled in cfg
func NewRegistryFromConfig(cfg *Config) (*Registry, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	diag := discardDiagnostics
	if cfg.InternalErrorsToStderr {
		diag = stderrDiagnostics()
	}

	var sinks []Sink
	var owned []io.Closer

	if cfg.EnableConsole {
		console, err := NewConsoleSink(cfg.ConsoleTarget, Level(cfg.ConsoleLevel))
		if err != nil {
			return nil, err
		}
		console.Configure(cfg.layout)
		sinks = append(sinks, console)
	}

	if cfg.EnableFile {
		file, err := NewFileSink(cfg.Directory, cfg.Name, cfg.Extension, Level(cfg.FileLevel))
		if err != nil {
			return nil, err
		}
		file.Configure(cfg.layout)
		sinks = append(sinks, file)
		owned = append(owned, file)
	}

	r := NewRegistry(
		WithDefaultSinks(sinks...),
		WithDiagnostics(diag),
		WithLevel(Level(cfg.Level)),
		WithParseCache(int(cfg.ParseCacheSize)),
	)
	for _, c := range owned {
		r.own(c)
	}
	return r, nil
}
