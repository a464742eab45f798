// FILE: lixenwraith/lazylog/builder.go
package lazylog

// Builder provides a fluent API for building a configured Registry.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg   *Config
	sinks []Sink
	err   error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a Registry from the accumulated configuration.
func (b *Builder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	r, err := NewRegistryFromConfig(b.cfg)
	if err != nil {
		return nil, err
	}
	for _, s := range b.sinks {
		r.AttachSink("", s)
	}
	return r, nil
}

// Config returns a copy of the configuration built so far
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Level sets the minimum severity of every logger.
func (b *Builder) Level(level Level) *Builder {
	b.cfg.Level = int64(level)
	return b
}

// LevelString sets the logger level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = int64(levelVal)
	return b
}

// Format sets the line layout.
func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

// TimestampFormat sets the timestamp layout.
func (b *Builder) TimestampFormat(format string) *Builder {
	b.cfg.TimestampFormat = format
	return b
}

// ShowTimestamp toggles timestamps in sink lines.
func (b *Builder) ShowTimestamp(show bool) *Builder {
	b.cfg.ShowTimestamp = show
	return b
}

// ShowLevel toggles level names in sink lines.
func (b *Builder) ShowLevel(show bool) *Builder {
	b.cfg.ShowLevel = show
	return b
}

// Sanitization sets the sanitizer policy for messages.
func (b *Builder) Sanitization(policy string) *Builder {
	b.cfg.Sanitization = policy
	return b
}

// EnableConsole enables the console sink at the given level.
func (b *Builder) EnableConsole(enable bool, level Level) *Builder {
	b.cfg.EnableConsole = enable
	b.cfg.ConsoleLevel = int64(level)
	return b
}

// ConsoleTarget selects "stdout" or "stderr".
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// EnableFile enables the file sink at the given level.
func (b *Builder) EnableFile(enable bool, level Level) *Builder {
	b.cfg.EnableFile = enable
	b.cfg.FileLevel = int64(level)
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// Name sets the log file base name.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Extension sets the log file extension.
func (b *Builder) Extension(ext string) *Builder {
	b.cfg.Extension = ext
	return b
}

// ParseCacheSize sets the parse cache capacity.
func (b *Builder) ParseCacheSize(size int64) *Builder {
	b.cfg.ParseCacheSize = size
	return b
}

// InternalErrorsToStderr routes internal diagnostics to stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Override applies "key=value" strings, recording the first failure.
func (b *Builder) Override(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.cfg.ApplyOverride(overrides...); err != nil {
		b.err = err
	}
	return b
}

// Sink adds a caller-owned sink to the default logger.
func (b *Builder) Sink(s Sink) *Builder {
	if s != nil {
		b.sinks = append(b.sinks, s)
	}
	return b
}

// Example usage:
// registry, err := lazylog.NewBuilder().
//
//	LevelString("debug").
//	EnableConsole(true, lazylog.LevelInfo).
//	EnableFile(true, lazylog.LevelDebug).
//	Directory("/var/log/app").
//	Build()
//
// if err == nil {
//
//	 defer registry.Close()
//	 registry.Get("db").Info("connected to %s", dsn)
//
// }
