// FILE: lixenwraith/lazylog/logger.go
package lazylog

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/lazylog/printf"
)

// base is the log substrate: a named logger with a minimum severity and an ordered
// list of sink references. It emits already rendered text.
type base struct {
	name  string
	level atomic.Int64
	mu    sync.RWMutex
	sinks []Sink
	diag  func(msg string)
}

func newBase(name string, level Level, sinks []Sink, diag func(string)) *base {
	b := &base{
		name:  name,
		sinks: append([]Sink(nil), sinks...),
		diag:  diag,
	}
	b.level.Store(int64(level))
	return b
}

// snapshot returns a copy of the sink list
func (b *base) snapshot() []Sink {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Sink(nil), b.sinks...)
}

func (b *base) attach(s Sink) {
	if s == nil {
		return
	}
	b.mu.Lock()
	b.sinks = append(b.sinks, s)
	b.mu.Unlock()
}

// detach removes the first reference to s; absent sinks are ignored
func (b *base) detach(s Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.sinks {
		if sameSink(existing, s) {
			b.sinks = append(b.sinks[:i:i], b.sinks[i+1:]...)
			return
		}
	}
}

// sameSink reports whether a and b are the same sink reference. Sinks of
// uncomparable types, such as structs holding slices, never match.
func sameSink(a, b Sink) (same bool) {
	// Comparable struct types may still hold uncomparable values in interface fields
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// accepts reports whether any sink would write a record at level
func (b *base) accepts(level Level) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.sinks {
		if s.Level() <= level {
			return true
		}
	}
	return false
}

// emit hands text to every sink in order; each sink filters by its own level
func (b *base) emit(level Level, text string) {
	if level < Level(b.level.Load()) {
		return
	}
	for _, s := range b.snapshot() {
		if s.Level() > level {
			continue
		}
		if err := s.Emit(level, b.name, text); err != nil && b.diag != nil {
			b.diag(err.Error())
		}
	}
}

// Logger is the level-aware dispatch front end. Every call runs Gate, Resolve,
// Render and Emit on the calling goroutine; nothing is formatted unless some sink
// would accept the record.
type Logger struct {
	base   *base
	engine *printf.Engine
}

func newLogger(b *base, engine *printf.Engine) *Logger {
	return &Logger{base: b, engine: engine}
}

// Name returns the registry name; the default logger has an empty name
func (l *Logger) Name() string {
	return l.base.name
}

// Level returns the logger's minimum severity
func (l *Logger) Level() Level {
	return Level(l.base.level.Load())
}

// SetLevel changes the logger's minimum severity
func (l *Logger) SetLevel(level Level) {
	l.base.level.Store(int64(level))
}

// Sinks returns a snapshot of the attached sinks
func (l *Logger) Sinks() []Sink {
	return l.base.snapshot()
}

// AttachSink appends a sink reference
func (l *Logger) AttachSink(s Sink) {
	l.base.attach(s)
}

// DetachSink removes the first reference to s, if present.
// Sinks are matched by identity, so value sinks of uncomparable types cannot be
// detached; attach such sinks by pointer.
func (l *Logger) DetachSink(s Sink) {
	l.base.detach(s)
}

// Enabled reports whether a record at level would reach at least one sink
func (l *Logger) Enabled(level Level) bool {
	if level < l.Level() {
		return false
	}
	return l.base.accepts(level)
}

// Log renders and emits a record at an arbitrary level
func (l *Logger) Log(level Level, format string, args ...any) {
	l.log(level, format, args)
}

// Debug logs a message at debug level
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args)
}

// Info logs a message at info level
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args)
}

// Warn logs a message at warning level
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args)
}

// Warning is an alias of Warn
func (l *Logger) Warning(format string, args ...any) {
	l.log(LevelWarn, format, args)
}

// Error logs a message at error level
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args)
}

// Critical logs a message at critical level
func (l *Logger) Critical(format string, args ...any) {
	l.log(LevelCritical, format, args)
}

// Exception logs err at error level using the error conversion, including its
// stack trace when it carries one
func (l *Logger) Exception(err error) {
	if !l.Enabled(LevelError) {
		return
	}
	l.base.emit(LevelError, printf.FormatError(err))
}

func (l *Logger) log(level Level, format string, args []any) {
	// Gate
	if !l.Enabled(level) {
		return
	}
	// Plain messages are emitted untouched
	if len(args) == 0 {
		l.base.emit(level, format)
		return
	}

	values, failures := printf.Resolve(args)
	for _, failure := range failures {
		l.lazyFailed(failure)
	}
	l.base.emit(level, l.engine.Render(format, values))
}

// lazyFailed reports a deferred argument failure on the error path.
// Only direct arguments are passed, so resolution is not re-entered.
func (l *Logger) lazyFailed(failure *printf.LazyError) {
	l.log(LevelError, "error evaluating lazy argument %d: %s", []any{failure.Index, failure.Err.Error()})
}
