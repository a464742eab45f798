// FILE: lixenwraith/lazylog/sink.go
package lazylog

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lazylog/formatter"
)

// Sink is an output destination with its own minimum severity.
// Emit is called with records that already passed the logger gate; a sink still
// applies its own level as the authoritative filter.
type Sink interface {
	Level() Level
	Emit(level Level, logger string, text string) error
}

// WriterSink lays out records with a formatter and writes them to an io.Writer.
// Writes are serialized, so one WriterSink may be shared by many loggers.
type WriterSink struct {
	mu        sync.Mutex
	w         io.Writer
	closer    io.Closer // nil when the writer is not owned
	formatter *formatter.Formatter
	level     atomic.Int64
	now       func() time.Time
}

// NewWriterSink creates a sink writing to w. A nil formatter selects the default txt layout.
func NewWriterSink(w io.Writer, level Level, f *formatter.Formatter) *WriterSink {
	if f == nil {
		f = formatter.New()
	}
	s := &WriterSink{
		w:         w,
		formatter: f,
		now:       time.Now,
	}
	s.level.Store(int64(level))
	return s
}

// NewConsoleSink creates a sink on "stdout" or "stderr"
func NewConsoleSink(target string, level Level) (*WriterSink, error) {
	switch target {
	case "stdout":
		return NewWriterSink(os.Stdout, level, nil), nil
	case "stderr", "":
		return NewWriterSink(os.Stderr, level, nil), nil
	default:
		return nil, fmtErrorf("invalid console target: '%s' (use stdout or stderr)", target)
	}
}

// NewFileSink opens <dir>/<name>.<ext> in append mode, creating the directory if needed
func NewFileSink(dir, name, ext string, level Level) (*WriterSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", dir, err)
	}
	fileName := name
	if ext != "" {
		fileName = name + "." + ext
	}
	path := filepath.Join(dir, fileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmtErrorf("failed to open log file '%s': %w", path, err)
	}
	s := NewWriterSink(file, level, nil)
	s.closer = file
	return s, nil
}

// Level returns the sink's minimum severity
func (s *WriterSink) Level() Level {
	return Level(s.level.Load())
}

// SetLevel changes the sink's minimum severity
func (s *WriterSink) SetLevel(level Level) {
	s.level.Store(int64(level))
}

// Configure adjusts the line layout under the sink's lock
func (s *WriterSink) Configure(fn func(f *formatter.Formatter)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.formatter)
}

// Emit writes one formatted line if level passes the sink's filter
func (s *WriterSink) Emit(level Level, logger string, text string) error {
	if level < s.Level() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.formatter.Format(s.now(), int64(level), logger, text)
	if _, err := s.w.Write(line); err != nil {
		return fmtErrorf("sink write failed: %w", err)
	}
	return nil
}

// Close closes the underlying writer when the sink owns it
func (s *WriterSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	s.w = io.Discard
	return err
}
