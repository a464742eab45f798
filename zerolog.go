// FILE: lixenwraith/lazylog/zerolog.go
package lazylog

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// ZerologSink forwards rendered messages to a zerolog logger.
// The logger name is attached as the "logger" field.
type ZerologSink struct {
	logger zerolog.Logger
	level  atomic.Int64
}

// NewZerologSink wraps a zerolog logger as a sink
func NewZerologSink(logger zerolog.Logger, level Level) *ZerologSink {
	s := &ZerologSink{logger: logger}
	s.level.Store(int64(level))
	return s
}

func (s *ZerologSink) Level() Level {
	return Level(s.level.Load())
}

func (s *ZerologSink) SetLevel(level Level) {
	s.level.Store(int64(level))
}

// Emit writes the message through zerolog. WithLevel never exits or panics,
// even for CRITICAL which maps to zerolog's fatal level.
func (s *ZerologSink) Emit(level Level, logger string, text string) error {
	if level < s.Level() {
		return nil
	}
	event := s.logger.WithLevel(zerologLevel(level))
	if logger != "" {
		event = event.Str("logger", logger)
	}
	event.Msg(text)
	return nil
}

func zerologLevel(level Level) zerolog.Level {
	switch {
	case level >= LevelCritical:
		return zerolog.FatalLevel
	case level >= LevelError:
		return zerolog.ErrorLevel
	case level >= LevelWarn:
		return zerolog.WarnLevel
	case level >= LevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
