// FILE: lixenwraith/lazylog/logger_test.go
package lazylog

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	level  Level
	logger string
	text   string
}

// recordingSink keeps every emitted record in memory
type recordingSink struct {
	mu      sync.Mutex
	level   Level
	records []record
	err     error
}

func newRecordingSink(level Level) *recordingSink {
	return &recordingSink{level: level}
}

func (s *recordingSink) Level() Level {
	return s.level
}

func (s *recordingSink) Emit(level Level, logger string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record{level: level, logger: logger, text: text})
	return s.err
}

func (s *recordingSink) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r.text
	}
	return out
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// createTestLogger returns a registry whose default logger writes to one recording sink
func createTestLogger(t *testing.T, level Level) (*Logger, *recordingSink) {
	t.Helper()
	sink := newRecordingSink(level)
	r := NewRegistry(WithDefaultSinks(sink))
	return r.Default(), sink
}

func TestLoggerLoggingLevels(t *testing.T) {
	logger, sink := createTestLogger(t, LevelInfo)

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Warning("warning %d", 4)
	logger.Error("error %d", 5)
	logger.Critical("critical %d", 6)
	logger.Log(Level(20), "custom %d", 7)

	assert.Equal(t, []string{"info 2", "warn 3", "warning 4", "error 5", "critical 6", "custom 7"}, sink.texts())
	require.Len(t, sink.records, 6)
	assert.Equal(t, LevelWarn, sink.records[2].level)
	assert.Equal(t, LevelCritical, sink.records[4].level)
}

func TestLoggerGateSkipsLazyEvaluation(t *testing.T) {
	logger, sink := createTestLogger(t, LevelInfo)

	calls := 0
	logger.Debug("state %s", Lazy(func() any {
		calls++
		return "expensive"
	}))

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, sink.count())
}

func TestLoggerLevelGate(t *testing.T) {
	logger, sink := createTestLogger(t, LevelDebug)
	logger.SetLevel(LevelError)

	calls := 0
	logger.Warn("%s", Lazy(func() any {
		calls++
		return "x"
	}))
	assert.Equal(t, 0, calls)
	assert.False(t, logger.Enabled(LevelWarn))
	assert.True(t, logger.Enabled(LevelError))

	logger.Error("kept")
	assert.Equal(t, []string{"kept"}, sink.texts())
}

func TestLoggerLazyOrder(t *testing.T) {
	logger, sink := createTestLogger(t, LevelDebug)

	var order []int
	step := func(n int) func() any {
		return func() any {
			order = append(order, n)
			return n
		}
	}
	logger.Info("%d-%d-%d", Lazy(step(1)), Lazy(step(2)), Lazy(step(3)))

	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, []string{"1-2-3"}, sink.texts())
}

func TestLoggerLazyEvaluatedOncePerCall(t *testing.T) {
	logger, _ := createTestLogger(t, LevelDebug)
	second := newRecordingSink(LevelDebug)
	logger.AttachSink(second)

	calls := 0
	logger.Info("%s", Lazy(func() any {
		calls++
		return "v"
	}))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"v"}, second.texts())
}

func TestLoggerLazyFailure(t *testing.T) {
	t.Run("error result", func(t *testing.T) {
		logger, sink := createTestLogger(t, LevelDebug)
		logger.Info("value=%s", LazyErr(func() (any, error) {
			return nil, errors.New("boom")
		}))

		require.Len(t, sink.records, 2)
		assert.Equal(t, LevelError, sink.records[0].level)
		assert.Equal(t, "error evaluating lazy argument 0: boom", sink.records[0].text)
		assert.Equal(t, LevelInfo, sink.records[1].level)
		assert.Equal(t, "value=[error evaluating lazy argument]", sink.records[1].text)
	})

	t.Run("panic", func(t *testing.T) {
		logger, sink := createTestLogger(t, LevelDebug)
		logger.Info("%d %s", 7, Lazy(func() any {
			panic("bad state")
		}))

		require.Len(t, sink.records, 2)
		assert.Contains(t, sink.records[0].text, "error evaluating lazy argument 1:")
		assert.Contains(t, sink.records[0].text, "bad state")
		assert.Equal(t, "7 [error evaluating lazy argument]", sink.records[1].text)
	})

	t.Run("error diagnostic suppressed below logger level", func(t *testing.T) {
		logger, sink := createTestLogger(t, LevelDebug)
		logger.SetLevel(LevelCritical)
		logger.Critical("%s", LazyErr(func() (any, error) {
			return nil, errors.New("hidden")
		}))
		assert.Equal(t, []string{"[error evaluating lazy argument]"}, sink.texts())
	})
}

func TestLoggerPlainMessage(t *testing.T) {
	logger, sink := createTestLogger(t, LevelDebug)

	logger.Info("100%")
	logger.Info("%d%%", 100)

	assert.Equal(t, []string{"100%", "100%"}, sink.texts())
}

func TestLoggerAttachDetach(t *testing.T) {
	logger, first := createTestLogger(t, LevelDebug)
	second := newRecordingSink(LevelDebug)

	logger.AttachSink(second)
	logger.AttachSink(nil)
	assert.Len(t, logger.Sinks(), 2)

	logger.Debug("both")
	logger.DetachSink(second)
	logger.Debug("first only")
	logger.DetachSink(second)

	assert.Equal(t, 2, first.count())
	assert.Equal(t, 1, second.count())
	assert.Len(t, logger.Sinks(), 1)
}

func TestLoggerDetachFirstReference(t *testing.T) {
	logger, sink := createTestLogger(t, LevelDebug)
	logger.AttachSink(sink)

	logger.Info("twice")
	logger.DetachSink(sink)
	logger.Info("once")

	assert.Equal(t, []string{"twice", "twice", "once"}, sink.texts())
}

// sliceSink is an uncomparable value sink
type sliceSink struct {
	lines []string
}

func (s sliceSink) Level() Level { return LevelDebug }

func (s sliceSink) Emit(Level, string, string) error { return nil }

func TestLoggerDetachUncomparableSink(t *testing.T) {
	r := NewRegistry()
	value := sliceSink{lines: []string{"x"}}
	pointer := newRecordingSink(LevelDebug)

	r.AttachSink("", value)
	r.AttachSink("", pointer)

	assert.NotPanics(t, func() {
		r.DetachSink("", sliceSink{})
		r.DetachSink("", value)
		r.DetachSink("", pointer)
	})
	// Only the comparable pointer sink could be identified
	assert.Len(t, r.Default().Sinks(), 1)
	r.Default().Info("still delivered")
	assert.Equal(t, 0, pointer.count())
}

func TestSameSink(t *testing.T) {
	a := newRecordingSink(LevelDebug)
	b := newRecordingSink(LevelDebug)

	assert.True(t, sameSink(a, a))
	assert.False(t, sameSink(a, b))
	assert.False(t, sameSink(a, nil))
	assert.False(t, sameSink(nil, nil))
	assert.False(t, sameSink(sliceSink{}, sliceSink{}))
}

func TestLoggerPerSinkFilter(t *testing.T) {
	logger, debugSink := createTestLogger(t, LevelDebug)
	errorSink := newRecordingSink(LevelError)
	logger.AttachSink(errorSink)

	logger.Info("info")
	logger.Error("error")

	assert.Equal(t, []string{"info", "error"}, debugSink.texts())
	assert.Equal(t, []string{"error"}, errorSink.texts())
}

func TestLoggerException(t *testing.T) {
	logger, sink := createTestLogger(t, LevelDebug)

	logger.Exception(errors.New("disk full"))
	logger.Exception(WithStack(fmt.Errorf("wrapped: %w", errors.New("root"))))

	require.Len(t, sink.records, 2)
	assert.Equal(t, LevelError, sink.records[0].level)
	assert.Equal(t, "errorString: disk full", sink.records[0].text)
	assert.Contains(t, sink.records[1].text, "wrapped: root\n")
	assert.Contains(t, sink.records[1].text, "TestLoggerException")
}

func TestLoggerSinkErrorDiagnostics(t *testing.T) {
	var diags []string
	sink := newRecordingSink(LevelDebug)
	sink.err = errors.New("write failed")
	r := NewRegistry(WithDefaultSinks(sink), WithDiagnostics(func(msg string) {
		diags = append(diags, msg)
	}))

	r.Default().Info("hello")

	assert.Equal(t, []string{"write failed"}, diags)
}

func TestLoggerConcurrency(t *testing.T) {
	logger, sink := createTestLogger(t, LevelDebug)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.Info("worker %d message %d", id, j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 500, sink.count())
}
