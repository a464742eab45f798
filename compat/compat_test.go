// FILE: lixenwraith/lazylog/compat/compat_test.go
package compat

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/lazylog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestCompatBuilder creates a registry writing JSON lines to a temp file
func createTestCompatBuilder(t *testing.T) (*Builder, *lazylog.Registry, string) {
	t.Helper()
	tmpDir := t.TempDir()
	registry, err := lazylog.NewBuilder().
		Directory(tmpDir).
		Format("json").
		LevelString("debug").
		EnableConsole(false, lazylog.LevelInfo).
		EnableFile(true, lazylog.LevelDebug).
		Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = registry.Close() })

	builder := NewBuilder().WithRegistry(registry)
	return builder, registry, filepath.Join(tmpDir, "app.log")
}

// readLogFile decodes every JSON line of the log file
func readLogFile(t *testing.T, path string) []map[string]any {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), scanner.Text())
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestGnetAdapter(t *testing.T) {
	builder, _, logFile := createTestCompatBuilder(t)

	var fatalMsg string
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info %s", "started")
	adapter.Warnf("load at 100%%")
	adapter.Errorf("gnet error: %v", "boom")
	adapter.Fatalf("gnet fatal: %s", "stopping")

	assert.Equal(t, "gnet fatal: stopping", fatalMsg)

	entries := readLogFile(t, logFile)
	require.Len(t, entries, 5)

	expected := []struct{ level, msg string }{
		{"DEBUG", "gnet debug id=1"},
		{"INFO", "gnet info started"},
		{"WARN", "load at 100%"},
		{"ERROR", "gnet error: boom"},
		{"CRITICAL", "gnet fatal: stopping"},
	}
	for i, exp := range expected {
		assert.Equal(t, exp.level, entries[i]["level"])
		assert.Equal(t, exp.msg, entries[i]["message"])
		assert.Equal(t, GnetLoggerName, entries[i]["logger"])
	}
}

func TestStructuredGnetAdapter(t *testing.T) {
	builder, _, logFile := createTestCompatBuilder(t)
	adapter, err := builder.BuildStructuredGnet()
	require.NoError(t, err)

	adapter.Infof("client connected addr=%s fd=%d", "1.2.3.4", 7)
	adapter.Warnf("plain %s message", "text")

	entries := readLogFile(t, logFile)
	require.Len(t, entries, 2)
	assert.Equal(t, `client connected {"addr":"1.2.3.4","fd":7}`, entries[0]["message"])
	assert.Equal(t, "plain text message", entries[1]["message"])
}

func TestParseFormat(t *testing.T) {
	msg, fields := parseFormat("conn addr=%s, fd: %d", []any{"x", 3})
	assert.Equal(t, "conn", msg)
	assert.Equal(t, map[string]any{"addr": "x", "fd": 3}, fields)

	msg, fields = parseFormat("mixed %s addr=%s", []any{"a", "b"})
	assert.Equal(t, "mixed a addr=b", msg)
	assert.Nil(t, fields)
}

func TestFastHTTPAdapter(t *testing.T) {
	builder, _, logFile := createTestCompatBuilder(t)
	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	entries := readLogFile(t, logFile)
	require.Len(t, entries, 4)

	expectedLevels := []string{"INFO", "DEBUG", "WARN", "ERROR"}
	for i, entry := range entries {
		assert.Equal(t, expectedLevels[i], entry["level"])
		assert.Equal(t, testMessages[i], entry["message"])
		assert.Equal(t, FastHTTPLoggerName, entry["logger"])
	}
}

func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, _, logFile := createTestCompatBuilder(t)
	adapter, err := builder.BuildFastHTTP(
		WithDefaultLevel(lazylog.LevelWarn),
		WithLevelDetector(nil),
	)
	require.NoError(t, err)

	adapter.Printf("an error that is not detected")

	entries := readLogFile(t, logFile)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
}

func TestDetectLogLevel(t *testing.T) {
	testCases := []struct {
		msg      string
		expected lazylog.Level
	}{
		{"request failed", lazylog.LevelError},
		{"PANIC recovered", lazylog.LevelError},
		{"deprecated option", lazylog.LevelWarn},
		{"trace of request", lazylog.LevelDebug},
		{"served 200", lazylog.LevelInfo},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, DetectLogLevel(tc.msg), tc.msg)
	}
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder().WithRegistry(nil).BuildGnet()
	assert.Error(t, err)

	bad := lazylog.DefaultConfig()
	bad.Format = "xml"
	_, err = NewBuilder().WithConfig(bad).BuildFastHTTP()
	assert.Error(t, err)
}

func TestAdapterGate(t *testing.T) {
	registry := lazylog.NewRegistry()
	fatalCalled := false
	adapter := NewGnetAdapter(registry.Get("quiet"), WithFatalHandler(func(string) { fatalCalled = true }))

	// No sinks: nothing is rendered, fatal handler still runs
	adapter.Infof("%v", "ignored")
	adapter.Fatalf("down")
	assert.True(t, fatalCalled)
}

func TestFiberAdapter(t *testing.T) {
	builder, _, logFile := createTestCompatBuilder(t)

	var fatalMsgs, panicMsgs []string
	adapter, err := builder.BuildFiber(
		WithFiberFatalHandler(func(msg string) { fatalMsgs = append(fatalMsgs, msg) }),
		WithFiberPanicHandler(func(msg string) { panicMsgs = append(panicMsgs, msg) }),
	)
	require.NoError(t, err)

	adapter.Trace("trace ", 1)
	adapter.Info("started")
	adapter.Warnf("load at %d%%", 90)
	adapter.Errorw("request failed", "status", 500, "path", "/api")
	adapter.Infow("odd pairs", "orphan")
	adapter.Debugw("no fields")
	adapter.Fatalf("fatal %s", "stop")
	adapter.Panicw("panic", "id", 7)
	n, err := adapter.Write([]byte("from writer\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	assert.Equal(t, []string{"fatal stop"}, fatalMsgs)
	assert.Equal(t, []string{"panic"}, panicMsgs)

	entries := readLogFile(t, logFile)
	expected := []struct{ level, msg string }{
		{"DEBUG", "trace 1"},
		{"INFO", "started"},
		{"WARN", "load at 90%"},
		{"ERROR", `request failed {"path":"/api","status":500}`},
		{"INFO", `odd pairs {"!BADKEY":"orphan"}`},
		{"DEBUG", "no fields"},
		{"CRITICAL", "fatal stop"},
		{"CRITICAL", `panic {"id":7}`},
		{"INFO", "from writer"},
	}
	require.Len(t, entries, len(expected))
	for i, exp := range expected {
		assert.Equal(t, exp.level, entries[i]["level"])
		assert.Equal(t, exp.msg, entries[i]["message"])
		assert.Equal(t, FiberLoggerName, entries[i]["logger"])
	}
}

func TestFiberAdapterDefaultPanic(t *testing.T) {
	adapter := NewFiberAdapter(lazylog.NewRegistry().Get("fiber"))
	assert.PanicsWithValue(t, "boom", func() { adapter.Panic("boom") })
}
