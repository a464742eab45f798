// FILE: lixenwraith/lazylog/builder_test.go
package lazylog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("successful build returns configured registry", func(t *testing.T) {
		tmpDir := t.TempDir()
		extra := newRecordingSink(LevelDebug)

		builder := NewBuilder().
			Directory(tmpDir).
			LevelString("info").
			Format("json").
			ShowTimestamp(false).
			EnableConsole(false, LevelInfo).
			EnableFile(true, LevelDebug).
			Name("svc").
			Sink(extra).
			Sink(nil)

		cfg := builder.Config()
		assert.Equal(t, tmpDir, cfg.Directory)
		assert.Equal(t, int64(LevelInfo), cfg.Level)
		assert.Equal(t, "json", cfg.Format)
		assert.True(t, cfg.EnableFile)
		assert.False(t, cfg.EnableConsole)

		registry, err := builder.Build()
		require.NoError(t, err)
		require.NotNil(t, registry)

		registry.Get("db").Info("ready")
		registry.Get("db").Debug("hidden")
		require.NoError(t, registry.Close())

		assert.Equal(t, []string{"ready"}, extra.texts())
		data, err := os.ReadFile(filepath.Join(tmpDir, "svc.log"))
		require.NoError(t, err)
		assert.Equal(t, `{"level":"INFO","logger":"db","message":"ready"}`+"\n", string(data))
	})

	t.Run("builder error accumulation", func(t *testing.T) {
		registry, err := NewBuilder().
			LevelString("invalid-level-string").
			Override("format=json").
			Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid level string")
		assert.Nil(t, registry)
	})

	t.Run("override errors surface on build", func(t *testing.T) {
		registry, err := NewBuilder().Override("no_such_key=1").Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown configuration key")
		assert.Nil(t, registry)
	})

	t.Run("validation error", func(t *testing.T) {
		registry, err := NewBuilder().ConsoleTarget("printer").Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid console_target")
		assert.Nil(t, registry)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))

		registry, err := NewBuilder().
			EnableFile(true, LevelDebug).
			Directory(filepath.Join(blocker, "logs")).
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create log directory")
		assert.Nil(t, registry)
	})
}
