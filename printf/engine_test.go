// FILE: lixenwraith/lazylog/printf/engine_test.go
package printf

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRender(t *testing.T) {
	e := New()

	testCases := []struct {
		name     string
		format   string
		args     []any
		expected string
	}{
		{"no directives", "hello", nil, "hello"},
		{"percent escape", "100%%", nil, "100%"},
		{"percent before verb letter", "%%d", []any{5}, "%d 5"},
		{"missing argument keeps directive", "%d and %s", []any{1}, "1 and %s"},
		{"missing keeps flags", "x=%-5.2f", nil, "x=%-5.2f"},
		{"extra arguments appended", "x", []any{1, "a"}, "x 1 a"},
		{"star width", "%*d", []any{5, 42}, "   42"},
		{"star width left", "%-*d|", []any{5, 42}, "42   |"},
		{"negative star width", "%*d|", []any{-5, 42}, "42   |"},
		{"star precision", "%.*f", []any{2, 3.14159}, "3.14"},
		{"star without value", "%*d", []any{5}, "%*d"},
		{"malformed kept", "a%!b %d", []any{3}, "a%!b 3"},
		{"mixed", "user=%s id=%d ok=%t", []any{"bob", 7, true}, "user=bob id=7 ok=true"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, e.Render(tc.format, tc.args))
		})
	}
}

func TestRenderDeferred(t *testing.T) {
	calls := 0
	d := Defer(func() any {
		calls++
		return 7
	})
	assert.Equal(t, "n=7", Render("n=%d", d))
	assert.Equal(t, 1, calls)

	failing := Deferred(func() (any, error) { return nil, errors.New("x") })
	assert.Equal(t, "v="+LazyPlaceholder+" ok", Render("v=%s %s", failing, "ok"))
}

func TestEngineCache(t *testing.T) {
	t.Run("tokens reused", func(t *testing.T) {
		e := New(WithCacheSize(2))
		first := e.Tokens("a %d b")
		second := e.Tokens("a %d b")
		require.NotEmpty(t, first)
		assert.Same(t, &first[0], &second[0])
	})

	t.Run("eviction", func(t *testing.T) {
		e := New(WithCacheSize(1))
		first := e.Tokens("one %d")
		e.Tokens("two %d")
		again := e.Tokens("one %d")
		assert.NotSame(t, &first[0], &again[0])
		assert.Equal(t, first, again)
	})

	t.Run("disabled", func(t *testing.T) {
		e := New(WithCacheSize(0))
		assert.Nil(t, e.cache)
		assert.Equal(t, "1", e.Render("%d", []any{1}))
	})

	t.Run("concurrent use", func(t *testing.T) {
		e := New(WithCacheSize(4))
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					assert.Equal(t, "n=3", e.Render("n=%d", []any{3}))
				}
			}(i)
		}
		wg.Wait()
	})
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "x %d", fallback("x %d", nil))
	assert.Equal(t, "x %d 1 a", fallback("x %d", []any{1, "a"}))
}
