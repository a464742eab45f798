// FILE: lixenwraith/lazylog/printf/resolve_test.go
package printf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("direct values untouched", func(t *testing.T) {
		values, failures := Resolve([]any{1, "a", nil})
		assert.Equal(t, []any{1, "a", nil}, values)
		assert.Empty(t, failures)
	})

	t.Run("deferred evaluated once in order", func(t *testing.T) {
		var order []int
		calls := 0
		mk := func(n int) Deferred {
			return func() (any, error) {
				calls++
				order = append(order, n)
				return n * 10, nil
			}
		}
		values, failures := Resolve([]any{mk(1), "x", mk(2)})
		assert.Empty(t, failures)
		assert.Equal(t, []any{10, "x", 20}, values)
		assert.Equal(t, 2, calls)
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("returned error", func(t *testing.T) {
		cause := errors.New("db down")
		values, failures := Resolve([]any{"ok", Deferred(func() (any, error) { return nil, cause })})
		require.Len(t, failures, 1)
		assert.Equal(t, 1, failures[0].Index)
		assert.ErrorIs(t, failures[0], cause)
		assert.IsType(t, failedArg{}, values[1])
	})

	t.Run("panic recovered", func(t *testing.T) {
		_, failures := Resolve([]any{Defer(func() any { panic("boom") })})
		require.Len(t, failures, 1)
		assert.Contains(t, failures[0].Error(), "panic: boom")
	})

	t.Run("nil deferred", func(t *testing.T) {
		_, failures := Resolve([]any{Deferred(nil)})
		require.Len(t, failures, 1)
	})
}

func TestBind(t *testing.T) {
	t.Run("star width consumed first", func(t *testing.T) {
		tokens := Parse("%*d")
		bound, extra := Bind(tokens, []any{5, 42})
		assert.Empty(t, extra)
		assert.True(t, bound[0].Resolved)
		assert.Equal(t, 5, bound[0].Spec.Width)
		assert.Equal(t, 42, bound[0].Value)
	})

	t.Run("negative star width left aligns", func(t *testing.T) {
		bound, _ := Bind(Parse("%*d"), []any{-4, 1})
		assert.Equal(t, 4, bound[0].Spec.Width)
		assert.True(t, bound[0].Spec.Flags.Has(FlagMinus))
	})

	t.Run("non numeric star width ignored", func(t *testing.T) {
		bound, _ := Bind(Parse("%*d"), []any{"wide", 1})
		assert.False(t, bound[0].Spec.HasWidth)
		assert.Equal(t, 1, bound[0].Value)
	})

	t.Run("negative star precision ignored", func(t *testing.T) {
		bound, _ := Bind(Parse("%.*f"), []any{-1, 1.5})
		assert.False(t, bound[0].Spec.HasPrec)
	})

	t.Run("missing values", func(t *testing.T) {
		tokens := Parse("%d %s")
		bound, extra := Bind(tokens, []any{1})
		assert.True(t, bound[0].Resolved)
		assert.False(t, bound[2].Resolved)
		assert.Empty(t, extra)
	})

	t.Run("extra values", func(t *testing.T) {
		_, extra := Bind(Parse("%d"), []any{1, 2, 3})
		assert.Equal(t, []any{2, 3}, extra)
	})

	t.Run("percent consumes nothing", func(t *testing.T) {
		bound, extra := Bind(Parse("%%%d"), []any{7})
		assert.True(t, bound[0].Resolved)
		assert.Equal(t, 7, bound[1].Value)
		assert.Empty(t, extra)
	})
}
