// FILE: lixenwraith/lazylog/printf/engine.go
package printf

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of parsed format strings kept by an Engine
const DefaultCacheSize = 512

// Engine renders format strings against resolved argument lists.
// It is safe for concurrent use.
type Engine struct {
	cache  *lru.Cache[string, []Token]
	report func(msg string)
}

// Option configures an Engine
type Option func(*Engine)

// WithReporter sets the callback receiving conversion misuse diagnostics
func WithReporter(fn func(msg string)) Option {
	return func(e *Engine) {
		e.report = fn
	}
}

// WithCacheSize sets the parse cache capacity; zero or negative disables caching
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		if n <= 0 {
			e.cache = nil
			return
		}
		if c, err := lru.New[string, []Token](n); err == nil {
			e.cache = c
		}
	}
}

// New creates an Engine with the default cache size
func New(opts ...Option) *Engine {
	e := &Engine{}
	WithCacheSize(DefaultCacheSize)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tokens returns the parsed form of format, from cache when possible.
// The returned slice must not be modified.
func (e *Engine) Tokens(format string) []Token {
	if e.cache != nil {
		if tokens, ok := e.cache.Get(format); ok {
			return tokens
		}
	}
	tokens := Parse(format)
	if e.cache != nil {
		e.cache.Add(format, tokens)
	}
	return tokens
}

// Render substitutes values into format. Values must already be resolved (see Resolve).
// Directives without a matching value are emitted verbatim; leftover values are
// appended separated by spaces. If rendering itself fails, the raw format followed by
// dumps of the values is returned instead.
func (e *Engine) Render(format string, values []any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			e.reportf("rendering %q failed: %v", format, r)
			out = fallback(format, values)
		}
	}()

	tokens := e.Tokens(format)
	bound, extra := Bind(tokens, values)

	var b strings.Builder
	b.Grow(len(format) + 16*len(values))
	for i, tok := range tokens {
		if tok.Kind == TokenLiteral {
			b.WriteString(tok.Text)
			continue
		}
		bv := bound[i]
		if !bv.Resolved {
			b.WriteString(tok.Spec.Raw)
			continue
		}
		res := Convert(bv.Spec, bv.Value)
		if res.Err != nil {
			e.reportf("format %q: %v", format, res.Err)
		}
		b.WriteString(res.Text)
	}

	for _, v := range extra {
		b.WriteByte(' ')
		b.WriteString(Convert(Spec{Verb: 'v'}, v).Text)
	}
	return b.String()
}

func (e *Engine) reportf(format string, args ...any) {
	if e.report != nil {
		e.report(fmt.Sprintf(format, args...))
	}
}

// fallback renders a record whose formatting failed
func fallback(format string, values []any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = format
		}
	}()
	if len(values) == 0 {
		return format
	}
	return format + " " + dumpArgs(values)
}

var defaultEngine = New()

// Render resolves deferred arguments and renders format with a shared Engine.
// Failed deferred arguments render as LazyPlaceholder.
func Render(format string, args ...any) string {
	values, _ := Resolve(args)
	return defaultEngine.Render(format, values)
}
