// FILE: lixenwraith/lazylog/printf/resolve.go
package printf

import (
	"fmt"
)

// LazyPlaceholder replaces a deferred argument whose evaluation failed
const LazyPlaceholder = "[error evaluating lazy argument]"

// Deferred is an argument computed only when a record is known to be visible.
// Any other argument value is used as-is.
type Deferred func() (any, error)

// Defer wraps a value-returning closure as a Deferred argument
func Defer(fn func() any) Deferred {
	return func() (any, error) {
		return fn(), nil
	}
}

// LazyError describes one failed deferred evaluation
type LazyError struct {
	Index int // position in the argument list
	Err   error
}

func (e *LazyError) Error() string {
	return fmt.Sprintf("lazy argument %d: %v", e.Index, e.Err)
}

func (e *LazyError) Unwrap() error {
	return e.Err
}

// failedArg marks a resolved slot whose deferred evaluation failed.
// It renders as LazyPlaceholder under every conversion.
type failedArg struct {
	err error
}

// Resolve evaluates every Deferred argument exactly once, left to right, and returns
// the direct values. Failed evaluations (returned error or panic) are substituted and
// reported in the second return value.
func Resolve(args []any) ([]any, []*LazyError) {
	var failures []*LazyError
	values := make([]any, len(args))
	for i, arg := range args {
		d, ok := arg.(Deferred)
		if !ok {
			values[i] = arg
			continue
		}
		v, err := evaluate(d)
		if err != nil {
			failures = append(failures, &LazyError{Index: i, Err: err})
			values[i] = failedArg{err: err}
			continue
		}
		values[i] = v
	}
	return values, failures
}

// evaluate invokes a Deferred, converting a panic into an error
func evaluate(d Deferred) (v any, err error) {
	if d == nil {
		return nil, fmt.Errorf("nil deferred argument")
	}
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return d()
}

// Bound is a conversion directive paired with its resolved argument
type Bound struct {
	Spec     Spec
	Value    any
	Resolved bool // false when the argument list ran out
}

// Bind pairs conversion tokens with values, consuming the values strictly left to right.
// Indirect width and precision are consumed before the value of the same directive.
// The returned slice is parallel to tokens; literal tokens get a zero Bound.
// Values not consumed by any directive are returned as extra.
func Bind(tokens []Token, values []any) (bound []Bound, extra []any) {
	bound = make([]Bound, len(tokens))
	next := 0
	take := func() (any, bool) {
		if next >= len(values) {
			return nil, false
		}
		v := values[next]
		next++
		return v, true
	}

	for i, tok := range tokens {
		if tok.Kind != TokenConversion {
			continue
		}
		spec := tok.Spec
		b := Bound{Spec: spec}
		if spec.Verb == '%' {
			b.Resolved = true
			bound[i] = b
			continue
		}

		ok := true
		if spec.WidthStar {
			var w any
			if w, ok = take(); ok {
				if n, isInt := starValue(w); isInt {
					if n < 0 {
						b.Spec.Flags |= FlagMinus
						n = -n
					}
					b.Spec.Width = n
				} else {
					b.Spec.HasWidth = false
				}
			}
		}
		if ok && spec.PrecStar {
			var p any
			if p, ok = take(); ok {
				if n, isInt := starValue(p); isInt && n >= 0 {
					b.Spec.Prec = n
				} else {
					b.Spec.HasPrec = false
				}
			}
		}
		if ok {
			b.Value, ok = take()
		}
		b.Resolved = ok
		bound[i] = b
	}

	if next < len(values) {
		extra = values[next:]
	}
	return bound, extra
}

// starValue interprets an argument consumed by '*'
func starValue(v any) (int, bool) {
	const maxStar = 1 << 20
	n, ok := toInt64(v)
	if !ok {
		return 0, false
	}
	if n > maxStar {
		n = maxStar
	}
	if n < -maxStar {
		n = -maxStar
	}
	return int(n), true
}
