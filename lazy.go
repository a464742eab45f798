// FILE: lixenwraith/lazylog/lazy.go
package lazylog

import (
	"github.com/lixenwraith/lazylog/printf"
)

// Lazy defers a computation until the record is known to be visible.
//
//	logger.Debug("state: %j", lazylog.Lazy(func() any { return expensiveSnapshot() }))
func Lazy(fn func() any) printf.Deferred {
	return printf.Defer(fn)
}

// LazyErr defers a computation that may fail; a returned error renders the
// lazy argument placeholder and is reported on the logger's error path.
func LazyErr(fn func() (any, error)) printf.Deferred {
	return printf.Deferred(fn)
}

// LazyHex defers hex encoding of data, bytes joined by delimiter (" " is the
// conventional choice). maxBytes follows the %.Nh precision: at most maxBytes bytes
// are encoded, 0 encodes none, and a negative value encodes everything.
func LazyHex(data []byte, delimiter string, maxBytes int) printf.Deferred {
	return func() (any, error) {
		return printf.HexBytes(data, delimiter, false, maxBytes), nil
	}
}

// LazyError defers rendering of an error value, including its stack trace when present
func LazyError(v any) printf.Deferred {
	return func() (any, error) {
		return printf.FormatError(v), nil
	}
}
