// FILE: lixenwraith/lazylog/stack.go
package lazylog

// stackError attaches a captured call trace to an error
type stackError struct {
	err   error
	trace string
}

func (e *stackError) Error() string {
	return e.err.Error()
}

func (e *stackError) Unwrap() error {
	return e.err
}

// StackTrace returns the captured trace, caller first
func (e *stackError) StackTrace() string {
	return e.trace
}

// WithStack annotates err with the caller's stack so the %w conversion and
// Exception render it. Errors that already carry a stack are returned unchanged.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(interface{ StackTrace() string }); ok {
		return err
	}
	return &stackError{err: err, trace: getTrace(maxTraceDepth, 2)}
}
