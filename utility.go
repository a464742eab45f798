// FILE: lixenwraith/lazylog/utility.go
package lazylog

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// maxTraceDepth caps the frames captured by getTrace
const maxTraceDepth = 10

// getTrace returns a function call trace string, caller first.
func getTrace(depth int64, skip int) string {
	if depth <= 0 || depth > maxTraceDepth {
		return ""
	}
	pc := make([]uintptr, int(depth)+skip)
	n := runtime.Callers(skip+1, pc) // +1 because Callers includes its own frame
	if n == 0 {
		return "(unknown)"
	}
	frames := runtime.CallersFrames(pc[:n])
	var trace []string
	for count := 0; count < int(depth); count++ {
		frame, more := frames.Next()
		if frame.Function == "" {
			break
		}
		trace = append(trace, fmt.Sprintf("%s (%s:%d)", shortFuncName(frame.Function), filepath.Base(frame.File), frame.Line))
		if !more {
			break
		}
	}
	if len(trace) == 0 {
		return "(unknown)"
	}
	// Reverse for caller -> callee order
	for i, j := 0, len(trace)-1; i < j; i, j = i+1, j-1 {
		trace[i], trace[j] = trace[j], trace[i]
	}
	return strings.Join(trace, " -> ")
}

// shortFuncName trims the package path and names closures after their parent
func shortFuncName(function string) string {
	funcName := filepath.Base(function)
	parts := strings.Split(funcName, ".")
	lastPart := parts[len(parts)-1]
	if strings.HasPrefix(lastPart, "func") && len(lastPart) > 4 {
		for _, r := range lastPart[4:] {
			if !unicode.IsDigit(r) {
				return lastPart
			}
		}
		return fmt.Sprintf("(anonymous in %s)", strings.Join(parts[:len(parts)-1], "."))
	}
	return lastPart
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "lazylog: ") {
		format = "lazylog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// stderrDiagnostics returns the internal error channel writing to stderr
func stderrDiagnostics() func(msg string) {
	return func(msg string) {
		fmt.Fprintf(os.Stderr, "lazylog: %s\n", msg)
	}
}

// discardDiagnostics drops internal errors
func discardDiagnostics(string) {}
