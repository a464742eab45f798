// FILE: lixenwraith/lazylog/compat/structured_gnet.go
package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lixenwraith/lazylog"
)

// keyValuePattern detects "key=%v" or "key: %d" style directives
var keyValuePattern = regexp.MustCompile(`(\w+)\s*[:=]\s*%[-+# 0]*[0-9]*(?:\.[0-9]*)?[vsdqxXeEfFgGtbcoUp]`)

// parseFormat splits a Go printf format into a message and key/value fields.
// Fields are returned only when every directive in format is a key/value pair.
func parseFormat(format string, args []any) (string, map[string]any) {
	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	directives := strings.Count(format, "%") - 2*strings.Count(format, "%%")
	if len(matches) == 0 || len(matches) != directives || len(args) != len(matches) {
		return fmt.Sprintf(format, args...), nil
	}

	fields := make(map[string]any, len(matches))
	var msg strings.Builder
	lastEnd := 0
	for i, match := range matches {
		msg.WriteString(format[lastEnd:match[0]])
		fields[format[match[2]:match[3]]] = args[i]
		lastEnd = match[1]
	}
	msg.WriteString(format[lastEnd:])

	text := strings.Trim(msg.String(), " ,;:")
	text = strings.ReplaceAll(text, "%%", "%")
	return text, fields
}

// StructuredGnetAdapter renders key/value directives of gnet messages as a JSON object
type StructuredGnetAdapter struct {
	*GnetAdapter
	extractFields bool
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(logger *lazylog.Logger, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter:   NewGnetAdapter(logger, opts...),
		extractFields: true,
	}
}

func (a *StructuredGnetAdapter) structuredf(level lazylog.Level, format string, args []any) {
	if !a.extractFields {
		a.logf(level, format, args)
		return
	}
	if !a.logger.Enabled(level) {
		return
	}
	msg, fields := parseFormat(format, args)
	if len(fields) == 0 {
		a.logger.Log(level, msg)
		return
	}
	a.logger.Log(level, "%s %j", msg, fields)
}

// Debugf logs with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	a.structuredf(lazylog.LevelDebug, format, args)
}

// Infof logs with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	a.structuredf(lazylog.LevelInfo, format, args)
}

// Warnf logs with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	a.structuredf(lazylog.LevelWarn, format, args)
}

// Errorf logs with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	a.structuredf(lazylog.LevelError, format, args)
}
