// FILE: lixenwraith/lazylog/formatter/formatter.go
// Package formatter lays out rendered log messages as sink lines.
package formatter

import (
	"fmt"
	"time"

	"github.com/lixenwraith/lazylog/sanitizer"
)

// Layout names accepted by Type
const (
	TypeTxt  = "txt"
	TypeJSON = "json"
	TypeRaw  = "raw"
)

// Formatter manages the buffered layout of log lines.
// A Formatter is not safe for concurrent use; sinks serialize access.
type Formatter struct {
	sanitizer       *sanitizer.Sanitizer
	format          string
	timestampFormat string
	showTimestamp   bool
	showLevel       bool
	showName        bool
	buf             []byte
}

// New creates a formatter with the provided sanitizer
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New() // Default passthrough sanitizer
	}
	return &Formatter{
		sanitizer:       san,
		format:          TypeTxt,
		timestampFormat: time.RFC3339Nano,
		showTimestamp:   true,
		showLevel:       true,
		showName:        true,
		buf:             make([]byte, 0, 1024),
	}
}

// Sanitizer replaces the sanitizer applied to messages
func (f *Formatter) Sanitizer(s *sanitizer.Sanitizer) *Formatter {
	if s != nil {
		f.sanitizer = s
	}
	return f
}

// Type sets the output layout ("txt", "json", or "raw")
func (f *Formatter) Type(format string) *Formatter {
	f.format = format
	return f
}

// TimestampFormat sets the timestamp format string
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// ShowLevel sets whether to include level in output
func (f *Formatter) ShowLevel(show bool) *Formatter {
	f.showLevel = show
	return f
}

// ShowTimestamp sets whether to include timestamp in output
func (f *Formatter) ShowTimestamp(show bool) *Formatter {
	f.showTimestamp = show
	return f
}

// ShowName sets whether to include the logger name in output
func (f *Formatter) ShowName(show bool) *Formatter {
	f.showName = show
	return f
}

// Format lays out one record as a newline terminated line.
// The returned slice is reused by the next call.
func (f *Formatter) Format(timestamp time.Time, level int64, name string, message string) []byte {
	f.Reset()

	switch f.format {
	case TypeJSON:
		f.formatJSON(timestamp, level, name, message)
	case TypeRaw:
		f.buf = append(f.buf, f.sanitizer.Sanitize(message)...)
	default:
		f.formatTxt(timestamp, level, name, message)
	}

	f.buf = append(f.buf, '\n')
	return f.buf
}

// Reset clears the formatter buffer for reuse
func (f *Formatter) Reset() {
	f.buf = f.buf[:0]
}

// LevelToString converts integer level values to string
func LevelToString(level int64) string {
	switch level {
	case -4:
		return "DEBUG"
	case 0:
		return "INFO"
	case 4:
		return "WARN"
	case 8:
		return "ERROR"
	case 12:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}

// formatJSON writes an object with time, level, logger and message keys
func (f *Formatter) formatJSON(timestamp time.Time, level int64, name string, message string) {
	serializer := sanitizer.NewSerializer(TypeJSON, f.sanitizer)

	f.buf = append(f.buf, '{')
	needsComma := false

	if f.showTimestamp {
		f.buf = append(f.buf, `"time":`...)
		serializer.WriteString(&f.buf, timestamp.Format(f.timestampFormat))
		needsComma = true
	}

	if f.showLevel {
		if needsComma {
			f.buf = append(f.buf, ',')
		}
		f.buf = append(f.buf, `"level":"`...)
		f.buf = append(f.buf, LevelToString(level)...)
		f.buf = append(f.buf, '"')
		needsComma = true
	}

	if f.showName && name != "" {
		if needsComma {
			f.buf = append(f.buf, ',')
		}
		f.buf = append(f.buf, `"logger":`...)
		serializer.WriteString(&f.buf, name)
		needsComma = true
	}

	if needsComma {
		f.buf = append(f.buf, ',')
	}
	f.buf = append(f.buf, `"message":`...)
	serializer.WriteString(&f.buf, f.sanitizer.Sanitize(message))

	f.buf = append(f.buf, '}')
}

// formatTxt writes "<time> <LEVEL> [name] message"
func (f *Formatter) formatTxt(timestamp time.Time, level int64, name string, message string) {
	needsSpace := false

	if f.showTimestamp {
		f.buf = timestamp.AppendFormat(f.buf, f.timestampFormat)
		needsSpace = true
	}

	if f.showLevel {
		if needsSpace {
			f.buf = append(f.buf, ' ')
		}
		f.buf = append(f.buf, LevelToString(level)...)
		needsSpace = true
	}

	if f.showName && name != "" {
		if needsSpace {
			f.buf = append(f.buf, ' ')
		}
		// Names with spaces or shell characters are quoted
		serializer := sanitizer.NewSerializer(TypeTxt, f.sanitizer)
		f.buf = append(f.buf, '[')
		serializer.WriteString(&f.buf, name)
		f.buf = append(f.buf, ']')
		needsSpace = true
	}

	if needsSpace {
		f.buf = append(f.buf, ' ')
	}
	f.buf = append(f.buf, f.sanitizer.Sanitize(message)...)
}
