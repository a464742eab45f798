// FILE: lixenwraith/lazylog/sanitizer/sanitizer.go
// Package sanitizer neutralises control characters in rendered log text before it
// reaches a sink, and writes string, number and null values for the line layouts.
package sanitizer

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter selects the runes a rule applies to. Filters combine with '|'.
type Filter uint8

const (
	FilterNonPrintable Filter = 1 << iota // runes strconv.IsPrint rejects
	FilterControl                         // unicode.IsControl
	FilterTerminal                        // control characters other than '\n' and '\t'
)

// Transform is applied to every rune a rule's filter selects
type Transform uint8

const (
	TransformHexEncode  Transform = iota // UTF-8 bytes as "<xxyy>"
	TransformJSONEscape                  // JSON backslash escape
	TransformReplace                     // U+FFFD replacement character
)

// PolicyPreset names a pre-configured rule set
type PolicyPreset string

const (
	PolicyRaw  PolicyPreset = "raw"  // passthrough
	PolicyJSON PolicyPreset = "json" // control characters JSON escaped
	PolicyTxt  PolicyPreset = "txt"  // every non-printable rune hex encoded, one record per line
	PolicyLine PolicyPreset = "line" // multi-line messages kept, other control characters hex encoded
)

// Policies lists the accepted preset names
var Policies = []PolicyPreset{PolicyRaw, PolicyJSON, PolicyTxt, PolicyLine}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:  nil,
	PolicyJSON: {{filter: FilterControl, transform: TransformJSONEscape}},
	PolicyTxt:  {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyLine: {{filter: FilterTerminal, transform: TransformHexEncode}},
}

// IsPolicy reports whether name is a known preset
func IsPolicy(name string) bool {
	_, ok := policyRules[PolicyPreset(name)]
	return ok
}

type rule struct {
	filter    Filter
	transform Transform
}

func (r rule) matches(c rune) bool {
	if r.filter&FilterNonPrintable != 0 && !strconv.IsPrint(c) {
		return true
	}
	if r.filter&FilterControl != 0 && unicode.IsControl(c) {
		return true
	}
	if r.filter&FilterTerminal != 0 && c != '\n' && c != '\t' && unicode.IsControl(c) {
		return true
	}
	return false
}

// Sanitizer applies an ordered rule list; the first matching rule wins.
// A Sanitizer reuses an internal buffer and is not safe for concurrent use.
type Sanitizer struct {
	rules []rule
	buf   []byte
}

// New creates a passthrough Sanitizer
func New() *Sanitizer {
	return &Sanitizer{buf: make([]byte, 0, 256)}
}

// Rule appends a rule
func (s *Sanitizer) Rule(filter Filter, transform Transform) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset; unknown presets add nothing
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	s.rules = append(s.rules, policyRules[preset]...)
	return s
}

// Sanitize returns data with every rule applied
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 {
		return data
	}
	s.buf = s.buf[:0]
	for _, c := range data {
		s.buf = s.apply(s.buf, c)
	}
	return string(s.buf)
}

func (s *Sanitizer) apply(buf []byte, c rune) []byte {
	for _, r := range s.rules {
		if !r.matches(c) {
			continue
		}
		switch r.transform {
		case TransformHexEncode:
			var enc [utf8.UTFMax]byte
			n := utf8.EncodeRune(enc[:], c)
			buf = append(buf, '<')
			for _, b := range enc[:n] {
				buf = append(buf, hexDigits[b>>4], hexDigits[b&0x0f])
			}
			return append(buf, '>')
		case TransformJSONEscape:
			return appendJSONRune(buf, c)
		case TransformReplace:
			return utf8.AppendRune(buf, utf8.RuneError)
		}
	}
	return utf8.AppendRune(buf, c)
}

const hexDigits = "0123456789abcdef"

// appendJSONRune writes c escaped for a JSON string body
func appendJSONRune(buf []byte, c rune) []byte {
	switch c {
	case '"', '\\':
		return append(buf, '\\', byte(c))
	case '\n':
		return append(buf, '\\', 'n')
	case '\r':
		return append(buf, '\\', 'r')
	case '\t':
		return append(buf, '\\', 't')
	case '\b':
		return append(buf, '\\', 'b')
	case '\f':
		return append(buf, '\\', 'f')
	}
	if c < 0x20 || c == 0x7f {
		return append(buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0x0f])
	}
	return utf8.AppendRune(buf, c)
}

// Serializer writes scalar values for one line layout ("txt", "json" or "raw")
type Serializer struct {
	format    string
	sanitizer *Sanitizer
}

// NewSerializer creates a Serializer; string values pass through san first
// except in the json layout, which escapes on its own
func NewSerializer(format string, san *Sanitizer) *Serializer {
	if san == nil {
		san = New()
	}
	return &Serializer{format: format, sanitizer: san}
}

// WriteString appends s in the layout's string form
func (se *Serializer) WriteString(buf *[]byte, s string) {
	switch se.format {
	case "json":
		*buf = append(*buf, '"')
		for i := 0; i < len(s); {
			c := s[i]
			if c >= utf8.RuneSelf {
				// Multi-byte sequences pass through unchanged
				j := i + 1
				for j < len(s) && s[j] >= utf8.RuneSelf {
					j++
				}
				*buf = append(*buf, s[i:j]...)
				i = j
				continue
			}
			*buf = appendJSONRune(*buf, rune(c))
			i++
		}
		*buf = append(*buf, '"')

	case "txt":
		sanitized := se.sanitizer.Sanitize(s)
		if !se.NeedsQuotes(sanitized) {
			*buf = append(*buf, sanitized...)
			return
		}
		*buf = append(*buf, '"')
		for i := 0; i < len(sanitized); i++ {
			if sanitized[i] == '"' || sanitized[i] == '\\' {
				*buf = append(*buf, '\\')
			}
			*buf = append(*buf, sanitized[i])
		}
		*buf = append(*buf, '"')

	default:
		*buf = append(*buf, se.sanitizer.Sanitize(s)...)
	}
}

// WriteNumber appends an already formatted number
func (se *Serializer) WriteNumber(buf *[]byte, n string) {
	*buf = append(*buf, n...)
}

// WriteBool appends true or false
func (se *Serializer) WriteBool(buf *[]byte, b bool) {
	*buf = strconv.AppendBool(*buf, b)
}

// WriteNil appends "nil" for raw and "null" otherwise
func (se *Serializer) WriteNil(buf *[]byte) {
	if se.format == "raw" {
		*buf = append(*buf, "nil"...)
		return
	}
	*buf = append(*buf, "null"...)
}

// NeedsQuotes reports whether a txt value must be quoted to stay one token.
// JSON strings are always quoted; raw never is.
func (se *Serializer) NeedsQuotes(s string) bool {
	switch se.format {
	case "json":
		return true
	case "txt":
		if s == "" {
			return true
		}
		for _, r := range s {
			if unicode.IsSpace(r) || !unicode.IsPrint(r) {
				return true
			}
			switch r {
			case '"', '\'', '\\', '$', '`', '!', '&', '|', ';', '(', ')', '<', '>',
				'*', '?', '[', ']', '{', '}', '~', '#', '%', '=':
				return true
			}
		}
	}
	return false
}
