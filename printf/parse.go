// FILE: lixenwraith/lazylog/printf/parse.go
package printf

import "strings"

// Flag bits recognised after '%'
const (
	FlagSpace Flags = 1 << iota // ' '
	FlagZero                    // '0'
	FlagMinus                   // '-'
	FlagPlus                    // '+'
	FlagSharp                   // '#'
)

// Flags is an order-independent set of conversion flags
type Flags uint8

// Has reports whether all bits of f2 are set
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// verbs is the closed set of conversion letters
const verbs = "sdifeEgGtboxXjhHwvTc%"

// Spec is one parsed conversion directive
type Spec struct {
	Flags     Flags
	Width     int
	HasWidth  bool
	WidthStar bool // width read from the next argument
	Prec      int
	HasPrec   bool
	PrecStar  bool // precision read from the next argument
	Verb      byte
	Raw       string // original directive text, used when the conversion cannot be resolved
}

// Args returns the number of positional arguments the directive consumes
func (s Spec) Args() int {
	if s.Verb == '%' {
		return 0
	}
	n := 1
	if s.WidthStar {
		n++
	}
	if s.PrecStar {
		n++
	}
	return n
}

// TokenKind tags a Token
type TokenKind uint8

const (
	TokenLiteral TokenKind = iota
	TokenConversion
)

// Token is either literal text or a conversion directive
type Token struct {
	Kind TokenKind
	Text string // literal text, valid for TokenLiteral
	Spec Spec   // valid for TokenConversion
}

// Parse scans a format string into literal and conversion tokens.
// It never fails: a '%' sequence that does not match the grammar is kept as literal text.
func Parse(format string) []Token {
	if format == "" {
		return []Token{{Kind: TokenLiteral}}
	}

	var tokens []Token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			start := i
			for i < len(format) && format[i] != '%' {
				i++
			}
			lit.WriteString(format[start:i])
			continue
		}

		spec, end, ok := parseDirective(format, i)
		if !ok {
			// Degrade to a literal '%' and keep scanning after it
			lit.WriteByte('%')
			i++
			continue
		}

		flush()
		tokens = append(tokens, Token{Kind: TokenConversion, Spec: spec})
		i = end
	}
	flush()

	return tokens
}

// parseDirective parses the directive starting at format[start] == '%'.
// Returns the spec, the index just past the directive and whether it matched.
func parseDirective(format string, start int) (Spec, int, bool) {
	var spec Spec
	i := start + 1

	// Flags
flags:
	for i < len(format) {
		switch format[i] {
		case ' ':
			spec.Flags |= FlagSpace
		case '0':
			spec.Flags |= FlagZero
		case '-':
			spec.Flags |= FlagMinus
		case '+':
			spec.Flags |= FlagPlus
		case '#':
			spec.Flags |= FlagSharp
		default:
			break flags
		}
		i++
	}

	// Width
	if i < len(format) && format[i] == '*' {
		spec.HasWidth = true
		spec.WidthStar = true
		i++
	} else if n, next, ok := parseNumber(format, i); ok {
		spec.HasWidth = true
		spec.Width = n
		i = next
	}

	// Precision
	if i < len(format) && format[i] == '.' {
		i++
		spec.HasPrec = true
		if i < len(format) && format[i] == '*' {
			spec.PrecStar = true
			i++
		} else if n, next, ok := parseNumber(format, i); ok {
			spec.Prec = n
			i = next
		}
	}

	if i >= len(format) || strings.IndexByte(verbs, format[i]) < 0 {
		return Spec{}, start, false
	}

	spec.Verb = format[i]
	i++
	spec.Raw = format[start:i]
	return spec, i, true
}

// parseNumber reads a run of decimal digits, capped to keep widths sane
func parseNumber(s string, i int) (int, int, bool) {
	const maxNumber = 1 << 20
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if n < maxNumber {
			n = n*10 + int(s[i]-'0')
		}
		i++
	}
	if i == start {
		return 0, i, false
	}
	if n > maxNumber {
		n = maxNumber
	}
	return n, i, true
}
