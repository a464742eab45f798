// FILE: lixenwraith/lazylog/printf/convert.go
package printf

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Placeholders substituted for arguments of the wrong type
const (
	NotAStringPlaceholder = "%s:arg_not_a_string"
	nonErrorPrefix        = "Non-Error exception: "
)

// Result is the outcome of converting a single value.
// Err is set when the conversion indicates a caller mistake; Text is always usable.
type Result struct {
	Text string
	Err  error
}

// MisuseError reports an argument that does not fit its conversion
type MisuseError struct {
	Verb    byte
	Got     string
	Suggest string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("%%%c received argument of type %s, use %s instead", e.Verb, e.Got, e.Suggest)
}

// StackTracer is implemented by errors that carry a captured call stack
type StackTracer interface {
	StackTrace() string
}

// Convert renders one value under a conversion spec. It never panics.
func Convert(spec Spec, v any) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Text: fmt.Sprintf("%%%c:conversion_failed", spec.Verb),
				Err:  fmt.Errorf("%%%c conversion of %T panicked: %v", spec.Verb, v, r),
			}
		}
	}()

	if _, ok := v.(failedArg); ok {
		return Result{Text: LazyPlaceholder}
	}

	switch spec.Verb {
	case '%':
		return Result{Text: "%"}
	case 's':
		return convertString(spec, v)
	case 'd', 'i', 'b', 'o', 'x', 'X':
		return Result{Text: formatInteger(spec, toNumber(v))}
	case 'f', 'e', 'E', 'g', 'G':
		return Result{Text: formatFloat(spec, toNumber(v))}
	case 't':
		return Result{Text: pad(spec, strconv.FormatBool(truthy(v)))}
	case 'j':
		return Result{Text: pad(spec, JSON(v))}
	case 'h', 'H':
		return convertHex(spec, v)
	case 'w':
		return Result{Text: pad(spec, FormatError(v))}
	case 'v':
		return Result{Text: formatDefault(spec, v)}
	case 'T':
		return Result{Text: pad(spec, fmt.Sprintf("%T", v))}
	case 'c':
		return Result{Text: pad(spec, formatChar(v))}
	}

	return Result{Text: spec.Raw}
}

// convertString renders %s; non-textual values are a caller mistake
func convertString(spec Spec, v any) Result {
	s, ok := textual(v)
	if !ok {
		return Result{
			Text: NotAStringPlaceholder,
			Err:  &MisuseError{Verb: 's', Got: typeName(v), Suggest: suggestVerb(v)},
		}
	}
	if spec.HasPrec && utf8.RuneCountInString(s) > spec.Prec {
		n := 0
		for i := range s {
			if n == spec.Prec {
				s = s[:i]
				break
			}
			n++
		}
	}
	return Result{Text: pad(spec, s)}
}

// textual extracts text from string kinds and Stringers
func textual(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case error:
		return "", false
	case fmt.Stringer:
		if isNilPointer(val) {
			return "", false
		}
		return val.String(), true
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// suggestVerb names the conversion that fits a value
func suggestVerb(v any) string {
	if _, ok := v.(error); ok {
		return "%w"
	}
	if _, ok := toBytes(v); ok {
		if _, isSlice := v.([]byte); isSlice {
			return "%h"
		}
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "%v"
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return "%d"
	case reflect.Float32, reflect.Float64:
		return "%f"
	case reflect.Bool:
		return "%t"
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array, reflect.Ptr:
		return "%j"
	default:
		return "%v"
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// numKind classifies a numeric view of a value
type numKind uint8

const (
	numInvalid numKind = iota
	numInt
	numUint
	numFloat
	numBigInt
	numBigFloat
	numComplex
)

type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
	bi   *big.Int
	bf   *big.Float
	c    complex128
}

// toNumber coerces a value to a number the way printf numeric conversions expect
func toNumber(v any) number {
	switch val := v.(type) {
	case nil:
		return number{}
	case *big.Int:
		if val == nil {
			return number{}
		}
		return number{kind: numBigInt, bi: val}
	case big.Int:
		return number{kind: numBigInt, bi: &val}
	case *big.Float:
		if val == nil {
			return number{}
		}
		return number{kind: numBigFloat, bf: val}
	case json.Number:
		return parseNumberString(string(val))
	case bool:
		if val {
			return number{kind: numInt, i: 1}
		}
		return number{kind: numInt}
	case string:
		return parseNumberString(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: numInt, i: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: numUint, u: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return number{kind: numFloat, f: rv.Float()}
	case reflect.Complex64, reflect.Complex128:
		return number{kind: numComplex, c: rv.Complex()}
	case reflect.String:
		return parseNumberString(rv.String())
	}
	return number{}
}

func parseNumberString(s string) number {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return number{kind: numInt, i: i}
	}
	if u, err := strconv.ParseUint(s, 0, 64); err == nil {
		return number{kind: numUint, u: u}
	}
	if bi, ok := new(big.Int).SetString(s, 10); ok {
		return number{kind: numBigInt, bi: bi}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return number{kind: numFloat, f: f}
	}
	return number{}
}

// toInt64 returns the integer part of a numeric value
func toInt64(v any) (int64, bool) {
	n := toNumber(v)
	switch n.kind {
	case numInt:
		return n.i, true
	case numUint:
		if n.u > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(n.u), true
	case numFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return 0, false
		}
		if n.f >= math.MaxInt64 {
			return math.MaxInt64, true
		}
		if n.f <= math.MinInt64 {
			return math.MinInt64, true
		}
		return int64(n.f), true
	case numBigInt:
		if n.bi.IsInt64() {
			return n.bi.Int64(), true
		}
	}
	return 0, false
}

// formatInteger handles d, i, b, o, x and X
func formatInteger(spec Spec, n number) string {
	verb := spec.Verb
	if verb == 'i' {
		verb = 'd'
	}
	format := goVerb(spec, verb, true)

	switch n.kind {
	case numInt:
		return fmt.Sprintf(format, n.i)
	case numUint:
		return fmt.Sprintf(format, n.u)
	case numBigInt:
		return fmt.Sprintf(format, n.bi)
	case numFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return pad(spec, strconv.FormatFloat(n.f, 'g', -1, 64))
		}
		t := math.Trunc(n.f)
		if t >= math.MinInt64 && t < math.MaxInt64 {
			return fmt.Sprintf(format, int64(t))
		}
		bi, _ := big.NewFloat(t).Int(nil)
		return fmt.Sprintf(format, bi)
	case numBigFloat:
		if n.bf.IsInf() {
			return pad(spec, n.bf.String())
		}
		bi, _ := n.bf.Int(nil)
		return fmt.Sprintf(format, bi)
	}
	return pad(spec, "NaN")
}

// formatFloat handles f, e, E, g and G
func formatFloat(spec Spec, n number) string {
	format := goVerb(spec, spec.Verb, true)

	switch n.kind {
	case numFloat:
		return fmt.Sprintf(format, n.f)
	case numInt:
		return fmt.Sprintf(format, float64(n.i))
	case numUint:
		return fmt.Sprintf(format, float64(n.u))
	case numBigInt:
		return fmt.Sprintf(format, new(big.Float).SetInt(n.bi))
	case numBigFloat:
		return fmt.Sprintf(format, n.bf)
	case numComplex:
		return fmt.Sprintf(format, n.c)
	}
	return pad(spec, "NaN")
}

// truthy maps a value onto a boolean for %t
func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// formatChar renders a codepoint as a single character
func formatChar(v any) string {
	if s, ok := v.(string); ok {
		if s == "" {
			return string(utf8.RuneError)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return string(r)
	}
	n, ok := toInt64(v)
	if !ok || n < 0 || n > utf8.MaxRune {
		return string(utf8.RuneError)
	}
	return string(rune(n))
}

// FormatError renders an error value with its stack when one is available
func FormatError(v any) string {
	err, ok := v.(error)
	if !ok || isNilPointer(v) {
		return nonErrorPrefix + sprint(v)
	}
	if st, ok := err.(StackTracer); ok {
		if trace := st.StackTrace(); trace != "" {
			return err.Error() + "\n" + trace
		}
	}
	if _, ok := err.(fmt.Formatter); ok {
		return fmt.Sprintf("%+v", err)
	}
	return errorKind(err) + ": " + err.Error()
}

// errorKind returns the unqualified type name of an error, pointer markers stripped
func errorKind(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// formatDefault handles %v; '#' selects a deep dump
func formatDefault(spec Spec, v any) string {
	if spec.Flags.Has(FlagSharp) {
		return pad(spec, dump(v))
	}
	if HasCycle(v) {
		return pad(spec, dumpCompact(v))
	}
	return fmt.Sprintf(goVerb(spec, 'v', false), v)
}

// goVerb rebuilds a fmt directive from a spec with the given verb
func goVerb(spec Spec, verb byte, allowSharp bool) string {
	var b strings.Builder
	b.WriteByte('%')
	if spec.Flags.Has(FlagMinus) {
		b.WriteByte('-')
	}
	if spec.Flags.Has(FlagPlus) {
		b.WriteByte('+')
	}
	if spec.Flags.Has(FlagSpace) {
		b.WriteByte(' ')
	}
	if allowSharp && spec.Flags.Has(FlagSharp) {
		b.WriteByte('#')
	}
	if spec.Flags.Has(FlagZero) {
		b.WriteByte('0')
	}
	if spec.HasWidth {
		b.WriteString(strconv.Itoa(spec.Width))
	}
	if spec.HasPrec {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(spec.Prec))
	}
	b.WriteByte(verb)
	return b.String()
}

// pad applies width and left alignment to already rendered text
func pad(spec Spec, s string) string {
	if !spec.HasWidth {
		return s
	}
	n := utf8.RuneCountInString(s)
	if n >= spec.Width {
		return s
	}
	fill := strings.Repeat(" ", spec.Width-n)
	if spec.Flags.Has(FlagMinus) {
		return s + fill
	}
	return fill + s
}

// isNilPointer reports a typed nil hidden in an interface
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return !rv.IsValid()
}
