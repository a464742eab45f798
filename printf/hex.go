// FILE: lixenwraith/lazylog/printf/hex.go
package printf

import (
	"reflect"
	"strconv"
	"strings"
)

const (
	hexLower = "0123456789abcdef"
	hexUpper = "0123456789ABCDEF"
)

// HexBytes encodes data as two hex digits per byte joined by sep.
// At most maxBytes bytes are encoded when maxBytes >= 0; the rest is summarised
// as "... [N more bytes]".
func HexBytes(data []byte, sep string, upper bool, maxBytes int) string {
	digits := hexLower
	if upper {
		digits = hexUpper
	}

	n := len(data)
	if maxBytes >= 0 && maxBytes < n {
		n = maxBytes
	}

	var b strings.Builder
	b.Grow(n*(2+len(sep)) + 24)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteByte(digits[data[i]>>4])
		b.WriteByte(digits[data[i]&0x0f])
	}
	if rest := len(data) - n; rest > 0 {
		b.WriteString("... [")
		b.WriteString(strconv.Itoa(rest))
		b.WriteString(" more bytes]")
	}
	return b.String()
}

// convertHex handles %h and %H
func convertHex(spec Spec, v any) Result {
	data, ok := toBytes(v)
	if !ok {
		return Result{
			Text: "%" + string(spec.Verb) + ":arg_not_bytes",
			Err:  &MisuseError{Verb: spec.Verb, Got: typeName(v), Suggest: suggestVerb(v)},
		}
	}

	sep := ""
	if spec.Flags.Has(FlagSpace) {
		sep = " "
	}
	maxBytes := -1
	if spec.HasPrec {
		maxBytes = spec.Prec
	}
	return Result{Text: pad(spec, HexBytes(data, sep, spec.Verb == 'H', maxBytes))}
}

// byteSource is satisfied by buffers such as bytes.Buffer
type byteSource interface {
	Bytes() []byte
}

// toBytes views a value as raw bytes. Byte slices and arrays are taken as-is;
// integer sequences qualify when every element is in 0..255.
func toBytes(v any) ([]byte, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case []byte:
		return val, true
	case byteSource:
		if isNilPointer(val) {
			return nil, false
		}
		return val.Bytes(), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Array {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return rv.Bytes(), true
	}

	out := make([]byte, rv.Len())
	for i := range out {
		n, ok := byteValue(rv.Index(i))
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func byteValue(rv reflect.Value) (byte, bool) {
	if rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n := rv.Int(); n >= 0 && n <= 0xff {
			return byte(n), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n := rv.Uint(); n <= 0xff {
			return byte(n), true
		}
	}
	return 0, false
}
