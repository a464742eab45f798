// FILE: lixenwraith/lazylog/printf/json.go
package printf

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/lixenwraith/lazylog/sanitizer"
)

// CircularMarker replaces a reference back to a value already on the serialization path
const CircularMarker = "[Circular]"

// maxSafeInteger is the largest integer a double-precision JSON reader keeps exactly
const maxSafeInteger = 1<<53 - 1

var (
	marshalerType     = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	errorType         = reflect.TypeOf((*error)(nil)).Elem()
	bigIntType        = reflect.TypeOf(big.Int{})
	bigFloatType      = reflect.TypeOf(big.Float{})
)

// JSON serializes any value to compact JSON. It never fails: reference cycles become
// CircularMarker, integers outside the exactly representable range become decimal
// strings, and values whose own marshalling fails become an "[Unserializable: ...]" string.
func JSON(v any) string {
	w := jsonWriter{
		ser:    sanitizer.NewSerializer("json", sanitizer.New()),
		onPath: make(map[visitKey]struct{}),
	}
	w.value(reflect.ValueOf(v))
	return string(w.buf)
}

type jsonWriter struct {
	buf    []byte
	ser    *sanitizer.Serializer
	onPath map[visitKey]struct{}
}

func (w *jsonWriter) str(s string) {
	w.ser.WriteString(&w.buf, s)
}

func (w *jsonWriter) unserializable(reason any) {
	w.str(fmt.Sprintf("[Unserializable: %v]", reason))
}

// enter marks a reference as being on the path; false means it already was
func (w *jsonWriter) enter(key visitKey) bool {
	if _, seen := w.onPath[key]; seen {
		return false
	}
	w.onPath[key] = struct{}{}
	return true
}

func (w *jsonWriter) leave(key visitKey) {
	delete(w.onPath, key)
}

func (w *jsonWriter) value(rv reflect.Value) {
	if !rv.IsValid() {
		w.ser.WriteNil(&w.buf)
		return
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			w.ser.WriteNil(&w.buf)
			return
		}
	}

	if rv.Kind() == reflect.Interface {
		w.value(rv.Elem())
		return
	}

	t := rv.Type()
	if rv.CanInterface() {
		// Arbitrary precision numbers before their own marshalers
		if t == bigIntType || (t.Kind() == reflect.Ptr && t.Elem() == bigIntType) {
			w.bigInt(rv)
			return
		}
		if t == bigFloatType || (t.Kind() == reflect.Ptr && t.Elem() == bigFloatType) {
			w.bigFloat(rv)
			return
		}
		if t.Implements(marshalerType) {
			w.marshaler(rv)
			return
		}
		if t.Implements(errorType) {
			w.errorText(rv)
			return
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		w.ser.WriteBool(&w.buf, rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n > maxSafeInteger || n < -maxSafeInteger {
			w.str(strconv.FormatInt(n, 10))
		} else {
			w.ser.WriteNumber(&w.buf, strconv.FormatInt(n, 10))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > maxSafeInteger {
			w.str(strconv.FormatUint(n, 10))
		} else {
			w.ser.WriteNumber(&w.buf, strconv.FormatUint(n, 10))
		}
	case reflect.Float32, reflect.Float64:
		w.float(rv.Float(), t.Bits())
	case reflect.Complex64, reflect.Complex128:
		w.str(fmt.Sprint(rv.Complex()))
	case reflect.String:
		w.str(rv.String())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			w.str(base64.StdEncoding.EncodeToString(rv.Bytes()))
			return
		}
		key := visitKey{ptr: rv.Pointer(), typ: t, len: rv.Len()}
		if !w.enter(key) {
			w.str(CircularMarker)
			return
		}
		w.array(rv)
		w.leave(key)
	case reflect.Array:
		w.array(rv)
	case reflect.Map:
		key := visitKey{ptr: rv.Pointer(), typ: t}
		if !w.enter(key) {
			w.str(CircularMarker)
			return
		}
		w.object(rv)
		w.leave(key)
	case reflect.Ptr:
		key := visitKey{ptr: rv.Pointer(), typ: t}
		if !w.enter(key) {
			w.str(CircularMarker)
			return
		}
		w.value(rv.Elem())
		w.leave(key)
	case reflect.Struct:
		w.buf = append(w.buf, '{')
		first := true
		w.fields(rv, &first)
		w.buf = append(w.buf, '}')
	default:
		// func, chan, unsafe pointer
		w.ser.WriteNil(&w.buf)
	}
}

func (w *jsonWriter) float(f float64, bits int) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		w.ser.WriteNil(&w.buf)
		return
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	w.ser.WriteNumber(&w.buf, strconv.FormatFloat(f, format, -1, bits))
}

func (w *jsonWriter) bigInt(rv reflect.Value) {
	var n *big.Int
	if rv.Kind() == reflect.Ptr {
		n = rv.Interface().(*big.Int)
	} else {
		v := rv.Interface().(big.Int)
		n = &v
	}
	if n.IsInt64() && n.Int64() <= maxSafeInteger && n.Int64() >= -maxSafeInteger {
		w.ser.WriteNumber(&w.buf, n.String())
		return
	}
	w.str(n.String())
}

func (w *jsonWriter) bigFloat(rv reflect.Value) {
	var f *big.Float
	if rv.Kind() == reflect.Ptr {
		f = rv.Interface().(*big.Float)
	} else {
		v := rv.Interface().(big.Float)
		f = &v
	}
	w.str(f.Text('g', -1))
}

// marshaler calls a json.Marshaler, isolating its failures
func (w *jsonWriter) marshaler(rv reflect.Value) {
	out, err := func() (b []byte, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return rv.Interface().(json.Marshaler).MarshalJSON()
	}()
	if err != nil {
		w.unserializable(err)
		return
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, out); err != nil {
		w.unserializable(err)
		return
	}
	w.buf = append(w.buf, compact.Bytes()...)
}

func (w *jsonWriter) errorText(rv reflect.Value) {
	msg, err := func() (s string, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return rv.Interface().(error).Error(), nil
	}()
	if err != nil {
		w.unserializable(err)
		return
	}
	w.str(msg)
}

func (w *jsonWriter) array(rv reflect.Value) {
	w.buf = append(w.buf, '[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		w.value(rv.Index(i))
	}
	w.buf = append(w.buf, ']')
}

func (w *jsonWriter) object(rv reflect.Value) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: mapKey(iter.Key()), val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	w.buf = append(w.buf, '{')
	for i, e := range entries {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		w.str(e.key)
		w.buf = append(w.buf, ':')
		w.value(e.val)
	}
	w.buf = append(w.buf, '}')
}

// mapKey stringifies a map key
func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.Interface {
		if k.IsNil() {
			return "null"
		}
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10)
	}
	if k.CanInterface() && k.Type().Implements(textMarshalerType) {
		if text, err := k.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(text)
		}
	}
	if k.CanInterface() {
		return sprint(k.Interface())
	}
	return k.String()
}

// fields writes the exported fields of a struct, flattening untagged embedded structs
func (w *jsonWriter) fields(rv reflect.Value, first *bool) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := rv.Field(i)

		name, omitEmpty, skip := parseJSONTag(sf)
		if skip {
			continue
		}

		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if fv.Kind() == reflect.Ptr {
					if fv.IsNil() {
						continue
					}
					fv = fv.Elem()
				}
				w.fields(fv, first)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if omitEmpty && isEmptyValue(fv) {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		if !*first {
			w.buf = append(w.buf, ',')
		}
		*first = false
		w.str(name)
		w.buf = append(w.buf, ':')
		w.value(fv)
	}
}

// parseJSONTag reads the name and omitempty option of a struct field
func parseJSONTag(sf reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return "", false, false
	}
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty, false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
