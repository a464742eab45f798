// FILE: lixenwraith/lazylog/printf/dump.go
package printf

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// dumper renders structures with type information and bounded depth.
// spew tracks visited pointers itself, so self-referencing values terminate.
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// compactDumper is the single-line variant used for %v on cyclic values
var compactDumper = &spew.ConfigState{
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// dump renders a multi-line typed dump, trailing newline trimmed
func dump(v any) string {
	var b bytes.Buffer
	dumper.Fdump(&b, v)
	return string(bytes.TrimSpace(b.Bytes()))
}

// dumpCompact renders a single-line representation
func dumpCompact(v any) string {
	return compactDumper.Sprintf("%v", v)
}

// sprint is fmt.Sprint for values that may reference themselves
func sprint(v any) string {
	if HasCycle(v) {
		return dumpCompact(v)
	}
	return fmt.Sprint(v)
}

// dumpArgs joins the compact dumps of all values with single spaces
func dumpArgs(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = dumpCompact(v)
	}
	return strings.Join(parts, " ")
}

// HasCycle reports whether v reaches itself through pointers, maps, slices or interfaces.
// Values nested deeper than maxWalkDepth are reported as cyclic so callers take the
// depth-bounded dump path.
func HasCycle(v any) bool {
	if v == nil {
		return false
	}
	c := cycleFinder{onPath: make(map[visitKey]struct{})}
	return c.walk(reflect.ValueOf(v), 0)
}

// visitKey identifies a reference value on the current walk path
type visitKey struct {
	ptr uintptr
	typ reflect.Type
	len int
}

type cycleFinder struct {
	onPath map[visitKey]struct{}
}

// maxWalkDepth bounds the walk itself; cycles are found through onPath at any length
const maxWalkDepth = 8192

func (c *cycleFinder) walk(rv reflect.Value, depth int) bool {
	if !rv.IsValid() {
		return false
	}
	if depth > maxWalkDepth {
		return true
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return false
		}
		if rv.Kind() == reflect.Slice && rv.Len() == 0 {
			return false
		}
		key := visitKey{ptr: rv.Pointer(), typ: rv.Type()}
		if rv.Kind() == reflect.Slice {
			key.len = rv.Len()
		}
		if _, seen := c.onPath[key]; seen {
			return true
		}
		c.onPath[key] = struct{}{}
		defer delete(c.onPath, key)

		switch rv.Kind() {
		case reflect.Ptr:
			return c.walk(rv.Elem(), depth+1)
		case reflect.Map:
			iter := rv.MapRange()
			for iter.Next() {
				if c.walk(iter.Value(), depth+1) {
					return true
				}
			}
		case reflect.Slice:
			if rv.Type().Elem().Kind() == reflect.Uint8 {
				return false
			}
			for i := 0; i < rv.Len(); i++ {
				if c.walk(rv.Index(i), depth+1) {
					return true
				}
			}
		}
	case reflect.Interface:
		return c.walk(rv.Elem(), depth+1)
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if c.walk(rv.Index(i), depth+1) {
				return true
			}
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if c.walk(rv.Field(i), depth+1) {
				return true
			}
		}
	}
	return false
}
