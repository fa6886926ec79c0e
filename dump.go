package logbase

import (
	"fmt"
	"reflect"
)

const (
	// Maximum recursion depth to prevent stack overflow
	maxDumpDepth = 10
	// Maximum number of slice/array elements flattened per collection
	maxDumpElements = 10
	dumpMessage     = "dump"
)

// Dump reports the contents of v at debug level. Structs, maps and slices are
// flattened into dotted field keys ("User.Name", "tags[0]", "m[key]");
// scalars are stored under "value".
func (p *Processor) Dump(v any) error {
	if !p.IsLevelEnabled(LevelDebug) {
		return nil
	}
	return p.Report(LevelDebug, dumpMessage, Flatten(v))
}

// Flatten walks v and returns its leaves as fields. Cycles are reported as
// "<circular reference>" and nesting deeper than ten levels is cut off.
func Flatten(v any) Fields {
	out := Fields{}
	visited := make(map[uintptr]bool)
	flattenValue(out, v, emptyString, visited, 0)
	return out
}

func flattenValue(out Fields, v any, prefix string, visited map[uintptr]bool, depth int) {
	key := prefix
	if key == emptyString {
		key = "value"
	}

	if depth > maxDumpDepth {
		out[key] = "<max depth reached>"
		return
	}
	if v == nil {
		out[key] = "<nil>"
		return
	}

	val := reflect.ValueOf(v)

	// Unwrap interfaces and pointers, with cycle detection.
	// Avoid calling Pointer() on unsupported kinds.
	for {
		switch val.Kind() {
		case reflect.Interface:
			if val.IsNil() {
				out[key] = "<nil>"
				return
			}
			val = val.Elem()
			continue
		case reflect.Ptr:
			if val.IsNil() {
				out[key] = "<nil>"
				return
			}
			ptr := val.Pointer()
			if visited[ptr] {
				out[key] = "<circular reference>"
				return
			}
			visited[ptr] = true
			val = val.Elem()
			continue
		default:
			// No-op
		}
		break
	}

	typ := val.Type()

	switch val.Kind() {
	case reflect.Struct:
		n := 0
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			fieldVal := val.Field(i)

			// Skip unexported fields
			if !fieldVal.CanInterface() {
				continue
			}
			n++
			fieldPrefix := field.Name
			if prefix != emptyString {
				fieldPrefix = prefix + "." + field.Name
			}
			flattenValue(out, fieldVal.Interface(), fieldPrefix, visited, depth+1)
		}
		if n == 0 {
			out[key] = typ.String() + "{}"
		}

	case reflect.Map:
		if val.Len() == 0 {
			out[key] = typ.String() + "{}"
			return
		}
		iter := val.MapRange()
		for iter.Next() {
			keyStr := fmt.Sprintf("%v", iter.Key().Interface())
			flattenValue(out, iter.Value().Interface(), prefix+"["+keyStr+"]", visited, depth+1)
		}

	case reflect.Slice, reflect.Array:
		if val.Len() == 0 {
			out[key] = typ.String() + "[]"
			return
		}
		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			elemPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			flattenValue(out, val.Index(i).Interface(), elemPrefix, visited, depth+1)
		}
		if val.Len() > maxDumpElements {
			out[prefix+"[...]"] = fmt.Sprintf("%d more elements", val.Len()-maxDumpElements)
		}

	default:
		if val.IsValid() && val.CanInterface() {
			out[key] = val.Interface()
		} else {
			out[key] = fmt.Sprintf("%v", v)
		}
	}
}
