package statesync

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Present reports whether a value read from the host store carries meaningful
// data. The host represents "no data" inconsistently (nil, empty string,
// empty object, empty array), so sync and read paths funnel through a single
// predicate:
//
//   - nil is absent
//   - strings are present iff non-blank after trimming
//   - booleans and numbers are always present (false and 0 count)
//   - maps are present iff they have at least one key
//   - slices are present iff at least one element is present
func Present(v any) bool {
	if v == nil {
		return false
	}

	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return true
	case json.Number:
		return true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case map[string]any:
		return len(val) > 0
	case []any:
		for _, elem := range val {
			if Present(elem) {
				return true
			}
		}
		return false
	}

	// Typed nil pointers and unusual shapes fall through here.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return Present(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	default:
		return true
	}
}
