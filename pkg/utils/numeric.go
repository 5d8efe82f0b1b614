package utils

import (
	"reflect"
	"strconv"
)

// IsNumeric reports whether v is one of Go's integer or floating point kinds. Numeric
// values are written into SQL without quotes.
//
// Examples:
//   - 42 -> true
//   - uint8(1) -> true
//   - 1.5 -> true
//   - "42" -> false
//   - true -> false
func IsNumeric(v any) bool {
	if v == nil {
		return false
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// FormatNumber renders a numeric value the way ClickHouse expects it in SQL text. Floats
// never use exponent notation. Non-numeric values return an empty string.
//
// Examples:
//   - 42 -> "42"
//   - -1.5 -> "-1.5"
//   - 1e6 -> "1000000"
func FormatNumber(v any) string {
	if !IsNumeric(v) {
		return ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	default:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
}
