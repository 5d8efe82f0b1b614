package params

import (
	"math"
	"reflect"
	"time"
)

const (
	// NullableStringType is inferred for nil values.
	NullableStringType = "Nullable(String)"

	// StringType is inferred for strings and anything without a better match.
	StringType = "String"
)

// InferType returns the ClickHouse type used for a native Go value. This is the only
// place type inference happens.
//
// Rules:
//   - bool -> UInt8
//   - non-negative integers -> the narrowest of UInt8, UInt16, UInt32, UInt64
//   - negative integers -> the narrowest of Int8, Int16, Int32, Int64 by magnitude
//   - floats -> Float64
//   - string, []byte -> String
//   - nil -> Nullable(String)
//   - time.Time -> DateTime
//   - slices and arrays -> Array(T) where T is inferred from the first element,
//     Array(String) when empty
func InferType(v any) string {
	switch val := v.(type) {
	case nil:
		return NullableStringType
	case bool:
		return "UInt8"
	case string, []byte:
		return StringType
	case time.Time:
		return "DateTime"
	case *Parameter:
		return val.Type
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return "UInt8"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intType(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintType(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return "Float64"
	case reflect.String:
		return StringType
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return "Array(" + StringType + ")"
		}
		return "Array(" + InferType(rv.Index(0).Interface()) + ")"
	case reflect.Pointer:
		if rv.IsNil() {
			return NullableStringType
		}
		return InferType(rv.Elem().Interface())
	default:
		return StringType
	}
}

func uintType(n uint64) string {
	switch {
	case n <= math.MaxUint8:
		return "UInt8"
	case n <= math.MaxUint16:
		return "UInt16"
	case n <= math.MaxUint32:
		return "UInt32"
	default:
		return "UInt64"
	}
}

func intType(n int64) string {
	if n >= 0 {
		return uintType(uint64(n))
	}

	switch {
	case n >= -math.MaxInt8:
		return "Int8"
	case n >= -math.MaxInt16:
		return "Int16"
	case n >= -math.MaxInt32:
		return "Int32"
	default:
		return "Int64"
	}
}
