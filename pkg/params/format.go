package params

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/pseudomuto/chbuilder/pkg/utils"
)

// DateTimeLayout is the textual form of time.Time values in bindings.
const DateTimeLayout = "2006-01-02 15:04:05"

// nullValue is how ClickHouse expects NULL in a textual parameter.
const nullValue = `\N`

// FormatValue converts a native value into its binding form:
//   - booleans become "1" or "0"
//   - numbers and strings are returned as-is
//   - time.Time becomes "2006-01-02 15:04:05"
//   - slices and arrays become an array literal such as [1,2] or ['a','b']
//   - nil stays nil
func FormatValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool:
		return boolString(val)
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(DateTimeLayout)
	}

	if utils.IsNumeric(v) {
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return ArrayLiteral(v)
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return FormatValue(rv.Elem().Interface())
	default:
		return fmt.Sprint(v)
	}
}

// FormatString is FormatValue rendered as text. nil becomes \N.
func FormatString(v any) string {
	switch val := FormatValue(v).(type) {
	case nil:
		return nullValue
	case string:
		return val
	default:
		if s := utils.FormatNumber(val); s != "" {
			return s
		}
		return fmt.Sprint(val)
	}
}

// ArrayLiteral renders a slice or array as a ClickHouse array literal. String elements
// are single-quoted and escaped; nested slices are rendered recursively.
//
// Example:
//
//	params.ArrayLiteral([]any{1, "it's", true}) // [1,'it\'s',1]
func ArrayLiteral(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "[]"
	}

	elems := make([]string, rv.Len())
	for i := range elems {
		elems[i] = arrayElement(rv.Index(i).Interface())
	}

	return "[" + strings.Join(elems, ",") + "]"
}

func arrayElement(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		return boolString(val)
	case string:
		return utils.QuoteString(val)
	case time.Time:
		return utils.QuoteString(val.Format(DateTimeLayout))
	}

	if utils.IsNumeric(v) {
		return utils.FormatNumber(v)
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return ArrayLiteral(v)
	default:
		return utils.QuoteString(fmt.Sprint(v))
	}
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
