package grammar

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/pseudomuto/chbuilder/pkg/params"
	"github.com/pseudomuto/chbuilder/pkg/query"
	"github.com/pseudomuto/chbuilder/pkg/utils"
)

// ValueKind classifies a value handed to Wrap.
type ValueKind int

const (
	// UnknownValue is a value that has no SQL form. It wraps to an empty string.
	UnknownValue ValueKind = iota
	// RawValue is SQL text or a compiled expression, written as-is.
	RawValue
	// IdentifierValue is a column or table reference, written back-quoted.
	IdentifierValue
	// LiteralValue is a scalar: numbers as-is, null as null, everything else quoted.
	LiteralValue
	// SequenceValue is a slice or array, written element by element.
	SequenceValue
)

func (k ValueKind) String() string {
	switch k {
	case RawValue:
		return "raw"
	case IdentifierValue:
		return "identifier"
	case LiteralValue:
		return "literal"
	case SequenceValue:
		return "sequence"
	default:
		return "unknown"
	}
}

// Classify returns the kind Wrap uses for v.
func Classify(v any) ValueKind {
	switch v.(type) {
	case nil, bool, string, []byte, time.Time:
		return LiteralValue
	case query.Identifier:
		return IdentifierValue
	case query.Expression, *params.Parameter:
		return RawValue
	}

	if utils.IsNumeric(v) {
		return LiteralValue
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return SequenceValue
	case reflect.String, reflect.Bool:
		return LiteralValue
	case reflect.Pointer:
		if rv.IsNil() {
			return LiteralValue
		}
		return Classify(rv.Elem().Interface())
	default:
		return UnknownValue
	}
}

// Wrap renders any value as SQL. It is the one quoting routine used for insert values,
// setting values and inline literals.
//
// Examples:
//   - query.Raw("now()") -> now()
//   - query.Ident("db.t") -> `db`.`t`
//   - 42 -> 42
//   - "it's" -> 'it\'s'
//   - nil -> null
//   - []any{1, "a"} -> 1, 'a'
//   - map[string]int{} -> "" (unknown)
func Wrap(v any) string {
	switch Classify(v) {
	case RawValue:
		if p, ok := v.(*params.Parameter); ok {
			return p.Placeholder()
		}
		sql, err := Expression(v.(query.Expression))
		if err != nil {
			return ""
		}
		return sql
	case IdentifierValue:
		id := v.(query.Identifier)
		return utils.BacktickAlias(id.Name, id.Alias)
	case LiteralValue:
		return literal(v)
	case SequenceValue:
		return sequence(v, Wrap)
	default:
		return ""
	}
}

// literal renders an inline scalar. Slices become array literals.
func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		if val {
			return "1"
		}
		return "0"
	case string:
		return utils.QuoteString(val)
	case []byte:
		return utils.QuoteString(string(val))
	case time.Time:
		return utils.QuoteString(val.Format(params.DateTimeLayout))
	case *params.Parameter:
		return val.Placeholder()
	case query.Expression:
		return Wrap(val)
	}

	if utils.IsNumeric(v) {
		return utils.FormatNumber(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return "[" + sequence(v, literal) + "]"
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return literal(rv.Elem().Interface())
	case reflect.Bool:
		return literal(rv.Bool())
	default:
		return utils.QuoteString(fmt.Sprint(v))
	}
}

func isSequence(v any) bool {
	if _, ok := v.([]byte); ok {
		return false
	}

	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// sequence renders every element with fn, comma separated.
func sequence(v any, fn func(any) string) string {
	rv := reflect.ValueOf(v)
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = fn(rv.Index(i).Interface())
	}
	return strings.Join(parts, ", ")
}
