package query

import (
	"strings"

	"github.com/pseudomuto/chbuilder/pkg/params"
)

type (
	// Expression is any SQL fragment the grammar can compile. The set of implementations
	// is closed: Raw, Identifier, Literal, Tuple, FunctionCall, BinaryOp, Distinct,
	// Param, Group, SubQuery, *Column and *Condition.
	Expression interface {
		expression()
	}

	// Raw is SQL text passed through verbatim. It is never quoted or parameterized.
	Raw string

	// Identifier is a dotted reference such as db.table.column. Every segment is
	// back-quoted independently and `*` is never quoted.
	Identifier struct {
		Name  string
		Alias string
	}

	// Literal is an inline value. Numbers are written as-is, strings are single-quoted,
	// nil is written as null.
	Literal struct {
		Value any
	}

	// Tuple is a parenthesized, comma separated list: (e1, e2, …).
	Tuple []Expression

	// FunctionCall is name(args…).
	FunctionCall struct {
		Name string
		Args []Expression
	}

	// BinaryOp is an arithmetic expression such as `a` + 1.
	BinaryOp struct {
		Op    string
		Left  Expression
		Right Expression
	}

	// Distinct prefixes its inner expression with DISTINCT.
	Distinct struct {
		Inner Expression
	}

	// Param references a query parameter through its placeholder.
	Param struct {
		*params.Parameter
	}

	// Group is a parenthesized condition tree taken from the WHERE clause of a nested
	// builder.
	Group struct {
		Builder *Builder
	}

	// SubQuery is a nested SELECT, optionally aliased.
	SubQuery struct {
		Builder *Builder
		Alias   string
	}
)

func (Raw) expression()          {}
func (Identifier) expression()   {}
func (Literal) expression()      {}
func (Tuple) expression()        {}
func (FunctionCall) expression() {}
func (BinaryOp) expression()     {}
func (Distinct) expression()     {}
func (Param) expression()        {}
func (Group) expression()        {}
func (SubQuery) expression()     {}

// Ident creates an Identifier.
func Ident(name string) Identifier {
	return Identifier{Name: name}
}

// As returns a copy of the identifier with an alias.
func (i Identifier) As(alias string) Identifier {
	i.Alias = alias
	return i
}

// IsWildcard reports whether the identifier is `*`.
func (i Identifier) IsWildcard() bool {
	return strings.TrimSpace(i.Name) == "*"
}

// Lit creates a Literal.
func Lit(v any) Literal {
	return Literal{Value: v}
}

// Null is the literal null.
func Null() Literal {
	return Literal{}
}

// TupleOf creates a Tuple. Values that aren't expressions become literals.
func TupleOf(values ...any) Tuple {
	t := make(Tuple, len(values))
	for i, v := range values {
		t[i] = literal(v)
	}
	return t
}

// Func creates a FunctionCall. Values that aren't expressions become literals.
//
// Example:
//
//	query.Func("toStartOfDay", query.Ident("created_at"))  // toStartOfDay(`created_at`)
func Func(name string, args ...any) FunctionCall {
	fn := FunctionCall{Name: name, Args: make([]Expression, len(args))}
	for i, arg := range args {
		fn.Args[i] = literal(arg)
	}
	return fn
}

// Sub wraps a builder as an aliased sub-select.
func Sub(b *Builder, alias string) SubQuery {
	return SubQuery{Builder: b, Alias: alias}
}

// literal converts a value used inside the expression DSL. Literals here are never
// parameterized.
func literal(v any) Expression {
	switch val := v.(type) {
	case Expression:
		return val
	case *params.Parameter:
		return Param{val}
	case *Builder:
		return SubQuery{Builder: val}
	default:
		return Literal{Value: v}
	}
}

// column converts a value naming a column: strings become identifiers.
func column(v any) (Expression, bool) {
	switch val := v.(type) {
	case string:
		return Identifier{Name: val}, true
	case *params.Parameter:
		return Param{val}, true
	case *Builder:
		return SubQuery{Builder: val}, true
	case Expression:
		return val, true
	default:
		return nil, false
	}
}
