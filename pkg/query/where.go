package query

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/params"
)

type clause int

const (
	whereClause clause = iota
	preWhereClause
	havingClause
)

// Where adds an AND-connected condition. The accepted argument shapes are:
//
//	Where("id", 42)                          // `id` = {p0:UInt8}
//	Where("id", ">=", 42)                    // `id` >= {p0:UInt8}
//	Where(func(q *query.Builder) { … })      // ( … ) scoped group
//	Where(other)                             // ( … ) using other's WHERE conditions
//	Where(query.Raw("isNotNull(`email`)"))   // verbatim expression
//	Where(query.Compare("a", "=", 1))        // prebuilt condition
//
// Plain values on the right side are registered as auto-named parameters. Invalid
// arguments are recorded and reported when the query is compiled.
func (b *Builder) Where(args ...any) *Builder {
	return b.addCondition(whereClause, And, args)
}

// OrWhere is Where connected with OR.
func (b *Builder) OrWhere(args ...any) *Builder {
	return b.addCondition(whereClause, Or, args)
}

// PreWhere adds an AND-connected PREWHERE condition. See Where for argument shapes.
func (b *Builder) PreWhere(args ...any) *Builder {
	return b.addCondition(preWhereClause, And, args)
}

// OrPreWhere is PreWhere connected with OR.
func (b *Builder) OrPreWhere(args ...any) *Builder {
	return b.addCondition(preWhereClause, Or, args)
}

// Having adds an AND-connected HAVING condition. See Where for argument shapes.
func (b *Builder) Having(args ...any) *Builder {
	return b.addCondition(havingClause, And, args)
}

// OrHaving is Having connected with OR.
func (b *Builder) OrHaving(args ...any) *Builder {
	return b.addCondition(havingClause, Or, args)
}

// WhereIn adds `col IN values`. values is a slice, a sub-select builder or a
// func(*Builder) that fills a sub-select.
func (b *Builder) WhereIn(col, values any) *Builder {
	return b.Where(col, In, values)
}

// WhereNotIn adds `col NOT IN values`.
func (b *Builder) WhereNotIn(col, values any) *Builder {
	return b.Where(col, NotIn, values)
}

// OrWhereIn adds `OR col IN values`.
func (b *Builder) OrWhereIn(col, values any) *Builder {
	return b.OrWhere(col, In, values)
}

// WhereGlobalIn adds `col GLOBAL IN values` for distributed tables.
func (b *Builder) WhereGlobalIn(col, values any) *Builder {
	return b.Where(col, GlobalIn, values)
}

// WhereBetween adds `col BETWEEN lower AND upper`.
func (b *Builder) WhereBetween(col, lower, upper any) *Builder {
	return b.Where(col, Between, []any{lower, upper})
}

// WhereNotBetween adds `col NOT BETWEEN lower AND upper`.
func (b *Builder) WhereNotBetween(col, lower, upper any) *Builder {
	return b.Where(col, NotBetween, []any{lower, upper})
}

// OrWhereBetween adds `OR col BETWEEN lower AND upper`.
func (b *Builder) OrWhereBetween(col, lower, upper any) *Builder {
	return b.OrWhere(col, Between, []any{lower, upper})
}

// WhereLike adds `col LIKE pattern`.
func (b *Builder) WhereLike(col any, pattern string) *Builder {
	return b.Where(col, Like, pattern)
}

func (b *Builder) addCondition(target clause, connector Connector, args []any) *Builder {
	cond, err := b.condition(connector, args)
	if err != nil {
		return b.fail(err)
	}

	switch target {
	case preWhereClause:
		b.preWheres = append(b.preWheres, cond)
	case havingClause:
		b.havings = append(b.havings, cond)
	default:
		b.wheres = append(b.wheres, cond)
	}
	return b
}

func (b *Builder) condition(connector Connector, args []any) (*Condition, error) {
	switch len(args) {
	case 1:
		return b.single(connector, args[0])
	case 2:
		return b.compare(connector, args[0], Eq, args[1])
	case 3:
		var op Operator
		switch v := args[1].(type) {
		case Operator:
			op = v
		case string:
			parsed, ok := ParseOperator(v)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidArgument, "unknown operator %q", v)
			}
			op = parsed
		default:
			return nil, errors.Wrapf(ErrInvalidArgument, "operator must be a string, got %T", args[1])
		}
		return b.compare(connector, args[0], op, args[2])
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "expected 1 to 3 arguments, got %d", len(args))
	}
}

func (b *Builder) single(connector Connector, arg any) (*Condition, error) {
	switch v := arg.(type) {
	case func(*Builder):
		sub := b.NewQuery()
		v(sub)
		if sub.err != nil {
			return nil, sub.err
		}
		return &Condition{Connector: connector, Right: Group{Builder: sub}}, nil
	case *Builder:
		if v == nil {
			return nil, errors.Wrap(ErrInvalidArgument, "nil group")
		}
		b.adopt(v)
		return &Condition{Connector: connector, Right: Group{Builder: v}}, nil
	case *Condition:
		if v == nil {
			return nil, errors.Wrap(ErrInvalidArgument, "nil condition")
		}
		c := *v
		c.Connector = connector
		b.adoptExpr(&c)
		return &c, nil
	case Expression:
		return &Condition{Connector: connector, Left: b.adoptExpr(v)}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unsupported condition %T", arg)
	}
}

func (b *Builder) compare(connector Connector, col any, op Operator, value any) (*Condition, error) {
	left, ok := column(col)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidArgument, "unsupported column %T", col)
	}

	var right Expression
	if op.IsBetween() {
		bounds, ok := pair(value)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidArgument, "%s needs exactly two bounds", op)
		}
		right = Tuple{b.operand(bounds[0]), b.operand(bounds[1])}
	} else {
		right = b.operand(value)
	}

	return &Condition{Connector: connector, Left: b.adoptExpr(left), Operator: op, Right: right}, nil
}

// operand converts the value side of a comparison.
func (b *Builder) operand(v any) Expression {
	switch val := v.(type) {
	case nil:
		return Literal{}
	case Expression:
		return b.adoptExpr(val)
	case *params.Parameter:
		if _, ok := b.params.Get(val.Name); !ok {
			b.params.Add(val)
		}
		return Param{val}
	case *Builder:
		b.adopt(val)
		return SubQuery{Builder: val}
	case func(*Builder):
		sub := b.NewQuery()
		val(sub)
		b.fail(sub.err)
		return SubQuery{Builder: sub}
	default:
		return Param{b.params.Auto(v)}
	}
}

// pair splits a two element slice or array.
func pair(v any) ([2]any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() != 2 {
		return [2]any{}, false
	}
	return [2]any{rv.Index(0).Interface(), rv.Index(1).Interface()}, true
}
