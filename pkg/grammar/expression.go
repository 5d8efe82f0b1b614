package grammar

import (
	"strings"

	"github.com/pseudomuto/chbuilder/pkg/query"
	"github.com/pseudomuto/chbuilder/pkg/utils"
)

// compiler walks a builder graph. The first error aborts the statement, so callers only
// check err once at the end.
type compiler struct {
	err error
}

func (c *compiler) fail(err error) {
	if c.err == nil && err != nil {
		c.err = err
	}
}

// Expression compiles a single expression node, e.g. a column for a select list.
func Expression(e query.Expression) (string, error) {
	c := &compiler{}
	sql := c.expr(e)
	if c.err != nil {
		return "", c.err
	}
	return sql, nil
}

func (c *compiler) expr(e query.Expression) string {
	switch v := e.(type) {
	case nil:
		return ""
	case query.Raw:
		return string(v)
	case query.Identifier:
		return utils.BacktickAlias(v.Name, v.Alias)
	case query.Literal:
		return literal(v.Value)
	case query.Tuple:
		return "(" + c.list(v) + ")"
	case query.FunctionCall:
		return v.Name + "(" + c.list(v.Args) + ")"
	case query.BinaryOp:
		return c.operand(v.Left) + " " + v.Op + " " + c.operand(v.Right)
	case query.Distinct:
		return "DISTINCT " + c.expr(v.Inner)
	case query.Param:
		if v.Parameter == nil {
			return ""
		}
		return v.Placeholder()
	case query.Group:
		if v.Builder == nil {
			return ""
		}
		return "(" + c.conditions(v.Builder.Clauses().Wheres) + ")"
	case query.SubQuery:
		if v.Builder == nil {
			return ""
		}
		sql := "(" + c.query(v.Builder) + ")"
		if v.Alias != "" {
			sql += " AS " + utils.BacktickIdentifier(v.Alias)
		}
		return sql
	case *query.Column:
		return c.expr(v.Expr())
	case *query.Condition:
		return c.condition(v)
	default:
		return ""
	}
}

// operand compiles an argument of a function or arithmetic node. Nested arithmetic is
// always parenthesized.
func (c *compiler) operand(e query.Expression) string {
	inner := e
	if col, ok := e.(*query.Column); ok {
		inner = col.Expr()
	}

	if _, ok := inner.(query.BinaryOp); ok {
		return "(" + c.expr(e) + ")"
	}
	return c.expr(e)
}

func (c *compiler) list(exprs []query.Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = c.operand(e)
	}
	return strings.Join(parts, ", ")
}

// selectColumn compiles a select list item, including the alias of a DSL column.
func (c *compiler) selectColumn(e query.Expression) string {
	col, ok := e.(*query.Column)
	if !ok || col.Alias() == "" {
		return c.expr(e)
	}
	return c.expr(col) + " AS " + utils.BacktickIdentifier(col.Alias())
}

// conditions compiles a condition tree. The connector of the first rendered node is
// dropped and empty groups are skipped.
func (c *compiler) conditions(conds []*query.Condition) string {
	var sb strings.Builder
	for _, cond := range conds {
		sql := c.condition(cond)
		if sql == "" || sql == "()" {
			continue
		}

		if sb.Len() > 0 {
			connector := cond.Connector
			if connector == "" {
				connector = query.And
			}
			sb.WriteString(" " + string(connector) + " ")
		}
		sb.WriteString(sql)
	}
	return sb.String()
}

func (c *compiler) condition(cond *query.Condition) string {
	if cond == nil {
		return ""
	}

	if cond.IsGroup() {
		return c.expr(cond.Right)
	}

	left := c.expr(cond.Left)
	if cond.Operator == "" {
		return left
	}

	return left + " " + string(cond.Operator) + " " + c.right(cond.Operator, cond.Right)
}

func (c *compiler) right(op query.Operator, e query.Expression) string {
	switch {
	case op.IsBetween():
		if bounds, ok := e.(query.Tuple); ok && len(bounds) == 2 {
			return c.expr(bounds[0]) + " AND " + c.expr(bounds[1])
		}
	case op.IsIn():
		if lit, ok := e.(query.Literal); ok && isSequence(lit.Value) {
			return "(" + sequence(lit.Value, literal) + ")"
		}
	}

	if e == nil {
		return literal(nil)
	}
	return c.expr(e)
}
