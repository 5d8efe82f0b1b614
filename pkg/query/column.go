package query

// Column is a small DSL for nested function and arithmetic expressions. Every method
// wraps the current expression and returns the same column, so calls read inside out:
//
//	query.Col("amount").Sum().Round(2).As("total")
//	// round(sum(`amount`), 2) AS `total`
//
//	query.Col("price").Multiply(query.Col("qty")).Plus(5)
//	// (`price` * `qty`) + 5
//
// Values passed to the DSL are inlined as literals and never parameterized.
type Column struct {
	expr  Expression
	alias string
}

func (*Column) expression() {}

// Col starts a column expression from a (possibly dotted) column name.
func Col(name string) *Column {
	return &Column{expr: Identifier{Name: name}}
}

// ColExpr starts a column expression from an arbitrary expression.
func ColExpr(e Expression) *Column {
	return &Column{expr: e}
}

// Expr returns the wrapped expression without its alias.
func (c *Column) Expr() Expression { return c.expr }

// Alias returns the alias, if any.
func (c *Column) Alias() string { return c.alias }

// As sets the alias used when the column is selected.
func (c *Column) As(alias string) *Column {
	c.alias = alias
	return c
}

// Func wraps the current expression in name(expr, args…).
func (c *Column) Func(name string, args ...any) *Column {
	fn := FunctionCall{Name: name, Args: make([]Expression, 0, len(args)+1)}
	fn.Args = append(fn.Args, c.expr)
	for _, arg := range args {
		fn.Args = append(fn.Args, literal(arg))
	}

	c.expr = fn
	return c
}

// Distinct prefixes the expression with DISTINCT, e.g. count(DISTINCT `user_id`).
func (c *Column) Distinct() *Column {
	c.expr = Distinct{Inner: c.expr}
	return c
}

func (c *Column) Sum() *Column               { return c.Func("sum") }
func (c *Column) Count() *Column             { return c.Func("count") }
func (c *Column) Avg() *Column               { return c.Func("avg") }
func (c *Column) Min() *Column               { return c.Func("min") }
func (c *Column) Max() *Column               { return c.Func("max") }
func (c *Column) Uniq() *Column              { return c.Func("uniq") }
func (c *Column) RunningDifference() *Column { return c.Func("runningDifference") }
func (c *Column) ArrayJoin() *Column         { return c.Func("arrayJoin") }

// Round wraps the expression in round(expr, decimals).
func (c *Column) Round(decimals int) *Column {
	return c.Func("round", decimals)
}

// SumIf wraps the expression in sumIf(expr, cond).
//
//	query.Col("amount").SumIf(query.Compare("type", "=", "purchase"))
//	// sumIf(`amount`, `type` = 'purchase')
func (c *Column) SumIf(cond *Condition) *Column {
	return c.Func("sumIf", cond)
}

// Plus, Minus, Multiply and Divide build arithmetic. A string operand names a column,
// anything else is inlined as a literal.
func (c *Column) Plus(v any) *Column     { return c.arithmetic("+", v) }
func (c *Column) Minus(v any) *Column    { return c.arithmetic("-", v) }
func (c *Column) Multiply(v any) *Column { return c.arithmetic("*", v) }
func (c *Column) Divide(v any) *Column   { return c.arithmetic("/", v) }

func (c *Column) arithmetic(op string, v any) *Column {
	var right Expression
	if name, ok := v.(string); ok {
		right = Identifier{Name: name}
	} else {
		right = literal(v)
	}

	c.expr = BinaryOp{Op: op, Left: c.expr, Right: right}
	return c
}
