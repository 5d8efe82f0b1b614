package query

import "strings"

type (
	// Connector joins a condition to the one before it.
	Connector string

	// Operator is a comparison operator.
	Operator string

	// Condition is one node of a WHERE, PREWHERE, HAVING or join ON tree. It is also an
	// Expression, so a comparison can be used as an operand, e.g. inside sumIf or a
	// HAVING clause.
	//
	// Nodes come in three shapes:
	//   - comparison: Left Operator Right
	//   - expression: Left only (raw SQL, function calls, …)
	//   - group: Right is a Group whose conditions are parenthesized
	Condition struct {
		Connector Connector
		Left      Expression
		Operator  Operator
		Right     Expression
	}
)

const (
	And Connector = "AND"
	Or  Connector = "OR"
)

const (
	Eq          Operator = "="
	NotEq       Operator = "!="
	Lt          Operator = "<"
	Lte         Operator = "<="
	Gt          Operator = ">"
	Gte         Operator = ">="
	Like        Operator = "LIKE"
	NotLike     Operator = "NOT LIKE"
	ILike       Operator = "ILIKE"
	In          Operator = "IN"
	NotIn       Operator = "NOT IN"
	GlobalIn    Operator = "GLOBAL IN"
	GlobalNotIn Operator = "GLOBAL NOT IN"
	Between     Operator = "BETWEEN"
	NotBetween  Operator = "NOT BETWEEN"
	Is          Operator = "IS"
	IsNot       Operator = "IS NOT"
)

var operators = map[string]Operator{
	"=":             Eq,
	"==":            Eq,
	"!=":            NotEq,
	"<>":            NotEq,
	"<":             Lt,
	"<=":            Lte,
	">":             Gt,
	">=":            Gte,
	"LIKE":          Like,
	"NOT LIKE":      NotLike,
	"ILIKE":         ILike,
	"IN":            In,
	"NOT IN":        NotIn,
	"GLOBAL IN":     GlobalIn,
	"GLOBAL NOT IN": GlobalNotIn,
	"BETWEEN":       Between,
	"NOT BETWEEN":   NotBetween,
	"IS":            Is,
	"IS NOT":        IsNot,
}

func (*Condition) expression() {}

// ParseOperator normalizes an operator string, e.g. "not in" -> NOT IN.
func ParseOperator(s string) (Operator, bool) {
	op, ok := operators[strings.ToUpper(strings.Join(strings.Fields(s), " "))]
	return op, ok
}

// IsIn reports whether the operator takes a set on its right side.
func (o Operator) IsIn() bool {
	return o == In || o == NotIn || o == GlobalIn || o == GlobalNotIn
}

// IsBetween reports whether the operator takes a range on its right side.
func (o Operator) IsBetween() bool {
	return o == Between || o == NotBetween
}

// IsGroup reports whether the node is a parenthesized group.
func (c *Condition) IsGroup() bool {
	_, ok := c.Right.(Group)
	return ok && c.Left == nil
}

// Compare builds a standalone comparison usable as an expression. A string on the left
// names a column; the right side is inlined as a literal and never parameterized.
//
// Example:
//
//	query.Compare("type", "=", "purchase")  // `type` = 'purchase'
func Compare(left any, op string, right any) *Condition {
	l, ok := column(left)
	if !ok {
		l = literal(left)
	}

	operator, ok := ParseOperator(op)
	if !ok {
		operator = Operator(op)
	}

	return &Condition{Connector: And, Left: l, Operator: operator, Right: literal(right)}
}
