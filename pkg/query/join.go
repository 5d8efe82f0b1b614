package query

type (
	// JoinKind is the join type.
	JoinKind string

	// Strictness is ClickHouse's join strictness modifier.
	Strictness string

	// JoinClause describes one JOIN. Exactly one of UsingKeys and OnConditions must be
	// set, except for CROSS joins which take neither. Table is an Identifier or a SubQuery.
	//
	// Example:
	//
	//	query.NewJoin("orders").Any().Left().As("o").Using("user_id")
	//	// ANY LEFT JOIN `orders` AS `o` USING (`user_id`)
	JoinClause struct {
		Kind         JoinKind
		Strictness   Strictness
		Global       bool
		Table        Expression
		Alias        string
		UsingKeys    []Expression
		OnConditions []*Condition
	}
)

const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
	RightJoin JoinKind = "RIGHT"
	FullJoin  JoinKind = "FULL"
	CrossJoin JoinKind = "CROSS"
)

const (
	AnyStrictness  Strictness = "ANY"
	AllStrictness  Strictness = "ALL"
	AsofStrictness Strictness = "ASOF"
	SemiStrictness Strictness = "SEMI"
	AntiStrictness Strictness = "ANTI"
)

// NewJoin starts an INNER join against a table name, an expression or a sub-select
// builder. An empty name or nil leaves the table unset, which fails compilation.
func NewJoin(table any) *JoinClause {
	j := &JoinClause{Kind: InnerJoin}
	switch t := table.(type) {
	case nil:
	case string:
		if t != "" {
			j.Table = Identifier{Name: t}
		}
	case *Builder:
		if t != nil {
			j.Table = SubQuery{Builder: t}
		}
	case Expression:
		j.Table = t
	}
	return j
}

// Type sets the join kind.
func (j *JoinClause) Type(kind JoinKind) *JoinClause {
	j.Kind = kind
	return j
}

func (j *JoinClause) Inner() *JoinClause { return j.Type(InnerJoin) }
func (j *JoinClause) Left() *JoinClause  { return j.Type(LeftJoin) }
func (j *JoinClause) Right() *JoinClause { return j.Type(RightJoin) }
func (j *JoinClause) Full() *JoinClause  { return j.Type(FullJoin) }
func (j *JoinClause) Cross() *JoinClause { return j.Type(CrossJoin) }

// Strict sets the join strictness.
func (j *JoinClause) Strict(s Strictness) *JoinClause {
	j.Strictness = s
	return j
}

func (j *JoinClause) Any() *JoinClause { return j.Strict(AnyStrictness) }
func (j *JoinClause) All() *JoinClause { return j.Strict(AllStrictness) }

// Distributed marks the join GLOBAL.
func (j *JoinClause) Distributed() *JoinClause {
	j.Global = true
	return j
}

// As aliases the joined table.
func (j *JoinClause) As(alias string) *JoinClause {
	j.Alias = alias
	return j
}

// Using appends USING columns.
func (j *JoinClause) Using(columns ...string) *JoinClause {
	for _, c := range columns {
		j.UsingKeys = append(j.UsingKeys, Identifier{Name: c})
	}
	return j
}

// On appends an AND-connected ON comparison between two columns.
func (j *JoinClause) On(left, op, right string) *JoinClause {
	return j.on(And, left, op, right)
}

// OrOn appends an OR-connected ON comparison between two columns.
func (j *JoinClause) OrOn(left, op, right string) *JoinClause {
	return j.on(Or, left, op, right)
}

func (j *JoinClause) on(connector Connector, left, op, right string) *JoinClause {
	operator, ok := ParseOperator(op)
	if !ok {
		operator = Operator(op)
	}

	j.OnConditions = append(j.OnConditions, &Condition{
		Connector: connector,
		Left:      Identifier{Name: left},
		Operator:  operator,
		Right:     Identifier{Name: right},
	})
	return j
}

// builder returns the sub-select of the join, if any.
func (j *JoinClause) builder() *Builder {
	if sub, ok := j.Table.(SubQuery); ok {
		return sub.Builder
	}
	return nil
}
