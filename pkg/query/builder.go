package query

import (
	"slices"
	"sort"

	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/params"
)

type (
	// Builder is the mutable, structured form of a query. Methods return the receiver so
	// calls can be chained, and the grammar package compiles a Builder into SQL.
	//
	// A Builder and every builder nested inside it (groups, sub-selects, joins, unions)
	// share one parameter Registry, so auto-generated parameter names never collide
	// within a statement. Builders are not safe for concurrent use and must not be
	// mutated while they are being compiled.
	//
	// Example:
	//
	//	b := query.New().
	//		Select("id", query.Col("amount").Sum().As("total")).
	//		From("analytics.orders").
	//		Where("status", "=", "paid").
	//		GroupBy("id").
	//		OrderByDesc("total").
	//		Limit(10)
	Builder struct {
		from      *From
		columns   []Expression
		distinct  bool
		joins     []*JoinClause
		arrayJoin Expression
		preWheres []*Condition
		wheres    []*Condition
		havings   []*Condition
		groups    []Expression
		orders    []Order
		limit     *Limit
		limitBy   *LimitBy
		sample    float64
		unions    []Union
		format    string
		cluster   string
		settings  []Setting
		params    *params.Registry
		err       error
	}

	// From is the FROM target: a table name or a sub-select, optionally aliased.
	From struct {
		Table string
		Alias string
		Final bool
		Sub   *Builder
	}

	// Direction is an ORDER BY direction.
	Direction string

	// Order is one ORDER BY item.
	Order struct {
		Expr      Expression
		Direction Direction
	}

	// Limit is LIMIT [offset,] count.
	Limit struct {
		Count  uint64
		Offset uint64
	}

	// LimitBy is LIMIT count BY columns.
	LimitBy struct {
		Count   uint64
		Columns []Expression
	}

	// Union is a query appended with UNION ALL or UNION DISTINCT.
	Union struct {
		Builder *Builder
		All     bool
	}

	// Setting is one item of the SETTINGS clause.
	Setting struct {
		Name  string
		Value any
	}

	// Clauses is a snapshot of a Builder's state, read by the grammar. Slices are copies,
	// so the snapshot is unaffected by later calls on the builder.
	Clauses struct {
		From      *From
		Columns   []Expression
		Distinct  bool
		Joins     []*JoinClause
		ArrayJoin Expression
		PreWheres []*Condition
		Wheres    []*Condition
		Havings   []*Condition
		Groups    []Expression
		Orders    []Order
		Limit     *Limit
		LimitBy   *LimitBy
		Sample    float64
		Unions    []Union
		Format    string
		Cluster   string
		Settings  []Setting
	}
)

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// New creates an empty Builder with its own parameter Registry.
func New() *Builder {
	return &Builder{params: params.NewRegistry()}
}

// NewQuery creates an empty Builder sharing this builder's Registry. Use it for
// sub-selects, join tables and unions so their parameters belong to this statement.
func (b *Builder) NewQuery() *Builder {
	return &Builder{params: b.params, cluster: b.cluster}
}

// Err returns the first argument error recorded while building.
func (b *Builder) Err() error {
	return b.err
}

// Clauses returns a snapshot of the builder state.
func (b *Builder) Clauses() Clauses {
	c := Clauses{
		Columns:   slices.Clone(b.columns),
		Distinct:  b.distinct,
		Joins:     slices.Clone(b.joins),
		ArrayJoin: b.arrayJoin,
		PreWheres: slices.Clone(b.preWheres),
		Wheres:    slices.Clone(b.wheres),
		Havings:   slices.Clone(b.havings),
		Groups:    slices.Clone(b.groups),
		Orders:    slices.Clone(b.orders),
		Sample:    b.sample,
		Unions:    slices.Clone(b.unions),
		Format:    b.format,
		Cluster:   b.cluster,
		Settings:  slices.Clone(b.settings),
	}

	if b.from != nil {
		from := *b.from
		c.From = &from
	}
	if b.limit != nil {
		limit := *b.limit
		c.Limit = &limit
	}
	if b.limitBy != nil {
		limitBy := *b.limitBy
		c.LimitBy = &limitBy
	}

	return c
}

// Select sets the selected columns. Strings name columns (`*` included), *Column and
// other expressions are used as-is and builders become sub-selects. Without columns the
// query selects `*`.
func (b *Builder) Select(columns ...any) *Builder {
	b.columns = nil
	return b.AddSelect(columns...)
}

// AddSelect appends selected columns.
func (b *Builder) AddSelect(columns ...any) *Builder {
	for _, c := range columns {
		if names, ok := c.([]string); ok {
			for _, name := range names {
				b.columns = append(b.columns, Identifier{Name: name})
			}
			continue
		}

		expr, ok := column(c)
		if !ok {
			b.fail(errors.Wrapf(ErrInvalidArgument, "unsupported column %T", c))
			continue
		}
		b.columns = append(b.columns, b.adoptExpr(expr))
	}
	return b
}

// Distinct turns the query into SELECT DISTINCT.
func (b *Builder) Distinct() *Builder {
	b.distinct = true
	return b
}

// From sets the FROM table with an optional alias.
func (b *Builder) From(table string, alias ...string) *Builder {
	b.from = &From{Table: table}
	if len(alias) > 0 {
		b.from.Alias = alias[0]
	}
	return b
}

// Table is From without an alias. It reads better for INSERT and DELETE.
func (b *Builder) Table(table string) *Builder {
	return b.From(table)
}

// FromSub selects from a derived table. sub is adopted into this builder's Registry.
func (b *Builder) FromSub(sub *Builder, alias string) *Builder {
	b.from = &From{Sub: sub, Alias: alias}
	if sub != nil {
		b.adopt(sub)
	}
	return b
}

// Final adds the FINAL modifier to the FROM table.
func (b *Builder) Final() *Builder {
	if b.from == nil {
		b.from = &From{}
	}
	b.from.Final = true
	return b
}

// Sample adds SAMPLE ratio.
func (b *Builder) Sample(ratio float64) *Builder {
	b.sample = ratio
	return b
}

// ArrayJoin adds ARRAY JOIN for an array column.
func (b *Builder) ArrayJoin(col any) *Builder {
	expr, ok := column(col)
	if !ok {
		return b.fail(errors.Wrapf(ErrInvalidArgument, "unsupported array join %T", col))
	}
	b.arrayJoin = b.adoptExpr(expr)
	return b
}

// Join appends a join clause. A sub-select table is adopted into this builder's
// Registry.
func (b *Builder) Join(j *JoinClause) *Builder {
	if j == nil {
		return b.fail(errors.Wrap(ErrInvalidJoin, "nil join"))
	}

	if sub := j.builder(); sub != nil {
		b.adopt(sub)
	}
	b.joins = append(b.joins, j)
	return b
}

// InnerJoin joins table USING the given columns.
func (b *Builder) InnerJoin(table any, using ...string) *Builder {
	return b.Join(NewJoin(table).Inner().Using(using...))
}

// LeftJoin left joins table USING the given columns.
func (b *Builder) LeftJoin(table any, using ...string) *Builder {
	return b.Join(NewJoin(table).Left().Using(using...))
}

// AnyLeftJoin joins table with ANY LEFT strictness USING the given columns.
func (b *Builder) AnyLeftJoin(table any, using ...string) *Builder {
	return b.Join(NewJoin(table).Any().Left().Using(using...))
}

// GlobalJoin joins a distributed table with GLOBAL USING the given columns.
func (b *Builder) GlobalJoin(table any, kind JoinKind, using ...string) *Builder {
	return b.Join(NewJoin(table).Type(kind).Distributed().Using(using...))
}

// JoinOn joins table ON a single column comparison.
//
// Example:
//
//	b.JoinOn("orders", query.LeftJoin, "users.id", "=", "orders.user_id")
func (b *Builder) JoinOn(table any, kind JoinKind, left, op, right string) *Builder {
	return b.Join(NewJoin(table).Type(kind).On(left, op, right))
}

// GroupBy sets GROUP BY columns. `*` means no explicit grouping.
func (b *Builder) GroupBy(columns ...any) *Builder {
	for _, c := range columns {
		expr, ok := column(c)
		if !ok {
			b.fail(errors.Wrapf(ErrInvalidArgument, "unsupported group by %T", c))
			continue
		}
		b.groups = append(b.groups, b.adoptExpr(expr))
	}
	return b
}

// OrderBy appends an ORDER BY item.
func (b *Builder) OrderBy(col any, dir Direction) *Builder {
	expr, ok := column(col)
	if !ok {
		return b.fail(errors.Wrapf(ErrInvalidArgument, "unsupported order by %T", col))
	}

	if dir != Desc {
		dir = Asc
	}
	b.orders = append(b.orders, Order{Expr: b.adoptExpr(expr), Direction: dir})
	return b
}

// OrderByAsc appends an ascending ORDER BY item.
func (b *Builder) OrderByAsc(col any) *Builder { return b.OrderBy(col, Asc) }

// OrderByDesc appends a descending ORDER BY item.
func (b *Builder) OrderByDesc(col any) *Builder { return b.OrderBy(col, Desc) }

// Limit sets LIMIT count with an optional offset.
func (b *Builder) Limit(count uint64, offset ...uint64) *Builder {
	b.limit = &Limit{Count: count}
	if len(offset) > 0 {
		b.limit.Offset = offset[0]
	}
	return b
}

// LimitBy sets LIMIT count BY columns.
func (b *Builder) LimitBy(count uint64, columns ...any) *Builder {
	lb := &LimitBy{Count: count}
	for _, c := range columns {
		expr, ok := column(c)
		if !ok {
			return b.fail(errors.Wrapf(ErrInvalidArgument, "unsupported limit by %T", c))
		}
		lb.Columns = append(lb.Columns, b.adoptExpr(expr))
	}
	b.limitBy = lb
	return b
}

// UnionAll appends other with UNION ALL.
func (b *Builder) UnionAll(other *Builder) *Builder {
	return b.union(other, true)
}

// UnionDistinct appends other with UNION DISTINCT.
func (b *Builder) UnionDistinct(other *Builder) *Builder {
	return b.union(other, false)
}

func (b *Builder) union(other *Builder, all bool) *Builder {
	if other == nil {
		return b.fail(errors.Wrap(ErrInvalidArgument, "nil union"))
	}

	b.adopt(other)
	b.unions = append(b.unions, Union{Builder: other, All: all})
	return b
}

// Format sets the output FORMAT, e.g. JSONEachRow.
func (b *Builder) Format(format string) *Builder {
	b.format = format
	return b
}

// OnCluster sets the cluster used by DDL and mutations.
func (b *Builder) OnCluster(cluster string) *Builder {
	b.cluster = cluster
	return b
}

// Settings appends a SETTINGS item.
func (b *Builder) Settings(name string, value any) *Builder {
	b.settings = append(b.settings, Setting{Name: name, Value: value})
	return b
}

// Registry returns the shared parameter registry.
func (b *Builder) Registry() *params.Registry {
	return b.params
}

// Bind binds a named parameter, inferring its type.
func (b *Builder) Bind(name string, value any) *Builder {
	b.params.Bind(name, value)
	return b
}

// BindTyped binds a named parameter with an explicit type.
func (b *Builder) BindTyped(name string, value any, typ string) *Builder {
	b.params.BindTyped(name, value, typ)
	return b
}

// SetParameters binds every entry of values, in name order.
func (b *Builder) SetParameters(values map[string]any) *Builder {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.params.Bind(name, values[name])
	}
	return b
}

// AddParameter registers a caller-built parameter.
func (b *Builder) AddParameter(p *params.Parameter) *Builder {
	b.params.Add(p)
	return b
}

// ClearParameters drops every parameter and resets auto-naming.
func (b *Builder) ClearParameters() *Builder {
	b.params.Clear()
	return b
}

// Parameters returns the parameters in registration order.
func (b *Builder) Parameters() []*params.Parameter {
	return b.params.Parameters()
}

// Bindings returns the name to value map sent alongside the compiled SQL.
func (b *Builder) Bindings() map[string]any {
	return b.params.Bindings()
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// adoptExpr adopts every builder nested in e, however deep in the expression tree.
func (b *Builder) adoptExpr(e Expression) Expression {
	eachBuilder(e, b.adopt)
	return e
}

// adopt moves child, and everything nested in it, onto this builder's Registry. A child
// created through NewQuery already shares it and is left alone.
func (b *Builder) adopt(child *Builder) {
	if child == b || child.params == b.params {
		return
	}

	old := child.params
	b.params.Merge(old)
	child.walk(func(n *Builder) {
		if n.params == old {
			n.params = b.params
		}
	})

	if b.err == nil && child.err != nil {
		b.err = child.err
	}
}

// walk calls fn for b and every builder nested in it.
func (b *Builder) walk(fn func(*Builder)) {
	fn(b)

	if b.from != nil && b.from.Sub != nil {
		b.from.Sub.walk(fn)
	}
	for _, c := range b.columns {
		walkExpr(c, fn)
	}
	walkExpr(b.arrayJoin, fn)
	for _, j := range b.joins {
		if sub := j.builder(); sub != nil {
			sub.walk(fn)
		}
	}
	for _, tree := range [][]*Condition{b.preWheres, b.wheres, b.havings} {
		for _, c := range tree {
			walkExpr(c.Left, fn)
			walkExpr(c.Right, fn)
		}
	}
	for _, g := range b.groups {
		walkExpr(g, fn)
	}
	for _, o := range b.orders {
		walkExpr(o.Expr, fn)
	}
	if b.limitBy != nil {
		for _, c := range b.limitBy.Columns {
			walkExpr(c, fn)
		}
	}
	for _, u := range b.unions {
		u.Builder.walk(fn)
	}
}

func walkExpr(e Expression, fn func(*Builder)) {
	eachBuilder(e, func(sub *Builder) { sub.walk(fn) })
}

// eachBuilder calls fn for the outermost builders of e. It doesn't descend into them.
func eachBuilder(e Expression, fn func(*Builder)) {
	switch v := e.(type) {
	case Group:
		if v.Builder != nil {
			fn(v.Builder)
		}
	case SubQuery:
		if v.Builder != nil {
			fn(v.Builder)
		}
	case Tuple:
		for _, el := range v {
			eachBuilder(el, fn)
		}
	case FunctionCall:
		for _, arg := range v.Args {
			eachBuilder(arg, fn)
		}
	case BinaryOp:
		eachBuilder(v.Left, fn)
		eachBuilder(v.Right, fn)
	case Distinct:
		eachBuilder(v.Inner, fn)
	case *Column:
		if v != nil {
			eachBuilder(v.expr, fn)
		}
	case *Condition:
		if v != nil {
			eachBuilder(v.Left, fn)
			eachBuilder(v.Right, fn)
		}
	}
}
