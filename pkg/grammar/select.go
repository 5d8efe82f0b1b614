package grammar

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/query"
	"github.com/pseudomuto/chbuilder/pkg/utils"
)

// CompileSelect compiles b into a SELECT statement. Clauses are emitted in the order
//
//	SELECT [DISTINCT] cols FROM t [FINAL] [SAMPLE r] [ARRAY JOIN c] [joins]
//	[PREWHERE …] [WHERE …] [GROUP BY …] [HAVING …] [ORDER BY …]
//	[LIMIT n BY …] [LIMIT o, n] [SETTINGS …] [UNION ALL|DISTINCT …] [FORMAT f]
//
// and empty clauses are omitted. Nothing is returned on error.
func CompileSelect(b *query.Builder) (string, error) {
	c := &compiler{}
	sql := c.query(b)

	if format := b.Clauses().Format; format != "" {
		sql += " FORMAT " + format
	}

	if c.err != nil {
		return "", c.err
	}
	return sql, nil
}

// query compiles a select and its unions without the FORMAT clause, which only applies
// to the outermost statement.
func (c *compiler) query(b *query.Builder) string {
	sql := c.selectBody(b)
	for _, u := range b.Clauses().Unions {
		keyword := " UNION DISTINCT "
		if u.All {
			keyword = " UNION ALL "
		}
		sql += keyword + c.query(u.Builder)
	}
	return sql
}

func (c *compiler) selectBody(b *query.Builder) string {
	if err := b.Err(); err != nil {
		c.fail(err)
		return ""
	}

	cl := b.Clauses()
	parts := []string{"SELECT"}
	if cl.Distinct {
		parts = append(parts, "DISTINCT")
	}
	parts = append(parts, c.columns(cl.Columns))

	if cl.From != nil {
		parts = append(parts, c.from(cl.From))
	}
	if cl.Sample > 0 {
		parts = append(parts, "SAMPLE "+utils.FormatNumber(cl.Sample))
	}
	if cl.ArrayJoin != nil {
		parts = append(parts, "ARRAY JOIN "+c.expr(cl.ArrayJoin))
	}
	for _, j := range cl.Joins {
		parts = append(parts, c.join(j))
	}
	if where := c.conditions(cl.PreWheres); where != "" {
		parts = append(parts, "PREWHERE "+where)
	}
	if where := c.conditions(cl.Wheres); where != "" {
		parts = append(parts, "WHERE "+where)
	}
	if groups := c.groupBy(cl.Groups); groups != "" {
		parts = append(parts, "GROUP BY "+groups)
	}
	if having := c.conditions(cl.Havings); having != "" {
		parts = append(parts, "HAVING "+having)
	}
	if len(cl.Orders) > 0 {
		parts = append(parts, "ORDER BY "+c.orderBy(cl.Orders))
	}
	if cl.LimitBy != nil && len(cl.LimitBy.Columns) > 0 {
		parts = append(parts, "LIMIT "+utils.FormatNumber(cl.LimitBy.Count)+" BY "+c.list(cl.LimitBy.Columns))
	}
	if cl.Limit != nil {
		parts = append(parts, limit(cl.Limit))
	}
	if len(cl.Settings) > 0 {
		parts = append(parts, "SETTINGS "+settings(cl.Settings))
	}

	return strings.Join(parts, " ")
}

func (c *compiler) columns(cols []query.Expression) string {
	if len(cols) == 0 {
		return "*"
	}

	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = c.selectColumn(col)
	}
	return strings.Join(parts, ", ")
}

func (c *compiler) from(f *query.From) string {
	var sql string
	switch {
	case f.Sub != nil:
		sql = "(" + c.query(f.Sub) + ")"
		if f.Alias != "" {
			sql += " AS " + utils.BacktickIdentifier(f.Alias)
		}
	case f.Table != "":
		sql = utils.BacktickAlias(f.Table, f.Alias)
	default:
		c.fail(errors.Wrap(query.ErrInvalidFrom, "FROM needs a table or a sub-select"))
		return ""
	}

	if f.Final {
		sql += " FINAL"
	}
	return "FROM " + sql
}

func (c *compiler) join(j *query.JoinClause) string {
	if j == nil {
		c.fail(errors.Wrap(query.ErrInvalidJoin, "nil join"))
		return ""
	}

	var table string
	switch t := j.Table.(type) {
	case query.Identifier:
		if t.Name == "" {
			break
		}
		table = utils.BacktickIdentifier(t.Name)
	case query.SubQuery:
		if t.Builder == nil {
			break
		}
		table = "(" + c.query(t.Builder) + ")"
	case nil:
	default:
		table = c.expr(t)
	}

	if table == "" {
		c.fail(errors.Wrap(query.ErrInvalidJoin, "join has no table"))
		return ""
	}
	if len(j.UsingKeys) > 0 && len(j.OnConditions) > 0 {
		c.fail(errors.Wrapf(query.ErrAmbiguousJoin, "join on %s sets both USING and ON", table))
		return ""
	}
	if len(j.UsingKeys) == 0 && len(j.OnConditions) == 0 && j.Kind != query.CrossJoin {
		c.fail(errors.Wrapf(query.ErrInvalidJoin, "join on %s needs USING or ON", table))
		return ""
	}

	parts := make([]string, 0, 8)
	if j.Global {
		parts = append(parts, "GLOBAL")
	}
	if j.Strictness != "" {
		parts = append(parts, string(j.Strictness))
	}

	kind := j.Kind
	if kind == "" {
		kind = query.InnerJoin
	}
	parts = append(parts, string(kind), "JOIN", table)

	alias := j.Alias
	if sub, ok := j.Table.(query.SubQuery); ok && alias == "" {
		alias = sub.Alias
	}
	if alias != "" {
		parts = append(parts, "AS", utils.BacktickIdentifier(alias))
	}

	switch {
	case len(j.UsingKeys) > 0:
		parts = append(parts, "USING", "("+c.list(j.UsingKeys)+")")
	case len(j.OnConditions) > 0:
		parts = append(parts, "ON", c.conditions(j.OnConditions))
	}

	return strings.Join(parts, " ")
}

// groupBy returns "" when there is no explicit grouping, including GROUP BY *.
func (c *compiler) groupBy(groups []query.Expression) string {
	explicit := make([]query.Expression, 0, len(groups))
	for _, g := range groups {
		if id, ok := g.(query.Identifier); ok && id.IsWildcard() {
			continue
		}
		explicit = append(explicit, g)
	}
	return c.list(explicit)
}

func (c *compiler) orderBy(orders []query.Order) string {
	parts := make([]string, len(orders))
	for i, o := range orders {
		dir := o.Direction
		if dir == "" {
			dir = query.Asc
		}
		parts[i] = c.expr(o.Expr) + " " + string(dir)
	}
	return strings.Join(parts, ", ")
}

func limit(l *query.Limit) string {
	if l.Offset > 0 {
		return "LIMIT " + utils.FormatNumber(l.Offset) + ", " + utils.FormatNumber(l.Count)
	}
	return "LIMIT " + utils.FormatNumber(l.Count)
}

func settings(items []query.Setting) string {
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = s.Name + " = " + Wrap(s.Value)
	}
	return strings.Join(parts, ", ")
}
