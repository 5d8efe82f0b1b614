package querydef

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/grammar"
	"github.com/pseudomuto/chbuilder/pkg/params"
	"github.com/pseudomuto/chbuilder/pkg/query"
)

// Statement is a compiled Definition.
type Statement struct {
	Kind Kind
	SQL  string

	// Builder is set for select, insert and delete statements.
	Builder *query.Builder
}

// Registry returns the bindings of the statement, nil when it has none.
func (s *Statement) Registry() *params.Registry {
	if s.Builder == nil {
		return nil
	}
	return s.Builder.Registry()
}

// Compile builds and compiles the statement onto b, which is usually query.New() or a
// client's NewQuery(). The cluster of b is used for DDL that doesn't name one.
func (d *Definition) Compile(b *query.Builder) (*Statement, error) {
	kind, err := d.Kind()
	if err != nil {
		return nil, err
	}

	stmt := &Statement{Kind: kind}
	switch kind {
	case SelectKind:
		stmt.Builder = d.Query(b)
		stmt.SQL, err = grammar.CompileSelect(stmt.Builder)
	case InsertKind:
		stmt.Builder = b.Table(d.Insert.Table)
		if len(d.Insert.Rows) == 0 && len(d.Insert.Records) > 0 {
			stmt.SQL, err = grammar.CompileInsertMaps(stmt.Builder, d.Insert.Records)
		} else {
			stmt.SQL, err = grammar.CompileInsert(stmt.Builder, d.Insert.Columns, d.Insert.Rows)
		}
	case DeleteKind:
		stmt.Builder = b.From(d.Delete.Table)
		applyPredicates(d.Delete.Where, stmt.Builder.Where, stmt.Builder.OrWhere)
		stmt.SQL, err = grammar.CompileDelete(stmt.Builder)
	case CreateTableKind:
		t := *d.CreateTable
		if t.Cluster == "" {
			t.Cluster = b.Clauses().Cluster
		}
		stmt.SQL = grammar.CompileCreateTable(t)
	case DropTableKind:
		t := *d.DropTable
		if t.Cluster == "" {
			t.Cluster = b.Clauses().Cluster
		}
		stmt.SQL = grammar.CompileDropTable(t)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile %s statement", kind)
	}
	return stmt, nil
}

// Query applies the SELECT parts of the definition to b.
func (d *Definition) Query(b *query.Builder) *query.Builder {
	if len(d.Params) > 0 {
		b.SetParameters(d.Params)
	}

	for _, item := range d.Select {
		b.AddSelect(item.expression())
	}
	if d.Distinct {
		b.Distinct()
	}

	if d.As != "" {
		b.From(d.From, d.As)
	} else {
		b.From(d.From)
	}
	if d.Final {
		b.Final()
	}

	applyPredicates(d.PreWhere, b.PreWhere, b.OrPreWhere)
	applyPredicates(d.Where, b.Where, b.OrWhere)

	for _, col := range d.GroupBy {
		b.GroupBy(col)
	}
	applyPredicates(d.Having, b.Having, b.OrHaving)

	for _, term := range d.OrderBy {
		if strings.EqualFold(term.Dir, string(query.Desc)) {
			b.OrderByDesc(term.Column)
		} else {
			b.OrderByAsc(term.Column)
		}
	}

	if d.Limit > 0 {
		b.Limit(d.Limit, d.Offset)
	}

	names := make([]string, 0, len(d.Settings))
	for name := range d.Settings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.Settings(name, d.Settings[name])
	}

	if d.Format != "" {
		b.Format(d.Format)
	}
	return b
}

type whereFunc func(args ...any) *query.Builder

func applyPredicates(preds []Predicate, and, or whereFunc) {
	for _, p := range preds {
		fn := and
		if p.Or {
			fn = or
		}
		fn(p.args()...)
	}
}

// args converts the predicate into arguments for Builder.Where.
func (p Predicate) args() []any {
	switch {
	case len(p.Group) > 0:
		group := p.Group
		return []any{func(g *query.Builder) {
			applyPredicates(group, g.Where, g.OrWhere)
		}}
	case p.Raw != "":
		return []any{query.Raw(p.Raw)}
	case p.Column == "":
		// Rejected by Where as an invalid argument.
		return []any{p.Value}
	case p.Op == "":
		return []any{p.Column, p.Value}
	default:
		return []any{p.Column, p.Op, p.Value}
	}
}

func (s SelectItem) expression() any {
	var col *query.Column
	switch {
	case s.Raw != "":
		col = query.ColExpr(query.Raw(s.Raw))
	case s.Column != "":
		col = query.Col(s.Column)
	default:
		return query.Func(s.Func, s.Args...)
	}

	if s.Func != "" {
		col.Func(s.Func, s.Args...)
	}
	if s.As != "" {
		col.As(s.As)
	}
	return col
}
