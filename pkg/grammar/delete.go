package grammar

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/query"
	"github.com/pseudomuto/chbuilder/pkg/utils"
)

// CompileDelete compiles b into a DELETE mutation. A WHERE clause is required, there is
// no way to delete every row of a table through the builder.
//
// Example:
//
//	grammar.CompileDelete(query.New().From("events").Where("id", 1))
//	// ALTER TABLE `events` DELETE WHERE `id` = {p0:UInt8}
func CompileDelete(b *query.Builder) (string, error) {
	table, err := targetTable(b)
	if err != nil {
		return "", err
	}

	cl := b.Clauses()
	c := &compiler{}
	where := c.conditions(cl.Wheres)
	if c.err != nil {
		return "", c.err
	}
	if where == "" {
		return "", errors.Wrapf(query.ErrMissingPredicate, "delete from %s", table)
	}

	return utils.NewSQLBuilder().
		Alter("TABLE").
		Raw(table).
		OnCluster(cl.Cluster).
		Raw("DELETE WHERE " + where).
		String(), nil
}
