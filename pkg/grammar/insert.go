package grammar

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/query"
	"github.com/pseudomuto/chbuilder/pkg/utils"
)

// CompileInsert compiles an INSERT of rows into the table named by b's FROM clause.
// Values are inlined with Wrap: strings are quoted, nil is written as null and raw
// expressions pass through. Slices are written as arrays.
//
// Example:
//
//	grammar.CompileInsert(query.New().Table("events"), []string{"id", "name"}, [][]any{{1, "a"}})
//	// INSERT INTO `events` (`id`, `name`) FORMAT Values (1, 'a')
func CompileInsert(b *query.Builder, columns []string, rows [][]any) (string, error) {
	table, err := targetTable(b)
	if err != nil {
		return "", err
	}

	if len(columns) == 0 {
		return "", errors.Wrap(query.ErrInvalidArgument, "insert needs at least one column")
	}
	if len(rows) == 0 {
		return "", errors.Wrap(query.ErrInvalidArgument, "insert needs at least one row")
	}

	cols := make([]string, len(columns))
	for i, col := range columns {
		cols[i] = utils.BacktickIdentifier(col)
	}

	values := make([]string, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", errors.Wrapf(query.ErrInvalidArgument, "row %d has %d values, expected %d", i, len(row), len(columns))
		}

		fields := make([]string, len(row))
		for j, v := range row {
			fields[j] = value(v)
		}
		values[i] = "(" + strings.Join(fields, ", ") + ")"
	}

	return "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") FORMAT Values " + strings.Join(values, ", "), nil
}

// CompileInsertMaps is CompileInsert for rows keyed by column name. Columns are the
// sorted keys of the first row; keys missing from later rows are inserted as null.
func CompileInsertMaps(b *query.Builder, rows []map[string]any) (string, error) {
	if len(rows) == 0 {
		return "", errors.Wrap(query.ErrInvalidArgument, "insert needs at least one row")
	}

	columns := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(columns))
		for j, col := range columns {
			values[i][j] = row[col]
		}
	}

	return CompileInsert(b, columns, values)
}

// value renders an insert value. Sequences are written as array literals.
func value(v any) string {
	if isSequence(v) {
		return literal(v)
	}
	return Wrap(v)
}

// targetTable returns the quoted table of an INSERT or DELETE.
func targetTable(b *query.Builder) (string, error) {
	if err := b.Err(); err != nil {
		return "", err
	}

	from := b.Clauses().From
	if from == nil || from.Table == "" {
		return "", errors.Wrap(query.ErrMissingTable, "statement needs a target table")
	}
	return utils.BacktickIdentifier(from.Table), nil
}
