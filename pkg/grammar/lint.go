package grammar

import (
	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"
	"github.com/pkg/errors"
)

// Lint parses compiled SQL with an independent ClickHouse parser and reports statements
// it cannot parse. It is a sanity check for generated SQL, not a semantic validation.
func Lint(sql string) error {
	stmts, err := aftership.NewParser(sql).ParseStmts()
	if err != nil {
		return errors.Wrap(err, "failed to parse compiled SQL")
	}

	if len(stmts) == 0 {
		return errors.New("no statement found")
	}
	return nil
}
