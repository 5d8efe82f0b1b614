// Package grammar compiles query builders into ClickHouse SQL.
//
// Compilation is a pure function of a builder's state: it performs no I/O and does not
// mutate the builder, so compiling the same builder twice gives the same SQL and the
// same bindings. Every statement kind has its own entry point:
//
//   - CompileSelect for SELECT queries, including joins, sub-selects and unions
//   - CompileInsert and CompileInsertMaps for INSERT … FORMAT Values
//   - CompileDelete for ALTER TABLE … DELETE mutations
//   - CompileCreateTable and CompileDropTable for table DDL
//
// Values are quoted by Wrap, which classifies its input as raw SQL, an identifier, a
// literal or a sequence. Values of any other shape wrap to an empty string.
//
// Validation failures abort the whole statement and are reported with the sentinel
// errors of the query package:
//
//	sql, err := grammar.CompileDelete(b)
//	if errors.Is(err, query.ErrMissingPredicate) {
//		// refuse to delete every row
//	}
package grammar
