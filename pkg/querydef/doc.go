// Package querydef decodes statements written in YAML into query builders.
//
// A definition describes one statement: a SELECT using the top level keys, or one of
// insert, delete, create_table or drop_table. Comparison values are bound as query
// parameters exactly as if the builder had been used directly.
//
//	def, err := querydef.LoadFile("daily_totals.yaml")
//	if err != nil {
//		return err
//	}
//
//	stmt, err := def.Compile(query.New())
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(stmt.SQL, stmt.Registry().Bindings())
package querydef
