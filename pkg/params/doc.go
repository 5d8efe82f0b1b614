// Package params implements ClickHouse query parameters: named, typed values that are
// referenced from SQL through `{name:Type}` placeholders and sent to the server out of
// band instead of being interpolated into the statement.
//
// A Registry holds the parameters of one statement. Explicit parameters are bound by
// name, while Auto mints sequential names (p0, p1, …) for bare literals that the query
// builder meets in comparisons:
//
//	reg := params.NewRegistry()
//	p := reg.Auto(42)
//	p.Placeholder()   // {p0:UInt8}
//	reg.Bindings()    // map[p0:42]
//
// Types are inferred by InferType unless given explicitly. Bindings are formatted for
// transport by FormatValue: booleans become "1"/"0" and slices become array literals.
//
// FromPlaceholder parses a placeholder back into a Parameter shell:
//
//	p, ok := params.FromPlaceholder("{id:UInt64}")
package params
