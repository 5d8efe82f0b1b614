package utils

import "strings"

// SQLBuilder provides a fluent interface for assembling ClickHouse DDL and mutation
// statements out of space separated parts. It handles cluster injection, identifier
// backticking and conditional clauses so the grammar doesn't have to.
//
// Example usage:
//
//	sql := NewSQLBuilder().
//		Create("TABLE").
//		IfNotExists().
//		Name("analytics.events").
//		OnCluster("production").
//		Raw("(`id` UInt64)").
//		Engine("MergeTree() ORDER BY id").
//		String()
//	// Output: CREATE TABLE IF NOT EXISTS `analytics`.`events` ON CLUSTER `production` (`id` UInt64) ENGINE = MergeTree() ORDER BY id
type SQLBuilder struct {
	parts []string
}

// NewSQLBuilder creates a new SQLBuilder instance.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{
		parts: make([]string, 0, 10),
	}
}

// Create adds a CREATE clause with the specified object type.
//
// Example:
//
//	builder.Create("TABLE")     // CREATE TABLE
func (b *SQLBuilder) Create(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "CREATE", objectType)
	return b
}

// Drop adds a DROP clause with the specified object type.
//
// Example:
//
//	builder.Drop("TABLE")       // DROP TABLE
func (b *SQLBuilder) Drop(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "DROP", objectType)
	return b
}

// Alter adds an ALTER clause with the specified object type.
//
// Example:
//
//	builder.Alter("TABLE")      // ALTER TABLE
func (b *SQLBuilder) Alter(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "ALTER", objectType)
	return b
}

// IfExists adds an IF EXISTS clause when cond is true. This should be called after
// DROP operations.
//
// Example:
//
//	builder.Drop("TABLE").IfExists(true)  // DROP TABLE IF EXISTS
func (b *SQLBuilder) IfExists(cond bool) *SQLBuilder {
	if cond {
		b.parts = append(b.parts, "IF", "EXISTS")
	}
	return b
}

// IfNotExists adds an IF NOT EXISTS clause when cond is true. This should be called
// after CREATE operations.
//
// Example:
//
//	builder.Create("TABLE").IfNotExists(true)  // CREATE TABLE IF NOT EXISTS
func (b *SQLBuilder) IfNotExists(cond bool) *SQLBuilder {
	if cond {
		b.parts = append(b.parts, "IF", "NOT", "EXISTS")
	}
	return b
}

// Name adds a backticked object name.
//
// Example:
//
//	builder.Name("analytics")           // `analytics`
//	builder.Name("db.table")            // `db`.`table`
func (b *SQLBuilder) Name(name string) *SQLBuilder {
	if name != "" {
		b.parts = append(b.parts, BacktickIdentifier(name))
	}
	return b
}

// OnCluster adds an ON CLUSTER clause if cluster is not empty.
//
// Example:
//
//	builder.OnCluster("production")  // ON CLUSTER `production`
//	builder.OnCluster("")            // (nothing added)
func (b *SQLBuilder) OnCluster(cluster string) *SQLBuilder {
	if cluster != "" {
		b.parts = append(b.parts, "ON", "CLUSTER", BacktickIdentifier(cluster))
	}
	return b
}

// Engine adds an ENGINE clause with the specified engine definition.
//
// Example:
//
//	builder.Engine("Memory")                       // ENGINE = Memory
//	builder.Engine("MergeTree() ORDER BY id")      // ENGINE = MergeTree() ORDER BY id
func (b *SQLBuilder) Engine(engine string) *SQLBuilder {
	if engine != "" {
		b.parts = append(b.parts, "ENGINE", "=", engine)
	}
	return b
}

// Raw adds raw SQL text to the builder. Use sparingly for complex constructs
// that don't fit the fluent pattern.
//
// Example:
//
//	builder.Raw("DELETE WHERE")  // DELETE WHERE
func (b *SQLBuilder) Raw(sql string) *SQLBuilder {
	if sql != "" {
		b.parts = append(b.parts, sql)
	}
	return b
}

// String builds and returns the final SQL statement. Statements are sent one at a time,
// so no terminating semicolon is added.
//
// Example:
//
//	sql := builder.Drop("TABLE").Name("test").String()
//	// Returns: "DROP TABLE `test`"
func (b *SQLBuilder) String() string {
	return strings.Join(b.parts, " ")
}
