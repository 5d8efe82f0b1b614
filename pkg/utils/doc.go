// Package utils provides common utility functions used throughout the chbuilder codebase.
//
// # Identifier Utilities (identifier.go)
//
// Consistent back-tick quoting of ClickHouse identifiers. Every dotted segment is quoted
// on its own and the `*` wildcard is passed through:
//
//	utils.BacktickIdentifier("analytics.events")   // `analytics`.`events`
//	utils.BacktickIdentifier("events.*")           // `events`.*
//	utils.BacktickAlias("analytics.events", "e")   // `analytics`.`events` AS `e`
//
// # String Utilities (escape.go)
//
// String literals are single-quoted and escaped with backslashes:
//
//	utils.QuoteString("it's")  // 'it\'s'
//
// # SQLBuilder (sqlbuilder.go)
//
// A small part builder used by the grammar for DDL and mutations:
//
//	utils.NewSQLBuilder().Drop("TABLE").IfExists(true).Name("events").OnCluster("prod").String()
//	// DROP TABLE IF EXISTS `events` ON CLUSTER `prod`
package utils
