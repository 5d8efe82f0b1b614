// Package query provides the structured model of a ClickHouse query.
//
// A Builder collects the clauses of a statement (columns, FROM, joins, conditions,
// grouping, ordering, limits, unions) as typed Expression nodes. It never produces
// SQL itself: the grammar package compiles a Builder into a statement string.
//
// Values compared against columns are parameterized. Each plain value given to Where
// and friends is registered in the builder's params.Registry under an auto-generated
// name (p0, p1, …) and rendered as a typed placeholder such as {p0:UInt8}. Values used
// inside the expression DSL (Col, Func, Compare) are inlined as literals.
//
// Example:
//
//	b := query.New().
//		Select("user_id", query.Col("amount").Sum().As("total")).
//		From("analytics.orders").
//		Where("status", "paid").
//		Where(func(q *query.Builder) {
//			q.Where("country", "CA").OrWhere("country", "US")
//		}).
//		GroupBy("user_id").
//		Limit(10)
//
//	sql, err := grammar.CompileSelect(b)
//	// SELECT `user_id`, sum(`amount`) AS `total` FROM `analytics`.`orders`
//	// WHERE `status` = {p0:String} AND (`country` = {p1:String} OR `country` = {p2:String})
//	// GROUP BY `user_id` LIMIT 10
package query
