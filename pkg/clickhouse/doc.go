// Package clickhouse runs compiled query builders against a ClickHouse server.
//
// The Client compiles builders with the grammar package and sends every binding as a
// server side query parameter through clickhouse-go, so the SQL text only carries
// {name:Type} placeholders. DDL statements pick up the configured cluster
// automatically.
//
// Example usage:
//
//	client, err := clickhouse.NewClient(ctx, clickhouse.ClientOptions{
//		Addr:     []string{"localhost:9000"},
//		Database: "analytics",
//		Cluster:  "main",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	b := client.NewQuery().
//		Select("id", "name").
//		From("users").
//		Where("country", "CA")
//
//	rows, err := client.Select(ctx, b)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rows.Close()
//
// ClickHouse has no multi-statement transactions; the transaction methods exist so
// callers written against transactional stores fail loudly with
// query.ErrUnsupportedOperation.
package clickhouse
