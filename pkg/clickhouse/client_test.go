package clickhouse_test

import (
	"context"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/clickhouse"
	"github.com/pseudomuto/chbuilder/pkg/grammar"
	"github.com/pseudomuto/chbuilder/pkg/query"
	"github.com/stretchr/testify/require"
)

type (
	fakeConn struct {
		statements []string
		contexts   []context.Context
		version    string
		err        error
		closed     bool
	}

	fakeRow struct {
		value string
		err   error
	}
)

func (c *fakeConn) Query(ctx context.Context, sql string, _ ...any) (driver.Rows, error) {
	c.record(ctx, sql)
	return nil, c.err
}

func (c *fakeConn) QueryRow(ctx context.Context, sql string, _ ...any) driver.Row {
	c.record(ctx, sql)
	return &fakeRow{value: c.version, err: c.err}
}

func (c *fakeConn) Exec(ctx context.Context, sql string, _ ...any) error {
	c.record(ctx, sql)
	return c.err
}

func (c *fakeConn) Ping(context.Context) error { return c.err }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func (c *fakeConn) record(ctx context.Context, sql string) {
	c.statements = append(c.statements, sql)
	c.contexts = append(c.contexts, ctx)
}

func (r *fakeRow) Err() error { return r.err }

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.value
	return nil
}

func (r *fakeRow) ScanStruct(any) error { return r.err }

func TestClient_Statements(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{}
	client := clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{Cluster: "main"})

	_, err := client.Select(ctx, client.NewQuery().From("events").Where("id", 42))
	require.NoError(t, err)

	require.NoError(t, client.Insert(ctx, client.NewQuery().Table("events"), []string{"id"}, [][]any{{1}}))
	require.NoError(t, client.InsertMaps(ctx, client.NewQuery().Table("events"), []map[string]any{{"id": 2}}))
	require.NoError(t, client.Delete(ctx, client.NewQuery().From("events").Where("id", 1)))
	require.NoError(t, client.CreateTable(ctx, grammar.CreateTable{
		Name:    "events",
		Columns: []grammar.ColumnDef{{Name: "id", Type: "UInt64"}},
		Engine:  "Memory",
	}))
	require.NoError(t, client.DropTable(ctx, grammar.DropTable{Name: "events", IfExists: true, Cluster: "other"}))
	require.NoError(t, client.Statement(ctx, "OPTIMIZE TABLE `events` FINAL", nil))

	require.Equal(t, []string{
		"SELECT * FROM `events` WHERE `id` = {p0:UInt8}",
		"INSERT INTO `events` (`id`) FORMAT Values (1)",
		"INSERT INTO `events` (`id`) FORMAT Values (2)",
		"ALTER TABLE `events` ON CLUSTER `main` DELETE WHERE `id` = {p0:UInt8}",
		"CREATE TABLE `events` ON CLUSTER `main` (`id` UInt64) ENGINE = Memory",
		"DROP TABLE IF EXISTS `events` ON CLUSTER `other`",
		"OPTIMIZE TABLE `events` FINAL",
	}, conn.statements)

	// statements without bindings keep the caller's context
	require.NotEqual(t, ctx, conn.contexts[0])
	require.Equal(t, ctx, conn.contexts[1])
}

func TestClient_CompileErrors(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{}
	client := clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{})

	_, err := client.Select(ctx, query.New().From("a").Join(query.NewJoin("b")))
	require.ErrorIs(t, err, query.ErrInvalidJoin)

	err = client.Delete(ctx, query.New().From("a"))
	require.ErrorIs(t, err, query.ErrMissingPredicate)

	err = client.Insert(ctx, query.New(), []string{"id"}, [][]any{{1}})
	require.ErrorIs(t, err, query.ErrMissingTable)

	require.Empty(t, conn.statements)
}

func TestClient_ExecErrors(t *testing.T) {
	conn := &fakeConn{err: errors.New("boom")}
	client := clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{})

	err := client.Statement(context.Background(), "SELECT 1", nil)
	require.ErrorContains(t, err, "boom")
}

func TestClient_Transactions(t *testing.T) {
	ctx := context.Background()
	client := clickhouse.NewClientWithConn(&fakeConn{}, clickhouse.ClientOptions{})

	require.ErrorIs(t, client.BeginTransaction(ctx), query.ErrUnsupportedOperation)
	require.ErrorIs(t, client.Commit(ctx), query.ErrUnsupportedOperation)
	require.ErrorIs(t, client.Rollback(ctx), query.ErrUnsupportedOperation)

	_, err := client.TransactionLevel()
	require.ErrorIs(t, err, query.ErrUnsupportedOperation)
}

func TestClient_GetVersion(t *testing.T) {
	conn := &fakeConn{version: "24.3.2.23"}
	client := clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{})

	v, err := client.GetVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, "24.3.2", v.String())
	require.True(t, v.SupportsQueryParameters())
	require.Equal(t, []string{"SELECT version()"}, conn.statements)

	conn.version = "bogus"
	_, err = client.GetVersion(context.Background())
	require.Error(t, err)
}

func TestClient_Close(t *testing.T) {
	conn := &fakeConn{}
	client := clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{})

	require.NoError(t, client.Ping(context.Background()))
	require.NoError(t, client.Close())
	require.True(t, conn.closed)
}

func TestNewClient_InvalidOptions(t *testing.T) {
	_, err := clickhouse.NewClient(context.Background(), clickhouse.ClientOptions{DSN: "://bad"})
	require.ErrorContains(t, err, "invalid ClickHouse DSN")

	_, err = clickhouse.NewClient(context.Background(), clickhouse.ClientOptions{
		TLSSettings: clickhouse.TLSSettings{CAFile: "does-not-exist.crt"},
	})
	require.ErrorContains(t, err, "unable to load CA file")
}
