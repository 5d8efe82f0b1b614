package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/clickhouse"
	"github.com/stretchr/testify/require"
)

type (
	fakeConn struct {
		statements []string
		version    string
		rows       *fakeRows
		err        error
	}

	fakeRow struct {
		value string
	}

	fakeRows struct {
		columns []string
		values  [][]any
		pos     int
	}

	fakeColumn struct {
		name string
		typ  reflect.Type
	}
)

func (c *fakeConn) Query(_ context.Context, sql string, _ ...any) (driver.Rows, error) {
	c.statements = append(c.statements, sql)
	return c.rows, c.err
}

func (c *fakeConn) QueryRow(_ context.Context, sql string, _ ...any) driver.Row {
	return &fakeRow{value: c.version}
}

func (c *fakeConn) Exec(_ context.Context, sql string, _ ...any) error {
	c.statements = append(c.statements, sql)
	return c.err
}

func (c *fakeConn) Ping(context.Context) error { return nil }

func (c *fakeConn) Close() error { return nil }

func (r *fakeRow) Err() error { return nil }

func (r *fakeRow) Scan(dest ...any) error {
	*dest[0].(*string) = r.value
	return nil
}

func (r *fakeRow) ScanStruct(any) error { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.values)
}

func (r *fakeRows) Scan(dest ...any) error {
	for i, v := range r.values[r.pos-1] {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func (r *fakeRows) ColumnTypes() []driver.ColumnType {
	types := make([]driver.ColumnType, len(r.columns))
	for i, name := range r.columns {
		types[i] = &fakeColumn{name: name, typ: reflect.TypeOf(r.values[0][i])}
	}
	return types
}

func (r *fakeRows) ScanStruct(any) error { return nil }
func (r *fakeRows) Totals(...any) error  { return nil }
func (r *fakeRows) Columns() []string    { return r.columns }
func (r *fakeRows) Close() error         { return nil }
func (r *fakeRows) Err() error           { return nil }

func (c *fakeColumn) Name() string             { return c.name }
func (c *fakeColumn) Nullable() bool           { return false }
func (c *fakeColumn) ScanType() reflect.Type   { return c.typ }
func (c *fakeColumn) DatabaseTypeName() string { return c.typ.String() }

func testLogger(logs *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(logs, nil))
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("select prints rows", func(t *testing.T) {
		var out, logs bytes.Buffer
		conn := &fakeConn{
			version: "24.8.1.1",
			rows: &fakeRows{
				columns: []string{"type", "total"},
				values:  [][]any{{"purchase", uint64(3)}, {"view", uint64(10)}},
			},
		}

		def := writeFile(t, dir, "select.yaml", `
select: [type, {column: id, func: count, as: total}]
from: events
where: [{column: amount, op: ">", value: 10}]
group_by: [type]
`)

		require.NoError(t, execute(ctx, testLogger(&logs), clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{}), def, &out))
		require.Equal(t, "type\ttotal\npurchase\t3\nview\t10\n", out.String())
		require.Equal(t, []string{
			"SELECT `type`, count(`id`) AS `total` FROM `events` WHERE `amount` > {p0:UInt8} GROUP BY `type`",
		}, conn.statements)
		require.Contains(t, logs.String(), "Query executed")
		require.NotContains(t, logs.String(), "may not support query parameters")
	})

	t.Run("statements run with the client cluster", func(t *testing.T) {
		var out, logs bytes.Buffer
		conn := &fakeConn{version: "24.8.1.1"}
		client := clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{Cluster: "main"})

		def := writeFile(t, dir, "delete.yaml", "delete: {table: events, where: [{column: id, value: 1}]}\n")

		require.NoError(t, execute(ctx, testLogger(&logs), client, def, &out))
		require.Empty(t, out.String())
		require.Equal(t, []string{"ALTER TABLE `events` ON CLUSTER `main` DELETE WHERE `id` = {p0:UInt8}"}, conn.statements)
		require.Contains(t, logs.String(), "Statement executed")
	})

	t.Run("old servers are warned about", func(t *testing.T) {
		var out, logs bytes.Buffer
		conn := &fakeConn{version: "21.8.3.44"}

		def := writeFile(t, dir, "delete.yaml", "delete: {table: events, where: [{column: id, value: 1}]}\n")

		require.NoError(t, execute(ctx, testLogger(&logs), clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{}), def, &out))
		require.Contains(t, logs.String(), "Server may not support query parameters")
	})

	t.Run("errors", func(t *testing.T) {
		var out, logs bytes.Buffer
		conn := &fakeConn{version: "24.8.1.1", err: errors.New("boom")}

		def := writeFile(t, dir, "drop.yaml", "drop_table: {name: events}\n")

		err := execute(ctx, testLogger(&logs), clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{}), def, &out)
		require.ErrorContains(t, err, "boom")

		err = execute(ctx, testLogger(&logs), clickhouse.NewClientWithConn(conn, clickhouse.ClientOptions{}), filepath.Join(dir, "missing.yaml"), &out)
		require.ErrorContains(t, err, "failed to open file")
	})
}
