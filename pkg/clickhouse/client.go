package clickhouse

import (
	"context"
	"log/slog"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/grammar"
	"github.com/pseudomuto/chbuilder/pkg/params"
	"github.com/pseudomuto/chbuilder/pkg/query"
)

// DefaultAddr is used when neither a DSN nor an address is configured.
const DefaultAddr = "localhost:9000"

type (
	// Conn is the subset of driver.Conn used by the Client.
	Conn interface {
		Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
		QueryRow(ctx context.Context, query string, args ...any) driver.Row
		Exec(ctx context.Context, query string, args ...any) error
		Ping(ctx context.Context) error
		Close() error
	}

	// Client runs builders against a ClickHouse server. Bindings are sent as server side
	// query parameters, so values never appear in the SQL text.
	Client struct {
		conn    Conn
		options ClientOptions
		logger  *slog.Logger
	}

	// ClientOptions configures a Client. When DSN is set it wins over Addr and the auth
	// fields.
	ClientOptions struct {
		DSN         string
		Addr        []string
		Database    string
		Username    string
		Password    string
		Cluster     string
		Settings    map[string]any
		DialTimeout time.Duration
		Logger      *slog.Logger

		TLSSettings
	}

	// TLSSettings holds the files used for (m)TLS connections.
	TLSSettings struct {
		CAFile   string
		CertFile string
		KeyFile  string
	}
)

// Enabled reports whether any TLS file is configured.
func (s TLSSettings) Enabled() bool {
	return s.CAFile != "" || s.CertFile != "" || s.KeyFile != ""
}

// NewClient opens a connection and pings the server.
//
// Example:
//
//	client, err := clickhouse.NewClient(ctx, clickhouse.ClientOptions{
//		DSN:     "clickhouse://default:@localhost:9000/analytics",
//		Cluster: "main",
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	rows, err := client.Select(ctx, client.NewQuery().From("events").Where("id", 42))
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	chOpts, err := opts.clickhouseOptions()
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(chOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to ClickHouse")
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to ping ClickHouse")
	}

	return NewClientWithConn(conn, opts), nil
}

// NewClientWithConn wraps an existing connection.
func NewClientWithConn(conn Conn, opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{conn: conn, options: opts, logger: logger}
}

// Close closes the ClickHouse connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

// NewQuery returns an empty builder targeting the configured cluster.
func (c *Client) NewQuery() *query.Builder {
	return query.New().OnCluster(c.options.Cluster)
}

// Select compiles and runs a SELECT. The caller must close the returned rows.
func (c *Client) Select(ctx context.Context, b *query.Builder) (driver.Rows, error) {
	sql, err := grammar.CompileSelect(b)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile select")
	}

	ctx = c.prepare(ctx, sql, b.Registry())
	rows, err := c.conn.Query(ctx, sql)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run select")
	}
	return rows, nil
}

// Insert compiles and runs an INSERT of rows into b's table.
func (c *Client) Insert(ctx context.Context, b *query.Builder, columns []string, rows [][]any) error {
	sql, err := grammar.CompileInsert(b, columns, rows)
	if err != nil {
		return errors.Wrap(err, "failed to compile insert")
	}
	return c.exec(ctx, sql, b.Registry())
}

// InsertMaps is Insert for rows keyed by column name.
func (c *Client) InsertMaps(ctx context.Context, b *query.Builder, rows []map[string]any) error {
	sql, err := grammar.CompileInsertMaps(b, rows)
	if err != nil {
		return errors.Wrap(err, "failed to compile insert")
	}
	return c.exec(ctx, sql, b.Registry())
}

// Delete compiles and runs an ALTER TABLE … DELETE mutation.
func (c *Client) Delete(ctx context.Context, b *query.Builder) error {
	sql, err := grammar.CompileDelete(b)
	if err != nil {
		return errors.Wrap(err, "failed to compile delete")
	}
	return c.exec(ctx, sql, b.Registry())
}

// CreateTable runs a CREATE TABLE. The configured cluster is used unless t names one.
func (c *Client) CreateTable(ctx context.Context, t grammar.CreateTable) error {
	if t.Cluster == "" {
		t.Cluster = c.options.Cluster
	}
	return c.exec(ctx, grammar.CompileCreateTable(t), nil)
}

// DropTable runs a DROP TABLE. The configured cluster is used unless t names one.
func (c *Client) DropTable(ctx context.Context, t grammar.DropTable) error {
	if t.Cluster == "" {
		t.Cluster = c.options.Cluster
	}
	return c.exec(ctx, grammar.CompileDropTable(t), nil)
}

// Statement runs arbitrary SQL with the bindings of reg, which may be nil.
func (c *Client) Statement(ctx context.Context, sql string, reg *params.Registry) error {
	return c.exec(ctx, sql, reg)
}

// BeginTransaction is not supported: ClickHouse has no multi-statement transactions.
func (c *Client) BeginTransaction(context.Context) error {
	return errors.Wrap(query.ErrUnsupportedOperation, "transactions")
}

// Commit is not supported.
func (c *Client) Commit(context.Context) error {
	return errors.Wrap(query.ErrUnsupportedOperation, "transactions")
}

// Rollback is not supported.
func (c *Client) Rollback(context.Context) error {
	return errors.Wrap(query.ErrUnsupportedOperation, "transactions")
}

// TransactionLevel is not supported.
func (c *Client) TransactionLevel() (int, error) {
	return 0, errors.Wrap(query.ErrUnsupportedOperation, "transactions")
}

func (c *Client) exec(ctx context.Context, sql string, reg *params.Registry) error {
	ctx = c.prepare(ctx, sql, reg)
	if err := c.conn.Exec(ctx, sql); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return nil
}

// prepare logs the statement and attaches its bindings to ctx.
func (c *Client) prepare(ctx context.Context, sql string, reg *params.Registry) context.Context {
	names := make([]string, 0)
	if reg != nil {
		for _, p := range reg.Parameters() {
			names = append(names, p.Name)
		}
	}

	c.logger.DebugContext(ctx, "Executing statement", "sql", sql, "params", names)
	return withParameters(ctx, reg)
}

// withParameters attaches reg's bindings as server side query parameters.
func withParameters(ctx context.Context, reg *params.Registry) context.Context {
	if reg == nil || reg.Len() == 0 {
		return ctx
	}
	return clickhouse.Context(ctx, clickhouse.WithParameters(clickhouse.Parameters(reg.Strings())))
}

func (o ClientOptions) clickhouseOptions() (*clickhouse.Options, error) {
	var chOpts *clickhouse.Options
	if o.DSN != "" {
		parsed, err := clickhouse.ParseDSN(o.DSN)
		if err != nil {
			return nil, errors.Wrap(err, "invalid ClickHouse DSN")
		}
		chOpts = parsed
	} else {
		addr := o.Addr
		if len(addr) == 0 {
			addr = []string{DefaultAddr}
		}

		chOpts = &clickhouse.Options{
			Addr: addr,
			Auth: clickhouse.Auth{
				Database: o.Database,
				Username: o.Username,
				Password: o.Password,
			},
		}
	}

	if o.TLSSettings.Enabled() {
		tlsConfig, err := GetTLSConfig(o.TLSSettings)
		if err != nil {
			return nil, err
		}
		chOpts.TLS = tlsConfig
	}

	if len(o.Settings) > 0 {
		if chOpts.Settings == nil {
			chOpts.Settings = clickhouse.Settings{}
		}
		for k, v := range o.Settings {
			chOpts.Settings[k] = v
		}
	}

	if o.DialTimeout > 0 {
		chOpts.DialTimeout = o.DialTimeout
	}

	return chOpts, nil
}
