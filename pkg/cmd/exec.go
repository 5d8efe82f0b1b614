package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/clickhouse"
	"github.com/pseudomuto/chbuilder/pkg/querydef"
	"github.com/urfave/cli/v3"
)

// execCmd compiles a query definition and runs it against the configured server. Rows
// of a SELECT are printed tab separated with a header line.
//
// Examples:
//
//	chbuilder exec -f daily_totals.yaml
//	chbuilder -c prod.yaml exec -f cleanup.yaml
func execCmd(p commandParams) *cli.Command {
	return &cli.Command{
		Name:   "exec",
		Usage:  "Compile a query definition and execute it",
		Before: requireConfig(p.Config),
		Flags:  []cli.Flag{fileFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := clickhouse.NewClient(ctx, p.Config.ClientOptions(p.Logger))
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			return execute(ctx, p.Logger, client, cmd.String("file"), cmd.Root().Writer)
		},
	}
}

func execute(ctx context.Context, logger *slog.Logger, client *clickhouse.Client, path string, w io.Writer) error {
	stmt, err := compileFile(path, client.NewQuery())
	if err != nil {
		return err
	}

	if reg := stmt.Registry(); reg != nil && reg.Len() > 0 {
		version, err := client.GetVersion(ctx)
		if err != nil {
			return err
		}

		if !version.SupportsQueryParameters() {
			logger.WarnContext(ctx, "Server may not support query parameters", "version", version.String())
		}
	}

	if stmt.Kind != querydef.SelectKind {
		if err := client.Statement(ctx, stmt.SQL, stmt.Registry()); err != nil {
			return err
		}

		logger.InfoContext(ctx, "Statement executed", "kind", stmt.Kind)
		return nil
	}

	rows, err := client.Select(ctx, stmt.Builder)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	n, err := printRows(w, rows)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Query executed", "rows", n)
	return nil
}

// printRows writes rows tab separated, preceded by the column names.
func printRows(w io.Writer, rows driver.Rows) (int, error) {
	if _, err := fmt.Fprintln(w, strings.Join(rows.Columns(), "\t")); err != nil {
		return 0, err
	}

	types := rows.ColumnTypes()
	dest := make([]any, len(types))
	fields := make([]string, len(types))

	count := 0
	for rows.Next() {
		for i, ct := range types {
			dest[i] = reflect.New(ct.ScanType()).Interface()
		}

		if err := rows.Scan(dest...); err != nil {
			return count, errors.Wrap(err, "failed to scan row")
		}

		for i, v := range dest {
			fields[i] = fmt.Sprint(reflect.ValueOf(v).Elem().Interface())
		}

		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return count, err
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return count, errors.Wrap(err, "failed to read rows")
	}
	return count, nil
}
