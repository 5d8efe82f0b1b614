package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/grammar"
	"github.com/pseudomuto/chbuilder/pkg/query"
	"github.com/pseudomuto/chbuilder/pkg/querydef"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func fileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "the query definition to compile",
		Required: true,
		Config: cli.StringConfig{
			TrimSpace: true,
		},
	}
}

// compileCmd compiles a query definition and prints the SQL followed by its parameter
// bindings as a YAML document. The cluster from the config, when there is one, is used
// for DDL and mutations that don't name one.
//
// Examples:
//
//	chbuilder compile -f daily_totals.yaml
//	chbuilder compile -f daily_totals.yaml --lint
func compileCmd(p commandParams) *cli.Command {
	var cluster string
	if p.Config != nil {
		cluster = p.Config.ClickHouse.Cluster
	}

	return &cli.Command{
		Name:  "compile",
		Usage: "Compile a query definition to SQL",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.BoolFlag{
				Name:  "lint",
				Usage: "Check the compiled SQL with a ClickHouse SQL parser",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stmt, err := compileFile(cmd.String("file"), query.New().OnCluster(cluster))
			if err != nil {
				return err
			}

			if cmd.Bool("lint") {
				if err := grammar.Lint(stmt.SQL); err != nil {
					return errors.Wrap(err, "compiled SQL failed lint")
				}
			}

			p.Logger.DebugContext(ctx, "Compiled statement", "kind", stmt.Kind)
			return printStatement(cmd.Root().Writer, stmt)
		},
	}
}

func compileFile(path string, b *query.Builder) (*querydef.Statement, error) {
	def, err := querydef.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return def.Compile(b)
}

func printStatement(w io.Writer, stmt *querydef.Statement) error {
	if _, err := fmt.Fprintln(w, stmt.SQL); err != nil {
		return err
	}

	reg := stmt.Registry()
	if reg == nil || reg.Len() == 0 {
		return nil
	}

	out, err := yaml.Marshal(reg.Bindings())
	if err != nil {
		return errors.Wrap(err, "failed to marshal bindings")
	}

	_, err = fmt.Fprintf(w, "---\n%s", out)
	return err
}
