package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/config"
	"github.com/pseudomuto/chbuilder/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	// Version describes the build, set by GoReleaser.
	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}

	// commandParams are the dependencies shared by the subcommands. Config is nil when
	// the config file doesn't exist.
	commandParams struct {
		fx.In

		Config *config.Config
		Logger *slog.Logger
	}
)

// Run registers the chbuilder CLI to run with the supplied args once the fx app starts,
// shutting the app down with exit code 1 when the command fails.
//
// Global Flags:
//   - --config, -c: the config file (env CHBUILDER_CONFIG, default chbuilder.yaml)
//
// The config file itself is loaded by config.Module before any command runs. A missing
// file is not an error: compile works without one and only exec, which needs a server,
// refuses to run.
//
// Example usage:
//
//	fx.New(
//		fx.Provide(func() context.Context { return ctx }),
//		fx.Supply(os.Args, &cmd.Version{Version: "v1.0.0"}),
//		config.Module,
//		cmd.Module,
//	).Run()
func Run(p Params) {
	app := newApp(p)

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func newApp(p Params) *cli.Command {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	return &cli.Command{
		Name:  "chbuilder",
		Usage: "Build and run ClickHouse queries from YAML definitions",
		Description: `chbuilder compiles query definitions into ClickHouse SQL with server side
query parameters, and optionally executes them against a server.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the chbuilder config file",
				Sources: cli.EnvVars(consts.ConfigEnvVar),
				Value:   consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Commands: p.Commands,
	}
}

func requireConfig(cfg *config.Config) func(context.Context, *cli.Command) (context.Context, error) {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cfg == nil {
			return ctx, errors.Errorf("%s not found", cmd.Root().String("config"))
		}

		return ctx, nil
	}
}
