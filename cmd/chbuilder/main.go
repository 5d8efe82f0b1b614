package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pseudomuto/chbuilder/pkg/cmd"
	"github.com/pseudomuto/chbuilder/pkg/config"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return ctx }),
		fx.Supply(os.Args, &cmd.Version{Version: version, Commit: commit, Timestamp: date}),
		config.Module,
		cmd.Module,
	).Run()
}
