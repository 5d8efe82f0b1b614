package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(compileCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(execCmd, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
