package config

import (
	"log/slog"
	"os"

	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// The config file is named by the --config flag in the supplied args. A missing
	// file yields a nil *Config, leaving it to each command to decide whether it needs
	// one (compile doesn't, exec does).
	func(args []string) (*Config, error) {
		return Resolve(PathFromArgs(args))
	},
	func(c *Config) (*slog.Logger, error) {
		return NewLogger(c, os.Stderr)
	},
))
