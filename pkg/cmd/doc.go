// Package cmd provides the CLI commands of chbuilder.
//
// Commands are built with urfave/cli/v3 and wired with go.uber.org/fx. Module provides
// each command to the "commands" group and runs the app; the config and logger they
// share come from config.Module.
//
// # Available Commands
//
//   - compile: compile a YAML query definition and print the SQL and its bindings
//   - exec: compile a query definition and run it against ClickHouse
//
// # Example Usage
//
//	chbuilder compile -f query.yaml          # SQL, then bindings as YAML
//	chbuilder compile -f query.yaml --lint   # also parse the SQL
//	chbuilder -c prod.yaml exec -f query.yaml
package cmd
