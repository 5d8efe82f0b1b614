package consts

import "os"

const (
	// DefaultConfigFile is the config file read by the CLI when --config is not given.
	DefaultConfigFile = "chbuilder.yaml"

	// ConfigEnvVar names the config file when --config is not given.
	ConfigEnvVar = "CHBUILDER_CONFIG"

	// DefaultDatabase is used when the config doesn't name a database.
	DefaultDatabase = "default"

	// DefaultUsername is used when the config doesn't name a user.
	DefaultUsername = "default"

	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"

	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)
)
