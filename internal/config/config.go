// Package config loads cubeql configuration from its YAML file,
// environment variables, and CLI flags.
package config

// Config file names, looked up in the working directory and its parents.
const (
	ConfigFileName    = "cubeql.yaml"
	ConfigFileNameAlt = "cubeql.yml"
)

// Defaults.
const (
	DefaultStateFile = ".cubeql/model.db"
	DefaultOutput    = "table"
	DefaultPort      = 4600
)

// Config holds the resolved application configuration.
type Config struct {
	// StatePath is the SQLite model database path.
	StatePath string `koanf:"state_path"`
	// Output selects the CLI rendering format (table|json).
	Output string `koanf:"output"`
	// Port is the UI server listen port.
	Port    int  `koanf:"port"`
	Verbose bool `koanf:"verbose"`
}
