// Package config provides configuration loading and management.
package config

// Default values used when neither flag, environment, nor config file set a key.
const (
	DefaultManager = "pip"
	DefaultPython  = "python3"
	DefaultPathEnv = "PYTHONPATH"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty" json:"timestamps,omitempty"`
}

// Config represents the nbkit configuration file (~/.nbkit/config.yaml).
// Unset fields are left empty so the resolver can tell "not configured"
// apart from a configured value.
type Config struct {
	// Manager is the package manager used by `install`: "pip" or "conda".
	// Env: NBKIT_MANAGER
	Manager string `mapstructure:"manager" yaml:"manager,omitempty" json:"manager,omitempty"`

	// PrintOutput prints package manager output in verbose runs.
	// Env: NBKIT_PRINT_OUTPUT
	PrintOutput *bool `mapstructure:"printOutput" yaml:"printOutput,omitempty" json:"printOutput,omitempty"`

	// Python is the interpreter used to check importability.
	// Env: NBKIT_PYTHON
	Python string `mapstructure:"python" yaml:"python,omitempty" json:"python,omitempty"`

	// PathEnv is the environment variable the module search path is read
	// from and exported through.
	// Env: NBKIT_PATH_ENV
	PathEnv string `mapstructure:"pathEnv" yaml:"pathEnv,omitempty" json:"pathEnv,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty" json:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `nbkit config init` to generate the initial config file.
func DefaultConfig() *Config {
	printOutput := true
	timestamps := true
	return &Config{
		Manager:     DefaultManager,
		PrintOutput: &printOutput,
		Python:      DefaultPython,
		PathEnv:     DefaultPathEnv,
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}
