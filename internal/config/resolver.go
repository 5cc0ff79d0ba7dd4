package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/panurus/nbkit/internal/output"
)

// Environment variables read by the resolver.
const (
	EnvConfig      = "NBKIT_CONFIG"
	EnvManager     = "NBKIT_MANAGER"
	EnvPython      = "NBKIT_PYTHON"
	EnvPathEnv     = "NBKIT_PATH_ENV"
	EnvPrintOutput = "NBKIT_PRINT_OUTPUT"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value and where it came from.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolvedConfig holds every resolved value used by the commands.
type ResolvedConfig struct {
	ConfigPath  ResolvedValue
	Manager     ResolvedValue
	Python      ResolvedValue
	PathEnv     ResolvedValue
	PrintOutput ResolvedValue
}

// PrintOutputEnabled parses the resolved print-output value.
func (r *ResolvedConfig) PrintOutputEnabled() bool {
	b, err := strconv.ParseBool(r.PrintOutput.Value)
	return err != nil || b
}

// Values returns the resolved values in a stable order.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{r.ConfigPath, r.Manager, r.Python, r.PathEnv, r.PrintOutput}
}

// resolve picks the first non-empty value by precedence:
// flag > env > config > default.
func resolve(key, flagValue, envName, configValue, defaultValue string) ResolvedValue {
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(envName)},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if rv.Source == "" {
			rv.Value = c.value
			rv.Source = c.source
			continue
		}
		rv.Shadowed[c.source] = c.value
	}

	return rv
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) NBKIT_CONFIG env, (3) ~/.nbkit/config.yaml.
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return resolve("config", flagValue, EnvConfig, "", paths.ConfigFile), nil
}

// ResolveAllOptions carries flag values and the loaded file config.
type ResolveAllOptions struct {
	ConfigFlag      string
	ManagerFlag     string
	PythonFlag      string
	PathEnvFlag     string
	PrintOutputFlag *bool

	// Config is the loaded file config; nil means no file.
	Config *Config
}

// ResolveAll resolves every configuration value.
func ResolveAll(opts ResolveAllOptions) (*ResolvedConfig, error) {
	configPath, err := ResolveConfigPath(opts.ConfigFlag)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}

	return &ResolvedConfig{
		ConfigPath:  configPath,
		Manager:     resolve("manager", opts.ManagerFlag, EnvManager, cfg.Manager, DefaultManager),
		Python:      resolve("python", opts.PythonFlag, EnvPython, cfg.Python, DefaultPython),
		PathEnv:     resolve("pathEnv", opts.PathEnvFlag, EnvPathEnv, cfg.PathEnv, DefaultPathEnv),
		PrintOutput: resolve("printOutput", boolString(opts.PrintOutputFlag), EnvPrintOutput, boolString(cfg.PrintOutput), "true"),
	}, nil
}

func boolString(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
