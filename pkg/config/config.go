package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jony86s/chainrocks/pkg/backend"
	"github.com/jony86s/chainrocks/pkg/log"
)

// Config is the top-level chainrocks configuration file.
type Config struct {
	// DataDir is the directory the badger backend opens or creates.
	DataDir string `yaml:"dataDir"`

	// LogLevel is one of debug/info/warn/error.
	LogLevel string `yaml:"logLevel"`
	// LogJSON selects JSON output over human-readable console output.
	LogJSON bool `yaml:"logJSON"`

	// Backend holds the options model mapped onto badger.
	Backend BackendConfig `yaml:"backend"`
}

// BackendConfig mirrors the options model described in spec §4.2.
type BackendConfig struct {
	ParanoidChecks      bool  `yaml:"paranoidChecks"`
	IncreaseParallelism int   `yaml:"increaseParallelism"`
	WriteBufferBytes    int64 `yaml:"writeBufferBytes"`
	DisableWAL          bool  `yaml:"disableWAL"`
}

// Default returns the built-in defaults, used when no config file is
// given.
func Default() Config {
	return Config{
		DataDir:  "./chainrocks-data",
		LogLevel: "info",
		LogJSON:  false,
		Backend: BackendConfig{
			ParanoidChecks:      false,
			IncreaseParallelism: 4,
			WriteBufferBytes:    64 << 20,
			DisableWAL:          true,
		},
	}
}

// Load reads and parses a YAML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	log.WithComponent("config").Debug().Str("path", path).Msg("config loaded")
	return cfg, nil
}

// BackendOptions converts the config's backend section into
// backend.Options.
func (c Config) BackendOptions() backend.Options {
	return backend.Options{
		ParanoidChecks:      c.Backend.ParanoidChecks,
		IncreaseParallelism: c.Backend.IncreaseParallelism,
		WriteBufferBytes:    c.Backend.WriteBufferBytes,
		DisableWAL:          c.Backend.DisableWAL,
	}
}

// LogLevelValue converts the string LogLevel into a log.Level, defaulting
// to info for an unrecognized value.
func (c Config) LogLevelValue() log.Level {
	switch c.LogLevel {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
