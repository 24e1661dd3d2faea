// Package config loads the chainrocks YAML configuration file: the
// backend's data directory and badger tuning knobs, plus logging
// defaults. Grounded on cmd/warren/apply.go's read-file-then-
// yaml.Unmarshal shape.
package config
