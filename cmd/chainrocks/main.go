package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jony86s/chainrocks/pkg/backend"
	"github.com/jony86s/chainrocks/pkg/config"
	"github.com/jony86s/chainrocks/pkg/kv"
	"github.com/jony86s/chainrocks/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chainrocks",
	Short: "chainrocks - a transactional, undoable key-value store",
	Long: `chainrocks is an embedded key-value store with nested, revertible
undo sessions layered over a persistent log-structured merge store.`,
	Version: Version,
}

var db *kv.Database
var be *backend.Backend

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("chainrocks version %s\nCommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("data-dir", "./chainrocks-data", "Backend data directory")
	rootCmd.PersistentFlags().String("config", "", "Path to a chainrocks.yaml config file (overrides --data-dir and backend defaults)")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(statsCmd)
}

// initLogging applies --log-level/--log-json, unless --config names a file
// and the caller left those two flags at their defaults, in which case the
// config file's logLevel/logJSON win. An explicit flag always overrides the
// config file.
func initLogging() {
	flags := rootCmd.PersistentFlags()
	logLevel, _ := flags.GetString("log-level")
	logJSON, _ := flags.GetBool("log-json")

	if configPath, _ := flags.GetString("config"); configPath != "" {
		if cfg, err := config.Load(configPath); err == nil {
			if !flags.Changed("log-level") {
				logLevel = string(cfg.LogLevelValue())
			}
			if !flags.Changed("log-json") {
				logJSON = cfg.LogJSON
			}
		}
	}

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}

// openDatabase opens the backend named by --config (if given) or
// --data-dir, and returns a Database. The caller is responsible for
// calling closeDatabase when done.
func openDatabase(cmd *cobra.Command) (*kv.Database, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	var dataDir string
	var opts backend.Options
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		dataDir = cfg.DataDir
		opts = cfg.BackendOptions()
	} else {
		dataDir, err = cmd.Flags().GetString("data-dir")
		if err != nil {
			return nil, err
		}
		opts = backend.Options{
			IncreaseParallelism: 4,
			WriteBufferBytes:    64 << 20,
			DisableWAL:          true,
		}
	}

	be, err = backend.New(dataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open backend at %s: %w", dataDir, err)
	}
	db = kv.New(be)
	return db, nil
}

func closeDatabase() error {
	if be == nil {
		return nil
	}
	return be.Close()
}
