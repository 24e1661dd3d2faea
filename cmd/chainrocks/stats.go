package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jony86s/chainrocks/pkg/log"
	"github.com/jony86s/chainrocks/pkg/metrics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print backend key count, optionally serving Prometheus metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := openDatabase(cmd); err != nil {
			return err
		}
		defer closeDatabase()

		count, err := be.KeyCount()
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		metrics.KeysTotal.Set(float64(count))
		fmt.Printf("keys: %d\n", count)

		listen, _ := cmd.Flags().GetString("listen")
		if listen == "" {
			return nil
		}

		log.WithComponent("cli").Info().Str("addr", listen).Msg("serving metrics")
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		return http.ListenAndServe(listen, mux)
	},
}

func init() {
	statsCmd.Flags().String("listen", "", "if set, serve Prometheus metrics on this address (e.g. :9090) after printing stats")
}
