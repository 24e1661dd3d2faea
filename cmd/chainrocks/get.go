package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jony86s/chainrocks/pkg/backend"
)

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Read the current value of a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer closeDatabase()

		value, err := db.Get([]byte(args[0]))
		if errors.Is(err, backend.ErrKeyNotFound) {
			fmt.Println("(not found)")
			return nil
		}
		if err != nil {
			return fmt.Errorf("get: %w", err)
		}
		fmt.Println(string(value))
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm KEY",
	Short: "Delete a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer closeDatabase()

		if err := db.Remove([]byte(args[0])); err != nil {
			return fmt.Errorf("rm: %w", err)
		}
		return nil
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists KEY",
	Short: "Check whether a key is present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer closeDatabase()

		exists, err := db.Exists([]byte(args[0]))
		if err != nil {
			return fmt.Errorf("exists: %w", err)
		}
		fmt.Println(exists)
		return nil
	},
}
