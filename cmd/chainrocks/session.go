package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jony86s/chainrocks/pkg/session"
)

// sessionCmd runs a scripted sequence of puts/removes inside a single undo
// session, then either commits or undoes the whole session. Each
// invocation of the chainrocks binary is its own process, so the undo
// stack cannot outlive one command; this is the CLI's way of exercising a
// session's full lifecycle in one shot. Script lines are read from stdin:
//
//	put KEY VALUE
//	rm KEY
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run a scripted put/rm sequence inside one undo session",
	Long: `Reads a script of "put KEY VALUE" / "rm KEY" lines from stdin,
applies them all inside one undo session, and then undoes the session as
a whole, or commits it when --commit is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer closeDatabase()

		commit, _ := cmd.Flags().GetBool("commit")

		s := session.Start(db, true)
		defer s.Close()

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			fields := strings.Fields(line)
			switch fields[0] {
			case "put":
				if len(fields) != 3 {
					return fmt.Errorf("session: malformed put line %q", line)
				}
				if err := db.Put([]byte(fields[1]), []byte(fields[2])); err != nil {
					return fmt.Errorf("session: put: %w", err)
				}
			case "rm":
				if len(fields) != 2 {
					return fmt.Errorf("session: malformed rm line %q", line)
				}
				if err := db.Remove([]byte(fields[1])); err != nil {
					return fmt.Errorf("session: rm: %w", err)
				}
			default:
				return fmt.Errorf("session: unrecognized command %q", fields[0])
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("session: reading script: %w", err)
		}

		if commit {
			s.Push()
			db.Commit()
			fmt.Println("committed")
			return nil
		}

		if err := s.Undo(); err != nil {
			return fmt.Errorf("session: undo: %w", err)
		}
		fmt.Println("undone")
		return nil
	},
}

func init() {
	sessionCmd.Flags().Bool("commit", false, "commit the session instead of undoing it")
}
