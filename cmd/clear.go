package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole event log and undo list",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm deleting all logged events")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return exitWith(1, errors.New("refusing to delete all events without --yes"))
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.log.ClearAll(); err != nil {
		return exitWith(2, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All events deleted.")
	return nil
}
