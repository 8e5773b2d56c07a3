package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Delete the most recent visible event",
	Long: `Delete the most recent event shown by "babylog recent".
The record stays in the log file; its id is added to the undo list.
Undo does not change whether a feeding or sleep is running.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func runUndo(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	deleted, ok, err := e.log.DeleteLast()
	if err != nil {
		return exitWith(2, err)
	}

	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintln(out, "Nothing to undo.")
		return nil
	}
	fmt.Fprintf(out, "Removed: %s at %s\n", kindLabel(deleted), eventTime(deleted).Format("2006-01-02 15:04"))
	printRecent(out, e.log.Recent(e.log.Capacity()))
	return nil
}
