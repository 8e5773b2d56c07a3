package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Tiliavir/babylog/internal/eventlog"
	"github.com/Tiliavir/babylog/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show recent events and refresh whenever the log changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	w, err := watch.New(e.cfg.DataDir, []string{eventlog.EventsFile, eventlog.TombstonesFile}, e.logger)
	if err != nil {
		return exitWith(2, err)
	}
	defer w.Close()

	out := cmd.OutOrStdout()
	clearScreen := false
	if f, ok := out.(*os.File); ok {
		clearScreen = term.IsTerminal(int(f.Fd()))
	}

	render := func() {
		if clearScreen {
			_, _ = io.WriteString(out, "\033[H\033[2J")
		}
		printRecent(out, e.log.Recent(e.log.Capacity()))
	}

	render()
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			render()
		}
	}
}
