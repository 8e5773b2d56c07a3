package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/babylog/internal/model"
	"github.com/Tiliavir/babylog/internal/session"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Start a feeding, or stop the running one",
	Long: `Start a feeding, or stop the running one.
Starting a feeding stops a running sleep first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runActivity(cmd, (*session.Tracker).ToggleFeeding)
	},
}

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Start a sleep, or stop the running one",
	Long: `Start a sleep, or stop the running one.
Starting a sleep stops a running feeding first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runActivity(cmd, (*session.Tracker).ToggleSleep)
	},
}

var diaperCmd = &cobra.Command{
	Use:   "diaper",
	Short: "Log a diaper change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runActivity(cmd, (*session.Tracker).Diaper)
	},
}

type action func(t *session.Tracker, now int64) ([]model.Event, error)

// runActivity applies act and persists the new activity state. A failed log
// write is reported but does not fail the command: the activity state still
// reflects what the user did.
func runActivity(cmd *cobra.Command, act action) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	tracker := session.NewTracker(e.log, e.loadState())
	events, err := act(tracker, e.log.NowSeconds())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: event not saved to the log: %v\n", err)
	}
	e.saveState(tracker.State())

	out := cmd.OutOrStdout()
	for _, ev := range events {
		printLogged(out, ev)
	}
	return nil
}

func printLogged(out io.Writer, e model.Event) {
	when := eventTime(e).Format("15:04:05")
	if e.Kind.IsStop() {
		fmt.Fprintf(out, "%s at %s. Elapsed: %s\n", kindLabel(e), when, formatElapsed(e.Duration))
		return
	}
	fmt.Fprintf(out, "%s at %s\n", kindLabel(e), when)
}

func formatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
