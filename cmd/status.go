package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/babylog/internal/session"
	"github.com/Tiliavir/babylog/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is running and the last logged event",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	now := e.log.NowSeconds()
	st := e.loadState()
	out := cmd.OutOrStdout()

	activity, elapsed := st.Current(now)
	switch activity {
	case session.Feeding:
		fmt.Fprintf(out, "Feeding for %s\n", timecalc.FormatDurationHHMMSS(elapsed))
	case session.Sleeping:
		fmt.Fprintf(out, "Sleeping for %s\n", timecalc.FormatDurationHHMMSS(elapsed))
	default:
		fmt.Fprintln(out, "Awake.")
	}

	if st.LastDiaper > 0 {
		fmt.Fprintf(out, "Last diaper: %s ago\n", timecalc.FormatDuration(timecalc.Elapsed(st.LastDiaper, now)))
	}

	recent := e.log.Recent(1)
	if len(recent) == 0 {
		fmt.Fprintln(out, "No events logged.")
		return nil
	}
	last := recent[0]
	fmt.Fprintf(out, "Last event: %s at %s\n", kindLabel(last), eventTime(last).Format("2006-01-02 15:04"))
	return nil
}
