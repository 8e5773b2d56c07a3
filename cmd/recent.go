package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/babylog/internal/model"
	"github.com/Tiliavir/babylog/internal/timecalc"
)

var (
	recentCount  int
	recentFormat string
)

var recentCmd = &cobra.Command{
	Use:     "recent",
	Aliases: []string{"list"},
	Short:   "List the most recent events",
	Args:    cobra.NoArgs,
	RunE:    runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&recentCount, "count", "n", 0, "Number of events to show (default: capacity from config)")
	recentCmd.Flags().StringVar(&recentFormat, "format", "text", "Output format: text, csv, json")
}

func runRecent(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	n := recentCount
	if n == 0 {
		n = e.log.Capacity()
	}
	events := e.log.Recent(n)

	out := cmd.OutOrStdout()
	switch recentFormat {
	case "json":
		if err := printJSON(out, events); err != nil {
			return exitWith(2, fmt.Errorf("encoding JSON: %w", err))
		}
	case "csv":
		printCSV(out, events)
	default: // text
		printRecent(out, events)
	}
	return nil
}

var kindLabels = map[model.Kind]string{
	model.KindDiaper:       "Diaper",
	model.KindFeedingStart: "Feeding started",
	model.KindFeedingStop:  "Feeding stopped",
	model.KindSleepStart:   "Sleep started",
	model.KindSleepStop:    "Sleep stopped",
}

// kindLabel names the event for display; records whose type could not be
// read are marked with a trailing "?".
func kindLabel(e model.Event) string {
	label := kindLabels[e.Kind]
	if !e.KindKnown {
		label += "?"
	}
	return label
}

// eventTime returns the creation time of e, preferring the raw epoch.
func eventTime(e model.Event) time.Time {
	if e.Epoch > 0 {
		return time.Unix(e.Epoch, 0)
	}
	if t, ok := timecalc.ParseTimestamp(e.Timestamp); ok {
		return t
	}
	return time.Time{}
}

// printRecent groups events by date and prints them.
func printRecent(out io.Writer, events []model.Event) {
	if len(events) == 0 {
		fmt.Fprintln(out, "No events logged.")
		return
	}

	var currentDay string
	for _, e := range events {
		t := eventTime(e)
		day := t.Format("2006-01-02")
		if day != currentDay {
			fmt.Fprintln(out, day)
			currentDay = day
		}

		durStr := ""
		if e.Kind.IsStop() {
			durStr = fmt.Sprintf(" (%s)", timecalc.FormatDuration(e.Duration))
		}
		fmt.Fprintf(out, "  %s  %s%s\n", t.Format("15:04"), runewidth.FillRight(kindLabel(e), 16), durStr)
	}
}

func printCSV(out io.Writer, events []model.Event) {
	fmt.Fprintln(out, "id,timestamp,type,duration_seconds")
	for _, e := range events {
		fmt.Fprintf(out, "%s,%s,%s,%d\n",
			csvEscape(e.ID),
			csvEscape(e.Timestamp),
			csvEscape(e.Type()),
			e.Duration,
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}

type eventJSON struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
	Epoch     int64  `json:"epoch,omitempty"`
	Type      string `json:"type"`
	Duration  int64  `json:"dur,omitempty"`
	KindKnown bool   `json:"kind_known"`
}

func printJSON(out io.Writer, events []model.Event) error {
	rows := make([]eventJSON, 0, len(events))
	for _, e := range events {
		rows = append(rows, eventJSON{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Epoch:     e.Epoch,
			Type:      e.Type(),
			Duration:  e.Duration,
			KindKnown: e.KindKnown,
		})
	}
	data, err := sonic.ConfigStd.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}
