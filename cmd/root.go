package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "babylog",
	Short: "babylog – a tiny caregiving event logger",
	Long: `babylog records diaper changes, feedings and sleeps to an append-only log.
All data is stored as line-delimited JSON files in ~/.babylog/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries the process exit code for a failed command: 1 for user
// errors, 2 for storage or configuration failures.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

// Execute is the entry point called from main.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code := 1
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		cancel()
		os.Exit(code)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.babylog/config.json)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides data_dir from the config)")

	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(sleepCmd)
	rootCmd.AddCommand(diaperCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(watchCmd)
}
