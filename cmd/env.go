package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Tiliavir/babylog/internal/config"
	"github.com/Tiliavir/babylog/internal/diag"
	"github.com/Tiliavir/babylog/internal/eventlog"
	"github.com/Tiliavir/babylog/internal/session"
	"github.com/Tiliavir/babylog/internal/storage"
)

// env bundles what every command needs: config, diagnostics and the log.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	log      *eventlog.Log
	closeLog func() error
}

// openEnv loads the config and opens the log. Configuration problems are
// fatal (exit 2); an unwritable debug.log only produces a warning.
func openEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, exitWith(2, err)
	}
	if dataDir != "" {
		dir, err := storage.ExpandPath(dataDir)
		if err != nil {
			return nil, exitWith(2, err)
		}
		cfg.DataDir = dir
	}

	logger, closeLog, err := diag.Open(cfg.DataDir, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: diagnostics disabled: %v\n", err)
	}

	log := eventlog.New(storage.NewDirFS(cfg.DataDir), eventlog.Options{
		Logger:         logger,
		WindowBytes:    cfg.WindowBytes,
		TombstoneBytes: cfg.TombstoneBytes,
		Capacity:       cfg.Capacity,
	})
	return &env{cfg: cfg, logger: logger, log: log, closeLog: closeLog}, nil
}

func (e *env) close() {
	_ = e.closeLog()
}

// loadState reads the activity state. A corrupt file has already been backed
// up by the storage layer, so the user is warned and starts from idle.
func (e *env) loadState() session.State {
	st, err := session.Load(e.cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		e.logger.Warn("activity state reset", "err", err)
	}
	return st
}

func (e *env) saveState(st session.State) {
	if err := session.Save(e.cfg.DataDir, st); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save activity state: %v\n", err)
		e.logger.Warn("activity state not saved", "err", err)
	}
}
