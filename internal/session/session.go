// Package session tracks whether a feeding or sleep is in progress.
//
// The event log only stores discrete start and stop events. Which activity
// is running lives here and is persisted separately in state.json; it is
// never reconstructed from the log.
package session

import (
	"errors"
	"path/filepath"

	"github.com/Tiliavir/babylog/internal/model"
	"github.com/Tiliavir/babylog/internal/storage"
	"github.com/Tiliavir/babylog/internal/timecalc"
)

// StateFile is the name of the persisted state inside the data directory.
const StateFile = "state.json"

// State is the runtime activity state. Timestamps are Unix seconds.
type State struct {
	FeedingActive bool  `json:"feeding_active"`
	SleepActive   bool  `json:"sleep_active"`
	FeedingStart  int64 `json:"feeding_start_ts"`
	SleepStart    int64 `json:"sleep_start_ts"`
	LastDiaper    int64 `json:"last_diaper_ts"`
}

// Activity names what is currently in progress.
type Activity string

const (
	Awake    Activity = "awake"
	Feeding  Activity = "feeding"
	Sleeping Activity = "sleeping"
)

// Current returns the running activity and how long it has been running at now.
func (s State) Current(now int64) (Activity, int64) {
	switch {
	case s.FeedingActive:
		return Feeding, timecalc.Elapsed(s.FeedingStart, now)
	case s.SleepActive:
		return Sleeping, timecalc.Elapsed(s.SleepStart, now)
	default:
		return Awake, 0
	}
}

// Load reads the state from dir. A missing file yields the zero State.
func Load(dir string) (State, error) {
	var s State
	if _, err := storage.LoadJSON(filepath.Join(dir, StateFile), &s); err != nil {
		return State{}, err
	}
	return s, nil
}

// Save atomically writes s to dir.
func Save(dir string, s State) error {
	return storage.SaveJSON(filepath.Join(dir, StateFile), s)
}

// Appender records events; *eventlog.Log satisfies it.
type Appender interface {
	Append(kind model.Kind, duration int64) (model.Event, error)
}

// Tracker applies the feeding/sleep rules: the two are mutually exclusive,
// and starting one stops the other first.
type Tracker struct {
	log   Appender
	state State
}

// NewTracker returns a Tracker starting from s.
func NewTracker(log Appender, s State) *Tracker {
	return &Tracker{log: log, state: s}
}

// State returns the current state.
func (t *Tracker) State() State { return t.state }

// ToggleFeeding stops a running feeding, or starts one after stopping any
// running sleep. The state changes even when appending to the log fails; the
// returned error joins every append failure.
func (t *Tracker) ToggleFeeding(now int64) ([]model.Event, error) {
	var r recorder
	if t.state.FeedingActive {
		r.add(t.log.Append(model.KindFeedingStop, timecalc.Elapsed(t.state.FeedingStart, now)))
		t.state.FeedingActive = false
		return r.done()
	}
	if t.state.SleepActive {
		r.add(t.log.Append(model.KindSleepStop, timecalc.Elapsed(t.state.SleepStart, now)))
		t.state.SleepActive = false
	}
	t.state.FeedingActive, t.state.FeedingStart = true, now
	r.add(t.log.Append(model.KindFeedingStart, 0))
	return r.done()
}

// ToggleSleep is ToggleFeeding for sleep.
func (t *Tracker) ToggleSleep(now int64) ([]model.Event, error) {
	var r recorder
	if t.state.SleepActive {
		r.add(t.log.Append(model.KindSleepStop, timecalc.Elapsed(t.state.SleepStart, now)))
		t.state.SleepActive = false
		return r.done()
	}
	if t.state.FeedingActive {
		r.add(t.log.Append(model.KindFeedingStop, timecalc.Elapsed(t.state.FeedingStart, now)))
		t.state.FeedingActive = false
	}
	t.state.SleepActive, t.state.SleepStart = true, now
	r.add(t.log.Append(model.KindSleepStart, 0))
	return r.done()
}

// Diaper logs a diaper change.
func (t *Tracker) Diaper(now int64) ([]model.Event, error) {
	var r recorder
	r.add(t.log.Append(model.KindDiaper, 0))
	t.state.LastDiaper = now
	return r.done()
}

type recorder struct {
	events []model.Event
	errs   []error
}

func (r *recorder) add(e model.Event, err error) {
	r.events = append(r.events, e)
	if err != nil {
		r.errs = append(r.errs, err)
	}
}

func (r *recorder) done() ([]model.Event, error) {
	return r.events, errors.Join(r.errs...)
}
