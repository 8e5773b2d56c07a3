package eventlog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/Tiliavir/babylog/internal/model"
	"github.com/Tiliavir/babylog/internal/storage"
	"github.com/Tiliavir/babylog/internal/timecalc"
)

const (
	// EventsFile holds one record per event.
	EventsFile = "log.jsonl"
	// TombstonesFile holds the ids of deleted records.
	TombstonesFile = "deleted.jsonl"

	// MaxEntries is the largest recent view the log will build.
	MaxEntries = 10

	DefaultWindowBytes    = 2048
	MinWindowBytes        = 256
	MaxWindowBytes        = 64 * 1024
	DefaultTombstoneBytes = 4096

	// tombstoneLineMax is the longest line MarkDeleted writes.
	tombstoneLineMax = MaxIDLength + len(`{"id":""}`+"\n")
	// MaxTombstoneBytes covers a tombstone for every record that fits in
	// the largest event window.
	MaxTombstoneBytes = MaxWindowBytes / MinLineLength * tombstoneLineMax
)

// Options configures a Log. Zero values select defaults.
type Options struct {
	Clock          timecalc.Clock
	IDs            *timecalc.Generator
	Logger         *slog.Logger
	WindowBytes    int
	TombstoneBytes int
	// Capacity is the size of the view DeleteLast works against.
	Capacity int
}

// Log is the caller-facing event log. It keeps no file handles or cached
// state between calls; every view is rebuilt from storage.
type Log struct {
	fs          storage.FS
	writer      *Writer
	tombstones  *Tombstones
	clock       timecalc.Clock
	logger      *slog.Logger
	windowBytes int
	capacity    int
}

// New returns a Log stored in fsys.
func New(fsys storage.FS, opts Options) *Log {
	if opts.Clock == nil {
		opts.Clock = timecalc.SystemClock
	}
	if opts.IDs == nil {
		opts.IDs = timecalc.NewGenerator()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	windowBytes := clamp(opts.WindowBytes, MinWindowBytes, MaxWindowBytes, DefaultWindowBytes)
	return &Log{
		fs:          fsys,
		writer:      NewWriter(fsys, EventsFile, opts.Clock, opts.IDs),
		tombstones:  NewTombstones(fsys, TombstonesFile, tombstoneWindow(opts.TombstoneBytes, windowBytes)),
		clock:       opts.Clock,
		logger:      opts.Logger.With("component", "eventlog"),
		windowBytes: windowBytes,
		capacity:    clamp(opts.Capacity, 1, MaxEntries, MaxEntries),
	}
}

// Capacity returns the configured size of the recent view.
func (l *Log) Capacity() int { return l.capacity }

// NowSeconds returns the current Unix time from the log's clock.
func (l *Log) NowSeconds() int64 { return l.clock().Unix() }

// Append records an event. On a storage failure the event is lost, the
// error is logged and returned for the caller's information only.
func (l *Log) Append(kind model.Kind, duration int64) (model.Event, error) {
	e, err := l.writer.Append(kind, duration)
	if err != nil {
		l.logger.Warn("event dropped", "kind", kind.String(), "err", err)
		return e, err
	}
	l.logger.Debug("event appended", "id", e.ID, "kind", e.Type(), "dur", e.Duration)
	return e, nil
}

// Recent rebuilds the view of the newest visible events, oldest first.
// limit is clamped into [0, MaxEntries]. Storage failures yield an empty view.
func (l *Log) Recent(limit int) []model.Event {
	limit = clamp(limit, 0, MaxEntries, 0)
	if limit == 0 {
		return nil
	}

	deleted, err := l.tombstones.LoadAll()
	if err != nil {
		l.logger.Warn("recent view unavailable", "err", err)
		return nil
	}

	window, err := ReadTail(l.fs, EventsFile, make([]byte, l.windowBytes))
	if err != nil {
		l.logger.Warn("recent view unavailable", "err", err)
		return nil
	}

	var (
		ring    [MaxEntries]model.Event
		count   int
		next    int
		skipped int
	)
	eachLine(window, func(line []byte) {
		e, ok := ParseLine(line)
		if !ok {
			skipped++
			return
		}
		if _, gone := deleted[e.ID]; gone {
			return
		}
		if !e.KindKnown {
			l.logger.Debug("unrecognised event type read as diaper", "id", e.ID)
		}
		ring[next] = e
		next = (next + 1) % limit
		if count < limit {
			count++
		}
	})
	if skipped > 0 {
		l.logger.Debug("skipped malformed lines", "count", skipped)
	}

	view := make([]model.Event, count)
	if count == limit {
		for i := 0; i < count; i++ {
			view[i] = ring[(next+i)%limit]
		}
	} else {
		copy(view, ring[:count])
	}
	return view
}

// DeleteLast tombstones the newest event of the current view and reports
// which event it removed. It does nothing when the view is empty.
// Nothing is cached, so callers call Recent again for the updated view.
func (l *Log) DeleteLast() (model.Event, bool, error) {
	view := l.Recent(l.capacity)
	if len(view) == 0 {
		return model.Event{}, false, nil
	}
	last := view[len(view)-1]
	if err := l.tombstones.MarkDeleted(last.ID); err != nil {
		l.logger.Warn("undo failed", "id", last.ID, "err", err)
		return last, false, err
	}
	l.logger.Info("event deleted", "id", last.ID, "kind", last.Type())
	return last, true, nil
}

// ClearAll removes the event log and the tombstone store.
func (l *Log) ClearAll() error {
	var errs []error
	if err := l.fs.Remove(EventsFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Errorf("clear events: %w", err))
	}
	if err := l.tombstones.ClearAll(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		l.logger.Warn("clear failed", "err", err)
		return err
	}
	l.logger.Info("log cleared")
	return nil
}

// tombstoneWindow returns how much of the tombstone store to read. It is
// never less than what the tombstones of every record in an event window of
// windowBytes can occupy, so a deleted record stays hidden while visible.
func tombstoneWindow(requested, windowBytes int) int {
	n := clamp(requested, 1, MaxTombstoneBytes, DefaultTombstoneBytes)
	return max(n, windowBytes/MinLineLength*tombstoneLineMax)
}

// clamp bounds v to [lo, hi]; a zero v selects def.
func clamp(v, lo, hi, def int) int {
	if v == 0 {
		v = def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
