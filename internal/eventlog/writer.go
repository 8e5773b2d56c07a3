package eventlog

import (
	"fmt"

	"github.com/Tiliavir/babylog/internal/model"
	"github.com/Tiliavir/babylog/internal/storage"
	"github.com/Tiliavir/babylog/internal/timecalc"
)

// Writer appends one record per event to the log file.
type Writer struct {
	fs    storage.FS
	name  string
	clock timecalc.Clock
	ids   *timecalc.Generator
}

// NewWriter returns a Writer appending to name.
func NewWriter(fsys storage.FS, name string, clock timecalc.Clock, ids *timecalc.Generator) *Writer {
	return &Writer{fs: fsys, name: name, clock: clock, ids: ids}
}

// Append records an event of the given kind. Durations are kept only on
// stop kinds and clamp at zero. The returned Event is populated even when
// the write fails.
func (w *Writer) Append(kind model.Kind, duration int64) (model.Event, error) {
	if !kind.Valid() {
		return model.Event{}, fmt.Errorf("unknown event kind %d", int(kind))
	}
	if !kind.IsStop() || duration < 0 {
		duration = 0
	}

	now := w.clock()
	e := model.Event{
		ID:        w.ids.Next(now),
		Timestamp: timecalc.FormatTimestamp(now),
		Epoch:     now.Unix(),
		Kind:      kind,
		Duration:  duration,
		KindKnown: true,
	}

	var buf [maxRecordLen + 1]byte
	line := buf[:0]
	if w.tornTail() {
		line = append(line, '\n')
	}
	if err := w.fs.Append(w.name, AppendRecord(line, e)); err != nil {
		return e, fmt.Errorf("append %s event: %w", kind, err)
	}
	return e, nil
}

// tornTail reports whether the log ends without a newline, as left by an
// interrupted write. The next record then starts on a fresh line so the
// damage stays confined to the torn one.
func (w *Writer) tornTail() bool {
	var last [1]byte
	tail, err := ReadTail(w.fs, w.name, last[:])
	return err == nil && len(tail) == 1 && tail[0] != '\n'
}
