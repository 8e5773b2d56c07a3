package timecalc

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"
)

// TimestampLayout is the calendar format stored in each log record.
const TimestampLayout = "2006-01-02T15:04:05"

// IDLength is the width of every generated identifier.
const IDLength = 20

// Clock reports the current wall-clock time.
type Clock func() time.Time

// SystemClock reads the local wall clock.
func SystemClock() time.Time { return time.Now() }

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Generator mints fixed-width hex identifiers for log records.
//
// The first 16 characters are derived from the creation second: the raw
// epoch and a linear-congruential scramble of it. The last 4 are a sequence
// that starts at a random value and advances on every call, so two records
// created within the same second still get distinct identifiers. Collisions
// remain possible only for two processes minting in the same second whose
// random sequences happen to line up.
type Generator struct {
	mu  sync.Mutex
	seq uint16
}

// NewGenerator returns a Generator with a random starting sequence.
func NewGenerator() *Generator {
	var b [2]byte
	_, _ = rand.Read(b[:])
	return &Generator{seq: binary.BigEndian.Uint16(b[:])}
}

// NewGeneratorAt returns a Generator whose first sequence value is seq.
func NewGeneratorAt(seq uint16) *Generator {
	return &Generator{seq: seq}
}

// Next returns the identifier for a record created at t.
func (g *Generator) Next(t time.Time) string {
	g.mu.Lock()
	seq := g.seq
	g.seq++
	g.mu.Unlock()

	ts := uint32(t.Unix())
	return fmt.Sprintf("%08x%08x%04x", ts, ts*1103515245+12345, seq)
}

// FormatTimestamp formats t in the calendar layout used by the log.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a stored calendar timestamp in the local zone.
func ParseTimestamp(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Elapsed returns the whole seconds from start to now, or 0 if the clock went backwards.
func Elapsed(start, now int64) int64 {
	if now > start {
		return now - start
	}
	return 0
}

// FormatDuration formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationHHMMSS formats seconds as HH:MM:SS.
func FormatDurationHHMMSS(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
