package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/babylog/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m"},
		{300, "5m"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{5400, "1h 30m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDurationHHMMSS(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDurationHHMMSS(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestElapsed(t *testing.T) {
	if got := timecalc.Elapsed(100, 400); got != 300 {
		t.Errorf("Elapsed(100, 400) = %d, want 300", got)
	}
	if got := timecalc.Elapsed(400, 100); got != 0 {
		t.Errorf("Elapsed with clock going backwards = %d, want 0", got)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2026, 2, 27, 8, 32, 10, 0, time.Local)
	s := timecalc.FormatTimestamp(ts)
	if s != "2026-02-27T08:32:10" {
		t.Fatalf("FormatTimestamp = %q", s)
	}
	back, ok := timecalc.ParseTimestamp(s)
	if !ok || !back.Equal(ts) {
		t.Errorf("ParseTimestamp(%q) = %v, %v", s, back, ok)
	}
	if _, ok := timecalc.ParseTimestamp("2026-02-27T08:3"); ok {
		t.Error("ParseTimestamp accepted a truncated timestamp")
	}
}

func TestGeneratorNext(t *testing.T) {
	ts := time.Unix(1, 0)
	g := timecalc.NewGeneratorAt(0)

	first := g.Next(ts)
	if len(first) != timecalc.IDLength {
		t.Fatalf("id length = %d, want %d", len(first), timecalc.IDLength)
	}
	// 1*1103515245+12345 = 0x41c67ea6
	if first != "0000000141c67ea60000" {
		t.Errorf("first id = %q", first)
	}

	second := g.Next(ts)
	if second == first {
		t.Error("ids minted in the same second collided")
	}
	if second[:16] != first[:16] {
		t.Errorf("timestamp prefix changed: %q vs %q", first, second)
	}
}

func TestGeneratorSequenceWraps(t *testing.T) {
	g := timecalc.NewGeneratorAt(0xffff)
	ts := time.Unix(1700000000, 0)
	a := g.Next(ts)
	b := g.Next(ts)
	if a[16:] != "ffff" || b[16:] != "0000" {
		t.Errorf("sequence suffixes = %q, %q", a[16:], b[16:])
	}
}
