package eventlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/babylog/internal/model"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		want model.Event
	}{
		{
			name: "feeding stop with duration",
			line: `{"ts":"2026-02-27T08:32:10","type":"feeding_stop","id":"69a15e4a0ee2b0c30001","epoch":1772181130,"dur":300}`,
			ok:   true,
			want: model.Event{ID: "69a15e4a0ee2b0c30001", Timestamp: "2026-02-27T08:32:10", Epoch: 1772181130, Kind: model.KindFeedingStop, Duration: 300, KindKnown: true},
		},
		{
			name: "record without epoch or duration",
			line: `{"type":"sleep_start","id":"abc123"}`,
			ok:   true,
			want: model.Event{ID: "abc123", Kind: model.KindSleepStart, KindKnown: true},
		},
		{
			name: "long duration key",
			line: `{"type":"sleep_stop","id":"abc123","duration":42}`,
			ok:   true,
			want: model.Event{ID: "abc123", Kind: model.KindSleepStop, Duration: 42, KindKnown: true},
		},
		{
			name: "dur wins over duration",
			line: `{"type":"sleep_stop","id":"abc123","duration":42,"dur":7}`,
			ok:   true,
			want: model.Event{ID: "abc123", Kind: model.KindSleepStop, Duration: 7, KindKnown: true},
		},
		{
			name: "unknown type falls back to diaper",
			line: `{"type":"bath","id":"abc123"}`,
			ok:   true,
			want: model.Event{ID: "abc123", Kind: model.KindDiaper},
		},
		{
			name: "missing type falls back to diaper",
			line: `{"id":"abc123","epoch":5}`,
			ok:   true,
			want: model.Event{ID: "abc123", Epoch: 5, Kind: model.KindDiaper},
		},
		{
			name: "crlf and spaces",
			line: "{ \"id\" : \"abc123\" , \"type\" : \"diaper\" }\r\n",
			ok:   true,
			want: model.Event{ID: "abc123", Kind: model.KindDiaper, KindKnown: true},
		},
		{
			name: "unknown keys and bare literals are skipped",
			line: `{"id":"abc123","note":"x,y}","flag":true,"type":"diaper"}`,
			ok:   true,
			want: model.Event{ID: "abc123", Kind: model.KindDiaper, KindKnown: true},
		},
		{name: "too short", line: `{"id":1}`},
		{name: "fragment", line: `2-27T08:32:10","type":"diaper","id":"abc123"}`},
		{name: "no id", line: `{"ts":"2026-02-27T08:32:10","type":"diaper"}`},
		{name: "empty id", line: `{"type":"diaper","id":""}`},
		{name: "torn write", line: `{"ts":"2026-02-27T08:32:10","type":"diaper","id":"abc1`},
		{name: "missing closing brace", line: `{"type":"diaper","id":"abc123"`},
		{name: "two records glued together", line: `{"type":"diaper","id":"ab{"type":"diaper","id":"cd"}`},
		{name: "trailing garbage", line: `{"type":"diaper","id":"abc123"}xyz`},
		{name: "missing colon", line: `{"type" "diaper","id":"abc123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine([]byte(tt.line))
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseLineEpochFromTimestamp(t *testing.T) {
	e, ok := ParseLine([]byte(`{"ts":"2026-02-27T08:32:10","type":"diaper","id":"abc123"}`))
	require.True(t, ok)
	assert.NotZero(t, e.Epoch)
}

func TestParseLineTruncatesLongID(t *testing.T) {
	long := strings.Repeat("a", 40)
	e, ok := ParseLine([]byte(`{"type":"diaper","id":"` + long + `"}`))
	require.True(t, ok)
	assert.Equal(t, long[:MaxIDLength], e.ID)
}

func TestParseLineDurationDigitsOnly(t *testing.T) {
	e, ok := ParseLine([]byte(`{"type":"feeding_stop","id":"abc123","dur":"120s"}`))
	require.True(t, ok)
	assert.Equal(t, int64(120), e.Duration)

	e, ok = ParseLine([]byte(`{"type":"feeding_stop","id":"abc123","dur":-5}`))
	require.True(t, ok)
	assert.Zero(t, e.Duration)
}

func TestParseTombstone(t *testing.T) {
	id, ok := ParseTombstone([]byte(`{"id":"69a15e4a0ee2b0c30001"}`))
	require.True(t, ok)
	assert.Equal(t, "69a15e4a0ee2b0c30001", id)

	_, ok = ParseTombstone([]byte(`0ee2b0c30001"}`))
	assert.False(t, ok)
	_, ok = ParseTombstone([]byte(`{"id":""}   `))
	assert.False(t, ok)
}

func TestRecordRoundTrip(t *testing.T) {
	e := model.Event{
		ID:        "69a15e4a0ee2b0c30001",
		Timestamp: "2026-02-27T08:32:10",
		Epoch:     1772181130,
		Kind:      model.KindSleepStop,
		Duration:  5400,
		KindKnown: true,
	}
	line := AppendRecord(nil, e)
	assert.Equal(t, byte('\n'), line[len(line)-1])

	got, ok := ParseLine(line)
	require.True(t, ok)
	assert.Equal(t, e, got)

	e.Kind, e.Duration = model.KindDiaper, 0
	assert.NotContains(t, string(AppendRecord(nil, e)), `"dur"`)
}

func TestEachLine(t *testing.T) {
	var got []string
	eachLine([]byte("a\n\nb\r\nc"), func(line []byte) {
		got = append(got, string(line))
	})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
