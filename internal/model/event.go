package model

// Kind identifies the type of a logged caregiving event.
type Kind int

const (
	KindDiaper Kind = iota
	KindFeedingStart
	KindFeedingStop
	KindSleepStart
	KindSleepStop
)

// kindTags are the names written to the log's "type" field.
var kindTags = [...]string{
	KindDiaper:       "diaper",
	KindFeedingStart: "feeding_start",
	KindFeedingStop:  "feeding_stop",
	KindSleepStart:   "sleep_start",
	KindSleepStop:    "sleep_stop",
}

// String returns the tag stored in the log for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindTags) {
		return "unknown"
	}
	return kindTags[k]
}

// IsStop reports whether k closes a feeding or sleep session and may carry a duration.
func (k Kind) IsStop() bool {
	return k == KindFeedingStop || k == KindSleepStop
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= KindDiaper && int(k) < len(kindTags)
}

// ParseKind maps a log tag back to its Kind.
func ParseKind(tag string) (Kind, bool) {
	for i, t := range kindTags {
		if t == tag {
			return Kind(i), true
		}
	}
	return KindDiaper, false
}

// Event represents a single record of the event log.
type Event struct {
	ID        string
	Timestamp string // calendar time, timecalc.TimestampLayout
	Epoch     int64  // Unix seconds; 0 if unknown
	Kind      Kind
	Duration  int64 // seconds, stop kinds only
	// KindKnown is false when the stored type tag was missing or unrecognised
	// and Kind fell back to KindDiaper.
	KindKnown bool
}

// Type returns the stored tag for e.Kind.
func (e Event) Type() string {
	return e.Kind.String()
}
