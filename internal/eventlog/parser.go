package eventlog

import (
	"bytes"

	"github.com/Tiliavir/babylog/internal/model"
	"github.com/Tiliavir/babylog/internal/timecalc"
)

const (
	// MinLineLength is the shortest line that can hold a record.
	MinLineLength = 10
	// MaxIDLength caps stored identifiers; longer ones are truncated.
	MaxIDLength = 32

	maxKindLength = 16
	maxTSLength   = 32
)

type scanState uint8

const (
	stateOpen scanState = iota
	stateKey
	stateColon
	stateValue
	stateNext
	stateEnd
	stateError
)

// scanner walks a single-line flat JSON object one key/value pair at a time.
// Nested values are not supported; a line is well formed only if the scanner
// reaches the closing brace with nothing but whitespace after it.
type scanner struct {
	line  []byte
	pos   int
	state scanState
}

// field returns the next key and raw value. quoted values are returned
// without their quotes and with escapes left as written.
func (s *scanner) field() (key, val []byte, ok bool) {
	for {
		s.skipSpace()
		switch s.state {
		case stateOpen:
			if !s.consume('{') {
				s.state = stateError
				return nil, nil, false
			}
			s.state = stateKey
		case stateKey:
			if s.consume('}') {
				s.finish()
				return nil, nil, false
			}
			k, good := s.quoted()
			if !good {
				s.state = stateError
				return nil, nil, false
			}
			key = k
			s.state = stateColon
		case stateColon:
			if !s.consume(':') {
				s.state = stateError
				return nil, nil, false
			}
			s.state = stateValue
		case stateValue:
			var good bool
			if s.peek() == '"' {
				val, good = s.quoted()
			} else {
				val, good = s.bare()
			}
			if !good {
				s.state = stateError
				return nil, nil, false
			}
			s.state = stateNext
			return key, val, true
		case stateNext:
			if s.consume(',') {
				s.state = stateKey
				continue
			}
			if s.consume('}') {
				s.finish()
				return nil, nil, false
			}
			s.state = stateError
			return nil, nil, false
		default:
			return nil, nil, false
		}
	}
}

func (s *scanner) complete() bool { return s.state == stateEnd }

func (s *scanner) finish() {
	s.skipSpace()
	if s.pos == len(s.line) {
		s.state = stateEnd
		return
	}
	s.state = stateError
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.line) {
		switch s.line[s.pos] {
		case ' ', '\t':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) peek() byte {
	if s.pos < len(s.line) {
		return s.line[s.pos]
	}
	return 0
}

func (s *scanner) consume(c byte) bool {
	if s.peek() == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) quoted() ([]byte, bool) {
	if !s.consume('"') {
		return nil, false
	}
	start := s.pos
	for s.pos < len(s.line) {
		switch s.line[s.pos] {
		case '\\':
			s.pos += 2
		case '"':
			v := s.line[start:s.pos]
			s.pos++
			return v, true
		default:
			s.pos++
		}
	}
	return nil, false
}

func (s *scanner) bare() ([]byte, bool) {
	start := s.pos
	for s.pos < len(s.line) {
		c := s.line[s.pos]
		if c == ',' || c == '}' || c == ' ' || c == '\t' || c == '"' || c == '{' {
			break
		}
		s.pos++
	}
	return s.line[start:s.pos], s.pos > start
}

// fields holds the extracted values in fixed-size buffers.
type fields struct {
	id      [MaxIDLength]byte
	idLen   int
	kind    [maxKindLength]byte
	kindLen int
	hasKind bool
	ts      [maxTSLength]byte
	tsLen   int
	epoch   int64
	dur     int64
	hasDur  bool
}

// ParseLine converts one log line into an Event. It reports false for lines
// that are too short, do not open with '{', are not a complete object or carry
// no id. A missing or unknown type yields KindDiaper with KindKnown unset.
func ParseLine(line []byte) (model.Event, bool) {
	line = bytes.TrimRight(line, " \t\r\n")
	if len(line) < MinLineLength || line[0] != '{' {
		return model.Event{}, false
	}

	var f fields
	s := scanner{line: line}
	for {
		key, val, ok := s.field()
		if !ok {
			break
		}
		switch string(key) {
		case "id":
			f.idLen = copy(f.id[:], val)
		case "type":
			f.kindLen = copy(f.kind[:], val)
			f.hasKind = len(val) <= maxKindLength
		case "ts":
			f.tsLen = copy(f.ts[:], val)
		case "epoch":
			f.epoch = leadingDigits(val)
		case "dur":
			f.dur, f.hasDur = leadingDigits(val), true
		case "duration":
			if !f.hasDur {
				f.dur = leadingDigits(val)
			}
		}
	}
	if !s.complete() || f.idLen == 0 {
		return model.Event{}, false
	}

	e := model.Event{
		ID:        string(f.id[:f.idLen]),
		Timestamp: string(f.ts[:f.tsLen]),
		Epoch:     f.epoch,
		Duration:  f.dur,
		Kind:      model.KindDiaper,
	}
	if f.hasKind {
		e.Kind, e.KindKnown = model.ParseKind(string(f.kind[:f.kindLen]))
	}
	if e.Epoch == 0 {
		if t, ok := timecalc.ParseTimestamp(e.Timestamp); ok {
			e.Epoch = t.Unix()
		}
	}
	return e, true
}

// ParseTombstone extracts the id from one tombstone line.
func ParseTombstone(line []byte) (string, bool) {
	line = bytes.TrimRight(line, " \t\r\n")
	if len(line) < MinLineLength || line[0] != '{' {
		return "", false
	}
	var (
		id    [MaxIDLength]byte
		idLen int
	)
	s := scanner{line: line}
	for {
		key, val, ok := s.field()
		if !ok {
			break
		}
		if string(key) == "id" {
			idLen = copy(id[:], val)
		}
	}
	if !s.complete() || idLen == 0 {
		return "", false
	}
	return string(id[:idLen]), true
}

// leadingDigits parses the first run of decimal digits in v, or 0 if v does
// not start with one. Values that would overflow stop accumulating.
func leadingDigits(v []byte) int64 {
	var n int64
	for _, c := range v {
		if c < '0' || c > '9' {
			break
		}
		if n > (1<<62)/10 {
			break
		}
		n = n*10 + int64(c-'0')
	}
	return n
}

// eachLine calls fn for every non-empty line of window, splitting on \n and \r.
func eachLine(window []byte, fn func(line []byte)) {
	for len(window) > 0 {
		i := bytes.IndexAny(window, "\r\n")
		if i < 0 {
			fn(window)
			return
		}
		if i > 0 {
			fn(window[:i])
		}
		window = window[i+1:]
	}
}
