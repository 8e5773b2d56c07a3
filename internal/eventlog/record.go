package eventlog

import (
	"strconv"

	"github.com/Tiliavir/babylog/internal/model"
)

// maxRecordLen bounds one encoded record, newline included.
const maxRecordLen = 160

// AppendRecord appends the log line for e, newline terminated, to dst.
// The duration is omitted when zero.
func AppendRecord(dst []byte, e model.Event) []byte {
	dst = append(dst, `{"ts":"`...)
	dst = append(dst, e.Timestamp...)
	dst = append(dst, `","type":"`...)
	dst = append(dst, e.Kind.String()...)
	dst = append(dst, `","id":"`...)
	dst = append(dst, e.ID...)
	dst = append(dst, `","epoch":`...)
	dst = strconv.AppendInt(dst, e.Epoch, 10)
	if e.Duration > 0 {
		dst = append(dst, `,"dur":`...)
		dst = strconv.AppendInt(dst, e.Duration, 10)
	}
	return append(dst, "}\n"...)
}

// AppendTombstone appends the tombstone line for id to dst.
func AppendTombstone(dst []byte, id string) []byte {
	dst = append(dst, `{"id":"`...)
	dst = append(dst, id...)
	return append(dst, "\"}\n"...)
}
