// Package eventlog implements babylog's append-only event log.
//
// # Files
//
// Two newline-delimited files live in the data directory:
//   - log.jsonl      one record per event: {"ts":"...","type":"...","id":"...","epoch":N,"dur":N}
//   - deleted.jsonl  one tombstone per undo: {"id":"..."}
//
// Records are never rewritten. Undo appends a tombstone; clear removes both files.
//
// # Bounded reads
//
// The event log can grow without limit, so the recent view is rebuilt from a
// fixed-size window at the end of the file:
//
//	l := eventlog.New(storage.NewDirFS(dir), eventlog.Options{})
//	_, _ = l.Append(model.KindDiaper, 0)
//	recent := l.Recent(10) // oldest to newest, tombstoned ids removed
//
// The window usually starts inside a record. That fragment, a torn trailing
// write and any other malformed line are dropped by ParseLine; nothing in
// this package fails the caller because of file contents.
package eventlog
