package eventlog

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Tiliavir/babylog/internal/storage"
)

// Tombstones is the append-only store of deleted record ids.
type Tombstones struct {
	fs       storage.FS
	name     string
	maxBytes int
}

// NewTombstones returns a store backed by name. At most maxBytes of the
// store are read back; when it grows past that only the newest tombstones
// are kept.
func NewTombstones(fsys storage.FS, name string, maxBytes int) *Tombstones {
	return &Tombstones{fs: fsys, name: name, maxBytes: maxBytes}
}

// MarkDeleted appends id to the store. Empty or oversized ids are ignored.
func (t *Tombstones) MarkDeleted(id string) error {
	if id == "" || len(id) > MaxIDLength {
		return nil
	}
	var buf [MaxIDLength + 16]byte
	if err := t.fs.Append(t.name, AppendTombstone(buf[:0], id)); err != nil {
		return fmt.Errorf("mark %s deleted: %w", id, err)
	}
	return nil
}

// LoadAll returns every tombstoned id within the read window. Duplicates collapse.
func (t *Tombstones) LoadAll() (map[string]struct{}, error) {
	window, err := ReadTail(t.fs, t.name, make([]byte, t.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("load tombstones: %w", err)
	}
	ids := make(map[string]struct{})
	eachLine(window, func(line []byte) {
		if id, ok := ParseTombstone(line); ok {
			ids[id] = struct{}{}
		}
	})
	return ids, nil
}

// ClearAll removes the store. A missing store is not an error.
func (t *Tombstones) ClearAll() error {
	if err := t.fs.Remove(t.name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear tombstones: %w", err)
	}
	return nil
}
