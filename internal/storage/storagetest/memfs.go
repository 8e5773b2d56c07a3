// Package storagetest provides an in-memory storage.FS for tests.
package storagetest

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"

	"github.com/Tiliavir/babylog/internal/storage"
)

// MemFS is an in-memory storage.FS. Setting Err makes every operation fail with it,
// which simulates an unavailable storage device.
type MemFS struct {
	mu    sync.Mutex
	files map[string][]byte
	Err   error
}

// NewMemFS returns an empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// Append implements storage.FS.
func (m *MemFS) Append(name string, p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.files[name] = append(m.files[name], p...)
	return nil
}

// Open implements storage.FS. The returned handle reads a snapshot of the file.
func (m *MemFS) Open(name string) (storage.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
	}
	return memFile{bytes.NewReader(bytes.Clone(data))}, nil
}

// Remove implements storage.FS.
func (m *MemFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.files[name]; !ok {
		return fmt.Errorf("remove %s: %w", name, fs.ErrNotExist)
	}
	delete(m.files, name)
	return nil
}

// WriteFile replaces the contents of name.
func (m *MemFS) WriteFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = bytes.Clone(data)
}

// ReadFile returns a copy of name's contents and whether it exists.
func (m *MemFS) ReadFile(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	return bytes.Clone(data), ok
}

type memFile struct {
	*bytes.Reader
}

func (f memFile) Size() (int64, error) { return f.Reader.Size(), nil }

func (f memFile) Close() error { return nil }
