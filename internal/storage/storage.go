package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

// File is an open, readable handle on a stored file.
type File interface {
	io.ReadCloser
	// Size returns the total size of the file in bytes.
	Size() (int64, error)
}

// FS is the storage capability the log is built on. Handles are never kept
// open between calls: each operation opens, acts and closes.
type FS interface {
	// Append opens name for appending, creating it if needed, writes p and
	// closes the file. A nil error means the bytes were handed to the device.
	Append(name string, p []byte) error
	// Open opens name for reading. Missing files yield an error matching fs.ErrNotExist.
	Open(name string) (File, error)
	// Remove deletes name. Missing files yield an error matching fs.ErrNotExist.
	Remove(name string) error
}

// BaseDir returns the root data directory (~/.babylog).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".babylog"), nil
}

// ExpandPath resolves a leading ~ to the home directory and makes path absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// DirFS is an FS rooted at a directory on the local disk.
type DirFS struct {
	Root string
}

// NewDirFS returns a DirFS for root.
func NewDirFS(root string) *DirFS {
	return &DirFS{Root: root}
}

func (d *DirFS) path(name string) string {
	return filepath.Join(d.Root, name)
}

// Append implements FS.
func (d *DirFS) Append(name string, p []byte) error {
	if err := os.MkdirAll(d.Root, 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	f, err := os.OpenFile(d.path(name), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("storage error opening %s: %w", name, err)
	}
	if _, err := f.Write(p); err != nil {
		_ = f.Close()
		return fmt.Errorf("storage error appending to %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage error closing %s: %w", name, err)
	}
	return nil
}

// Open implements FS.
func (d *DirFS) Open(name string) (File, error) {
	f, err := os.Open(d.path(name))
	if err != nil {
		return nil, fmt.Errorf("storage error opening %s: %w", name, err)
	}
	return osFile{f}, nil
}

// Remove implements FS.
func (d *DirFS) Remove(name string) error {
	if err := os.Remove(d.path(name)); err != nil {
		return fmt.Errorf("storage error removing %s: %w", name, err)
	}
	return nil
}

// osFile exposes Seek from the embedded *os.File so readers can skip ahead.
type osFile struct {
	*os.File
}

func (f osFile) Size() (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// LoadJSON decodes the JSON document at path into v. It reports false when
// the file does not exist. A corrupt file is backed up to path+".corrupt".
func LoadJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	if err := sonic.Unmarshal(data, v); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return false, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return true, nil
}

// SaveJSON atomically writes v as indented JSON to path.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
