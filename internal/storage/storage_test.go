package storage_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/babylog/internal/storage"
)

func TestDirFSAppendAndOpen(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested")
	d := storage.NewDirFS(base)

	require.NoError(t, d.Append("log.jsonl", []byte("one\n")))
	require.NoError(t, d.Append("log.jsonl", []byte("two\n")))

	f, err := d.Open("log.jsonl")
	require.NoError(t, err)
	defer f.Close()

	size, err := f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestDirFSMissingFile(t *testing.T) {
	d := storage.NewDirFS(t.TempDir())

	_, err := d.Open("missing.jsonl")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	err = d.Remove("missing.jsonl")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDirFSRemove(t *testing.T) {
	base := t.TempDir()
	d := storage.NewDirFS(base)
	require.NoError(t, d.Append("deleted.jsonl", []byte("x\n")))

	require.NoError(t, d.Remove("deleted.jsonl"))
	_, err := os.Stat(filepath.Join(base, "deleted.jsonl"))
	assert.True(t, os.IsNotExist(err))
}

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveJSONAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.json")

	var missing doc
	found, err := storage.LoadJSON(path, &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, storage.SaveJSON(path, doc{Name: "feeding", Count: 3}))

	var loaded doc
	found, err = storage.LoadJSON(path, &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Name: "feeding", Count: 3}, loaded)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestLoadJSONCorruptIsBackedUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad json"), 0o600))

	var d doc
	_, err := storage.LoadJSON(path, &d)
	require.Error(t, err)

	_, statErr := os.Stat(path + ".corrupt")
	assert.NoError(t, statErr, "expected backup file to exist after corrupt JSON")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := storage.ExpandPath("~/.babylog")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".babylog"), got)

	_, err = storage.ExpandPath("  ")
	assert.Error(t, err)
}
