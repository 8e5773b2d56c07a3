package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherSignalsTrackedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	w, err := New(dir, []string{"log.jsonl"}, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "log.jsonl"), []byte("{}\n"), 0o600))

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled for log.jsonl")
	}
}

func TestWatcherCloseClosesChanges(t *testing.T) {
	w, err := New(t.TempDir(), []string{"log.jsonl"}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("changes channel not closed after Close")
		}
	}
}
