package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestWatcherSignalsOnNewRecording(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.webm"), []byte("x"), 0o644))

	select {
	case <-w.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal after writing a recording")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-w.Events():
		t.Fatal("non-video files must not signal")
	case <-time.After(500 * time.Millisecond):
	}
}
