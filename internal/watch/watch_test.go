package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_InitialRebuildAlwaysFires(t *testing.T) {
	input := filepath.Join(t.TempDir(), "article.yaml")
	require.NoError(t, os.WriteFile(input, []byte("article: {}"), 0o600))

	var builds atomic.Int32
	w, err := New(input, 10*time.Millisecond, testLogger(), func() error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, w.Run(ctx))
	require.GreaterOrEqual(t, builds.Load(), int32(1))
}

func TestRun_ChangeTriggersRebuild(t *testing.T) {
	input := filepath.Join(t.TempDir(), "article.yaml")
	require.NoError(t, os.WriteFile(input, []byte("article: {}"), 0o600))

	rebuilt := make(chan struct{}, 8)
	w, err := New(input, 20*time.Millisecond, testLogger(), func() error {
		rebuilt <- struct{}{}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Initial build.
	select {
	case <-rebuilt:
	case <-time.After(2 * time.Second):
		t.Fatal("initial rebuild never fired")
	}

	require.NoError(t, os.WriteFile(input, []byte("article: {title: X}"), 0o600))

	select {
	case <-rebuilt:
	case <-time.After(2 * time.Second):
		t.Fatal("rebuild after change never fired")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRun_UnrelatedFileIgnored(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "article.yaml")
	require.NoError(t, os.WriteFile(input, []byte("article: {}"), 0o600))

	var builds atomic.Int32
	w, err := New(input, 10*time.Millisecond, testLogger(), func() error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond) // let the initial build land
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	time.Sleep(100 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	require.Equal(t, int32(1), builds.Load())
}
