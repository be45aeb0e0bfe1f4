package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telgren/codeview/internal/watcher"
)

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.go")
	err := os.WriteFile(filePath, []byte("package main"), 0o644)
	require.NoError(t, err, "failed to create test file")

	w, err := watcher.New(watcher.Config{
		FilePath:    filePath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	// Rapid writes should coalesce into single notification
	for i := 0; i < 10; i++ {
		err := os.WriteFile(filePath, []byte(fmt.Sprintf("package main // %d", i)), 0o644)
		require.NoError(t, err, "failed to write file")
		time.Sleep(10 * time.Millisecond)
	}

	// Should receive exactly one notification
	select {
	case <-onChange:
		// Expected
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	// No second notification should come quickly
	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
		// Expected - no second notification
	}
}

func TestWatcher_IgnoresOtherFilesInDirectory(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.go")
	otherPath := filepath.Join(dir, "other.txt")
	err := os.WriteFile(filePath, []byte("package main"), 0o644)
	require.NoError(t, err, "failed to create watched file")
	// Pre-create the other file so writes to it are just Write events
	err = os.WriteFile(otherPath, []byte("initial"), 0o644)
	require.NoError(t, err, "failed to create other file")

	w, err := watcher.New(watcher.Config{
		FilePath:    filePath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	// Write to unrelated file (not Create, since it already exists)
	err = os.WriteFile(otherPath, []byte("other content"), 0o644)
	require.NoError(t, err, "failed to write other file")

	select {
	case <-onChange:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(100 * time.Millisecond):
		// Expected - no notification for unrelated file
	}
}

func TestWatcher_NotifiesOnRename(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.go")
	err := os.WriteFile(filePath, []byte("package main"), 0o644)
	require.NoError(t, err, "failed to create test file")

	w, err := watcher.New(watcher.Config{
		FilePath:    filePath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	// Save-via-rename, the way most editors write files
	tmpPath := filepath.Join(dir, ".main.go.tmp")
	err = os.WriteFile(tmpPath, []byte("package main // v2"), 0o644)
	require.NoError(t, err, "failed to write temp file")
	err = os.Rename(tmpPath, filePath)
	require.NoError(t, err, "failed to rename temp file")

	select {
	case <-onChange:
		// Expected
	case <-time.After(300 * time.Millisecond):
		t.Fatal("expected notification for save-via-rename")
	}
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.go")
	err := os.WriteFile(filePath, []byte("package main"), 0o644)
	require.NoError(t, err, "failed to create test file")

	w, err := watcher.New(watcher.Config{
		FilePath:    filePath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")

	_, err = w.Start()
	require.NoError(t, err, "failed to start watcher")

	// Stop should not hang or panic
	done := make(chan struct{})
	go func() {
		err := w.Stop()
		assert.NoError(t, err, "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
		// Expected - stop completed successfully
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWatcher_StopClosesChannel(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.go")
	err := os.WriteFile(filePath, []byte("package main"), 0o644)
	require.NoError(t, err, "failed to create test file")

	w, err := watcher.New(watcher.Config{
		FilePath:    filePath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	require.NoError(t, w.Stop())

	// A receiver blocked on the channel must unblock once the loop
	// exits, seeing the channel closed rather than a change signal.
	select {
	case _, ok := <-onChange:
		assert.False(t, ok, "expected closed channel, got a notification")
	case <-time.After(1 * time.Second):
		t.Fatal("receive did not unblock after Stop")
	}
}

func TestDefaultConfig(t *testing.T) {
	filePath := "/src/project/main.go"
	cfg := watcher.DefaultConfig(filePath)

	assert.Equal(t, filePath, cfg.FilePath)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceDur)
}
