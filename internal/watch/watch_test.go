package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iley/goat/internal/logging"
)

func startWatcher(t *testing.T, paths []string) <-chan string {
	t.Helper()
	w, err := New(paths, 20*time.Millisecond, logging.Discard())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(path string) error {
			changes <- path
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watch returned error: %v", err)
		}
	})
	return changes
}

func expectChange(t *testing.T, changes <-chan string, expected string) {
	t.Helper()
	select {
	case got := <-changes:
		if got != expected {
			t.Errorf("expected change of %s, got %s", expected, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported for %s", expected)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestWatchFile(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "main.goat")
	writeFile(t, path, "1")

	changes := startWatcher(t, []string{path})
	writeFile(t, filepath.Join(dir, "other.goat"), "2")
	writeFile(t, path, "1 + 2")

	expectChange(t, changes, path)
}

func TestWatchDirectory(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	changes := startWatcher(t, []string{dir})
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, ".hidden.goat"), "ignored")
	writeFile(t, filepath.Join(dir, "lib.goat"), "fun(x) do x done")

	expectChange(t, changes, filepath.Join(dir, "lib.goat"))
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil, time.Millisecond, nil); err == nil {
		t.Errorf("expected error for empty path list")
	}
	if _, err := New([]string{filepath.Join(t.TempDir(), "missing.goat")}, time.Millisecond, nil); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestWatchSerializesCallbacks(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	w, err := New([]string{dir}, 20*time.Millisecond, logging.Discard())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	var active, maxActive atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(path string) error {
			n := active.Add(1)
			for {
				m := maxActive.Load()
				if n <= m || maxActive.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(50 * time.Millisecond)
			active.Add(-1)
			changes <- path
			return nil
		})
	}()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watch returned error: %v", err)
		}
	}()

	a := filepath.Join(dir, "a.goat")
	b := filepath.Join(dir, "b.goat")
	writeFile(t, a, "1")
	writeFile(t, b, "2")

	seen := map[string]bool{}
	for len(seen) < 2 {
		select {
		case got := <-changes:
			seen[got] = true
		case <-time.After(5 * time.Second):
			t.Fatalf("expected changes of %s and %s, got %v", a, b, seen)
		}
	}
	if !seen[a] || !seen[b] {
		t.Errorf("expected changes of %s and %s, got %v", a, b, seen)
	}
	if got := maxActive.Load(); got != 1 {
		t.Errorf("expected callbacks to run one at a time, got %d at once", got)
	}
}
