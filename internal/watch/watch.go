// Package watch reports changes to goat source files.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Extension is the file extension of goat sources.
const Extension = ".goat"

// Watcher calls back with the path of every goat file that changed. Files
// are watched through their parent directory so that editors which replace
// files on save are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce *Debouncer

	// files are explicitly named files; dirs are watched for any goat file.
	files map[string]bool
	dirs  map[string]bool

	mu      sync.Mutex
	running bool

	// handling serializes onChange calls, which run on timer goroutines.
	handling sync.Mutex
}

// New starts watching paths, each a goat file or a directory of them.
// Events that arrive before Watch is called are not lost.
func New(paths []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsw,
		logger:   logger,
		debounce: NewDebouncer(debounce),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}
	for _, path := range paths {
		if err := w.add(path); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", path, err)
	}

	dir := path
	if info.IsDir() {
		w.dirs[path] = true
	} else {
		w.files[path] = true
		dir = filepath.Dir(path)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}
	w.logger.Debug("watching", "path", path)
	return nil
}

// Watch blocks until ctx is cancelled, calling onChange for each changed
// file once it has been quiet for the debounce interval. Errors from
// onChange are logged and do not stop the watcher. Calls to onChange never
// overlap, even for different files. Watch closes the
// Watcher when it returns.
func (w *Watcher) Watch(ctx context.Context, onChange func(path string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())

			path := event.Name
			w.debounce.Trigger(path, func() {
				w.handling.Lock()
				defer w.handling.Unlock()
				if err := onChange(path); err != nil {
					w.logger.Error("handling change failed", "path", path, "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if w.files[event.Name] {
		return true
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || !strings.EqualFold(filepath.Ext(base), Extension) {
		return false
	}
	return w.dirs[filepath.Dir(event.Name)]
}
