package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 300 * time.Millisecond

// storeWatcher watches the local SQLite file (and its WAL) for writes and
// calls onChange once per burst of events.
type storeWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
	logger   *slog.Logger
	files    map[string]bool

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	// inflight counts onChange calls that started before Close.
	inflight sync.WaitGroup
	done     chan struct{}
}

func newStoreWatcher(dbPath string, onChange func(), logger *slog.Logger) (*storeWatcher, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory (fsnotify watches dirs for file events)
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	w := &storeWatcher{
		watcher:  watcher,
		onChange: onChange,
		logger:   logger,
		files: map[string]bool{
			absPath:          true,
			absPath + "-wal": true,
		},
		done: make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Close stops the watcher and any pending notification. No onChange call
// runs after Close returns.
func (w *storeWatcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	err := w.watcher.Close()
	<-w.done
	w.inflight.Wait()
	return err
}

func (w *storeWatcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			absPath, _ := filepath.Abs(event.Name)
			if w.files[absPath] {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watcher error", "error", err)
		}
	}
}

func (w *storeWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Reset(watchDebounce)
		return
	}
	w.timer = time.AfterFunc(watchDebounce, w.fire)
}

func (w *storeWatcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.inflight.Add(1)
	w.mu.Unlock()
	defer w.inflight.Done()

	if w.onChange != nil {
		w.onChange()
	}
}
