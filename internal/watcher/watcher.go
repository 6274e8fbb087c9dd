// Package watcher reports changes to the board store made by other processes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/weekboard/internal/logger"
)

// Watcher watches the store's directory and calls OnChange once per burst of
// writes to the store file or its SQLite journal files.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()

	fsw       *fsnotify.Watcher
	readyOnce sync.Once
	ready     chan struct{}
}

func New(storePath string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}
	absPath, err := filepath.Abs(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// The directory is watched rather than the file so that atomic
	// rename-over writes are still seen.
	dir := filepath.Dir(absPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &Watcher{
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
		ready:    make(chan struct{}),
	}, nil
}

// Ready is closed once Run is consuming events.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run blocks until ctx is cancelled, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	w.readyOnce.Do(func() { close(w.ready) })

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Store change detected", "file", event.Name, "op", event.Op.String())
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			timerC = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Store watcher error", "error", err)
		case <-timerC:
			timerC = nil
			w.onChange()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == w.path {
		return true
	}
	// SQLite writes go through these first.
	return strings.HasPrefix(name, w.path+"-") &&
		(strings.HasSuffix(name, "-wal") || strings.HasSuffix(name, "-journal"))
}
