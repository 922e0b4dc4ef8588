package pairing

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/foodnjam/foodnjam-server/internal/logger"
)

// reloadDebounce coalesces the burst of write events editors emit when
// saving a file.
const reloadDebounce = 250 * time.Millisecond

// MappingWatcher hot-reloads the cuisine-genre table when an operator
// edits the mapping override file. Watches the parent directory rather
// than the file itself so atomic save-and-rename still triggers.
type MappingWatcher struct {
	table   *Table
	path    string
	watcher *fsnotify.Watcher
	log     *logger.Logger

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewMappingWatcher starts watching the mapping file at path.
func NewMappingWatcher(table *Table, path string, log *logger.Logger) (*MappingWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch mapping directory: %w", err)
	}

	w := &MappingWatcher{
		table:   table,
		path:    path,
		watcher: watcher,
		log:     log,
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

func (w *MappingWatcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("mapping watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// scheduleReload resets the debounce timer; the reload fires once the
// file has been quiet for reloadDebounce.
func (w *MappingWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *MappingWatcher) reload() {
	if err := w.table.ReloadFromFile(w.path); err != nil {
		// Keep serving the previous table on a bad edit.
		w.log.Warn("mapping reload failed, keeping current table", "path", w.path, "error", err)
		return
	}
	w.log.Info("cuisine-genre mapping reloaded", "path", w.path)
}

// Close stops the watcher and waits for the event loop to exit.
func (w *MappingWatcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}
