package server

import (
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DEFAULT_DEBOUNCE_TIME = 100 * time.Millisecond

// Change is one debounced batch of changed files, or a watcher error.
type Change struct {
	// Paths are slash-separated and relative to the watched root, sorted.
	Paths []string
	Err   error
}

// Watcher reports debounced changes anywhere below a directory. Update is
// closed once the watcher is closed.
type Watcher struct {
	watcher      *fsnotify.Watcher
	root         string
	debounceTime time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	closed  bool

	onUpdate chan<- Change
	Update   <-chan Change
}

func WatchDir(root string, debounceTime time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	updateCh := make(chan Change, 1)

	out := &Watcher{
		watcher:      watcher,
		root:         root,
		debounceTime: debounceTime,
		pending:      make(map[string]struct{}),
		onUpdate:     updateCh,
		Update:       updateCh,
	}

	go out.process()

	return out, nil
}

func (w *Watcher) relative(name string) string {
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return filepath.ToSlash(name)
	}
	return filepath.ToSlash(rel)
}

func (w *Watcher) debounceUpdate(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.pending[w.relative(name)] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounceTime, w.flush)
}

// flush sends the pending paths. When the reader is behind, the batch is
// kept and retried after another debounce period.
func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || len(w.pending) == 0 {
		return
	}

	select {
	case w.onUpdate <- Change{Paths: slices.Sorted(maps.Keys(w.pending))}:
		w.pending = make(map[string]struct{})
	default:
		w.timer = time.AfterFunc(w.debounceTime, w.flush)
	}
}

// addDir watches a directory created after WatchDir. A failure is reported
// on Update; the rest of the tree stays watched.
func (w *Watcher) addDir(name string) {
	if err := w.watcher.Add(name); err != nil {
		w.reportError(fmt.Errorf("Unable to watch %v: %w", w.relative(name), err))
	}
}

// reportError must not be called once process has returned.
func (w *Watcher) reportError(err error) {
	select {
	case w.onUpdate <- Change{Err: err}:
	default:
	}
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) process() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		close(w.onUpdate)
		w.mu.Unlock()
	}()

	for {
		select {
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				// New directories are not covered by the existing watches.
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.addDir(ev.Name)
				}
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				w.debounceUpdate(ev.Name)
			}
		}
	}
}
