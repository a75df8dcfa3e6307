package scan

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches the directories behind a set of scan targets
// and invokes a callback after changes settle. Transcript files
// are written in bursts, so events are debounced rather than
// handled one by one.
type Watcher struct {
	onChange func(paths []string)
	watcher  *fsnotify.Watcher
	debounce time.Duration
	pending  map[string]time.Time
	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewWatcher creates a watcher that calls onChange with the
// changed transcript paths once the debounce period elapses.
func NewWatcher(
	debounce time.Duration, onChange func(paths []string),
) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback is nil: %w", os.ErrInvalid)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		onChange: onChange,
		watcher:  fsw,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}, nil
}

// WatchTargets adds the directory trees behind each target: the
// target itself when it is a directory, the parent directory for
// a plain file, and the fixed base below any glob metacharacters
// for a pattern. Returns the number of directories watched.
func (w *Watcher) WatchTargets(targets []string) (watched int) {
	for _, target := range targets {
		expanded := expandHome(target)

		if info, err := os.Stat(expanded); err == nil {
			if info.IsDir() {
				watched += w.watchTree(expanded)
			} else {
				watched += w.watchDir(filepath.Dir(expanded))
			}
			continue
		}

		base, _ := doublestar.SplitPattern(expanded)
		if base != "" && base != "." {
			watched += w.watchTree(base)
		}
	}
	return watched
}

// watchTree adds root and every subdirectory under it.
func (w *Watcher) watchTree(root string) (watched int) {
	_ = filepath.WalkDir(root,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip inaccessible dirs
			}
			if d.IsDir() {
				watched += w.watchDir(path)
			}
			return nil
		})
	return watched
}

func (w *Watcher) watchDir(path string) int {
	if err := w.watcher.Add(path); err != nil {
		log.Printf("watch %s: %v", path, err)
		return 0
	}
	return 1
}

// Start begins processing file events in a goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop stops the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
		w.watcher.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

// handleEvent records a pending change for transcript writes and
// auto-watches directories as they appear (new day folders under
// a session root, for example).
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// Walk rather than add: a nested mkdir arrives as one
			// Create for the top directory, after its children
			// already exist.
			w.watchTree(event.Name)
			return
		}
	}

	if filepath.Ext(event.Name) != ".jsonl" {
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = w.now()
	w.mu.Unlock()
}

// flush fires the callback for changes older than the debounce
// window.
func (w *Watcher) flush() {
	w.mu.Lock()
	now := w.now()
	var ready []string
	for path, t := range w.pending {
		if now.Sub(t) >= w.debounce {
			ready = append(ready, path)
		}
	}
	for _, path := range ready {
		delete(w.pending, path)
	}
	w.mu.Unlock()

	if len(ready) == 0 {
		return
	}
	sort.Strings(ready)
	w.onChange(ready)
}
