// Package watch reports edits to storyboard and config files so a running
// host can reload them.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a path must stay quiet before its change is
// reported. It collapses the burst of events most editors produce for a
// single save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher forwards changes to files with one of the watched extensions.
// Events and Errors are closed by Close.
type Watcher struct {
	watcher    *fsnotify.Watcher
	extensions map[string]bool
	debounce   time.Duration

	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// New watches the given paths (files or directories) for writes, creates,
// renames and removes of files ending in one of exts (".yaml", ".yml" when
// exts is empty).
func New(paths []string, exts ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	if len(exts) == 0 {
		exts = []string{".yaml", ".yml"}
	}
	extensions := make(map[string]bool, len(exts))
	for _, e := range exts {
		extensions[strings.ToLower(e)] = true
	}

	watcher := &Watcher{
		watcher:    w,
		extensions: extensions,
		debounce:   DefaultDebounce,
		Events:     make(chan string, 16),
		Errors:     make(chan error, 1),
		closeCh:    make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching and closes the channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Poll returns the next pending changed path without blocking. It lets a
// single-threaded update loop drain changes once per frame.
func (w *Watcher) Poll() (string, bool) {
	select {
	case name, ok := <-w.Events:
		return name, ok
	default:
		return "", false
	}
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	// A path is reported once it has been quiet for the debounce window, so
	// the last write of a burst is the one a reader sees.
	pending := make(map[string]time.Time)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.extensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			pending[event.Name] = time.Now().Add(w.debounce)
			if fire == nil {
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			}
		case <-fire:
			fire = nil
			now := time.Now()
			next := time.Duration(-1)
			for name, due := range pending {
				if wait := due.Sub(now); wait > 0 {
					if next < 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			if next >= 0 {
				timer.Reset(next)
				fire = timer.C
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
