// Package watcher reports changes to macro files so the owner can reload.
//
// Bursts of file events are coalesced: one Change is delivered once no
// relevant event has arrived for the debounce delay.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the debounce delay used when none is given.
const DefaultDelay = 250 * time.Millisecond

// Errors returned by the watcher.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
)

// Change lists the files that changed during one burst.
type Change struct {
	Paths []string
	Time  time.Time
}

// Watcher watches macro files and directories of shelf files.
type Watcher struct {
	mu sync.Mutex

	fsw   *fsnotify.Watcher
	delay time.Duration

	// dirs are watched for *.xml; files are watched individually through
	// their parent directory.
	dirs  map[string]bool
	files map[string]bool
	added map[string]bool

	changes chan Change
	errors  chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New creates a watcher and starts its event loop.
func New(delay time.Duration) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		delay:   delay,
		dirs:    make(map[string]bool),
		files:   make(map[string]bool),
		added:   make(map[string]bool),
		changes: make(chan Change, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// WatchDir reports changes to *.xml files directly inside dir.
func (w *Watcher) WatchDir(dir string) error {
	abs, err := existing(dir)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.addLocked(abs); err != nil {
		return err
	}
	w.dirs[abs] = true
	return nil
}

// WatchFile reports changes to one file. The file may not exist yet, but
// its directory must.
func (w *Watcher) WatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir, err := existing(filepath.Dir(abs))
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.addLocked(dir); err != nil {
		return err
	}
	w.files[filepath.Join(dir, filepath.Base(abs))] = true
	return nil
}

func (w *Watcher) addLocked(dir string) error {
	if w.closed {
		return ErrWatcherClosed
	}
	if w.added[dir] {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.added[dir] = true
	return nil
}

func existing(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", ErrPathNotExist
		}
		return "", err
	}
	return abs, nil
}

// Changes returns the channel of coalesced changes. It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Errors returns watcher errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Pending changes are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	close(w.changes)
	close(w.errors)
	return w.fsw.Close()
}

// relevant reports whether an event on path should trigger a reload.
func (w *Watcher) relevant(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[path] {
		return true
	}
	return w.dirs[filepath.Dir(path)] && filepath.Ext(path) == ".xml"
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod || !w.relevant(ev.Name) {
				continue
			}
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.send(pending)
			pending = make(map[string]bool)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) send(pending map[string]bool) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	select {
	case w.changes <- Change{Paths: paths, Time: time.Now()}:
	default:
		select {
		case w.errors <- errors.New("change channel full, dropping change"):
		default:
		}
	}
}
