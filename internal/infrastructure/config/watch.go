package config

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is the quiet period a file needs before its change is reported
const debounce = 100 * time.Millisecond

// Watcher reports YAML files changed under the watched directories
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dirs (not recursively)
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once run exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Poll returns a pending change without blocking
func (w *Watcher) Poll() (string, bool) {
	select {
	case name, ok := <-w.Events:
		return name, ok
	default:
		return "", false
	}
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	var (
		pending = newDebouncer(debounce)
		timer   *time.Timer
		fire    <-chan time.Time
	)
	schedule := func(now time.Time) {
		if timer != nil {
			timer.Stop()
		}
		fire = nil
		if at, ok := pending.next(); ok {
			timer = time.NewTimer(at.Sub(now))
			fire = timer.C
		}
	}
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
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isConfigFile(event.Name) {
				continue
			}
			now := time.Now()
			pending.touch(event.Name, now)
			schedule(now)
		case now := <-fire:
			for _, name := range pending.due(now) {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			schedule(time.Now())
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

// debouncer holds each path until no event has touched it for the window.
// A truncate followed by a write is reported once, after the write.
type debouncer struct {
	window   time.Duration
	deadline map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, deadline: make(map[string]time.Time)}
}

// touch restarts the quiet period for name
func (d *debouncer) touch(name string, now time.Time) {
	d.deadline[name] = now.Add(d.window)
}

// next returns the earliest pending deadline
func (d *debouncer) next() (time.Time, bool) {
	var at time.Time
	found := false
	for _, t := range d.deadline {
		if !found || t.Before(at) {
			at, found = t, true
		}
	}
	return at, found
}

// due removes and returns the paths whose quiet period has ended, sorted
func (d *debouncer) due(now time.Time) []string {
	var names []string
	for name, t := range d.deadline {
		if !now.Before(t) {
			names = append(names, name)
			delete(d.deadline, name)
		}
	}
	sort.Strings(names)
	return names
}

func isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
