package prefabs

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// ChangeKind says how a changed file should be reloaded.
type ChangeKind int

const (
	ChangePrefab ChangeKind = iota
	ChangeScript
)

func (k ChangeKind) String() string {
	if k == ChangeScript {
		return "script"
	}
	return "prefab"
}

// Change is one prefab or script file that was written since the last Poll.
// Name is the form Load and LoadScript expect.
type Change struct {
	Path string
	Name string
	Kind ChangeKind
}

// Watcher collects prefab and script writes in the background. The game loop
// drains them with Poll, so several saves of one file between ticks collapse
// into a single Change.
type Watcher struct {
	fs *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]Change
	seen    map[string]time.Time
	errs    []error

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fsw,
		pending: make(map[string]Change),
		seen:    make(map[string]time.Time),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and discards anything not yet polled. It is safe to
// call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done

		w.mu.Lock()
		clear(w.pending)
		w.errs = nil
		w.mu.Unlock()
	})
	return err
}

// Poll returns the files changed since the previous call, ordered by path.
func (w *Watcher) Poll() []Change {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	out := make([]Change, 0, len(w.pending))
	for _, c := range w.pending {
		out = append(out, c)
	}
	clear(w.pending)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Errors returns the watch errors reported since the previous call.
func (w *Watcher) Errors() []error {
	w.mu.Lock()
	defer w.mu.Unlock()
	errs := w.errs
	w.errs = nil
	return errs
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.record(event, time.Now())
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.errs = append(w.errs, err)
			w.mu.Unlock()
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) record(event fsnotify.Event, now time.Time) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	kind, ok := classify(event.Name)
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.seen[event.Name]; ok && now.Sub(t) < debounce {
		return
	}
	w.seen[event.Name] = now
	w.pending[event.Name] = Change{Path: event.Name, Name: Name(event.Name), Kind: kind}
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangePrefab, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}
