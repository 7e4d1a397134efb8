// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors configuration files through fsnotify and invokes
// reload handlers when modifications settle. Because editors commonly
// replace files via rename, the watcher subscribes to each file's parent
// directory and filters events down to the registered paths.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Watcher monitors configuration files for changes.
type Watcher struct {
	mu sync.RWMutex

	// Registered files, by absolute path.
	files map[string]bool

	// Parent directories currently added to fsnotify.
	dirs map[string]bool

	// Handlers to call on file changes.
	handlers []Handler

	// Debounce window for rapid change bursts.
	debounce time.Duration

	fsw     *fsnotify.Watcher
	running bool
	done    chan struct{}
	wg      sync.WaitGroup

	pendingMu sync.Mutex
	pending   map[string]Event
	timer     *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a new file watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]Event),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Watch adds a file to the watch list. The file does not need to exist
// yet; a watch on its parent directory picks up later creation.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.files[absPath] = true

	dir := filepath.Dir(absPath)
	if w.running && !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.files, absPath)
	return nil
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins watching files for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw

	for path := range w.files {
		dir := filepath.Dir(path)
		if w.dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			w.fsw = nil
			w.dirs = make(map[string]bool)
			return err
		}
		w.dirs[dir] = true
	}

	w.done = make(chan struct{})
	w.running = true

	w.wg.Add(1)
	go w.eventLoop(fsw)
	return nil
}

// Stop stops watching files. Pending debounced events are discarded.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.done)
	_ = w.fsw.Close()
	w.fsw = nil
	w.dirs = make(map[string]bool)
	w.mu.Unlock()

	w.wg.Wait()

	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = make(map[string]Event)
	w.pendingMu.Unlock()
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// WatchedFiles returns the list of watched files.
func (w *Watcher) WatchedFiles() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	return files
}

func (w *Watcher) eventLoop(fsw *fsnotify.Watcher) {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case fsEvent, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)
		case _, ok := <-fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	absPath, err := filepath.Abs(fsEvent.Name)
	if err != nil {
		return
	}

	w.mu.RLock()
	watched := w.files[absPath]
	w.mu.RUnlock()
	if !watched {
		return
	}

	op, ok := convertOp(fsEvent.Op)
	if !ok {
		return
	}

	event := Event{Path: absPath, Op: op, Time: time.Now()}
	if w.debounce > 0 {
		w.queueEvent(event)
	} else {
		w.emitEvent(event)
	}
}

// convertOp maps an fsnotify operation to a watcher Operation. Chmod
// events are dropped; they never change file content.
func convertOp(fsOp fsnotify.Op) (Operation, bool) {
	switch {
	case fsOp.Has(fsnotify.Write):
		return OpWrite, true
	case fsOp.Has(fsnotify.Create):
		return OpCreate, true
	case fsOp.Has(fsnotify.Remove):
		return OpRemove, true
	case fsOp.Has(fsnotify.Rename):
		return OpRename, true
	default:
		return 0, false
	}
}

// queueEvent coalesces events per path within the debounce window. The
// delivered event reflects the final state of the path: a remove or
// rename followed by a create or write means the file was replaced, so
// the pair collapses to a create, while a trailing remove wins over
// everything before it.
func (w *Watcher) queueEvent(event Event) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	existing, exists := w.pending[event.Path]
	switch {
	case !exists:
		w.pending[event.Path] = event
	case event.Op == OpRemove || event.Op == OpRename:
		w.pending[event.Path] = event
	case existing.Op == OpRemove || existing.Op == OpRename:
		// The file came back after going away: atomic replacement.
		w.pending[event.Path] = Event{Path: event.Path, Op: OpCreate, Time: event.Time}
	case existing.Op == OpCreate:
		existing.Time = event.Time
		w.pending[event.Path] = existing
	default:
		w.pending[event.Path] = event
	}

	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.flushPending)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	events := make([]Event, 0, len(w.pending))
	for _, event := range w.pending {
		events = append(events, event)
	}
	w.pending = make(map[string]Event)
	w.timer = nil
	w.pendingMu.Unlock()

	for _, event := range events {
		w.emitEvent(event)
	}
}

// emitEvent calls all handlers with the event. Handlers run with panic
// recovery so a bad handler cannot kill the watcher goroutine.
func (w *Watcher) emitEvent(event Event) {
	w.mu.RLock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		w.safeCallHandler(handler, event)
	}
}

func (w *Watcher) safeCallHandler(handler Handler, event Event) {
	defer func() {
		_ = recover()
	}()
	handler(event)
}
