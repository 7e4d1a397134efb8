package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}
}

func TestNew_WithOptions(t *testing.T) {
	w := New(WithDebounce(50 * time.Millisecond))

	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_Watch(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := New()
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	files := w.WatchedFiles()
	if len(files) != 1 {
		t.Fatalf("WatchedFiles() = %v, want one entry", files)
	}

	if err := w.Unwatch(path); err != nil {
		t.Fatalf("Unwatch failed: %v", err)
	}
	if len(w.WatchedFiles()) != 0 {
		t.Error("file still watched after Unwatch")
	}
}

func TestWatcher_WatchMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "not-yet.toml")

	w := New()
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch on missing file failed: %v", err)
	}
	if len(w.WatchedFiles()) != 1 {
		t.Error("missing file not registered for watching")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w := New()
	if err := w.Watch(filepath.Join(t.TempDir(), "c.toml")); err != nil {
		t.Fatal(err)
	}

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !w.IsRunning() {
		t.Error("IsRunning() = false after Start")
	}

	// Start is idempotent.
	if err := w.Start(); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	w.Stop()
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}

	// Stop is idempotent.
	w.Stop()
}

func TestWatcher_DetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	got := make(chan Event, 1)

	w := New(WithDebounce(20 * time.Millisecond))
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	w.OnChange(func(event Event) {
		calls.Add(1)
		select {
		case got <- event:
		default:
		}
	})

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-got:
		if event.Path != path {
			t.Errorf("event path = %q, want %q", event.Path, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event after file write")
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	watched := filepath.Join(tmpDir, "config.toml")
	other := filepath.Join(tmpDir, "other.toml")
	if err := os.WriteFile(watched, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w := New(WithDebounce(10 * time.Millisecond))
	if err := w.Watch(watched); err != nil {
		t.Fatal(err)
	}
	w.OnChange(func(Event) { calls.Add(1) })

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(other, []byte("b = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("handler called %d times for an unrelated file", calls.Load())
	}
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	w := New(WithDebounce(time.Hour))

	w.queueEvent(Event{Path: "/f", Op: OpCreate, Time: time.Now()})
	w.queueEvent(Event{Path: "/f", Op: OpWrite, Time: time.Now()})

	w.pendingMu.Lock()
	pending := w.pending["/f"]
	w.pendingMu.Unlock()
	if pending.Op != OpCreate {
		t.Errorf("create+write coalesced to %v, want create", pending.Op)
	}

	w.queueEvent(Event{Path: "/f", Op: OpRemove, Time: time.Now()})
	w.pendingMu.Lock()
	pending = w.pending["/f"]
	w.pendingMu.Unlock()
	if pending.Op != OpRemove {
		t.Errorf("remove did not take precedence, got %v", pending.Op)
	}

	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pendingMu.Unlock()
}

func TestWatcher_DebounceFileReplacement(t *testing.T) {
	tests := []struct {
		name string
		ops  []Operation
		want Operation
	}{
		{"remove then create", []Operation{OpRemove, OpCreate}, OpCreate},
		{"remove then write", []Operation{OpRemove, OpWrite}, OpCreate},
		{"rename then create", []Operation{OpRename, OpCreate}, OpCreate},
		{"remove create remove", []Operation{OpRemove, OpCreate, OpRemove}, OpRemove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(WithDebounce(time.Hour))
			for _, op := range tt.ops {
				w.queueEvent(Event{Path: "/f", Op: op, Time: time.Now()})
			}

			w.pendingMu.Lock()
			pending := w.pending["/f"]
			if w.timer != nil {
				w.timer.Stop()
				w.timer = nil
			}
			w.pendingMu.Unlock()

			if pending.Op != tt.want {
				t.Errorf("coalesced op = %v, want %v", pending.Op, tt.want)
			}
		})
	}
}

func TestWatcher_HandlerPanicRecovered(t *testing.T) {
	w := New()
	w.OnChange(func(Event) { panic("boom") })

	var after atomic.Bool
	w.OnChange(func(Event) { after.Store(true) })

	w.emitEvent(Event{Path: "/f", Op: OpWrite, Time: time.Now()})

	if !after.Load() {
		t.Error("handler after panicking handler was not called")
	}
}
