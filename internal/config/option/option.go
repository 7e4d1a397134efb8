// Package option implements configuration options: scalar options holding
// one typed value, and compound options holding ordered lists of
// heterogeneous named tuples assembled from flat config entries.
//
// Every option stores its value as text and implements the Option
// contract: string round-trip, a separately tracked default, reset,
// deep cloning and change notification. Typed access re-parses the
// stored text through the value package codecs.
package option

import (
	"sync"
)

// Option is the contract implemented by every configuration option.
type Option interface {
	// Name returns the option identity, fixed at construction.
	Name() string

	// ValueString returns the whole option value serialized as text.
	// Whatever ValueString produces, SetValueString accepts back.
	ValueString() string

	// SetValueString replaces the value from its text form.
	// Returns false and leaves the value unchanged if the text does
	// not parse or fails validation.
	SetValueString(s string) bool

	// DefaultValueString returns the default value serialized as text.
	DefaultValueString() string

	// SetDefaultValueString replaces the tracked default from its text
	// form without touching the current value.
	SetDefaultValueString(s string) bool

	// ResetToDefault replaces the current value with the default and
	// fires a change notification.
	ResetToDefault()

	// CloneOption returns a deep copy sharing no mutable state with
	// the original. Update handlers are not carried over.
	CloneOption() Option

	// OnUpdate registers a handler invoked exactly once per successful
	// value mutation. The returned function unsubscribes it.
	OnUpdate(fn func()) func()
}

// base carries the name and update-handler plumbing shared by all
// option implementations.
type base struct {
	name string

	handlerMu sync.Mutex
	handlers  map[uint64]func()
	nextID    uint64
}

// Name returns the option name.
func (b *base) Name() string {
	return b.name
}

// OnUpdate registers a change handler and returns its unsubscribe
// function.
func (b *base) OnUpdate(fn func()) func() {
	b.handlerMu.Lock()
	defer b.handlerMu.Unlock()

	if b.handlers == nil {
		b.handlers = make(map[uint64]func())
	}
	id := b.nextID
	b.nextID++
	b.handlers[id] = fn

	return func() {
		b.handlerMu.Lock()
		defer b.handlerMu.Unlock()
		delete(b.handlers, id)
	}
}

// notifyUpdated invokes all registered handlers. Called by option
// implementations after every successful value mutation, outside any
// value lock.
func (b *base) notifyUpdated() {
	b.handlerMu.Lock()
	handlers := make([]func(), 0, len(b.handlers))
	for _, fn := range b.handlers {
		handlers = append(handlers, fn)
	}
	b.handlerMu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
