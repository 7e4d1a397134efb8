// Package notify provides change notification for configuration options.
//
// Options report mutations to a Notifier, which fans them out to
// subscribed observers. Delivery is synchronous by default; an async
// mode buffers changes and delivers them from a background goroutine.
package notify

import (
	"sync"
)

// ChangeType represents the type of option change.
type ChangeType int

const (
	// ChangeSet indicates an option value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeReset indicates an option was reset to its default.
	ChangeReset

	// ChangeReload indicates the whole configuration was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReset:
		return "reset"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents one option change event.
type Change struct {
	// Option is the name of the changed option. Empty for reload events.
	Option string

	// Type is the type of change.
	Type ChangeType

	// Source identifies where the change came from (e.g. a file path,
	// "api", "default").
	Source string
}

// Observer is called when option changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages option change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Global observers receive every change.
	globalObservers map[uint64]Observer

	// Option-specific observers, keyed by option name.
	optionObservers map[string]map[uint64]Observer

	nextID uint64

	// Async delivery state.
	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous notification delivery.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		globalObservers: make(map[uint64]Observer),
		optionObservers: make(map[string]map[uint64]Observer),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeOption registers an observer for changes to one option.
// Reload events are delivered to option observers as well.
func (n *Notifier) SubscribeOption(name string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.optionObservers[name] == nil {
		n.optionObservers[name] = make(map[uint64]Observer)
	}
	n.optionObservers[name][id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify sends a change notification to all relevant observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliverChange(change)
}

// NotifySet is a convenience method for set changes.
func (n *Notifier) NotifySet(option, source string) {
	n.Notify(Change{Option: option, Type: ChangeSet, Source: source})
}

// NotifyReset is a convenience method for reset changes.
func (n *Notifier) NotifyReset(option, source string) {
	n.Notify(Change{Option: option, Type: ChangeReset, Source: source})
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close shuts down the notifier. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for name, observers := range n.optionObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.optionObservers, name)
		}
	}
}

// deliverChange sends a change to all matching observers.
func (n *Notifier) deliverChange(change Change) {
	n.mu.RLock()

	var observers []Observer
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}

	if change.Option != "" {
		for _, obs := range n.optionObservers[change.Option] {
			observers = append(observers, obs)
		}
	} else {
		// Reload event, notify all option observers too.
		for _, optObs := range n.optionObservers {
			for _, obs := range optObs {
				observers = append(observers, obs)
			}
		}
	}

	n.mu.RUnlock()

	// Call observers outside the lock.
	for _, obs := range observers {
		obs(change)
	}
}

// processAsync handles asynchronous notification delivery.
func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliverChange(change)
		case <-n.done:
			// Drain remaining buffered changes.
			for {
				select {
				case change := <-n.buffer:
					n.deliverChange(change)
				default:
					return
				}
			}
		}
	}
}
