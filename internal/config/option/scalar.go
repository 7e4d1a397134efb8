package option

import (
	"fmt"
	"sync"

	"github.com/gridcfg/gridcfg/internal/config/value"
)

// Scalar is an option holding a single typed value. T must be one of
// the supported scalar types (string, int, float64, bool, time.Duration,
// value.Color, value.Keybind).
type Scalar[T any] struct {
	base

	mu   sync.RWMutex
	kind value.Kind
	val  T
	def  T
}

// NewScalar creates a scalar option with the given default. The current
// value starts at the default. Panics if T is outside the supported set.
func NewScalar[T any](name string, def T) *Scalar[T] {
	kind, ok := value.KindOf[T]()
	if !ok {
		panic(fmt.Sprintf("option %q: unsupported scalar type %T", name, def))
	}
	return &Scalar[T]{
		base: base{name: name},
		kind: kind,
		val:  def,
		def:  def,
	}
}

// Kind returns the value kind of the option.
func (s *Scalar[T]) Kind() value.Kind {
	return s.kind
}

// Value returns the current typed value.
func (s *Scalar[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.val
}

// SetValue replaces the value and fires a change notification.
func (s *Scalar[T]) SetValue(v T) {
	s.mu.Lock()
	s.val = v
	s.mu.Unlock()
	s.notifyUpdated()
}

// ValueString returns the value in its canonical text form.
func (s *Scalar[T]) ValueString() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return value.FormatAs(s.val)
}

// SetValueString parses and replaces the value, firing a change
// notification. Returns false and leaves the value unchanged if the
// text does not parse.
func (s *Scalar[T]) SetValueString(raw string) bool {
	v, err := value.As[T](raw)
	if err != nil {
		return false
	}
	s.SetValue(v)
	return true
}

// DefaultValueString returns the default in its canonical text form.
func (s *Scalar[T]) DefaultValueString() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return value.FormatAs(s.def)
}

// SetDefaultValueString parses and replaces the tracked default without
// touching the current value or notifying.
func (s *Scalar[T]) SetDefaultValueString(raw string) bool {
	v, err := value.As[T](raw)
	if err != nil {
		return false
	}
	s.mu.Lock()
	s.def = v
	s.mu.Unlock()
	return true
}

// ResetToDefault replaces the value with the default and fires a change
// notification.
func (s *Scalar[T]) ResetToDefault() {
	s.mu.Lock()
	s.val = s.def
	s.mu.Unlock()
	s.notifyUpdated()
}

// CloneOption returns a deep copy with the same value and default.
// Update handlers are not carried over.
func (s *Scalar[T]) CloneOption() Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Scalar[T]{
		base: base{name: s.name},
		kind: s.kind,
		val:  s.val,
		def:  s.def,
	}
}
