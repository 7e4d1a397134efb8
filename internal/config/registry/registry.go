// Package registry provides the option registry for gridcfg.
//
// The registry holds every known option instance by name and provides
// lookup, enumeration, bulk reset and whole-registry cloning. Option
// names are dot-sectioned ("editor.tabSize") or bare ("bindings"); the
// part before the first dot is the section.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gridcfg/gridcfg/internal/config/option"
)

// ErrAlreadyRegistered is returned when registering a duplicate option name.
var ErrAlreadyRegistered = errors.New("option already registered")

// Registry maintains all known options by name.
type Registry struct {
	mu       sync.RWMutex
	options  map[string]option.Option
	sections map[string][]option.Option
}

// New creates a new option registry.
func New() *Registry {
	return &Registry{
		options:  make(map[string]option.Option),
		sections: make(map[string][]option.Option),
	}
}

// Register adds an option to the registry.
// Returns an error if an option with the same name already exists.
func (r *Registry) Register(opt option.Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := opt.Name()
	if _, exists := r.options[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}

	r.options[name] = opt

	section := extractSection(name)
	r.sections[section] = append(r.sections[section], opt)

	return nil
}

// MustRegister registers an option and panics on error.
// Useful for registering built-in options at init time.
func (r *Registry) MustRegister(opt option.Option) {
	if err := r.Register(opt); err != nil {
		panic(err)
	}
}

// Get returns the option with the given name, or nil.
func (r *Registry) Get(name string) option.Option {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.options[name]
}

// Compound returns the compound option with the given name, or nil if
// the name is unknown or names a scalar option.
func (r *Registry) Compound(name string) *option.Compound {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, _ := r.options[name].(*option.Compound)
	return c
}

// Has checks if an option is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.options[name]
	return exists
}

// All returns all registered options sorted by name.
func (r *Registry) All() []option.Option {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]option.Option, 0, len(r.options))
	for _, opt := range r.options {
		result = append(result, opt)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})

	return result
}

// Section returns all options in a given section.
func (r *Registry) Section(name string) []option.Option {
	r.mu.RLock()
	defer r.mu.RUnlock()

	options := r.sections[name]
	result := make([]option.Option, len(options))
	copy(result, options)
	return result
}

// Sections returns all section names, sorted.
func (r *Registry) Sections() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.sections))
	for section := range r.sections {
		result = append(result, section)
	}
	sort.Strings(result)
	return result
}

// ResetAll resets every registered option to its default value.
func (r *Registry) ResetAll() {
	for _, opt := range r.All() {
		opt.ResetToDefault()
	}
}

// CloneAll returns a new registry holding independent clones of every
// option. Mutating options on either side never affects the other.
func (r *Registry) CloneAll() *Registry {
	clone := New()
	for _, opt := range r.All() {
		// Names are unique in the source, so Register cannot fail.
		_ = clone.Register(opt.CloneOption())
	}
	return clone
}

// extractSection extracts the section from an option name.
func extractSection(name string) string {
	parts := strings.SplitN(name, ".", 2)
	return parts[0]
}
