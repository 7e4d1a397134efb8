package option

import (
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Type hints describing how compound rows are conceptually shaped.
// Advisory metadata for serializers; no parsing or validation behavior.
const (
	// HintPlain marks an unlabeled list.
	HintPlain = "plain"
	// HintDict marks a name-to-value dictionary.
	HintDict = "dict"
	// HintTuple marks a list of named tuples. The default.
	HintTuple = "tuple"
)

// Compound is an option holding an ordered list of string-tagged tuples,
// assembled from multiple flat entries in the config file.
//
// The value is stored as a grid of raw text cells. Each row has exactly
// one cell per column plus a leading identifier cell. The schema (the
// ordered entry list) is fixed at construction; the grid is only ever
// replaced wholesale, never mutated per cell.
type Compound struct {
	base

	mu       sync.RWMutex
	entries  []*Entry
	typeHint string
	value    [][]string
	def      [][]string
}

// CompoundOpt configures a Compound at construction.
type CompoundOpt func(*Compound)

// WithTypeHint sets the presentation type hint (plain, dict or tuple).
func WithTypeHint(hint string) CompoundOpt {
	return func(c *Compound) {
		c.typeHint = hint
	}
}

// NewCompound creates a compound option with the given column schema.
// The entries are deep-copied; the caller keeps no handle into the
// option's schema. The value starts empty.
func NewCompound(name string, entries []*Entry, opts ...CompoundOpt) (*Compound, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	c := &Compound{
		base:     base{name: name},
		entries:  make([]*Entry, len(entries)),
		typeHint: HintTuple,
	}
	for i, e := range entries {
		if e.Prefix() == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrEmptyPrefix, i)
		}
		c.entries[i] = e.Clone()
	}

	for _, opt := range opts {
		opt(c)
	}

	switch c.typeHint {
	case HintPlain, HintDict, HintTuple:
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadTypeHint, c.typeHint)
	}

	return c, nil
}

// MustNewCompound creates a compound option and panics on error.
// Useful for registering built-in options at init time.
func MustNewCompound(name string, entries []*Entry, opts ...CompoundOpt) *Compound {
	c, err := NewCompound(name, entries, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Arity returns the number of columns, excluding the identifier.
func (c *Compound) Arity() int {
	return len(c.entries)
}

// Entries returns independent copies of the column descriptors in
// schema order.
func (c *Compound) Entries() []*Entry {
	result := make([]*Entry, len(c.entries))
	for i, e := range c.entries {
		result[i] = e.Clone()
	}
	return result
}

// TypeHint returns the presentation type hint.
func (c *Compound) TypeHint() string {
	return c.typeHint
}

// UntypedValue returns a deep copy of the current row grid, row and
// cell order preserved. Each row has Arity()+1 cells; cell 0 is the
// row identifier.
func (c *Compound) UntypedValue() [][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyGrid(c.value)
}

// SetUntypedValue validates every cell of every row against the column
// schema and, only if all validate, replaces the grid wholesale and
// fires a change notification. On any invalid cell or malformed row the
// call is a no-op and returns false. The identifier cell is accepted
// unconditionally.
func (c *Compound) SetUntypedValue(grid [][]string) bool {
	if !c.validGrid(grid) {
		return false
	}

	c.mu.Lock()
	c.value = copyGrid(grid)
	c.mu.Unlock()

	c.notifyUpdated()
	return true
}

// validGrid runs the full validation pass before any mutation.
func (c *Compound) validGrid(grid [][]string) bool {
	for _, row := range grid {
		if len(row) != len(c.entries)+1 {
			return false
		}
		for i, e := range c.entries {
			if !e.IsParsable(row[i+1]) {
				return false
			}
		}
	}
	return true
}

// ValueString returns the grid serialized as a JSON array of string
// arrays.
func (c *Compound) ValueString() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return gridToJSON(c.value)
}

// SetValueString parses a JSON array of string arrays and applies it
// through the same validation as SetUntypedValue. Returns false on
// malformed JSON or any invalid cell.
func (c *Compound) SetValueString(s string) bool {
	grid, ok := gridFromJSON(s)
	if !ok {
		return false
	}
	return c.SetUntypedValue(grid)
}

// DefaultValueString returns the default grid serialized as JSON.
func (c *Compound) DefaultValueString() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return gridToJSON(c.def)
}

// SetDefaultValueString replaces the tracked default grid. The default
// is validated like a value but its mutation fires no notification.
func (c *Compound) SetDefaultValueString(s string) bool {
	grid, ok := gridFromJSON(s)
	if !ok || !c.validGrid(grid) {
		return false
	}

	c.mu.Lock()
	c.def = copyGrid(grid)
	c.mu.Unlock()
	return true
}

// ResetToDefault replaces the current grid with the default grid and
// fires a change notification.
func (c *Compound) ResetToDefault() {
	c.mu.Lock()
	c.value = copyGrid(c.def)
	c.mu.Unlock()

	c.notifyUpdated()
}

// CloneOption returns a deep copy: independent entries, independent
// grids, same name and type hint. Update handlers are not carried over.
func (c *Compound) CloneOption() Option {
	c.mu.RLock()
	defer c.mu.RUnlock()

	clone := &Compound{
		base:     base{name: c.name},
		entries:  make([]*Entry, len(c.entries)),
		typeHint: c.typeHint,
		value:    copyGrid(c.value),
		def:      copyGrid(c.def),
	}
	for i, e := range c.entries {
		clone.entries[i] = e.Clone()
	}
	return clone
}

// copyGrid deep-copies a row grid. A nil grid copies to an empty one.
func copyGrid(grid [][]string) [][]string {
	result := make([][]string, len(grid))
	for i, row := range grid {
		result[i] = make([]string, len(row))
		copy(result[i], row)
	}
	return result
}

// gridToJSON renders a grid as a JSON array of string arrays.
func gridToJSON(grid [][]string) string {
	out := "[]"
	for _, row := range grid {
		out, _ = sjson.Set(out, "-1", row)
	}
	return out
}

// gridFromJSON parses a JSON array of string arrays. Every element must
// be an array and every cell a JSON string.
func gridFromJSON(s string) ([][]string, bool) {
	if !gjson.Valid(s) {
		return nil, false
	}
	parsed := gjson.Parse(s)
	if !parsed.IsArray() {
		return nil, false
	}

	grid := [][]string{}
	ok := true
	parsed.ForEach(func(_, rowValue gjson.Result) bool {
		if !rowValue.IsArray() {
			ok = false
			return false
		}
		var row []string
		rowValue.ForEach(func(_, cell gjson.Result) bool {
			if cell.Type != gjson.String {
				ok = false
				return false
			}
			row = append(row, cell.String())
			return true
		})
		if !ok {
			return false
		}
		grid = append(grid, row)
		return true
	})
	if !ok {
		return nil, false
	}
	return grid, true
}
