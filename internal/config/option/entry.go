package option

import (
	"github.com/gridcfg/gridcfg/internal/config/value"
)

// Entry describes one column of a compound option: the flat-key prefix
// used for grouping in the config file, an optional human label, and the
// value kind the column's cells must parse as. Immutable after
// construction.
type Entry struct {
	kind   value.Kind
	prefix string
	label  string
}

// NewEntry creates a column descriptor. The label is informational only
// and may be empty.
func NewEntry(kind value.Kind, prefix, label string) *Entry {
	return &Entry{kind: kind, prefix: prefix, label: label}
}

// Kind returns the value kind of the column.
func (e *Entry) Kind() value.Kind {
	return e.kind
}

// Prefix returns the flat-key prefix of the column.
func (e *Entry) Prefix() string {
	return e.prefix
}

// Label returns the human label of the column, or "".
func (e *Entry) Label() string {
	return e.label
}

// IsParsable reports whether raw parses as the column's kind.
func (e *Entry) IsParsable(raw string) bool {
	return value.IsParsable(e.kind, raw)
}

// Clone returns an independent copy of the entry.
func (e *Entry) Clone() *Entry {
	return &Entry{kind: e.kind, prefix: e.prefix, label: e.label}
}
