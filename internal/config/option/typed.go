package option

import (
	"fmt"
	"strconv"

	"github.com/gridcfg/gridcfg/internal/config/value"
)

// Typed access to compound options. Go has no variadic type parameters,
// so the tuple surface is provided per arity: RowN carries the row
// identifier plus N typed fields, TupleN drops the identifier. Arities
// beyond three go through the untyped grid.
//
// The type list must match the schema arity; a mismatch is a programmer
// error and panics. A stored cell that fails strict parsing also panics:
// the untyped setter is the only writer of the grid and already enforced
// parsability, so an unparsable cell means corrupted storage, not a
// recoverable condition.

// Row1 is one named tuple of a single-column compound option.
type Row1[A any] struct {
	Name  string
	First A
}

// Row2 is one named tuple of a two-column compound option.
type Row2[A, B any] struct {
	Name   string
	First  A
	Second B
}

// Row3 is one named tuple of a three-column compound option.
type Row3[A, B, C any] struct {
	Name   string
	First  A
	Second B
	Third  C
}

// Tuple1 is one unnamed tuple of a single-column compound option.
type Tuple1[A any] struct {
	First A
}

// Tuple2 is one unnamed tuple of a two-column compound option.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// Tuple3 is one unnamed tuple of a three-column compound option.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// CompoundValue1 parses the grid of a single-column compound option
// into typed rows.
func CompoundValue1[A any](c *Compound) []Row1[A] {
	grid := snapshotForArity(c, 1)
	result := make([]Row1[A], len(grid))
	for i, row := range grid {
		result[i] = Row1[A]{
			Name:  row[0],
			First: mustCell[A](c, i, row[1]),
		}
	}
	return result
}

// CompoundValue2 parses the grid of a two-column compound option into
// typed rows.
func CompoundValue2[A, B any](c *Compound) []Row2[A, B] {
	grid := snapshotForArity(c, 2)
	result := make([]Row2[A, B], len(grid))
	for i, row := range grid {
		result[i] = Row2[A, B]{
			Name:   row[0],
			First:  mustCell[A](c, i, row[1]),
			Second: mustCell[B](c, i, row[2]),
		}
	}
	return result
}

// CompoundValue3 parses the grid of a three-column compound option into
// typed rows.
func CompoundValue3[A, B, C any](c *Compound) []Row3[A, B, C] {
	grid := snapshotForArity(c, 3)
	result := make([]Row3[A, B, C], len(grid))
	for i, row := range grid {
		result[i] = Row3[A, B, C]{
			Name:   row[0],
			First:  mustCell[A](c, i, row[1]),
			Second: mustCell[B](c, i, row[2]),
			Third:  mustCell[C](c, i, row[3]),
		}
	}
	return result
}

// SetCompoundValue1 serializes typed rows into the grid, replaces the
// value wholesale and fires a change notification.
func SetCompoundValue1[A any](c *Compound, rows []Row1[A]) {
	checkArity(c, 1)
	grid := make([][]string, len(rows))
	for i, r := range rows {
		grid[i] = []string{r.Name, value.FormatAs(r.First)}
	}
	replaceGrid(c, grid)
}

// SetCompoundValue2 serializes typed rows into the grid, replaces the
// value wholesale and fires a change notification.
func SetCompoundValue2[A, B any](c *Compound, rows []Row2[A, B]) {
	checkArity(c, 2)
	grid := make([][]string, len(rows))
	for i, r := range rows {
		grid[i] = []string{r.Name, value.FormatAs(r.First), value.FormatAs(r.Second)}
	}
	replaceGrid(c, grid)
}

// SetCompoundValue3 serializes typed rows into the grid, replaces the
// value wholesale and fires a change notification.
func SetCompoundValue3[A, B, C any](c *Compound, rows []Row3[A, B, C]) {
	checkArity(c, 3)
	grid := make([][]string, len(rows))
	for i, r := range rows {
		grid[i] = []string{r.Name, value.FormatAs(r.First), value.FormatAs(r.Second), value.FormatAs(r.Third)}
	}
	replaceGrid(c, grid)
}

// SimpleValue1 reads typed rows with the identifier dropped.
func SimpleValue1[A any](c *Compound) []Tuple1[A] {
	rows := CompoundValue1[A](c)
	result := make([]Tuple1[A], len(rows))
	for i, r := range rows {
		result[i] = Tuple1[A]{First: r.First}
	}
	return result
}

// SimpleValue2 reads typed rows with the identifier dropped.
func SimpleValue2[A, B any](c *Compound) []Tuple2[A, B] {
	rows := CompoundValue2[A, B](c)
	result := make([]Tuple2[A, B], len(rows))
	for i, r := range rows {
		result[i] = Tuple2[A, B]{First: r.First, Second: r.Second}
	}
	return result
}

// SimpleValue3 reads typed rows with the identifier dropped.
func SimpleValue3[A, B, C any](c *Compound) []Tuple3[A, B, C] {
	rows := CompoundValue3[A, B, C](c)
	result := make([]Tuple3[A, B, C], len(rows))
	for i, r := range rows {
		result[i] = Tuple3[A, B, C]{First: r.First, Second: r.Second, Third: r.Third}
	}
	return result
}

// SetSimpleValue1 writes unnamed tuples, synthesizing row identifiers
// from the zero-based row index.
func SetSimpleValue1[A any](c *Compound, tuples []Tuple1[A]) {
	rows := make([]Row1[A], len(tuples))
	for i, tp := range tuples {
		rows[i] = Row1[A]{Name: strconv.Itoa(i), First: tp.First}
	}
	SetCompoundValue1(c, rows)
}

// SetSimpleValue2 writes unnamed tuples, synthesizing row identifiers
// from the zero-based row index.
func SetSimpleValue2[A, B any](c *Compound, tuples []Tuple2[A, B]) {
	rows := make([]Row2[A, B], len(tuples))
	for i, tp := range tuples {
		rows[i] = Row2[A, B]{Name: strconv.Itoa(i), First: tp.First, Second: tp.Second}
	}
	SetCompoundValue2(c, rows)
}

// SetSimpleValue3 writes unnamed tuples, synthesizing row identifiers
// from the zero-based row index.
func SetSimpleValue3[A, B, C any](c *Compound, tuples []Tuple3[A, B, C]) {
	rows := make([]Row3[A, B, C], len(tuples))
	for i, tp := range tuples {
		rows[i] = Row3[A, B, C]{Name: strconv.Itoa(i), First: tp.First, Second: tp.Second, Third: tp.Third}
	}
	SetCompoundValue3(c, rows)
}

// checkArity panics if the caller's type-list length does not match the
// schema arity.
func checkArity(c *Compound, arity int) {
	if len(c.entries) != arity {
		panic(fmt.Sprintf("option %q: typed access with arity %d, schema has %d columns",
			c.name, arity, len(c.entries)))
	}
}

// snapshotForArity checks the arity and returns a stable snapshot of
// the grid for typed reads.
func snapshotForArity(c *Compound, arity int) [][]string {
	checkArity(c, arity)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyGrid(c.value)
}

// mustCell strictly parses one stored cell, panicking on failure.
func mustCell[T any](c *Compound, row int, raw string) T {
	v, err := value.As[T](raw)
	if err != nil {
		panic(fmt.Sprintf("option %q: row %d holds unparsable cell %q: %v",
			c.name, row, raw, err))
	}
	return v
}

// replaceGrid swaps in a serialized grid and notifies. Typed setters
// produce canonical text, so no validation pass is needed.
func replaceGrid(c *Compound, grid [][]string) {
	c.mu.Lock()
	c.value = grid
	c.mu.Unlock()
	c.notifyUpdated()
}
