package loader

import (
	"fmt"
	"sort"
	"strings"
)

// Problem describes a flat entry that could not be placed into a row
// grid. Problems are reported, not fatal: discovery returns every
// complete row it can assemble.
type Problem struct {
	// Key is the offending flat key, or "" for row-level problems.
	Key string

	// Row is the row identifier involved, if any.
	Row string

	// Reason describes the problem.
	Reason string
}

func (p Problem) String() string {
	if p.Key != "" {
		return fmt.Sprintf("key %q: %s", p.Key, p.Reason)
	}
	return fmt.Sprintf("row %q: %s", p.Row, p.Reason)
}

// DiscoverGrid groups the flat entries of a section into a row grid for
// a compound option with the given column prefixes.
//
// A key prefix1_id contributes the cell for column 0 of row id; a row
// is complete when every prefix has an entry for its identifier. Rows
// are ordered by identifier (lexicographically), cells in prefix order,
// with the identifier as cell 0. Keys matching no prefix and rows
// missing cells are skipped and reported.
func DiscoverGrid(section Section, prefixes []string) ([][]string, []Problem) {
	var problems []Problem

	type cell struct {
		text string
		set  bool
	}

	// Row identifier -> cell per column index.
	rows := make(map[string][]cell)

	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		col, id, ok := matchPrefix(key, prefixes)
		if !ok {
			problems = append(problems, Problem{Key: key, Reason: "matches no column prefix"})
			continue
		}
		if rows[id] == nil {
			rows[id] = make([]cell, len(prefixes))
		}
		rows[id][col] = cell{text: section[key], set: true}
	}

	ids := make([]string, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	grid := make([][]string, 0, len(ids))
	for _, id := range ids {
		cells := rows[id]
		complete := true
		for col := range cells {
			if !cells[col].set {
				problems = append(problems, Problem{
					Row:    id,
					Reason: fmt.Sprintf("missing entry %s%s", prefixes[col], id),
				})
				complete = false
			}
		}
		if !complete {
			continue
		}
		row := make([]string, 0, len(prefixes)+1)
		row = append(row, id)
		for col := range cells {
			row = append(row, cells[col].text)
		}
		grid = append(grid, row)
	}

	return grid, problems
}

// FlattenGrid writes a row grid back into flat section entries using
// the column prefixes. The inverse of DiscoverGrid for any grid it
// produces.
func FlattenGrid(grid [][]string, prefixes []string) Section {
	section := make(Section, len(grid)*len(prefixes))
	for _, row := range grid {
		if len(row) != len(prefixes)+1 {
			continue
		}
		id := row[0]
		for col, prefix := range prefixes {
			section[prefix+id] = row[col+1]
		}
	}
	return section
}

// matchPrefix finds the column whose prefix starts the key. When
// prefixes overlap (e.g. "cmd_" and "cmd_extra_"), the longest match
// wins.
func matchPrefix(key string, prefixes []string) (col int, id string, ok bool) {
	best := -1
	for i, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
			if best < 0 || len(prefix) > len(prefixes[best]) {
				best = i
			}
		}
	}
	if best < 0 {
		return 0, "", false
	}
	return best, key[len(prefixes[best]):], true
}
