package table

import (
	"fmt"
	"slices"
)

// Axis is one labeled dimension of a table: an ordered list of unique level
// names and one label tuple per position.
type Axis struct {
	names  []string
	tuples [][]Label
}

// NewAxis builds an axis from level names and position tuples. Every tuple
// must carry exactly one label per level. The inputs are copied.
func NewAxis(names []string, tuples [][]Label) (*Axis, error) {
	if len(names) == 0 {
		return nil, ErrNoLevels
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLevel, n)
		}
		seen[n] = true
	}
	a := &Axis{
		names:  slices.Clone(names),
		tuples: make([][]Label, len(tuples)),
	}
	for i, t := range tuples {
		if len(t) != len(names) {
			return nil, fmt.Errorf("%w: position %d has %d labels, axis has %d levels",
				ErrShapeMismatch, i, len(t), len(names))
		}
		a.tuples[i] = slices.Clone(t)
	}
	return a, nil
}

// NewSingleAxis builds a one-level axis. name may be empty for an unnamed
// index.
func NewSingleAxis(name string, labels ...Label) *Axis {
	a := &Axis{
		names:  []string{name},
		tuples: make([][]Label, len(labels)),
	}
	for i, l := range labels {
		a.tuples[i] = []Label{l}
	}
	return a
}

// NewProductAxis builds the cartesian product of the given level values.
// The first level varies slowest.
func NewProductAxis(names []string, levels ...[]Label) (*Axis, error) {
	if len(names) != len(levels) {
		return nil, fmt.Errorf("%w: %d names for %d levels", ErrShapeMismatch, len(names), len(levels))
	}
	total := 1
	for _, l := range levels {
		total *= len(l)
	}
	tuples := make([][]Label, 0, total)
	if len(levels) > 0 && total > 0 {
		idx := make([]int, len(levels))
		for {
			t := make([]Label, len(levels))
			for i, j := range idx {
				t[i] = levels[i][j]
			}
			tuples = append(tuples, t)

			// odometer increment, last level fastest
			k := len(idx) - 1
			for k >= 0 {
				idx[k]++
				if idx[k] < len(levels[k]) {
					break
				}
				idx[k] = 0
				k--
			}
			if k < 0 {
				break
			}
		}
	}
	return NewAxis(names, tuples)
}

// Levels returns a copy of the level names in order.
func (a *Axis) Levels() []string {
	return slices.Clone(a.names)
}

// NumLevels returns the number of levels.
func (a *Axis) NumLevels() int {
	return len(a.names)
}

// Len returns the number of positions.
func (a *Axis) Len() int {
	return len(a.tuples)
}

// Tuple returns a copy of the labels at position pos.
func (a *Axis) Tuple(pos int) []Label {
	if pos < 0 || pos >= len(a.tuples) {
		return nil
	}
	return slices.Clone(a.tuples[pos])
}

// Label returns the label of the given level at position pos.
func (a *Axis) Label(pos, level int) Label {
	if pos < 0 || pos >= len(a.tuples) || level < 0 || level >= len(a.names) {
		return nil
	}
	return a.tuples[pos][level]
}

// LevelValues returns the distinct labels of a level in first-seen order.
func (a *Axis) LevelValues(level int) []Label {
	if level < 0 || level >= len(a.names) {
		return nil
	}
	seen := make(map[any]bool)
	var out []Label
	for _, t := range a.tuples {
		k := labelKey(t[level])
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t[level])
	}
	return out
}

// Equal reports whether both axes have the same levels and labels.
func (a *Axis) Equal(b *Axis) bool {
	if !slices.Equal(a.names, b.names) || len(a.tuples) != len(b.tuples) {
		return false
	}
	for i := range a.tuples {
		for j := range a.tuples[i] {
			if !EqualLabels(a.tuples[i][j], b.tuples[i][j]) {
				return false
			}
		}
	}
	return true
}

// take returns a new axis holding the given positions. Tuples are shared
// with the receiver; they are never modified in place.
func (a *Axis) take(positions []int) *Axis {
	out := &Axis{
		names:  a.names,
		tuples: make([][]Label, len(positions)),
	}
	for i, p := range positions {
		out.tuples[i] = a.tuples[p]
	}
	return out
}
