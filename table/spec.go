package table

import (
	"slices"
	"strings"
)

// FilterKind tells whether a level is filtered.
type FilterKind int

const (
	// Unconstrained keeps every label of the level.
	Unconstrained FilterKind = iota
	// Explicit keeps only the listed labels.
	Explicit
)

func (k FilterKind) String() string {
	switch k {
	case Unconstrained:
		return "unconstrained"
	case Explicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// LevelFilter is the filter applied to one level of an axis.
type LevelFilter struct {
	Kind   FilterKind
	Values []Label
}

func (f LevelFilter) keys() map[any]struct{} {
	set := make(map[any]struct{}, len(f.Values))
	for _, v := range f.Values {
		set[labelKey(v)] = struct{}{}
	}
	return set
}

// Spec is a positional slice specification: one LevelFilter per level of
// the axis it was built for.
type Spec []LevelFilter

// Locate returns the zero-based position of the level called name.
func Locate(name string, levels []string) (int, error) {
	i := slices.Index(levels, name)
	if i < 0 {
		return -1, &UnknownLevelError{Level: name, Levels: slices.Clone(levels)}
	}
	return i, nil
}

// BuildSpec translates sel into a Spec for axis. The result always has one
// entry per axis level.
//
// On a single-level axis the selector may hold at most one key. When that
// level is unnamed the key itself is not checked.
func BuildSpec(sel Selector, axis *Axis) (Spec, error) {
	levels := axis.names
	spec := make(Spec, len(levels))
	if len(sel) == 0 {
		return spec, nil
	}

	keys := sel.Keys()
	if len(levels) == 1 {
		if len(keys) > 1 {
			return nil, &MultiKeyOnSingleLevelError{Keys: keys}
		}
		if levels[0] != "" && keys[0] != levels[0] {
			return nil, &UnknownLevelError{Level: keys[0], Levels: slices.Clone(levels)}
		}
		spec[0] = LevelFilter{Kind: Explicit, Values: sel[keys[0]].Labels()}
		return spec, nil
	}

	for _, k := range keys {
		pos, err := Locate(k, levels)
		if err != nil {
			return nil, err
		}
		spec[pos] = LevelFilter{Kind: Explicit, Values: sel[k].Labels()}
	}
	return spec, nil
}

// Unfiltered reports whether every level is unconstrained.
func (s Spec) Unfiltered() bool {
	for _, f := range s {
		if f.Kind == Explicit {
			return false
		}
	}
	return true
}

// Matches reports whether a position tuple passes every level filter.
// Tuples shorter than the spec never match.
func (s Spec) Matches(tuple []Label) bool {
	if len(tuple) < len(s) {
		return false
	}
	for i, f := range s {
		if f.Kind != Explicit {
			continue
		}
		if !slices.ContainsFunc(f.Values, func(v Label) bool { return EqualLabels(v, tuple[i]) }) {
			return false
		}
	}
	return true
}

// Positions returns, in axis order, the positions of axis matching s.
func (s Spec) Positions(axis *Axis) []int {
	if s.Unfiltered() {
		out := make([]int, axis.Len())
		for i := range out {
			out[i] = i
		}
		return out
	}

	sets := make([]map[any]struct{}, len(s))
	for i, f := range s {
		if f.Kind == Explicit {
			sets[i] = f.keys()
		}
	}

	out := make([]int, 0, axis.Len())
	for pos, t := range axis.tuples {
		pass := true
		for i, set := range sets {
			if set == nil {
				continue
			}
			if _, ok := set[labelKey(t[i])]; !ok {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, pos)
		}
	}
	return out
}

func (s Spec) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		if f.Kind != Explicit {
			parts[i] = ":"
			continue
		}
		vals := make([]string, len(f.Values))
		for j, v := range f.Values {
			vals[j] = FormatLabel(v)
		}
		parts[i] = "[" + strings.Join(vals, " ") + "]"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
