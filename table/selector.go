package table

import (
	"maps"
	"slices"
)

// Values is the set of labels a selector keeps for one level. Build it with
// One for a single value or AnyOf for a list; both produce the same
// normalized list form.
type Values struct {
	labels []Label
}

// One selects a single label.
func One(v Label) Values {
	return Values{labels: []Label{v}}
}

// AnyOf selects every listed label. An empty list matches nothing.
func AnyOf(vs ...Label) Values {
	return Values{labels: slices.Clone(vs)}
}

// Labels returns a copy of the selected labels.
func (v Values) Labels() []Label {
	return slices.Clone(v.labels)
}

// Len returns the number of selected labels.
func (v Values) Len() int {
	return len(v.labels)
}

// Selector maps level names to the values to keep. Levels that are not
// named are unconstrained. A nil Selector keeps everything.
type Selector map[string]Values

// Keys returns the selector's level names in sorted order.
func (s Selector) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}
