package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dendrascience/tabslice/table"
)

// parseSelector turns repeated "level=v1,v2" flag values into a selector.
// Values are converted to the label type already used by that level of
// axis; levels the axis does not have are kept as strings so the slicer can
// report them.
func parseSelector(specs []string, axis *table.Axis) (table.Selector, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	raw := make(map[string][]string)
	var order []string
	for _, spec := range specs {
		level, values, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid selector %q: expected level=value[,value...]", spec)
		}
		level = strings.TrimSpace(level)
		if values == "" {
			return nil, fmt.Errorf("invalid selector %q: no values given", spec)
		}
		if _, seen := raw[level]; !seen {
			order = append(order, level)
		}
		for _, v := range strings.Split(values, ",") {
			raw[level] = append(raw[level], strings.TrimSpace(v))
		}
	}

	sel := make(table.Selector, len(raw))
	for _, level := range order {
		sample := sampleLabel(axis, level)
		labels := make([]table.Label, len(raw[level]))
		for i, s := range raw[level] {
			l, err := parseLabel(s, sample)
			if err != nil {
				return nil, fmt.Errorf("level %q: %w", level, err)
			}
			labels[i] = l
		}
		if len(labels) == 1 {
			sel[level] = table.One(labels[0])
		} else {
			sel[level] = table.AnyOf(labels...)
		}
	}
	return sel, nil
}

// sampleLabel returns an existing label of the named level, or nil when the
// level is unknown or empty. An unnamed single level matches any name.
func sampleLabel(axis *table.Axis, level string) table.Label {
	levels := axis.Levels()
	pos, err := table.Locate(level, levels)
	if err != nil {
		if len(levels) != 1 || levels[0] != "" {
			return nil
		}
		pos = 0
	}
	for _, l := range axis.LevelValues(pos) {
		if l != nil {
			return l
		}
	}
	return nil
}

// parseLabel converts s to the dynamic type of sample.
func parseLabel(s string, sample table.Label) (table.Label, error) {
	switch sample.(type) {
	case time.Time:
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as an RFC 3339 time: %w", s, err)
		}
		return t, nil
	case int, int8, int16, int32, int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as an integer: %w", s, err)
		}
		return n, nil
	case uint, uint8, uint16, uint32, uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as an unsigned integer: %w", s, err)
		}
		return n, nil
	case float32, float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as a number: %w", s, err)
		}
		return f, nil
	case bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as a boolean: %w", s, err)
		}
		return b, nil
	}
	return s, nil
}
