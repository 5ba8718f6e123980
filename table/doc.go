// Package table provides labeled one- and two-dimensional tables and the
// named-level slicer that filters them.
//
// Rows and columns of a table are addressed by an Axis: an ordered list of
// unique level names together with one label tuple per position. A single
// level index is the degenerate case of a one-level Axis.
//
// Slicing translates a Selector, a mapping of level name to the values to
// keep, into a positional Spec with one LevelFilter per level. Levels the
// selector does not name are left Unconstrained. The Spec is then applied to
// the axis positions to produce a restricted copy of the table:
//
//	rows := table.Selector{"location": table.AnyOf("location1", "location5")}
//	sliced, err := frame.Slice(rows, nil)
//
// Slicing never drops levels, never mutates its input and never returns a
// partial result on error. Values that match no position filter to an empty
// result rather than failing.
//
// Frame and Series are distinct types. A Series has no column axis, so its
// Slice method takes no column selector.
//
// All types in this package are read-only after construction and safe for
// concurrent use.
package table
