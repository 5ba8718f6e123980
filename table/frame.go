package table

import (
	"fmt"
	"slices"
)

// Table is the capability shared by Frame and Series: a row axis to slice on.
type Table interface {
	Index() *Axis
	Len() int
}

var (
	_ Table = (*Frame)(nil)
	_ Table = (*Series)(nil)
)

// Frame is a two-dimensional table of float64 cells with labeled rows and
// columns.
type Frame struct {
	rows  *Axis
	cols  *Axis
	cells [][]float64 // cells[row][col]
}

// NewFrame builds a frame. cells must have rows.Len() rows of cols.Len()
// values each; it is copied.
func NewFrame(rows, cols *Axis, cells [][]float64) (*Frame, error) {
	if rows == nil || cols == nil {
		return nil, fmt.Errorf("%w: frame needs both a row and a column axis", ErrNoLevels)
	}
	if len(cells) != rows.Len() {
		return nil, fmt.Errorf("%w: %d cell rows for %d row positions", ErrShapeMismatch, len(cells), rows.Len())
	}
	f := &Frame{rows: rows, cols: cols, cells: make([][]float64, len(cells))}
	for i, r := range cells {
		if len(r) != cols.Len() {
			return nil, fmt.Errorf("%w: row %d has %d cells for %d columns", ErrShapeMismatch, i, len(r), cols.Len())
		}
		f.cells[i] = slices.Clone(r)
	}
	return f, nil
}

// Index returns the row axis.
func (f *Frame) Index() *Axis { return f.rows }

// Columns returns the column axis.
func (f *Frame) Columns() *Axis { return f.cols }

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows.Len() }

// Shape returns the number of rows and columns.
func (f *Frame) Shape() (rows, cols int) {
	return f.rows.Len(), f.cols.Len()
}

// At returns the cell at row r and column c.
func (f *Frame) At(r, c int) float64 {
	return f.cells[r][c]
}

// Row returns a copy of the cells of row r.
func (f *Frame) Row(r int) []float64 {
	if r < 0 || r >= len(f.cells) {
		return nil
	}
	return slices.Clone(f.cells[r])
}

// Column returns column c as a Series sharing the frame's row axis.
func (f *Frame) Column(c int) (*Series, error) {
	if c < 0 || c >= f.cols.Len() {
		return nil, fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, c, f.cols.Len())
	}
	vals := make([]float64, len(f.cells))
	for i, r := range f.cells {
		vals[i] = r[c]
	}
	name := ""
	for i, l := range f.cols.tuples[c] {
		if i > 0 {
			name += "/"
		}
		name += FormatLabel(l)
	}
	return &Series{name: name, index: f.rows, values: vals}, nil
}

// Slice keeps the rows matching rows and the columns matching cols. A nil
// or empty selector keeps the whole axis. The result may share storage with
// f.
func (f *Frame) Slice(rows, cols Selector) (*Frame, error) {
	rowSpec, err := BuildSpec(rows, f.rows)
	if err != nil {
		return nil, err
	}
	colSpec, err := BuildSpec(cols, f.cols)
	if err != nil {
		return nil, err
	}
	return f.take(rowSpec.Positions(f.rows), colSpec.Positions(f.cols)), nil
}

func (f *Frame) take(rowPos, colPos []int) *Frame {
	out := &Frame{
		rows:  f.rows.take(rowPos),
		cols:  f.cols.take(colPos),
		cells: make([][]float64, len(rowPos)),
	}
	for i, r := range rowPos {
		src := f.cells[r]
		dst := make([]float64, len(colPos))
		for j, c := range colPos {
			dst[j] = src[c]
		}
		out.cells[i] = dst
	}
	return out
}

// Equal reports whether both frames have equal axes and cells.
func (f *Frame) Equal(g *Frame) bool {
	if !f.rows.Equal(g.rows) || !f.cols.Equal(g.cols) {
		return false
	}
	for i := range f.cells {
		if !slices.Equal(f.cells[i], g.cells[i]) {
			return false
		}
	}
	return true
}

// SliceFrame is shorthand for f.Slice(rows, cols).
func SliceFrame(f *Frame, rows, cols Selector) (*Frame, error) {
	return f.Slice(rows, cols)
}

// Series is a one-dimensional table: a labeled row axis with one float64
// value per position.
type Series struct {
	name   string
	index  *Axis
	values []float64
}

// NewSeries builds a series. values must have one entry per index position;
// it is copied.
func NewSeries(name string, index *Axis, values []float64) (*Series, error) {
	if index == nil {
		return nil, fmt.Errorf("%w: series needs an index", ErrNoLevels)
	}
	if len(values) != index.Len() {
		return nil, fmt.Errorf("%w: %d values for %d positions", ErrShapeMismatch, len(values), index.Len())
	}
	return &Series{name: name, index: index, values: slices.Clone(values)}, nil
}

// Name returns the series name.
func (s *Series) Name() string { return s.name }

// Index returns the row axis.
func (s *Series) Index() *Axis { return s.index }

// Len returns the number of positions.
func (s *Series) Len() int { return s.index.Len() }

// At returns the value at position i.
func (s *Series) At(i int) float64 { return s.values[i] }

// Values returns a copy of the values.
func (s *Series) Values() []float64 { return slices.Clone(s.values) }

// Slice keeps the positions matching rows.
func (s *Series) Slice(rows Selector) (*Series, error) {
	spec, err := BuildSpec(rows, s.index)
	if err != nil {
		return nil, err
	}
	pos := spec.Positions(s.index)
	out := &Series{name: s.name, index: s.index.take(pos), values: make([]float64, len(pos))}
	for i, p := range pos {
		out.values[i] = s.values[p]
	}
	return out, nil
}

// SliceSeries is shorthand for s.Slice(rows).
func SliceSeries(s *Series, rows Selector) (*Series, error) {
	return s.Slice(rows)
}
