package table

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"
)

var hourlyEnd = time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC)

// hourlyFrame builds a year of hourly rows for ten locations with one
// "value" column.
func hourlyFrame(t *testing.T) *Frame {
	t.Helper()
	start := hourlyEnd.Add(-8759 * time.Hour)
	hours := make([]Label, 8760)
	for i := range hours {
		hours[i] = start.Add(time.Duration(i) * time.Hour)
	}
	locations := make([]Label, 10)
	for i := range locations {
		locations[i] = fmt.Sprintf("location%d", i)
	}
	rows, err := NewProductAxis([]string{"hour_beginning", "location"}, hours, locations)
	if err != nil {
		t.Fatalf("NewProductAxis() error = %v", err)
	}
	cells := make([][]float64, rows.Len())
	for i := range cells {
		cells[i] = []float64{float64(i)}
	}
	f, err := NewFrame(rows, NewSingleAxis("", "value"), cells)
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}
	return f
}

func TestFrameSlice_HourlyLocations(t *testing.T) {
	f := hourlyFrame(t)

	tests := []struct {
		name     string
		rows     Selector
		wantRows int
	}{
		{
			name:     "two locations",
			rows:     Selector{"location": AnyOf("location1", "location5")},
			wantRows: 8760 * 2,
		},
		{
			name: "two locations at one hour",
			rows: Selector{
				"location":       AnyOf("location1", "location5"),
				"hour_beginning": One(hourlyEnd),
			},
			wantRows: 2,
		},
		{
			name:     "bare scalar location",
			rows:     Selector{"location": One("location3")},
			wantRows: 8760,
		},
		{
			name:     "no selector",
			rows:     nil,
			wantRows: 87600,
		},
		{
			name:     "value absent from level",
			rows:     Selector{"location": One("location42")},
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Slice(tt.rows, nil)
			if err != nil {
				t.Fatalf("Slice() error = %v", err)
			}
			if got.Len() != tt.wantRows {
				t.Errorf("Slice() rows = %d, want %d", got.Len(), tt.wantRows)
			}
			if got.Index().NumLevels() != 2 {
				t.Errorf("Slice() row levels = %d, want 2", got.Index().NumLevels())
			}
			if !slices.Contains(got.Index().Levels(), "location") {
				t.Errorf("Slice() row levels = %v, missing location", got.Index().Levels())
			}
			if _, cols := got.Shape(); cols != 1 {
				t.Errorf("Slice() cols = %d, want 1", cols)
			}
		})
	}
}

func TestFrameSlice_KeepsOnlySelectedLabels(t *testing.T) {
	f := hourlyFrame(t)
	got, err := f.Slice(Selector{"location": AnyOf("location1", "location5")}, nil)
	if err != nil {
		t.Fatalf("Slice() error = %v", err)
	}

	perLocation := map[string]int{}
	for i := 0; i < got.Len(); i++ {
		perLocation[got.Index().Label(i, 1).(string)]++
	}
	if len(perLocation) != 2 || perLocation["location1"] != 8760 || perLocation["location5"] != 8760 {
		t.Errorf("location counts = %v, want 8760 each of location1 and location5", perLocation)
	}

	// Cells follow their rows: row i of the input holds value i.
	for i := 0; i < 5; i++ {
		want := float64((i/2)*10 + 1)
		if i%2 == 1 {
			want = float64((i/2)*10 + 5)
		}
		if got.At(i, 0) != want {
			t.Errorf("At(%d, 0) = %v, want %v", i, got.At(i, 0), want)
		}
	}
}

func TestFrameSlice_Idempotent(t *testing.T) {
	f := hourlyFrame(t)
	sel := Selector{"location": AnyOf("location2", "location7"), "hour_beginning": One(hourlyEnd)}

	once, err := f.Slice(sel, nil)
	if err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	twice, err := once.Slice(sel, nil)
	if err != nil {
		t.Fatalf("second Slice() error = %v", err)
	}
	if !once.Equal(twice) {
		t.Error("slicing an already sliced frame with the same selector changed it")
	}
}

func TestFrameSlice_EmptySelectorIsPassThrough(t *testing.T) {
	rows, _ := NewProductAxis([]string{"a", "b"}, []Label{"x", "y"}, []Label{1, 2})
	cols, _ := NewProductAxis([]string{"measure", "unit"}, []Label{"t", "p"}, []Label{"si"})
	f, err := NewFrame(rows, cols, [][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}})
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}

	for _, sel := range []Selector{nil, {}} {
		got, err := f.Slice(sel, sel)
		if err != nil {
			t.Fatalf("Slice(%v) error = %v", sel, err)
		}
		if !got.Equal(f) {
			t.Errorf("Slice(%v) is not a pass-through", sel)
		}
	}
}

func TestFrameSlice_Columns(t *testing.T) {
	rows := NewSingleAxis("site", "s0", "s1")
	cols, _ := NewProductAxis([]string{"measure", "stat"},
		[]Label{"temp", "rh"}, []Label{"min", "max"})
	f, err := NewFrame(rows, cols, [][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	})
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}

	got, err := f.Slice(Selector{"site": One("s1")}, Selector{"stat": One("max")})
	if err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	r, c := got.Shape()
	if r != 1 || c != 2 {
		t.Fatalf("Shape() = (%d, %d), want (1, 2)", r, c)
	}
	if got.Columns().NumLevels() != 2 {
		t.Errorf("column levels = %d, want 2", got.Columns().NumLevels())
	}
	if !slices.Equal(got.Row(0), []float64{6, 8}) {
		t.Errorf("Row(0) = %v, want [6 8]", got.Row(0))
	}

	none, err := f.Slice(nil, Selector{"measure": One("wind")})
	if err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	if r, c := none.Shape(); r != 2 || c != 0 {
		t.Errorf("Shape() = (%d, %d), want (2, 0)", r, c)
	}
}

func TestFrameSlice_Errors(t *testing.T) {
	rows, _ := NewProductAxis([]string{"a", "b"}, []Label{"x"}, []Label{"y"})
	cols := NewSingleAxis("", "v")
	f, _ := NewFrame(rows, cols, [][]float64{{1}})

	tests := []struct {
		name    string
		rows    Selector
		cols    Selector
		wantErr error
	}{
		{name: "unknown row level", rows: Selector{"c": One("z")}, wantErr: ErrUnknownLevel},
		{name: "multi key on single level columns", cols: Selector{"p": One("v"), "q": One("v")}, wantErr: ErrMultiKeyOnSingleLevel},
		{name: "row error wins over valid columns", rows: Selector{"nope": One(1)}, cols: Selector{"": One("v")}, wantErr: ErrUnknownLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Slice(tt.rows, tt.cols)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Slice() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Error("Slice() returned a partial result on error")
			}
		})
	}
}

func TestFrameSlice_DoesNotMutateInput(t *testing.T) {
	rows := NewSingleAxis("k", "a", "b", "c")
	f, _ := NewFrame(rows, NewSingleAxis("", "v"), [][]float64{{1}, {2}, {3}})

	got, err := SliceFrame(f, Selector{"k": AnyOf("a", "c")}, nil)
	if err != nil {
		t.Fatalf("SliceFrame() error = %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("SliceFrame() rows = %d, want 2", got.Len())
	}
	if f.Len() != 3 || f.At(1, 0) != 2 {
		t.Error("SliceFrame() modified its input")
	}
	row := got.Row(0)
	row[0] = 100
	if got.At(0, 0) != 1 {
		t.Error("Row() returned a view into frame storage")
	}
}

func TestSeriesSlice(t *testing.T) {
	f := hourlyFrame(t)
	s, err := f.Column(0)
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if s.Name() != "value" {
		t.Errorf("Name() = %q, want %q", s.Name(), "value")
	}

	got, err := SliceSeries(s, Selector{"location": One("location3")})
	if err != nil {
		t.Fatalf("SliceSeries() error = %v", err)
	}
	if got.Len() != 8760 {
		t.Errorf("SliceSeries() len = %d, want 8760", got.Len())
	}
	if got.At(0) != 3 {
		t.Errorf("At(0) = %v, want 3", got.At(0))
	}
	if got.Index().NumLevels() != 2 {
		t.Errorf("index levels = %d, want 2", got.Index().NumLevels())
	}
}

func TestSeriesSlice_SingleLevel(t *testing.T) {
	s, err := NewSeries("file", NewSingleAxis("root", ".", ".", "./util"), []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}

	got, err := s.Slice(Selector{"root": One(".")})
	if err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	if !slices.Equal(got.Values(), []float64{1, 2}) {
		t.Errorf("Values() = %v, want [1 2]", got.Values())
	}

	_, err = s.Slice(Selector{"root": One("."), "file": One("x")})
	if !errors.Is(err, ErrMultiKeyOnSingleLevel) {
		t.Errorf("Slice() error = %v, want ErrMultiKeyOnSingleLevel", err)
	}
}

func TestFrameColumn_OutOfRange(t *testing.T) {
	f, _ := NewFrame(NewSingleAxis("k", "a"), NewSingleAxis("", "v"), [][]float64{{1}})
	if _, err := f.Column(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Column(3) error = %v, want ErrIndexOutOfRange", err)
	}
}
