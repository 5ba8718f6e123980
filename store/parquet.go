package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/dendrascience/tabslice/table"
)

// Key/value metadata entries written alongside every frame.
const (
	metaRowLevels  = "tabslice.rows"
	metaColumnAxis = "tabslice.columns"
)

var timestampType = &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}

type columnAxisMeta struct {
	Levels []string   `json:"levels"`
	Labels [][]string `json:"labels"`
}

// codecs maps configuration names to parquet compression codecs.
var codecs = map[string]compress.Compression{
	"snappy": compress.Codecs.Snappy,
	"zstd":   compress.Codecs.Zstd,
	"gzip":   compress.Codecs.Gzip,
	"none":   compress.Codecs.Uncompressed,
}

func codecByName(name string) (compress.Compression, error) {
	c, ok := codecs[strings.ToLower(name)]
	if !ok {
		return compress.Codecs.Uncompressed, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
	return c, nil
}

// labelType returns the arrow type a row label is stored as. A nil label
// has no type and is written as null.
func labelType(v table.Label) (arrow.DataType, error) {
	switch v.(type) {
	case nil:
		return nil, nil
	case string:
		return arrow.BinaryTypes.String, nil
	case int, int8, int16, int32, int64:
		return arrow.PrimitiveTypes.Int64, nil
	case uint, uint8, uint16, uint32, uint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case float32, float64:
		return arrow.PrimitiveTypes.Float64, nil
	case bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case time.Time:
		return timestampType, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedLabel, v)
}

// levelType finds the single arrow type shared by every label of a level.
// Empty or all-null levels are stored as strings.
func levelType(axis *table.Axis, level int) (arrow.DataType, error) {
	name := axis.Levels()[level]
	var dt arrow.DataType
	for pos := 0; pos < axis.Len(); pos++ {
		t, err := labelType(axis.Label(pos, level))
		if err != nil {
			return nil, fmt.Errorf("level %q position %d: %w", name, pos, err)
		}
		if t == nil {
			continue
		}
		if dt == nil {
			dt = t
			continue
		}
		if !arrow.TypeEqual(dt, t) {
			return nil, fmt.Errorf("%w: level %q mixes %s and %s", ErrUnsupportedLabel, name, dt, t)
		}
	}
	if dt == nil {
		dt = arrow.BinaryTypes.String
	}
	return dt, nil
}

func appendLabel(b array.Builder, v table.Label) {
	if v == nil {
		b.AppendNull()
		return
	}
	switch bb := b.(type) {
	case *array.StringBuilder:
		bb.Append(v.(string))
	case *array.Int64Builder:
		bb.Append(reflect.ValueOf(v).Int())
	case *array.Uint64Builder:
		bb.Append(reflect.ValueOf(v).Uint())
	case *array.Float64Builder:
		bb.Append(reflect.ValueOf(v).Float())
	case *array.BooleanBuilder:
		bb.Append(v.(bool))
	case *array.TimestampBuilder:
		bb.Append(arrow.Timestamp(v.(time.Time).UnixMicro()))
	default:
		b.AppendNull()
	}
}

func joinLabels(tuple []table.Label) []string {
	out := make([]string, len(tuple))
	for i, l := range tuple {
		out[i] = table.FormatLabel(l)
	}
	return out
}

// frameSchema lays out row levels first, then one float64 field per
// column position.
func frameSchema(f *table.Frame) (*arrow.Schema, error) {
	rows, cols := f.Index(), f.Columns()
	rowLevels := rows.Levels()

	colMeta := columnAxisMeta{Levels: cols.Levels(), Labels: make([][]string, cols.Len())}
	fields := make([]arrow.Field, 0, len(rowLevels)+cols.Len())
	used := make(map[string]bool)

	for i, name := range rowLevels {
		dt, err := levelType(rows, i)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = fmt.Sprintf("level_%d", i)
		}
		used[name] = true
		fields = append(fields, arrow.Field{Name: name, Type: dt, Nullable: true})
	}
	for c := 0; c < cols.Len(); c++ {
		labels := joinLabels(cols.Tuple(c))
		colMeta.Labels[c] = labels
		name := strings.Join(labels, "/")
		for base, n := name, 1; used[name]; n++ {
			name = fmt.Sprintf("%s#%d", base, n)
		}
		used[name] = true
		fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true})
	}

	rowJSON, err := json.Marshal(rowLevels)
	if err != nil {
		return nil, err
	}
	colJSON, err := json.Marshal(colMeta)
	if err != nil {
		return nil, err
	}
	md := arrow.NewMetadata(
		[]string{metaRowLevels, metaColumnAxis},
		[]string{string(rowJSON), string(colJSON)},
	)
	return arrow.NewSchema(fields, &md), nil
}

func buildRecord(mem memory.Allocator, schema *arrow.Schema, f *table.Frame) arrow.Record {
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	rows := f.Index()
	nLevels := rows.NumLevels()
	for pos := 0; pos < rows.Len(); pos++ {
		for l := 0; l < nLevels; l++ {
			appendLabel(b.Field(l), rows.Label(pos, l))
		}
	}
	for c := 0; c < f.Columns().Len(); c++ {
		fb := b.Field(nLevels + c).(*array.Float64Builder)
		fb.Reserve(rows.Len())
		for r := 0; r < rows.Len(); r++ {
			fb.Append(f.At(r, c))
		}
	}
	return b.NewRecord()
}

// writeFrame encodes f as a single row group of parquet onto w.
func writeFrame(w io.Writer, f *table.Frame, codec compress.Compression, mem memory.Allocator) error {
	schema, err := frameSchema(f)
	if err != nil {
		return err
	}
	rec := buildRecord(mem, schema, f)
	defer rec.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(codec),
		parquet.WithAllocator(mem),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	fw, err := pqarrow.NewFileWriter(schema, w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return fmt.Errorf("failed to write frame to parquet: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

func metaValue(pf *file.Reader, key string) (string, bool) {
	v := pf.MetaData().KeyValueMetadata().FindValue(key)
	if v == nil {
		return "", false
	}
	return *v, true
}

func readAxisMeta(pf *file.Reader) ([]string, columnAxisMeta, error) {
	var rowLevels []string
	var colMeta columnAxisMeta

	raw, ok := metaValue(pf, metaRowLevels)
	if !ok {
		return nil, colMeta, fmt.Errorf("%w: missing %s metadata", ErrCorruptBlob, metaRowLevels)
	}
	if err := json.Unmarshal([]byte(raw), &rowLevels); err != nil {
		return nil, colMeta, fmt.Errorf("%w: %s: %w", ErrCorruptBlob, metaRowLevels, err)
	}
	raw, ok = metaValue(pf, metaColumnAxis)
	if !ok {
		return nil, colMeta, fmt.Errorf("%w: missing %s metadata", ErrCorruptBlob, metaColumnAxis)
	}
	if err := json.Unmarshal([]byte(raw), &colMeta); err != nil {
		return nil, colMeta, fmt.Errorf("%w: %s: %w", ErrCorruptBlob, metaColumnAxis, err)
	}
	return rowLevels, colMeta, nil
}

func chunkLabels(arr arrow.Array, out []table.Label) ([]table.Label, error) {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			out = append(out, nil)
			continue
		}
		switch a := arr.(type) {
		case *array.String:
			out = append(out, a.Value(i))
		case *array.LargeString:
			out = append(out, a.Value(i))
		case *array.Int64:
			out = append(out, a.Value(i))
		case *array.Uint64:
			out = append(out, a.Value(i))
		case *array.Float64:
			out = append(out, a.Value(i))
		case *array.Boolean:
			out = append(out, a.Value(i))
		case *array.Timestamp:
			unit := a.DataType().(*arrow.TimestampType).Unit
			out = append(out, a.Value(i).ToTime(unit).UTC())
		default:
			return nil, fmt.Errorf("%w: row level column of type %s", ErrCorruptBlob, arr.DataType())
		}
	}
	return out, nil
}

func columnLabels(col *arrow.Chunked) ([]table.Label, error) {
	out := make([]table.Label, 0, col.Len())
	var err error
	for _, chunk := range col.Chunks() {
		if out, err = chunkLabels(chunk, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func columnFloats(col *arrow.Chunked) ([]float64, error) {
	out := make([]float64, 0, col.Len())
	for _, chunk := range col.Chunks() {
		fa, ok := chunk.(*array.Float64)
		if !ok {
			return nil, fmt.Errorf("%w: data column of type %s", ErrCorruptBlob, chunk.DataType())
		}
		for i := 0; i < fa.Len(); i++ {
			if fa.IsNull(i) {
				out = append(out, math.NaN())
				continue
			}
			out = append(out, fa.Value(i))
		}
	}
	return out, nil
}

// readFrame decodes the parquet file at path back into a frame.
func readFrame(ctx context.Context, path string, mem memory.Allocator) (*table.Frame, error) {
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer pf.Close()

	rowLevels, colMeta, err := readAxisMeta(pf)
	if err != nil {
		return nil, err
	}

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}
	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer tbl.Release()

	nLevels, nCols := len(rowLevels), len(colMeta.Labels)
	if int(tbl.NumCols()) != nLevels+nCols {
		return nil, fmt.Errorf("%w: %d columns, metadata describes %d", ErrCorruptBlob, tbl.NumCols(), nLevels+nCols)
	}
	nRows := int(tbl.NumRows())

	levelLabels := make([][]table.Label, nLevels)
	for l := range levelLabels {
		if levelLabels[l], err = columnLabels(tbl.Column(l).Data()); err != nil {
			return nil, err
		}
	}
	tuples := make([][]table.Label, nRows)
	for r := range tuples {
		t := make([]table.Label, nLevels)
		for l := range t {
			t[l] = levelLabels[l][r]
		}
		tuples[r] = t
	}
	rows, err := table.NewAxis(rowLevels, tuples)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBlob, err)
	}

	colTuples := make([][]table.Label, nCols)
	for c, labels := range colMeta.Labels {
		t := make([]table.Label, len(labels))
		for i, l := range labels {
			t[i] = l
		}
		colTuples[c] = t
	}
	cols, err := table.NewAxis(colMeta.Levels, colTuples)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBlob, err)
	}

	cells := make([][]float64, nRows)
	for r := range cells {
		cells[r] = make([]float64, nCols)
	}
	for c := 0; c < nCols; c++ {
		vals, err := columnFloats(tbl.Column(nLevels + c).Data())
		if err != nil {
			return nil, err
		}
		for r, v := range vals {
			cells[r][c] = v
		}
	}
	return table.NewFrame(rows, cols, cells)
}

// readSchema returns the arrow schema stored in the parquet file at path.
func readSchema(path string, mem memory.Allocator) (*arrow.Schema, error) {
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}
	return fr.Schema()
}

// codecNames lists the codec names accepted by WithCompression.
func codecNames() []string {
	return slices.Sorted(maps.Keys(codecs))
}
