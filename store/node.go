package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/google/uuid"

	"github.com/dendrascience/tabslice/table"
)

// DefaultCompression is the codec used when none is configured.
const DefaultCompression = "snappy"

// Store is a directory of parquet blobs, one frame per key.
type Store struct {
	dir   string
	codec compress.Compression
	mem   memory.Allocator
}

// Option configures a Store.
type Option func(*options)

type options struct {
	compression string
	mem         memory.Allocator
}

// WithCompression selects the parquet codec by name: snappy, zstd, gzip or
// none.
func WithCompression(name string) Option {
	return func(o *options) { o.compression = name }
}

// WithAllocator sets the arrow memory allocator used for encoding and
// decoding.
func WithAllocator(mem memory.Allocator) Option {
	return func(o *options) { o.mem = mem }
}

// New opens the store rooted at dir, creating the directory if needed.
func New(dir string, opts ...Option) (*Store, error) {
	o := options{compression: DefaultCompression}
	for _, opt := range opts {
		opt(&o)
	}
	codec, err := codecByName(o.compression)
	if err != nil {
		return nil, fmt.Errorf("%w (valid: %s)", err, strings.Join(codecNames(), ", "))
	}
	if o.mem == nil {
		o.mem = memory.NewGoAllocator()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &Store{dir: dir, codec: codec, mem: o.mem}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Node returns the node for key. Keys are plain file names.
func (s *Store) Node(key string) (*Node, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return &Node{store: s, key: key, path: filepath.Join(s.dir, key)}, nil
}

// Keys lists the keys present in the store, sorted by name.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}

func validateKey(key string) error {
	switch {
	case key == "", key == ".", key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("%w: %q is hidden", ErrInvalidKey, key)
	}
	return nil
}

// Node is one keyed blob in a Store. It caches the last frame it wrote or
// read.
type Node struct {
	store *Store
	key   string
	path  string

	mu    sync.Mutex
	frame *table.Frame
}

// Info describes a persisted blob.
type Info struct {
	Key          string
	Path         string
	Size         int64
	Modified     time.Time
	NumRows      int64
	NumRowGroups int
	NumColumns   int
	CreatedBy    string
	RowLevels    []string
	ColumnLevels []string
}

// Key returns the node's key.
func (n *Node) Key() string { return n.key }

// Path returns the blob's path on disk.
func (n *Node) Path() string { return n.path }

// Exists reports whether the blob is on disk.
func (n *Node) Exists() bool {
	_, err := os.Stat(n.path)
	return err == nil
}

// Put writes f under the node's key, replacing any previous blob.
func (n *Node) Put(ctx context.Context, f *table.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp := filepath.Join(n.store.dir, "."+n.key+"."+uuid.NewString()+".tmp")
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	err = writeFrame(out, f, n.store.codec, n.store.mem)
	if cerr := out.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(tmp); rerr != nil && !os.IsNotExist(rerr) {
			log.Printf("failed to remove temporary file %s: %v", tmp, rerr)
		}
		return fmt.Errorf("failed to write %s: %w", n.key, err)
	}
	if err := os.Rename(tmp, n.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", n.key, err)
	}

	n.mu.Lock()
	n.frame = f
	n.mu.Unlock()
	return nil
}

// Get returns the node's frame, reading it from disk on first use.
func (n *Node) Get(ctx context.Context) (*table.Frame, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.frame != nil {
		return n.frame, nil
	}
	f, err := n.read(ctx)
	if err != nil {
		return nil, err
	}
	n.frame = f
	return f, nil
}

// Reload discards the cached frame and reads it from disk again.
func (n *Node) Reload(ctx context.Context) (*table.Frame, error) {
	n.mu.Lock()
	n.frame = nil
	n.mu.Unlock()
	return n.Get(ctx)
}

func (n *Node) read(ctx context.Context) (*table.Frame, error) {
	if err := n.stat(); err != nil {
		return nil, err
	}
	f, err := readFrame(ctx, n.path, n.store.mem)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", n.key, err)
	}
	return f, nil
}

func (n *Node) stat() error {
	if _, err := os.Stat(n.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, n.key)
		}
		return err
	}
	return nil
}

// Info reads the blob's file and parquet metadata without decoding it.
func (n *Node) Info() (Info, error) {
	info := Info{Key: n.key, Path: n.path}
	st, err := os.Stat(n.path)
	if err != nil {
		if os.IsNotExist(err) {
			return info, fmt.Errorf("%w: %s", ErrNotFound, n.key)
		}
		return info, err
	}
	info.Size = st.Size()
	info.Modified = st.ModTime()

	pf, err := file.OpenParquetFile(n.path, false)
	if err != nil {
		return info, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer pf.Close()

	md := pf.MetaData()
	info.NumRows = pf.NumRows()
	info.NumRowGroups = pf.NumRowGroups()
	info.NumColumns = md.Schema.NumColumns()
	info.CreatedBy = md.GetCreatedBy()

	rows, cols, err := readAxisMeta(pf)
	if err != nil {
		return info, err
	}
	info.RowLevels = rows
	info.ColumnLevels = cols.Levels
	return info, nil
}

// LastModified returns the blob's modification time.
func (n *Node) LastModified() (time.Time, error) {
	st, err := os.Stat(n.path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, n.key)
		}
		return time.Time{}, err
	}
	return st.ModTime(), nil
}

// Schema returns the arrow schema of the blob.
func (n *Node) Schema() (*arrow.Schema, error) {
	if err := n.stat(); err != nil {
		return nil, err
	}
	return readSchema(n.path, n.store.mem)
}

// BlockSizeBytes returns the blob's size on disk.
func (n *Node) BlockSizeBytes() (int64, error) {
	st, err := os.Stat(n.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, n.key)
		}
		return 0, err
	}
	return st.Size(), nil
}

// BlockSize returns the blob's size on disk, formatted.
func (n *Node) BlockSize() (string, error) {
	size, err := n.BlockSizeBytes()
	if err != nil {
		return "", err
	}
	return FormatBytes(size), nil
}

// MemSizeBytes returns the size of the frame's cell payload in memory.
func (n *Node) MemSizeBytes(ctx context.Context) (int64, error) {
	f, err := n.Get(ctx)
	if err != nil {
		return 0, err
	}
	rows, cols := f.Shape()
	return int64(rows) * int64(cols) * 8, nil
}

// MemSize returns MemSizeBytes formatted.
func (n *Node) MemSize(ctx context.Context) (string, error) {
	size, err := n.MemSizeBytes(ctx)
	if err != nil {
		return "", err
	}
	return FormatBytes(size), nil
}

// ExportCSV writes the frame as CSV: one column per row level, then one per
// column position. Multi-level column labels are joined with "/".
func (n *Node) ExportCSV(ctx context.Context, w io.Writer) error {
	f, err := n.Get(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, f)
}

// WriteCSV writes f as CSV to w.
func WriteCSV(w io.Writer, f *table.Frame) error {
	cw := csv.NewWriter(w)
	rows, cols := f.Index(), f.Columns()

	header := rows.Levels()
	for c := 0; c < cols.Len(); c++ {
		header = append(header, strings.Join(joinLabels(cols.Tuple(c)), "/"))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(header))
	for r := 0; r < rows.Len(); r++ {
		for l := 0; l < rows.NumLevels(); l++ {
			record[l] = table.FormatLabel(rows.Label(r, l))
		}
		for c := 0; c < cols.Len(); c++ {
			record[rows.NumLevels()+c] = strconv.FormatFloat(f.At(r, c), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", r, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
