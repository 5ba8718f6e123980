// Package store persists tables as parquet blobs in a local directory.
//
// A Store is a directory; each Node is one key in it holding a single
// table.Frame encoded with Apache Arrow's parquet writer. Row levels are
// written as leading columns, one per level, followed by one float64 column
// per column position. The level names and the column axis are kept in the
// parquet key/value metadata so a Frame reads back with the same shape.
//
// Nodes memoize the frame they last wrote or read, so repeated Get calls do
// not touch the disk. Writes go to a temporary file first and are renamed
// into place.
package store
