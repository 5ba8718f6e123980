package store

import "errors"

// Sentinel errors for package store.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Key errors
	ErrInvalidKey = errors.New("invalid store key")
	ErrNotFound   = errors.New("key not found in store")

	// Encoding errors
	ErrUnsupportedLabel   = errors.New("unsupported row label type")
	ErrCorruptBlob        = errors.New("blob is not a tabslice parquet table")
	ErrUnknownCompression = errors.New("unknown compression codec")
)
