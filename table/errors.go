package table

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for package table.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Slicing errors
	ErrUnknownLevel          = errors.New("unknown level")
	ErrMultiKeyOnSingleLevel = errors.New("cannot slice a single-level index on more than one name")

	// Construction errors
	ErrDuplicateLevel  = errors.New("duplicate level name")
	ErrNoLevels        = errors.New("axis has no levels")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// UnknownLevelError reports a selector key that is not a level of the axis.
type UnknownLevelError struct {
	Level  string
	Levels []string
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("unknown level %q (axis levels: [%s])", e.Level, strings.Join(e.Levels, ", "))
}

func (e *UnknownLevelError) Is(target error) bool {
	return target == ErrUnknownLevel
}

// MultiKeyOnSingleLevelError reports a selector with more than one key
// applied to a single-level axis.
type MultiKeyOnSingleLevelError struct {
	Keys []string
}

func (e *MultiKeyOnSingleLevelError) Error() string {
	return fmt.Sprintf("%s (got keys: [%s])", ErrMultiKeyOnSingleLevel, strings.Join(e.Keys, ", "))
}

func (e *MultiKeyOnSingleLevelError) Is(target error) bool {
	return target == ErrMultiKeyOnSingleLevel
}
