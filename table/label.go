package table

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Label is one level value of a position tuple.
//
// Integers of any width compare as int64 (or uint64 when unsigned), floats as
// float64 and time.Time values by instant, so One(int32(3)) selects a label
// stored as int64(3).
type Label = any

type timeKey struct{ unixNano int64 }

type reprKey struct{ repr string }

// labelKey maps a label to a comparable identity used for matching.
func labelKey(v Label) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string, bool:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case float32:
		return float64(x)
	case float64:
		return x
	case time.Time:
		return timeKey{x.UnixNano()}
	}
	if reflect.TypeOf(v).Comparable() {
		return v
	}
	return reprKey{fmt.Sprintf("%#v", v)}
}

// EqualLabels reports whether a and b identify the same level value.
func EqualLabels(a, b Label) bool {
	return labelKey(a) == labelKey(b)
}

// FormatLabel renders a label for display. Times use RFC 3339.
func FormatLabel(v Label) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
