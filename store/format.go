package store

import "fmt"

var byteUnits = []string{"bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count in 1024 steps, e.g. "1.50 KB".
// TB is the largest unit.
func FormatBytes(n int64) string {
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%3.2f %s", size, byteUnits[unit])
}
