package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const (
	B  = 1
	KB = 1024 * B
	MB = 1024 * KB
)

// FormatMB renders bytes as mebibytes with two decimals, e.g. "12.34 MB"
func FormatMB(bytes uint64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
}

// FormatBytes converts bytes to a human-readable IEC size, e.g. "1.5 MiB"
func FormatBytes(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// FormatCount renders a count with thousands separators
func FormatCount(n uint64) string {
	return humanize.Comma(int64(n))
}
