// Package format provides human-readable formatting for byte counts and
// percentages, matching the cluster report's display conventions.
package format

import "fmt"

// Binary unit thresholds.
const (
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
	TB uint64 = 1 << 40
)

// Bytes renders a byte count using binary (1024-based) units, picking the
// largest unit the value reaches. Two decimals for KB and above, none for
// plain bytes. A value exactly at a threshold selects the larger unit.
func Bytes(n uint64) string {
	switch {
	case n >= TB:
		return fmt.Sprintf("%.2f TB", float64(n)/float64(TB))
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// SignedBytes renders a byte delta with an explicit sign, for usage-change
// lines. Zero renders as "0 B" with no sign.
func SignedBytes(n int64) string {
	switch {
	case n > 0:
		return "+" + Bytes(uint64(n))
	case n < 0:
		return "-" + Bytes(uint64(-n))
	default:
		return Bytes(0)
	}
}

// Percent renders a percentage with two decimals and a trailing '%'.
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
