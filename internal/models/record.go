// Package models defines data structures and domain types.
package models

import "time"

// PeriodRecord is one row of report output: a period label plus the
// human-readable display fields derived from the period's representative
// sample.
type PeriodRecord struct {
	Period       string `json:"period"`
	CapacityUsed string `json:"capacity_used"`
	DataUsed     string `json:"data_used"`
	MetadataUsed string `json:"metadata_used"`
	SnapshotUsed string `json:"snapshot_used"`
	TotalUsable  string `json:"total_usable"`
	PercentUsed  string `json:"percent_used"`
}

// SummaryStats holds the overall window statistics computed from the raw
// sample sequence in its original order. Start figures come from the first
// sample, end figures (and TotalUsable) from the last.
type SummaryStats struct {
	StartTime    time.Time
	EndTime      time.Time
	DataPoints   int
	TotalUsable  uint64
	StartUsed    uint64
	EndUsed      uint64
	StartPercent float64
	EndPercent   float64
	// UsageChange is end minus start, signed; negative means capacity
	// was reclaimed during the window.
	UsageChange int64
}
