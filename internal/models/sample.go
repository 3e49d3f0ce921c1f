// Package models defines data structures and domain types.
package models

import "time"

// CapacitySample is one timestamped snapshot of storage usage and capacity
// figures from the cluster's monitoring API. The component fields are
// reported values and are not validated to sum to CapacityUsed.
type CapacitySample struct {
	PeriodStartTime int64  `json:"period_start_time"`
	CapacityUsed    uint64 `json:"capacity_used"`
	DataUsed        uint64 `json:"data_used"`
	MetadataUsed    uint64 `json:"metadata_used"`
	SnapshotUsed    uint64 `json:"snapshot_used"`
	TotalUsable     uint64 `json:"total_usable"`
}

// Time returns the sample's capture instant in local time.
func (s CapacitySample) Time() time.Time {
	return time.Unix(s.PeriodStartTime, 0)
}

// Granularity selects the calendar bucket size used to collapse samples
// into reporting rows. GranularityNone means no aggregation at all: one
// row per sample, in input order.
type Granularity int

const (
	// GranularityNone passes raw samples through one-to-one.
	GranularityNone Granularity = iota
	// GranularityHourly buckets samples by calendar hour.
	GranularityHourly
	// GranularityDaily buckets samples by calendar day.
	GranularityDaily
	// GranularityWeekly buckets samples by week starting Monday.
	GranularityWeekly
	// GranularityMonthly buckets samples by calendar month.
	GranularityMonthly
)

// String returns the display name for a granularity.
func (g Granularity) String() string {
	switch g {
	case GranularityNone:
		return "Raw"
	case GranularityHourly:
		return "Hourly"
	case GranularityDaily:
		return "Daily"
	case GranularityWeekly:
		return "Weekly"
	case GranularityMonthly:
		return "Monthly"
	default:
		return "Unknown"
	}
}

// Next cycles to the next granularity, wrapping back to raw.
func (g Granularity) Next() Granularity {
	return (g + 1) % 5
}
