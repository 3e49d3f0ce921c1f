// Package report implements the capacity report core: bucketing raw
// capacity samples into calendar periods and computing the window summary.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Joe-Costa/qumulo-usage-report/internal/format"
	"github.com/Joe-Costa/qumulo-usage-report/internal/models"
)

// ErrNoData indicates the sample sequence was empty. Callers treat this as
// a notice, not a failure.
var ErrNoData = errors.New("no capacity data points in the requested range")

// ErrZeroTotalUsable indicates a sample reported zero usable capacity, so
// a percentage cannot be computed for it.
var ErrZeroTotalUsable = errors.New("sample reports zero total usable capacity")

// Period label layouts. Labels are display-only; ordering always comes
// from the structured bucket-start key.
const (
	rawLabelLayout     = "2006-01-02 15:04"
	hourlyLabelLayout  = "2006-01-02 15:00"
	dailyLabelLayout   = "2006-01-02"
	monthlyLabelLayout = "2006-01"
)

// Aggregate collapses samples into one record per calendar bucket of the
// given granularity. Input order is irrelevant: samples are grouped by
// bucket start and each bucket is reduced to its chronologically last
// member (end-of-period snapshot). Records are emitted in chronological
// bucket order.
//
// GranularityNone bypasses grouping entirely: each sample maps to one
// record, in input order, labeled with its full local date-time.
func Aggregate(samples []models.CapacitySample, g models.Granularity) ([]models.PeriodRecord, error) {
	if len(samples) == 0 {
		return nil, ErrNoData
	}

	if g == models.GranularityNone {
		records := make([]models.PeriodRecord, 0, len(samples))
		for _, s := range samples {
			rec, err := newRecord(s.Time().Format(rawLabelLayout), s)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		return records, nil
	}

	// Group by structured bucket start, folding each bucket down to the
	// sample with the greatest timestamp as it is built.
	buckets := make(map[time.Time]models.CapacitySample)
	for _, s := range samples {
		start := bucketStart(s.Time(), g)
		if last, ok := buckets[start]; !ok || s.PeriodStartTime > last.PeriodStartTime {
			buckets[start] = s
		}
	}

	starts := make([]time.Time, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	records := make([]models.PeriodRecord, 0, len(starts))
	for _, start := range starts {
		rec, err := newRecord(periodLabel(start, g), buckets[start])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// bucketStart truncates a local timestamp to the start of its calendar
// bucket. Weeks start on Monday: a Sunday timestamp rolls back six days to
// the Monday that opened its week.
func bucketStart(t time.Time, g models.Granularity) time.Time {
	year, month, day := t.Date()

	switch g {
	case models.GranularityHourly:
		return time.Date(year, month, day, t.Hour(), 0, 0, 0, t.Location())
	case models.GranularityDaily:
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	case models.GranularityWeekly:
		midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
		// Monday = 0 ... Sunday = 6
		offset := (int(midnight.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset)
	case models.GranularityMonthly:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

// periodLabel renders the display label for a bucket start.
func periodLabel(start time.Time, g models.Granularity) string {
	switch g {
	case models.GranularityHourly:
		return start.Format(hourlyLabelLayout)
	case models.GranularityDaily:
		return start.Format(dailyLabelLayout)
	case models.GranularityWeekly:
		return "Week of " + start.Format(dailyLabelLayout)
	case models.GranularityMonthly:
		return start.Format(monthlyLabelLayout)
	default:
		return start.Format(rawLabelLayout)
	}
}

// newRecord derives the display row for a period's representative sample.
func newRecord(label string, s models.CapacitySample) (models.PeriodRecord, error) {
	pct, err := percentUsed(s)
	if err != nil {
		return models.PeriodRecord{}, err
	}

	return models.PeriodRecord{
		Period:       label,
		CapacityUsed: format.Bytes(s.CapacityUsed),
		DataUsed:     format.Bytes(s.DataUsed),
		MetadataUsed: format.Bytes(s.MetadataUsed),
		SnapshotUsed: format.Bytes(s.SnapshotUsed),
		TotalUsable:  format.Bytes(s.TotalUsable),
		PercentUsed:  format.Percent(pct),
	}, nil
}

// percentUsed computes capacity used against the sample's own usable
// capacity. Zero usable capacity is a hard error rather than Inf/NaN.
func percentUsed(s models.CapacitySample) (float64, error) {
	if s.TotalUsable == 0 {
		return 0, fmt.Errorf("%w (sample at %s)", ErrZeroTotalUsable, s.Time().Format(rawLabelLayout))
	}
	return float64(s.CapacityUsed) / float64(s.TotalUsable) * 100, nil
}
