package report

import (
	"github.com/Joe-Costa/qumulo-usage-report/internal/models"
)

// Summarize computes the window statistics from the raw sequence in its
// original order: the first element is taken as the start of the window
// and the last as the end. The fetch boundary is trusted to return samples
// chronologically; re-sorting here would change observable behavior for
// out-of-order input, so it is deliberately not done.
func Summarize(samples []models.CapacitySample) (*models.SummaryStats, error) {
	if len(samples) == 0 {
		return nil, ErrNoData
	}

	first := samples[0]
	last := samples[len(samples)-1]

	startPct, err := percentUsed(first)
	if err != nil {
		return nil, err
	}
	endPct, err := percentUsed(last)
	if err != nil {
		return nil, err
	}

	return &models.SummaryStats{
		StartTime:    first.Time(),
		EndTime:      last.Time(),
		DataPoints:   len(samples),
		TotalUsable:  last.TotalUsable,
		StartUsed:    first.CapacityUsed,
		EndUsed:      last.CapacityUsed,
		StartPercent: startPct,
		EndPercent:   endPct,
		UsageChange:  int64(last.CapacityUsed) - int64(first.CapacityUsed),
	}, nil
}
