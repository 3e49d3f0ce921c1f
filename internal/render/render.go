// Package render writes report output: the summary block, the period
// table, and the structured JSON/CSV forms for export.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
	"github.com/logrusorgru/aurora/v4"

	"github.com/Joe-Costa/qumulo-usage-report/internal/format"
	"github.com/Joe-Costa/qumulo-usage-report/internal/models"
)

var tableHeader = []string{
	"Period", "Capacity Used", "Data Used", "Metadata Used",
	"Snapshot Used", "Total Usable", "Percent Used",
}

// Summary writes the human-readable summary block for a window.
func Summary(w io.Writer, host string, stats *models.SummaryStats) {
	const timeLayout = "2006-01-02 15:04"

	fmt.Fprintf(w, "Capacity usage for cluster %s\n", aurora.Bold(host))
	fmt.Fprintf(w, "  Data points:     %d\n", stats.DataPoints)
	fmt.Fprintf(w, "  Usable capacity: %s\n", format.Bytes(stats.TotalUsable))
	fmt.Fprintf(w, "  Start (%s): %s used (%s)\n",
		stats.StartTime.Format(timeLayout),
		format.Bytes(stats.StartUsed),
		format.Percent(stats.StartPercent))
	fmt.Fprintf(w, "  End   (%s): %s used (%s)\n",
		stats.EndTime.Format(timeLayout),
		format.Bytes(stats.EndUsed),
		format.Percent(stats.EndPercent))

	change := format.SignedBytes(stats.UsageChange)
	if stats.UsageChange > 0 {
		fmt.Fprintf(w, "  Change:          %s\n", aurora.Yellow(change))
	} else {
		fmt.Fprintf(w, "  Change:          %s\n", aurora.Green(change))
	}
	fmt.Fprintln(w)
}

// Table writes the period records as an aligned text table.
func Table(w io.Writer, records []models.PeriodRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	t := tabby.NewCustom(tw)

	header := make([]interface{}, len(tableHeader))
	for i, h := range tableHeader {
		header[i] = h
	}
	t.AddHeader(header...)

	for _, rec := range records {
		t.AddLine(rec.Period, rec.CapacityUsed, rec.DataUsed,
			rec.MetadataUsed, rec.SnapshotUsed, rec.TotalUsable, rec.PercentUsed)
	}

	t.Print()
}

// JSON writes the period records as indented JSON.
func JSON(w io.Writer, records []models.PeriodRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// CSV writes the period records with a header row, ready for spreadsheet
// import.
func CSV(w io.Writer, records []models.PeriodRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(tableHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.Period, rec.CapacityUsed, rec.DataUsed,
			rec.MetadataUsed, rec.SnapshotUsed, rec.TotalUsable, rec.PercentUsed}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Notice writes a yellow non-error notice, e.g. for an empty result set.
func Notice(w io.Writer, msg string) {
	fmt.Fprintln(w, aurora.Yellow(msg))
}

// Error writes a red error message.
func Error(w io.Writer, err error) {
	fmt.Fprintln(w, aurora.Red(fmt.Sprintf("Error: %v", err)))
}
