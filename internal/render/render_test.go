package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Joe-Costa/qumulo-usage-report/internal/models"
)

func testRecords() []models.PeriodRecord {
	return []models.PeriodRecord{
		{
			Period:       "2024-03-01",
			CapacityUsed: "100.00 GB",
			DataUsed:     "90.00 GB",
			MetadataUsed: "5.00 GB",
			SnapshotUsed: "5.00 GB",
			TotalUsable:  "1.00 TB",
			PercentUsed:  "9.77%",
		},
		{
			Period:       "2024-03-02",
			CapacityUsed: "110.00 GB",
			DataUsed:     "99.00 GB",
			MetadataUsed: "5.50 GB",
			SnapshotUsed: "5.50 GB",
			TotalUsable:  "1.00 TB",
			PercentUsed:  "10.74%",
		},
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	stats := &models.SummaryStats{
		StartTime:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		EndTime:      time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local),
		DataPoints:   744,
		TotalUsable:  1099511627776,
		StartUsed:    107374182400,
		EndUsed:      161061273600,
		StartPercent: 9.765625,
		EndPercent:   14.6484375,
		UsageChange:  53687091200,
	}

	Summary(&buf, "cluster.example.com", stats)
	out := buf.String()

	for _, want := range []string{
		"cluster.example.com",
		"Data points:     744",
		"1.00 TB",
		"100.00 GB used (9.77%)",
		"150.00 GB used (14.65%)",
		"+50.00 GB",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary output missing %q:\n%s", want, out)
		}
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, testRecords())
	out := buf.String()

	for _, want := range []string{"Period", "Capacity Used", "2024-03-01", "10.74%", "1.00 TB"} {
		if !strings.Contains(out, want) {
			t.Errorf("Table output missing %q:\n%s", want, out)
		}
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, testRecords()); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded []models.PeriodRecord
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode JSON output: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(decoded))
	}
	if decoded[0].Period != "2024-03-01" || decoded[0].PercentUsed != "9.77%" {
		t.Errorf("Unexpected first record: %+v", decoded[0])
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, testRecords()); err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Period" {
		t.Errorf("Expected header row, got %v", rows[0])
	}
	if rows[2][1] != "110.00 GB" {
		t.Errorf("Expected second record capacity, got %q", rows[2][1])
	}
}

func TestNoticeAndError(t *testing.T) {
	var buf bytes.Buffer
	Notice(&buf, "No data points found in the requested range.")
	if !strings.Contains(buf.String(), "No data points found") {
		t.Errorf("Notice output missing message: %q", buf.String())
	}

	buf.Reset()
	Error(&buf, errors.New("boom"))
	if !strings.Contains(buf.String(), "Error: boom") {
		t.Errorf("Error output missing message: %q", buf.String())
	}
}
