package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Joe-Costa/qumulo-usage-report/internal/models"
)

// clearEnv keeps ambient QUMULO_* settings from leaking into flag
// defaults during tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"QUMULO_HOST", "QUMULO_PORT", "QUMULO_ACCESS_TOKEN", "QUMULO_TOKEN_FILE"} {
		t.Setenv(key, "")
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// startHistoryServer serves a fixed capacity-history payload over TLS.
func startHistoryServer(t *testing.T, payload string) (host string, port string) {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return u.Hostname(), u.Port()
}

func TestRootRequiresTokenSource(t *testing.T) {
	clearEnv(t)
	_, err := runCommand(t, "--host", "cluster", "--start", "2024-01-01", "--end", "2024-02-01")
	if err == nil {
		t.Fatal("Expected error with no token source")
	}
	if !strings.Contains(err.Error(), "access token") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRootRejectsBothTokenSources(t *testing.T) {
	clearEnv(t)
	_, err := runCommand(t,
		"--host", "cluster", "--start", "2024-01-01", "--end", "2024-02-01",
		"--access-token", "tok", "--token-file", "/tmp/tok")
	if err == nil {
		t.Fatal("Expected error with both token sources")
	}
}

func TestRootRejectsMultipleGranularities(t *testing.T) {
	clearEnv(t)
	_, err := runCommand(t,
		"--host", "cluster", "--access-token", "tok",
		"--start", "2024-01-01", "--end", "2024-02-01",
		"--daily", "--weekly")
	if err == nil {
		t.Fatal("Expected error with two granularity switches")
	}
}

func TestRootRejectsMissingTokenFile(t *testing.T) {
	clearEnv(t)
	_, err := runCommand(t,
		"--host", "cluster", "--token-file", "/nonexistent/token",
		"--start", "2024-01-01", "--end", "2024-02-01")
	if err == nil {
		t.Fatal("Expected error for missing token file")
	}
	if !strings.Contains(err.Error(), "token file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRootRejectsBadDate(t *testing.T) {
	clearEnv(t)
	_, err := runCommand(t,
		"--host", "cluster", "--access-token", "tok",
		"--start", "01/02/2024", "--end", "2024-02-01")
	if err == nil {
		t.Fatal("Expected error for unrecognized date")
	}
}

func TestRootEmptyResult(t *testing.T) {
	clearEnv(t)
	host, port := startHistoryServer(t, `[]`)

	out, err := runCommand(t,
		"--host", host, "--port", port, "--access-token", "tok", "--insecure",
		"--start", "2024-01-01", "--end", "2024-02-01")
	if err != nil {
		t.Fatalf("Expected success for empty result, got %v", err)
	}
	if !strings.Contains(out, "No data points found") {
		t.Errorf("Expected empty-result notice, got:\n%s", out)
	}
}

// Two samples at midday UTC on 2024-03-15 and 2024-03-16, so they fall in
// the same month and on different days in any timezone the tests run in.
const historyPayload = `[
	{"period_start_time": 1710504000, "capacity_used": 107374182400, "data_used": 96636764160,
	 "metadata_used": 5368709120, "snapshot_used": 5368709120, "total_usable": 1099511627776},
	{"period_start_time": 1710590400, "capacity_used": 161061273600, "data_used": 144955146240,
	 "metadata_used": 8053063680, "snapshot_used": 8053063680, "total_usable": 1099511627776}
]`

func TestRootTextReport(t *testing.T) {
	clearEnv(t)
	host, port := startHistoryServer(t, historyPayload)

	out, err := runCommand(t,
		"--host", host, "--port", port, "--access-token", "tok", "--insecure",
		"--start", "2024-03-01", "--end", "2024-03-03", "--daily")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	for _, want := range []string{
		"Capacity usage for cluster",
		"Data points:     2",
		"+50.00 GB",
		"Period",
		"100.00 GB",
		"150.00 GB",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report output missing %q:\n%s", want, out)
		}
	}
}

func TestRootJSONReport(t *testing.T) {
	clearEnv(t)
	host, port := startHistoryServer(t, historyPayload)

	out, err := runCommand(t,
		"--host", host, "--port", port, "--access-token", "tok", "--insecure",
		"--start", "2024-03-01", "--end", "2024-03-03", "--monthly", "-o", "json")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	var records []models.PeriodRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("Failed to decode JSON output: %v\n%s", err, out)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 monthly record, got %d", len(records))
	}
	if records[0].CapacityUsed != "150.00 GB" {
		t.Errorf("Expected end-of-month snapshot 150.00 GB, got %q", records[0].CapacityUsed)
	}
}

func TestRootCSVReport(t *testing.T) {
	clearEnv(t)
	host, port := startHistoryServer(t, historyPayload)

	out, err := runCommand(t,
		"--host", host, "--port", port, "--access-token", "tok", "--insecure",
		"--start", "2024-03-01", "--end", "2024-03-03", "-o", "csv")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 CSV rows, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Period,") {
		t.Errorf("Expected CSV header, got %q", lines[0])
	}
}

func TestRootTransportError(t *testing.T) {
	clearEnv(t)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"description": "token lacks analytics privilege"}`))
	}))
	t.Cleanup(srv.Close)
	u, _ := url.Parse(srv.URL)

	_, err := runCommand(t,
		"--host", u.Hostname(), "--port", u.Port(), "--access-token", "tok", "--insecure",
		"--start", "2024-03-01", "--end", "2024-03-03")
	if err == nil {
		t.Fatal("Expected transport error")
	}
	// The cluster's response body must be surfaced verbatim.
	if !strings.Contains(err.Error(), "token lacks analytics privilege") {
		t.Errorf("Expected response body in error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	clearEnv(t)
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "qusage") {
		t.Errorf("Expected binary name in version output, got %q", out)
	}
}

func TestWatchRejectsShortInterval(t *testing.T) {
	clearEnv(t)
	_, err := runCommand(t, "watch",
		"--host", "cluster", "--access-token", "tok", "--interval", "1s")
	if err == nil {
		t.Fatal("Expected error for sub-10s interval")
	}
}

func TestWatchRequiresHost(t *testing.T) {
	clearEnv(t)
	_, err := runCommand(t, "watch", "--access-token", "tok")
	if err == nil {
		t.Fatal("Expected error with no host")
	}
}
