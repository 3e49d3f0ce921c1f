package watch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Joe-Costa/qumulo-usage-report/internal/format"
	"github.com/Joe-Costa/qumulo-usage-report/internal/ui/components"
	"github.com/Joe-Costa/qumulo-usage-report/internal/ui/styles"
)

// maxRecentRows limits how many period rows the view lists below the chart.
const maxRecentRows = 6

// View renders the watch view.
func (m *Model) View() string {
	if m.loading && m.stats == nil {
		return styles.CenterBoth(m.spin.ViewWithLabel(), m.width, m.height)
	}
	if m.errMsg != "" {
		return m.renderError()
	}
	if m.stats == nil {
		return styles.DocStyle.Render(
			styles.HelpStyle.Render("No capacity data in the selected window."))
	}

	sections := []string{
		m.renderHeader(),
		m.renderUsageBar(),
		m.renderChart(),
		m.renderRecentPeriods(),
		m.renderFooter(),
	}

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderError() string {
	content := fmt.Sprintf("%s %s",
		styles.ErrorTextStyle.Render("Error:"),
		m.errMsg,
	)
	return styles.DocStyle.Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Capacity: " + m.client.Host())

	granStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)
	granIndicator := granStyle.Render(fmt.Sprintf("[g] %s", m.granularity.String()))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", granIndicator)

	subtitle := styles.HelpStyle.Render(fmt.Sprintf("Window: %s → %s (%d data points)",
		m.stats.StartTime.Format("Jan 2 15:04"),
		m.stats.EndTime.Format("Jan 2 15:04"),
		m.stats.DataPoints,
	))

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderUsageBar() string {
	width := max(m.width-8, 40)
	bar := components.UsageBar(m.stats.EndPercent, "used", width)

	trend := make([]float64, len(m.samples))
	for i, s := range m.samples {
		trend[i] = float64(s.CapacityUsed)
	}

	detail := styles.HelpStyle.Render(fmt.Sprintf("  %s of %s, change %s  %s",
		format.Bytes(m.stats.EndUsed),
		format.Bytes(m.stats.TotalUsable),
		format.SignedBytes(m.stats.UsageChange),
		components.RenderSparkline(trend, 24),
	))

	return lipgloss.JoinVertical(lipgloss.Left, bar, detail, "")
}

func (m *Model) renderChart() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Capacity used (GB)"), "")

	data := make([]float64, len(m.samples))
	for i, s := range m.samples {
		data[i] = float64(s.CapacityUsed) / float64(format.GB)
	}

	chartWidth := max(m.width-16, 30)
	chart := components.RenderCapacityChart(data, chartWidth, 8,
		fmt.Sprintf("last %d samples", len(data)))

	for _, line := range strings.Split(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m *Model) renderRecentPeriods() string {
	if len(m.records) == 0 {
		return ""
	}

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Recent periods"))

	records := m.records
	if len(records) > maxRecentRows {
		records = records[len(records)-maxRecentRows:]
	}
	for _, rec := range records {
		rows = append(rows, fmt.Sprintf("  %-18s %12s  %s",
			rec.Period, rec.CapacityUsed, rec.PercentUsed))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m *Model) renderFooter() string {
	status := ""
	if m.loading {
		status = m.spin.ViewWithLabel() + "  "
	} else if !m.lastRefresh.IsZero() {
		status = styles.HelpStyle.Render(
			fmt.Sprintf("Updated %s  ", m.lastRefresh.Format("15:04:05")))
	}

	help := styles.HelpStyle.Render("r refresh • g granularity • q quit")
	return status + help
}
