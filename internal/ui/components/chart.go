// Package components provides reusable UI components for the watch TUI.
package components

import (
	"github.com/guptarohit/asciigraph"

	"github.com/Joe-Costa/qumulo-usage-report/internal/ui/styles"
)

// RenderCapacityChart creates an ASCII line chart of capacity over time.
func RenderCapacityChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderSparkline creates a compact inline sparkline for a value series.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values down to the available width.
	sampled := values
	if width > 0 && len(values) > width {
		sampled = make([]float64, width)
		for i := range sampled {
			sampled[i] = values[i*len(values)/width]
		}
	}

	out := make([]rune, 0, len(sampled))
	for _, v := range sampled {
		idx := int((v / maxVal) * float64(len(sparkChars)-1))
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		out = append(out, sparkChars[idx])
	}

	return string(out)
}
