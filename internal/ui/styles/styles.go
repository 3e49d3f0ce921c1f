// Package styles defines the visual styling for the watch TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the watch theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("39")  // Blue
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow

	// Background colors
	BgLight = lipgloss.Color("237")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// HelpStyle is used for key hints and secondary notices.
var HelpStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Secondary).
	Padding(0, 1)

// CardTitleStyle is used for section headings inside cards.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary)

// ErrorTextStyle renders error text.
var ErrorTextStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Error)

// GetUsageStyle returns the style for a percent-used figure: high usage
// is the dangerous direction for storage capacity.
func GetUsageStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 90:
		return lipgloss.NewStyle().Bold(true).Foreground(Error)
	case percent >= 70:
		return lipgloss.NewStyle().Foreground(Warning)
	default:
		return lipgloss.NewStyle().Foreground(Success)
	}
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
