package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/marketglass/chartcore/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef5350"))

	// SelectedTimeframeStyle highlights the active entry in the strip.
	SelectedTimeframeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f0b90b"))
)

// FormatTimeframeStrip renders the timeframe control strip with the active
// timeframe highlighted.
func FormatTimeframeStrip(active types.Timeframe) string {
	strip := ""

	for i, tf := range types.Timeframes() {
		label := fmt.Sprintf("%d:%s", i+1, tf)

		if tf == active {
			label = SelectedTimeframeStyle.Render(label)
		} else {
			label = HelpStyle.Render(label)
		}

		if i > 0 {
			strip += "  "
		}

		strip += label
	}

	return strip
}

// FormatClick renders a click event for the status line.
func FormatClick(e types.ClickEvent) string {
	return fmt.Sprintf("click %s @ %.2f", e.Time.Format("2006-01-02 15:04"), e.Price)
}

// FormatDrawing renders a completed drawing for the status line.
func FormatDrawing(e types.DrawingEvent) string {
	return fmt.Sprintf("drew %s (%.0f,%.0f)→(%.0f,%.0f)",
		e.Drawing.Tool, e.Drawing.Start.X, e.Drawing.Start.Y, e.Drawing.End.X, e.Drawing.End.Y)
}
