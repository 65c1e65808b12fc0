package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	resultColorGreen  = lipgloss.Color("#22c55e")
	resultColorYellow = lipgloss.Color("#eab308")
	resultColorDim    = lipgloss.Color("#6b7280")
	resultColorWhite  = lipgloss.Color("#f9fafb")
)

var (
	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(resultColorWhite)

	resultDimStyle = lipgloss.NewStyle().
			Foreground(resultColorDim)

	resultGreenStyle = lipgloss.NewStyle().
				Foreground(resultColorGreen)

	resultYellowStyle = lipgloss.NewStyle().
				Foreground(resultColorYellow)
)

// renderSummary produces a short styled summary of a reconciliation result.
func renderSummary(result *summaryData) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(resultTitleStyle.Render(fmt.Sprintf("  tgwsync: %s", result.Title)))
	b.WriteString("\n")
	b.WriteString(resultDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	if result.Changed {
		b.WriteString(resultYellowStyle.Render("  changed"))
	} else {
		b.WriteString(resultGreenStyle.Render("  in sync, nothing to do"))
	}
	b.WriteString("\n")

	for _, line := range result.Lines {
		b.WriteString(resultDimStyle.Render("  " + line))
		b.WriteString("\n")
	}

	return b.String()
}

// summaryData is the renderer's input, decoupled from the reconcile types.
type summaryData struct {
	Title   string
	Changed bool
	Lines   []string
}
