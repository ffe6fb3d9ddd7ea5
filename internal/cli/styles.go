// Package cli provides styled terminal output for analysis results using
// lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marisol-health/frontdesk/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4ECDC4")
	// HighColor marks high urgency.
	HighColor = lipgloss.Color("#FF6B6B")
	// MediumColor marks medium urgency.
	MediumColor = lipgloss.Color("#FFE66D")
	// LowColor marks low urgency.
	LowColor = lipgloss.Color("#95E1D3")
	// SubtleColor marks less prominent elements.
	SubtleColor = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(12)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)
)

// urgencyStyle picks a color for the urgency tier.
func urgencyStyle(u model.Urgency) lipgloss.Style {
	switch u {
	case model.UrgencyHigh:
		return lipgloss.NewStyle().Bold(true).Foreground(HighColor)
	case model.UrgencyMedium:
		return lipgloss.NewStyle().Foreground(MediumColor)
	default:
		return lipgloss.NewStyle().Foreground(LowColor)
	}
}

// RenderAnalysis formats an analysis result for the terminal.
func RenderAnalysis(a model.Analysis) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Call Analysis"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Intent", string(a.Intent))
	row("Urgency", urgencyStyle(a.Urgency).Render(string(a.Urgency)))
	row("Confidence", fmt.Sprintf("%.2f", a.Confidence))
	row("Name", orUnknown(a.Name))
	row("DOB", orUnknown(a.DOB))
	row("Phone", orUnknown(a.Phone))
	if len(a.Speakers) > 0 {
		row("Speakers", strings.Join(a.Speakers, ", "))
	}
	row("Summary", a.Summary)

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return lipgloss.NewStyle().Foreground(SubtleColor).Render("(not mentioned)")
	}
	return *s
}
