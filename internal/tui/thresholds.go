package tui

import "github.com/charmbracelet/lipgloss"

// severity represents how far a catalog falls short of a requirement.
type severity int

const (
	severityNormal   severity = iota
	severityWarning           // yellow
	severityCritical          // red
)

// mediaSeverity grades the best available media volume as a percentage of
// the recommended media volume. 100% or more is normal; 50% (the adequate
// threshold) or more is a warning; anything less is critical.
func mediaSeverity(pct float64) severity {
	switch {
	case pct >= 100:
		return severityNormal
	case pct >= 50:
		return severityWarning
	default:
		return severityCritical
	}
}

// flowSeverity grades the best available flow as a percentage of the
// minimum flow. Below 100% no single unit qualifies.
func flowSeverity(pct float64) severity {
	if pct >= 100 {
		return severityNormal
	}
	return severityCritical
}

// severityFg returns the card foreground color for a severity.
func severityFg(s severity) lipgloss.Color {
	switch s {
	case severityWarning:
		return colorYellow
	case severityCritical:
		return colorRed
	default:
		return colorGreen
	}
}
