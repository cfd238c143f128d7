package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/filtro-go/internal/model"
)

// Color constants for the filtro palette.
var (
	colorGreen      = lipgloss.Color("#10b981")
	colorYellow     = lipgloss.Color("#f59e0b")
	colorRed        = lipgloss.Color("#ef4444")
	colorGray       = lipgloss.Color("#6b7280")
	colorBlue       = lipgloss.Color("#3b82f6")
	colorCyan       = lipgloss.Color("#06b6d4")
	colorPurple     = lipgloss.Color("#8b5cf6")
	colorTeal       = lipgloss.Color("#14b8a6")
	colorWhite      = lipgloss.Color("#f8fafc")
	colorDark       = lipgloss.Color("#1e293b")
	colorAlt        = lipgloss.Color("#0f172a")
	colorSelectedBg = lipgloss.Color("#334155")
)

// Tier styles, bold foreground, used for table titles and counts.
var (
	StyleTierRecommended = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	StyleTierAdequate    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	StyleTierNotAdequate = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// StyleHeader is the full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleSummaryCard is a card in the classification summary row.
var StyleSummaryCard = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Padding(0, 1).
	Margin(0).
	Align(lipgloss.Center)

// Form styles.
var (
	StyleFormPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	StyleFormPanelFocused = StyleFormPanel.
				BorderForeground(colorTeal)

	StyleFormLabel  = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	StyleFormActive = lipgloss.NewStyle().Foreground(colorTeal).Bold(true)
)

// Utility styles.
var (
	StyleError = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
	StyleTip   = lipgloss.NewStyle().Foreground(colorCyan).Italic(true)
)

// Named color styles for table cell coloring.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	StyleBlue   = lipgloss.NewStyle().Foreground(colorBlue)
	StyleCyan   = lipgloss.NewStyle().Foreground(colorCyan)
	StylePurple = lipgloss.NewStyle().Foreground(colorPurple)
	StyleRed    = lipgloss.NewStyle().Foreground(colorRed)
)

// TierStyle returns the title style for a tier.
func TierStyle(t model.Tier) lipgloss.Style {
	switch t {
	case model.TierRecommended:
		return StyleTierRecommended
	case model.TierAdequate:
		return StyleTierAdequate
	default:
		return StyleTierNotAdequate
	}
}
