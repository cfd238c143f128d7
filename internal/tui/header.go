package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top header bar with the app name, catalog status
// and load time.
//
// Layout:
//
//	left:   "filtro" and the configured source names
//	center: "● LOADING", "● N filters" or "● CATALOG ERROR  <error>"
//	right:  "Loaded: HH:MM:SS" (or "Press ctrl+r to retry" after an error)
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	left := "filtro"
	if names := app.sourceNames(); len(names) > 0 {
		left += "  " + StyleDim.Render(truncateName(strings.Join(names, ", "), width/3))
	}

	var center, right string
	switch {
	case app.fetching:
		center = StyleYellow.Render("● LOADING CATALOG")
	case app.lastError != nil:
		errMsg := app.lastError.Error()
		if len(errMsg) > 40 {
			errMsg = errMsg[:40] + "..."
		}
		center = StyleError.Render("● CATALOG ERROR  " + sanitize(errMsg))
		right = StyleError.Render("Press ctrl+r to retry")
	case app.catalog != nil:
		n := len(app.catalog.Filters)
		status := fmt.Sprintf("● %d filters", n)
		if rejected := len(app.catalog.Issues); rejected > 0 {
			status += fmt.Sprintf("  (%d rejected)", rejected)
		}
		center = StyleGreen.Render(status)
		right = StyleDim.Render("Loaded: " + app.catalog.FetchedAt.Format("15:04:05"))
	}

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// sourceNames returns the configured source names, sorted for stable display.
func (app *App) sourceNames() []string {
	names := make([]string, 0, len(app.sources))
	for _, s := range app.sources {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	return names
}
