package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/filtro-go/internal/engine"
	"github.com/dm/filtro-go/internal/format"
	"github.com/dm/filtro-go/internal/model"
)

// renderSummary renders the classification summary bar.
// Wide terminals (>= 80 cols): all 6 cards in a single horizontal row.
// Narrow terminals (< 80 cols): cards stacked in rows of 2.
// Returns empty string until a volume has been classified.
func renderSummary(app *App) string {
	if !app.classified {
		return ""
	}

	width := app.width
	if width <= 0 {
		width = 80
	}

	narrowMode := width < 80

	var cardWidth int
	if narrowMode {
		cardWidth = (width - 4) / 2
		if cardWidth < 10 {
			cardWidth = 10
		}
	} else {
		cardWidth = (width - 12) / 6
		if cardWidth < 8 {
			cardWidth = 8
		}
	}

	barWidth := cardWidth - 4
	if barWidth < 4 {
		barWidth = 4
	}

	v := app.volume
	filters := app.catalogFilters()
	res := app.result

	// Card 1: tank volume.
	card1 := StyleSummaryCard.
		Foreground(colorTeal).
		Bold(true).
		Width(cardWidth).
		Render(format.FormatLiters(v) + "\nTank")

	// Card 2: minimum flow with best-flow coverage bar.
	flowPct := bestFlowPercent(v, filters)
	flowSev := flowSeverity(flowPct)
	card2 := StyleSummaryCard.
		Foreground(severityFg(flowSev)).
		Width(cardWidth).
		Render(format.FormatFlow(engine.MinFlowRate(v)) + "\n" +
			renderMiniBar(flowPct, barWidth) + "\nMin flow")

	// Card 3: media thresholds with best-media coverage bar.
	mediaPct := bestMediaPercent(v, filters)
	mediaSev := mediaSeverity(mediaPct)
	card3 := StyleSummaryCard.
		Foreground(severityFg(mediaSev)).
		Width(cardWidth).
		Render(format.FormatLiters(engine.MinMediaVolume(v)) + " / " +
			format.FormatLiters(engine.RecommendedMediaVolume(v)) + "\n" +
			renderMiniBar(mediaPct, barWidth) + "\nMedia " +
			format.FormatPercent(2.5) + " / " + format.FormatPercent(5))

	// Card 4: combination threshold and whether pairs were evaluated.
	threshold := engine.CombinationThreshold(filters)
	comboState := StyleDim.Render("off")
	if len(filters) > 0 && v > threshold {
		comboState = StyleCyan.Render("active")
	}
	card4 := StyleSummaryCard.
		Width(cardWidth).
		Render(comboState + "\n> " + format.FormatLiters(threshold) + "\nPairs (x2)")

	// Card 5: tier counts.
	counts := StyleTierRecommended.Render(fmt.Sprintf("%d", len(res.Recommended))) + " / " +
		StyleTierAdequate.Render(fmt.Sprintf("%d", len(res.Adequate))) + " / " +
		StyleTierNotAdequate.Render(fmt.Sprintf("%d", len(res.NotAdequate)))
	card5 := StyleSummaryCard.
		Width(cardWidth).
		Render(counts + "\n" + fmt.Sprintf("+%d pairs", res.CombinationCount()) + "\nRec / Adq / No")

	// Card 6: catalog flow profile.
	flows := make([]float64, len(filters))
	for i, f := range filters {
		flows[i] = f.Caudal
	}
	card6 := StyleSummaryCard.
		Width(cardWidth).
		Render(RenderSparkline(flowProfile(flows), barWidth, colorBlue) + "\n" +
			format.FormatNumber(int64(len(filters))) + " filters\nCatalog flow")

	if narrowMode {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, card1, card2)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, card3, card4)
		row3 := lipgloss.JoinHorizontal(lipgloss.Top, card5, card6)
		return lipgloss.JoinVertical(lipgloss.Left, row1, row2, row3)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, card1, card2, card3, card4, card5, card6)
}

// bestFlowPercent returns the highest single-unit flow in the catalog as a
// percentage of the minimum flow for volume.
func bestFlowPercent(volume float64, filters []model.FilterRecord) float64 {
	minFlow := engine.MinFlowRate(volume)
	if minFlow <= 0 || len(filters) == 0 {
		return 0
	}
	var best float64
	for _, f := range filters {
		best = max(best, f.Caudal)
	}
	return best / minFlow * 100
}

// bestMediaPercent returns the largest media volume among filters that meet
// the minimum flow, as a percentage of the recommended media volume.
// Returns 0 when no filter has enough flow.
func bestMediaPercent(volume float64, filters []model.FilterRecord) float64 {
	target := engine.RecommendedMediaVolume(volume)
	if target <= 0 {
		return 0
	}
	minFlow := engine.MinFlowRate(volume)
	var best float64
	for _, f := range filters {
		if f.Caudal >= minFlow {
			best = max(best, f.VolumenVasoFiltro)
		}
	}
	return best / target * 100
}

// renderMiniBar renders a mini progress bar using Unicode block characters.
// Fills proportionally using "█" (U+2588) for filled and "░" (U+2591) for empty cells.
func renderMiniBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
