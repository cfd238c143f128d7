package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks is the 8-level block character set for sparklines.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts a slice of float64 values into a block sparkline
// string of exactly `width` characters, colored with the given color.
//
// Rules:
//   - Empty values → return width spaces
//   - All zeros → return all '▁' (floor level)
//   - Values longer than width → resampled down to width points
//   - Fewer values than width → left-pad with spaces
func RenderSparkline(values []float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(values) > width {
		values = resample(values, width)
	}

	maxVal := slices.Max(values)
	style := lipgloss.NewStyle().Foreground(color)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(values)))
	for _, v := range values {
		var idx int
		if maxVal > 0 {
			idx = int(v / maxVal * 7)
		}
		idx = max(0, min(idx, 7))
		sb.WriteRune(sparkBlocks[idx])
	}
	return style.Render(sb.String())
}

// resample picks n evenly spaced points from values, always keeping the
// first and last.
func resample(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{values[len(values)-1]}
	}
	out := make([]float64, n)
	last := len(values) - 1
	for i := range out {
		out[i] = values[i*last/(n-1)]
	}
	return out
}

// flowProfile returns the catalog flow rates in ascending order, the input
// to the catalog flow sparkline.
func flowProfile(flows []float64) []float64 {
	out := slices.Clone(flows)
	slices.Sort(out)
	return out
}
