package format

import (
	"math"
	"strconv"
	"strings"
)

// FormatFlow formats a flow rate in litres/hour with comma-separated
// thousands and at most one decimal place.
// Example: 1200 → "1,200 L/h", 437.5 → "437.5 L/h".
// Negative or non-finite values return "---".
func FormatFlow(lph float64) string {
	if !displayable(lph) {
		return "---"
	}
	return formatCommaFloat(lph, 1) + " L/h"
}

// FormatLiters formats a volume in litres with at most two decimal places.
// Example: 6.5 → "6.5 L", 1597.5 → "1,597.5 L", 7.126 → "7.13 L".
// Negative or non-finite values return "---".
func FormatLiters(l float64) string {
	if !displayable(l) {
		return "---"
	}
	return formatCommaFloat(l, 2) + " L"
}

// FormatNumber formats an integer with locale-style comma separators.
// Example: 12345678 → "12,345,678".
// Uses strconv.FormatInt directly to avoid abs64 overflow for math.MinInt64.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		return "-" + insertCommas(s[1:])
	}
	return insertCommas(s)
}

// FormatPercent formats a fraction-of-volume percentage without trailing zeros.
// Example: 2.5 → "2.5%", 5 → "5%".
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

func displayable(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// formatCommaFloat formats a float with comma-separated thousands, rounding
// to maxDecimals and dropping trailing zeros.
func formatCommaFloat(f float64, maxDecimals int) string {
	formatted := strconv.FormatFloat(f, 'f', maxDecimals, 64)
	sign := ""
	if len(formatted) > 0 && formatted[0] == '-' {
		sign = "-"
		formatted = formatted[1:]
	}
	parts := strings.SplitN(formatted, ".", 2)
	intPart := insertCommas(parts[0])
	if len(parts) == 2 {
		if frac := strings.TrimRight(parts[1], "0"); frac != "" {
			return sign + intPart + "." + frac
		}
	}
	return sign + intPart
}

// insertCommas inserts comma separators into a digit string every 3 digits from the right.
func insertCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var buf strings.Builder
	lead := n % 3
	if lead > 0 {
		buf.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}
