package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dm/filtro-go/internal/model"
)

var (
	ErrModeUnselected   = errors.New("choose dimensions or direct volume")
	ErrInvalidDimension = errors.New("dimension must be a positive number")
	ErrInvalidVolume    = errors.New("volume must be a positive number")
	ErrNotNumeric       = errors.New("not a number")
)

// VolumeFromDimensions converts inner tank dimensions in centimetres to litres.
func VolumeFromDimensions(d model.Dimensions) float64 {
	return (d.Length * d.Width * d.Height) / 1000
}

// ResolveVolume validates a form input and returns the tank volume in litres.
// The classifier is only invoked with volumes returned from here.
func ResolveVolume(in model.VolumeInput) (float64, error) {
	switch in.Mode {
	case model.ModeByDimensions:
		dims := []struct {
			name string
			v    float64
		}{
			{"length", in.Dimensions.Length},
			{"width", in.Dimensions.Width},
			{"height", in.Dimensions.Height},
		}
		for _, d := range dims {
			if !positiveFinite(d.v) {
				return 0, fmt.Errorf("%s: %w", d.name, ErrInvalidDimension)
			}
		}
		return VolumeFromDimensions(in.Dimensions), nil
	case model.ModeByVolume:
		if !positiveFinite(in.Liters) {
			return 0, ErrInvalidVolume
		}
		return in.Liters, nil
	default:
		return 0, ErrModeUnselected
	}
}

// ParseNumber parses a number typed into the form. Surrounding spaces are
// ignored and a single comma is accepted as the decimal separator.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNotNumeric
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrNotNumeric)
	}
	return v, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
