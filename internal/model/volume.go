package model

// InputMode selects how the aquarium volume is entered.
type InputMode int

const (
	ModeUnselected InputMode = iota
	ModeByDimensions
	ModeByVolume
)

// String returns a display label for the mode.
func (m InputMode) String() string {
	switch m {
	case ModeByDimensions:
		return "Dimensions"
	case ModeByVolume:
		return "Direct volume"
	default:
		return "Unselected"
	}
}

// Dimensions are the inner tank measures in centimetres.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// VolumeInput is what the form layer hands to volume resolution.
// Only the fields matching Mode are read.
type VolumeInput struct {
	Mode       InputMode
	Dimensions Dimensions
	Liters     float64
}
