package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/filtro-go/internal/engine"
	"github.com/dm/filtro-go/internal/format"
	"github.com/dm/filtro-go/internal/model"
)

// formField identifies a row of the volume form.
type formField int

const (
	fieldMode formField = iota
	fieldLength
	fieldWidth
	fieldHeight
	fieldLiters
)

var fieldLabels = map[formField]string{
	fieldMode:   "Input",
	fieldLength: "Length (cm)",
	fieldWidth:  "Width (cm)",
	fieldHeight: "Height (cm)",
	fieldLiters: "Volume (L)",
}

// modeOrder is the cycle the mode selector steps through. Unselected is
// only the starting state and is skipped once a mode has been picked.
var modeOrder = []model.InputMode{model.ModeByDimensions, model.ModeByVolume}

// formModel collects the aquarium volume, either from three inner
// dimensions or directly in litres.
type formModel struct {
	mode    model.InputMode
	inputs  map[formField]*textinput.Model
	active  formField
	err     error
	focused bool
}

func newFormModel() formModel {
	f := formModel{
		mode:   model.ModeUnselected,
		inputs: make(map[formField]*textinput.Model, 4),
		active: fieldMode,
	}
	for _, fld := range []formField{fieldLength, fieldWidth, fieldHeight, fieldLiters} {
		ti := textinput.New()
		ti.Placeholder = "0"
		ti.CharLimit = 12
		ti.Width = 12
		ti.Prompt = ""
		f.inputs[fld] = &ti
	}
	return f
}

// fields returns the rows visible for the current mode, in display order.
func (f formModel) fields() []formField {
	switch f.mode {
	case model.ModeByDimensions:
		return []formField{fieldMode, fieldLength, fieldWidth, fieldHeight}
	case model.ModeByVolume:
		return []formField{fieldMode, fieldLiters}
	default:
		return []formField{fieldMode}
	}
}

// Focus gives the form keyboard focus.
func (f *formModel) Focus() tea.Cmd {
	f.focused = true
	return f.syncFocus()
}

// Blur removes keyboard focus from the form.
func (f *formModel) Blur() {
	f.focused = false
	f.syncFocus()
}

// syncFocus focuses the active text input and blurs the rest.
func (f *formModel) syncFocus() tea.Cmd {
	var cmd tea.Cmd
	for fld, in := range f.inputs {
		if f.focused && fld == f.active {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// Update handles keys while the form has focus. Enter is handled by the App.
func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if !f.focused {
		return f, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch {
	case key.Matches(km, keys.Up):
		f.move(-1)
		return f, f.syncFocus()
	case key.Matches(km, keys.Down):
		f.move(1)
		return f, f.syncFocus()
	}

	if f.active == fieldMode {
		switch {
		case key.Matches(km, keys.PrevPage):
			f.cycleMode(-1)
		case key.Matches(km, keys.NextPage):
			f.cycleMode(1)
		case km.String() == "d":
			f.setMode(model.ModeByDimensions)
		case km.String() == "v":
			f.setMode(model.ModeByVolume)
		}
		return f, nil
	}

	in := f.inputs[f.active]
	updated, cmd := in.Update(msg)
	*in = updated
	f.err = nil
	return f, cmd
}

// move steps the active row by delta within the visible fields.
func (f *formModel) move(delta int) {
	flds := f.fields()
	idx := 0
	for i, fld := range flds {
		if fld == f.active {
			idx = i
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(flds) {
		idx = len(flds) - 1
	}
	f.active = flds[idx]
}

func (f *formModel) cycleMode(delta int) {
	idx := -1
	for i, m := range modeOrder {
		if m == f.mode {
			idx = i
		}
	}
	if idx < 0 && delta < 0 {
		idx = 0
	}
	n := len(modeOrder)
	f.setMode(modeOrder[((idx+delta)%n+n)%n])
}

func (f *formModel) setMode(m model.InputMode) {
	if f.mode == m {
		return
	}
	f.mode = m
	f.err = nil
}

// Input parses the visible fields into a VolumeInput. Fields of the other
// mode are ignored.
func (f formModel) Input() (model.VolumeInput, error) {
	in := model.VolumeInput{Mode: f.mode}
	parse := func(fld formField) (float64, error) {
		v, err := engine.ParseNumber(f.inputs[fld].Value())
		if err != nil {
			return 0, fmt.Errorf("%s: %w", strings.ToLower(fieldLabels[fld]), err)
		}
		return v, nil
	}

	var err error
	switch f.mode {
	case model.ModeByDimensions:
		if in.Dimensions.Length, err = parse(fieldLength); err != nil {
			return in, err
		}
		if in.Dimensions.Width, err = parse(fieldWidth); err != nil {
			return in, err
		}
		if in.Dimensions.Height, err = parse(fieldHeight); err != nil {
			return in, err
		}
	case model.ModeByVolume:
		if in.Liters, err = parse(fieldLiters); err != nil {
			return in, err
		}
	}
	return in, nil
}

// Resolve parses and validates the form, returning the tank volume in litres.
func (f formModel) Resolve() (float64, error) {
	in, err := f.Input()
	if err != nil {
		return 0, err
	}
	return engine.ResolveVolume(in)
}

// LiveVolume returns the volume the current input resolves to, if any.
func (f formModel) LiveVolume() (float64, bool) {
	v, err := f.Resolve()
	return v, err == nil
}

// SetError records a validation error to show under the form.
func (f *formModel) SetError(err error) {
	f.err = err
}

// View renders the form panel.
func (f formModel) View(width int) string {
	var lines []string
	for _, fld := range f.fields() {
		label := StyleFormLabel.Render(fieldLabels[fld])
		if f.focused && fld == f.active {
			label = StyleFormActive.Width(16).Render("› " + fieldLabels[fld])
		}
		var value string
		if fld == fieldMode {
			value = f.renderModeSelector()
		} else {
			value = f.inputs[fld].View()
		}
		lines = append(lines, label+value)
	}

	switch {
	case f.err != nil:
		lines = append(lines, StyleError.Render(f.err.Error()))
	case f.mode == model.ModeUnselected:
		lines = append(lines, StyleDim.Render("Choose how to enter the tank size: ←/→ or d/v"))
	default:
		if v, ok := f.LiveVolume(); ok {
			lines = append(lines, StyleGreen.Render("Volume: "+format.FormatLiters(v))+
				StyleDim.Render("  enter: get recommendations"))
		} else {
			lines = append(lines, StyleDim.Render("Volume: ---"))
		}
	}

	style := StyleFormPanel
	if f.focused {
		style = StyleFormPanelFocused
	}
	if width > 2 {
		style = style.Width(width - 2)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (f formModel) renderModeSelector() string {
	opts := []model.InputMode{model.ModeByDimensions, model.ModeByVolume}
	parts := make([]string, len(opts))
	for i, m := range opts {
		if m == f.mode {
			parts[i] = StyleFormActive.Render("(•) " + m.String())
		} else {
			parts[i] = StyleDim.Render("( ) " + m.String())
		}
	}
	return strings.Join(parts, "   ")
}
