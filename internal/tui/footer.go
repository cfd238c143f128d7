package tui

import "github.com/dm/filtro-go/internal/tips"

// renderFooter renders the rotating tip and the key binding help at full
// terminal width. When app.showHelp is true, shows all key bindings;
// otherwise a brief hint.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	tip := StyleTip.Width(width).Render("Tip: " + tips.At(app.tipIndex))

	text := "? for help  tab: next panel  ctrl+c: quit"
	if app.showHelp {
		text = helpText
	}
	return tip + "\n" + StyleDim.Width(width).Render(text)
}
