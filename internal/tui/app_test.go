package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dm/filtro-go/internal/client"
	"github.com/dm/filtro-go/internal/config"
	"github.com/dm/filtro-go/internal/engine"
	"github.com/dm/filtro-go/internal/model"
	"github.com/dm/filtro-go/internal/tips"
)

func newTestApp() *App {
	return NewApp([]client.CatalogSource{&fakeSource{name: "fake"}}, config.UIConfig{}, nil)
}

// update sends msg to app and returns the updated app and command.
func update(t *testing.T, app *App, msg tea.Msg) (*App, tea.Cmd) {
	t.Helper()
	m, cmd := app.Update(msg)
	updated, ok := m.(*App)
	require.True(t, ok)
	return updated, cmd
}

// enterVolume drives the form to direct-volume mode, types liters and submits.
func enterVolume(t *testing.T, app *App, liters string) *App {
	t.Helper()
	app, _ = update(t, app, keyRunes("v"))
	app, _ = update(t, app, keyType(tea.KeyDown))
	app, _ = update(t, app, keyRunes(liters))
	app, _ = update(t, app, keyType(tea.KeyEnter))
	return app
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewApp_Defaults(t *testing.T) {
	app := newTestApp()

	assert.True(t, app.fetching, "Init always starts a fetch")
	assert.Equal(t, focusForm, app.focus)
	assert.True(t, app.form.focused)
	assert.Equal(t, model.ModeUnselected, app.form.mode)
	assert.Len(t, app.tables, 5)
	assert.Equal(t, 15*time.Second, app.fetchTimeout)
	assert.False(t, app.classified)
	assert.True(t, app.result.IsEmpty())
	assert.NotNil(t, app.Init())
}

func TestApp_CatalogMsgStoresCatalog(t *testing.T) {
	app := newTestApp()
	app.lastError = errors.New("old")
	cat := fixtureCatalog()

	app, cmd := update(t, app, CatalogMsg{Catalog: cat})

	assert.False(t, app.fetching)
	assert.Equal(t, cat, app.catalog)
	assert.Nil(t, app.lastError)
	assert.Nil(t, cmd, "no automatic follow-up fetch")
}

func TestApp_LogsCatalogAndRejectedRows(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := NewApp([]client.CatalogSource{&fakeSource{name: "fake"}}, config.UIConfig{}, zap.New(core))

	cat := fixtureCatalog()
	cat.Issues = []model.RowIssue{{Source: "fake", ID: "9", Reason: "missing caudal"}}
	app, _ = update(t, app, CatalogMsg{Catalog: cat})
	enterVolume(t, app, "100")

	loaded := logs.FilterMessage("catalog loaded").All()
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(3), loaded[0].ContextMap()["rows"])

	rejected := logs.FilterMessage("catalog row rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, "missing caudal", rejected[0].ContextMap()["reason"])

	assert.Equal(t, 1, logs.FilterMessage("classified").Len())
}

func TestApp_FetchErrorClearsCatalog(t *testing.T) {
	app := newTestApp()
	app, _ = update(t, app, CatalogMsg{Catalog: fixtureCatalog()})
	app = enterVolume(t, app, "100")
	require.False(t, app.result.IsEmpty())

	fetchErr := errors.New("connection refused")
	app, cmd := update(t, app, FetchErrorMsg{Err: fetchErr})

	assert.False(t, app.fetching)
	assert.Equal(t, fetchErr, app.lastError)
	assert.Nil(t, app.catalog)
	assert.True(t, app.result.IsEmpty(), "failed load classifies as empty")
	assert.Nil(t, cmd, "no automatic retry")
}

func TestApp_SubmitClassifies(t *testing.T) {
	app := newTestApp()
	app, _ = update(t, app, CatalogMsg{Catalog: fixtureCatalog()})

	app = enterVolume(t, app, "100")

	require.True(t, app.classified)
	assert.Equal(t, 100.0, app.volume)
	require.Len(t, app.result.Recommended, 1)
	assert.Equal(t, "1", app.result.Recommended[0].ID)
	require.Len(t, app.result.Adequate, 1)
	assert.Equal(t, "2", app.result.Adequate[0].ID)
	require.Len(t, app.result.NotAdequate, 1)
	assert.Equal(t, "3", app.result.NotAdequate[0].ID)
	assert.Zero(t, app.result.CombinationCount())

	assert.Equal(t, app.result.Recommended, app.tables[focusRecommended-1].Rows())
	assert.Equal(t, app.result.NotAdequate, app.tables[focusNotAdequate-1].Rows())
}

func TestApp_SubmitWithoutModeShowsError(t *testing.T) {
	app := newTestApp()
	app, _ = update(t, app, CatalogMsg{Catalog: fixtureCatalog()})

	app, _ = update(t, app, keyType(tea.KeyEnter))

	assert.False(t, app.classified)
	assert.True(t, errors.Is(app.form.err, engine.ErrModeUnselected))
}

func TestApp_SubmitInvalidVolumeDoesNotClassify(t *testing.T) {
	app := newTestApp()
	app, _ = update(t, app, CatalogMsg{Catalog: fixtureCatalog()})

	app = enterVolume(t, app, "0")

	assert.False(t, app.classified)
	assert.True(t, errors.Is(app.form.err, engine.ErrInvalidVolume))
}

func TestApp_CatalogReloadReclassifies(t *testing.T) {
	app := newTestApp()
	app = enterVolume(t, app, "300")
	require.True(t, app.classified)
	assert.True(t, app.result.IsEmpty(), "no catalog yet")

	cat := &model.Catalog{Filters: []model.FilterRecord{
		rec("1", "Sera", "X", 1600, 4),
		rec("2", "Sera", "X", 1600, 4),
	}}
	app, _ = update(t, app, CatalogMsg{Catalog: cat})

	assert.Len(t, app.result.NotAdequate, 2)
	require.Len(t, app.result.AdequateCombinations, 1)
	assert.Equal(t, "1-2-adequate", app.result.AdequateCombinations[0].ID)
	rows := app.tables[focusAdequatePairs-1].Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "X x2", rows[0].Modelo)
}

func TestApp_RefreshWhileFetchingIsNoop(t *testing.T) {
	app := newTestApp()
	require.True(t, app.fetching)

	_, cmd := update(t, app, keyType(tea.KeyCtrlR))
	assert.Nil(t, cmd)

	app, _ = update(t, app, CatalogMsg{Catalog: fixtureCatalog()})
	app, cmd = update(t, app, keyType(tea.KeyCtrlR))
	assert.NotNil(t, cmd)
	assert.True(t, app.fetching)
}

func TestApp_TabCyclesFocus(t *testing.T) {
	app := newTestApp()

	app, _ = update(t, app, keyType(tea.KeyTab))
	assert.Equal(t, focusRecommended, app.focus)
	assert.False(t, app.form.focused)
	assert.True(t, app.tables[0].focused)

	app, _ = update(t, app, keyType(tea.KeyShiftTab))
	assert.Equal(t, focusForm, app.focus)
	assert.True(t, app.form.focused)
	assert.False(t, app.tables[0].focused)

	app, _ = update(t, app, keyType(tea.KeyShiftTab))
	assert.Equal(t, focusAdequatePairs, app.focus)
}

func TestApp_QuitKeys(t *testing.T) {
	app := newTestApp()

	_, cmd := update(t, app, keyRunes("q"))
	assert.False(t, isQuit(cmd), "q is ignored while the form has focus")

	_, cmd = update(t, app, keyType(tea.KeyCtrlC))
	assert.True(t, isQuit(cmd))

	app, _ = update(t, app, keyType(tea.KeyTab))
	_, cmd = update(t, app, keyRunes("q"))
	assert.True(t, isQuit(cmd))
}

func TestApp_TableKeysRouteToFocusedTable(t *testing.T) {
	app := newTestApp()
	app, _ = update(t, app, CatalogMsg{Catalog: fixtureCatalog()})
	app = enterVolume(t, app, "100")

	app, _ = update(t, app, keyType(tea.KeyTab))
	app, _ = update(t, app, keyRunes("3"))

	assert.Equal(t, 2, app.tables[0].sortCol)
	assert.True(t, app.tables[0].sortDesc)
	assert.Equal(t, -1, app.tables[1].sortCol, "other tables keep their own sort")
}

func TestApp_HelpToggle(t *testing.T) {
	app := newTestApp()
	app, _ = update(t, app, keyType(tea.KeyTab))

	app, _ = update(t, app, keyRunes("?"))
	assert.True(t, app.showHelp)
	app, _ = update(t, app, keyRunes("?"))
	assert.False(t, app.showHelp)
}

func TestApp_TipTickAdvances(t *testing.T) {
	app := newTestApp()
	start := app.tipIndex

	app, cmd := update(t, app, TipTickMsg(time.Now()))

	assert.Equal(t, start+1, app.tipIndex)
	assert.NotNil(t, cmd)
}

func TestApp_WindowSizeStored(t *testing.T) {
	app := newTestApp()

	app, cmd := update(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
	assert.Nil(t, cmd)
}

func TestApp_View(t *testing.T) {
	app := newTestApp()
	app, _ = update(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := stripANSI(app.View())
	assert.Contains(t, view, "filtro")
	assert.Contains(t, view, "LOADING")
	assert.Contains(t, view, "Dimensions")
	assert.Contains(t, view, tips.At(app.tipIndex))
	assert.NotContains(t, view, "Recommended (", "tables appear after classification")

	app, _ = update(t, app, CatalogMsg{Catalog: fixtureCatalog()})
	app = enterVolume(t, app, "100")
	view = stripANSI(app.View())
	assert.Contains(t, view, "3 filters")
	assert.Contains(t, view, "Recommended (1)")
	assert.Contains(t, view, "Adequate (1)")
	assert.Contains(t, view, "Not adequate (1)")
	assert.Contains(t, view, "Classic 250")
	assert.NotContains(t, view, "Recommended x2", "empty pair tables are hidden")
}

func TestFetchCmd(t *testing.T) {
	ok := &fakeSource{name: "fake", rows: []client.FilterRow{{
		ID: "1", Marca: "Eheim", Modelo: "Classic 250",
		Caudal: client.Float(440), VolumenVasoFiltro: client.Float(2.5),
	}}}
	msg := fetchCmd([]client.CatalogSource{ok}, time.Second)()
	cm, isCatalog := msg.(CatalogMsg)
	require.True(t, isCatalog, "got %T", msg)
	require.Len(t, cm.Catalog.Filters, 1)
	assert.Equal(t, "Eheim", cm.Catalog.Filters[0].Marca)

	bad := &fakeSource{name: "bad", err: errors.New("boom")}
	msg = fetchCmd([]client.CatalogSource{bad}, time.Second)()
	em, isErr := msg.(FetchErrorMsg)
	require.True(t, isErr, "got %T", msg)
	assert.Contains(t, em.Err.Error(), "boom")
}
