package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dm/filtro-go/internal/client"
	"github.com/dm/filtro-go/internal/config"
	"github.com/dm/filtro-go/internal/engine"
	"github.com/dm/filtro-go/internal/model"
	"github.com/dm/filtro-go/internal/tips"
)

// Focus targets. focusForm is the volume form; the tables follow in tier order.
const (
	focusForm = iota
	focusRecommended
	focusAdequate
	focusNotAdequate
	focusRecommendedPairs
	focusAdequatePairs
	focusCount
)

// App is the root Bubble Tea model for filtro.
type App struct {
	sources      []client.CatalogSource
	log          *zap.Logger
	fetchTimeout time.Duration
	tipInterval  time.Duration

	// Catalog state
	fetching  bool // true while a fetchCmd goroutine is in-flight
	catalog   *model.Catalog
	lastError error

	// Classification state
	form       formModel
	classified bool
	volume     float64
	result     model.ClassificationResult
	tables     []FilterTableModel // indexed by focus - 1

	// Layout
	width, height int

	// UI state
	focus    int
	showHelp bool
	tipIndex int
}

// NewApp creates a new App reading the catalog from sources.
// A nil logger is replaced by a no-op logger.
func NewApp(sources []client.CatalogSource, ui config.UIConfig, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	defaults := config.DefaultConfig().UI
	if ui.FetchTimeout <= 0 {
		ui.FetchTimeout = defaults.FetchTimeout
	}
	if ui.TipInterval <= 0 {
		ui.TipInterval = defaults.TipInterval
	}
	if ui.PageSize <= 0 {
		ui.PageSize = defaults.PageSize
	}

	app := &App{
		sources:      sources,
		log:          log,
		fetchTimeout: ui.FetchTimeout,
		tipInterval:  ui.TipInterval,
		fetching:     true, // Init() always issues an immediate fetchCmd
		form:         newFormModel(),
		result:       model.NewClassificationResult(),
		tables: []FilterTableModel{
			NewFilterTable("Recommended", model.TierRecommended, false, ui.PageSize),
			NewFilterTable("Adequate", model.TierAdequate, false, ui.PageSize),
			NewFilterTable("Not adequate", model.TierNotAdequate, false, ui.PageSize),
			NewFilterTable("Recommended x2", model.TierRecommended, true, ui.PageSize),
			NewFilterTable("Adequate x2", model.TierAdequate, true, ui.PageSize),
		},
	}
	_, app.tipIndex = tips.Pick(nil)
	app.form.Focus()
	return app
}

// Init implements tea.Model. Starts the catalog load and the tip rotation.
func (app *App) Init() tea.Cmd {
	return tea.Batch(
		fetchCmd(app.sources, app.fetchTimeout),
		tipTickCmd(app.tipInterval),
	)
}

// Update implements tea.Model, the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height
		return app, nil

	case CatalogMsg:
		app.fetching = false
		app.catalog = msg.Catalog
		app.lastError = nil
		app.log.Info("catalog loaded",
			zap.Int("rows", len(msg.Catalog.Filters)),
			zap.Int("rejected", len(msg.Catalog.Issues)),
			zap.Any("sources", msg.Catalog.SourceCounts))
		for _, is := range msg.Catalog.Issues {
			app.log.Warn("catalog row rejected",
				zap.String("source", is.Source),
				zap.String("id", is.ID),
				zap.String("reason", is.Reason))
		}
		app.reclassify()
		return app, nil

	case FetchErrorMsg:
		app.fetching = false
		app.catalog = nil
		app.lastError = msg.Err
		app.log.Error("catalog load failed", zap.Error(msg.Err))
		app.reclassify()
		return app, nil

	case TipTickMsg:
		app.tipIndex++
		return app, tipTickCmd(app.tipInterval)

	case tea.KeyMsg:
		return app.handleKey(msg)
	}

	return app, nil
}

func (app *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys work everywhere, including while typing.
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return app, tea.Quit
	case key.Matches(msg, keys.ForceFetch):
		return app, app.refresh()
	case key.Matches(msg, keys.Tab):
		return app, app.setFocus((app.focus + 1) % focusCount)
	case key.Matches(msg, keys.ShiftTab):
		return app, app.setFocus((app.focus + focusCount - 1) % focusCount)
	}

	if app.focus == focusForm {
		if key.Matches(msg, keys.Submit) {
			app.submit()
			return app, nil
		}
		var cmd tea.Cmd
		app.form, cmd = app.form.Update(msg)
		return app, cmd
	}

	tbl := &app.tables[app.focus-1]
	if !tbl.searching {
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			return app, app.refresh()
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
			return app, nil
		}
	}
	var cmd tea.Cmd
	*tbl, cmd = tbl.Update(msg)
	return app, cmd
}

// setFocus moves keyboard focus to target and returns any command the newly
// focused component needs.
func (app *App) setFocus(target int) tea.Cmd {
	if app.focus == focusForm {
		app.form.Blur()
	} else {
		app.tables[app.focus-1].focused = false
	}
	app.focus = target
	if target == focusForm {
		return app.form.Focus()
	}
	app.tables[target-1].focused = true
	return nil
}

// refresh starts a catalog reload unless one is already in flight.
func (app *App) refresh() tea.Cmd {
	if app.fetching {
		return nil
	}
	app.fetching = true
	app.log.Debug("catalog reload requested")
	return fetchCmd(app.sources, app.fetchTimeout)
}

// submit validates the form and classifies the catalog for the entered volume.
func (app *App) submit() {
	v, err := app.form.Resolve()
	if err != nil {
		app.form.SetError(err)
		if !errors.Is(err, engine.ErrModeUnselected) {
			app.log.Debug("volume rejected", zap.Error(err))
		}
		return
	}
	app.volume = v
	app.classified = true
	app.reclassify()
}

// reclassify reruns the classifier for the current volume against the
// current catalog. A failed or missing catalog classifies as empty.
func (app *App) reclassify() {
	if !app.classified {
		return
	}
	app.result = engine.Classify(app.volume, app.catalogFilters())
	app.tables[focusRecommended-1].SetData(app.result.Recommended)
	app.tables[focusAdequate-1].SetData(app.result.Adequate)
	app.tables[focusNotAdequate-1].SetData(app.result.NotAdequate)
	app.tables[focusRecommendedPairs-1].SetData(combinedRecords(app.result.RecommendedCombinations))
	app.tables[focusAdequatePairs-1].SetData(combinedRecords(app.result.AdequateCombinations))

	app.log.Info("classified",
		zap.Float64("volume_l", app.volume),
		zap.Int("recommended", len(app.result.Recommended)),
		zap.Int("adequate", len(app.result.Adequate)),
		zap.Int("not_adequate", len(app.result.NotAdequate)),
		zap.Int("combinations", app.result.CombinationCount()))
}

// catalogFilters returns the loaded catalog rows, or nil when none is loaded.
func (app *App) catalogFilters() []model.FilterRecord {
	if app.catalog == nil {
		return nil
	}
	return app.catalog.Filters
}

func combinedRecords(pairs []model.CombinedFilter) []model.FilterRecord {
	out := make([]model.FilterRecord, len(pairs))
	for i, p := range pairs {
		out[i] = p.AsRecord()
	}
	return out
}

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	var parts []string

	parts = append(parts, renderHeader(app))
	parts = append(parts, app.form.View(app.width))
	if s := renderSummary(app); s != "" {
		parts = append(parts, s)
	}
	if app.classified {
		for i := range app.tables {
			if i+1 >= focusRecommendedPairs && app.result.CombinationCount() == 0 && app.focus != i+1 {
				continue
			}
			parts = append(parts, app.tables[i].renderTable(app.width))
		}
	}
	parts = append(parts, renderFooter(app))

	return strings.Join(parts, "\n")
}

// tipTickCmd schedules the next tip rotation after duration d.
func tipTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TipTickMsg(t)
	})
}

// fetchCmd is a Bubble Tea command that loads the catalog from every source
// and returns a CatalogMsg or FetchErrorMsg.
func fetchCmd(sources []client.CatalogSource, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cat, err := engine.FetchAll(ctx, sources...)
		if err != nil {
			return FetchErrorMsg{Err: err}
		}
		return CatalogMsg{Catalog: cat}
	}
}
