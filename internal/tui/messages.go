package tui

import (
	"time"

	"github.com/dm/filtro-go/internal/model"
)

// CatalogMsg delivers a successfully loaded catalog to the TUI.
type CatalogMsg struct {
	Catalog *model.Catalog
}

// FetchErrorMsg signals a catalog load failure.
type FetchErrorMsg struct{ Err error }

// TipTickMsg advances the footer tip.
type TipTickMsg time.Time
