package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/dm/filtro-go/internal/client"
	"github.com/dm/filtro-go/internal/model"
)

// stripANSI removes terminal escape sequences so rendered output can be
// asserted on as plain text.
func stripANSI(s string) string {
	return ansi.Strip(s)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// rec builds a catalog record for TUI tests.
func rec(id, marca, modelo string, caudal, media float64) model.FilterRecord {
	return model.FilterRecord{
		ID:                id,
		Marca:             marca,
		Modelo:            modelo,
		Caudal:            caudal,
		VolumenVasoFiltro: media,
	}
}

// fixtureCatalog returns a catalog that, for a 100 L tank, has one filter
// in each single-unit tier and no combinations.
func fixtureCatalog() *model.Catalog {
	return &model.Catalog{
		Filters: []model.FilterRecord{
			rec("1", "Eheim", "Classic 250", 1200, 6),
			rec("2", "Oase", "BioMaster 250", 1000, 3),
			rec("3", "JBL", "CristalProfi e402", 400, 10),
		},
		Issues:       []model.RowIssue{},
		SourceCounts: map[string]int{"fake": 3},
	}
}

// fakeSource implements client.CatalogSource for testing.
type fakeSource struct {
	name string
	rows []client.FilterRow
	err  error
}

func (f *fakeSource) GetFilters(ctx context.Context) ([]client.FilterRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeSource) Ping(ctx context.Context) error { return f.err }

func (f *fakeSource) Name() string { return f.name }
