package engine

import (
	"math"
	"strings"

	"github.com/dm/filtro-go/internal/client"
	"github.com/dm/filtro-go/internal/model"
)

// BuildCatalog converts wire rows from one source into catalog records,
// preserving source order. Rows that cannot be classified are returned as
// issues instead of records. Both return values are non-nil.
func BuildCatalog(source string, rows []client.FilterRow) ([]model.FilterRecord, []model.RowIssue) {
	records := make([]model.FilterRecord, 0, len(rows))
	issues := []model.RowIssue{}

	for _, r := range rows {
		id := strings.TrimSpace(string(r.ID))
		if reason := rejectReason(id, r); reason != "" {
			issues = append(issues, model.RowIssue{Source: source, ID: id, Reason: reason})
			continue
		}
		records = append(records, model.FilterRecord{
			ID:                id,
			Marca:             strings.TrimSpace(r.Marca),
			Modelo:            strings.TrimSpace(r.Modelo),
			Caudal:            *r.Caudal,
			VolumenVasoFiltro: *r.VolumenVasoFiltro,
		})
	}
	return records, issues
}

func rejectReason(id string, r client.FilterRow) string {
	switch {
	case id == "":
		return "missing id"
	case r.Caudal == nil:
		return "missing caudal"
	case !nonNegativeFinite(*r.Caudal):
		return "caudal must be a non-negative number"
	case r.VolumenVasoFiltro == nil:
		return "missing volumen_vaso_filtro"
	case !nonNegativeFinite(*r.VolumenVasoFiltro):
		return "volumen_vaso_filtro must be a non-negative number"
	}
	return ""
}

func nonNegativeFinite(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
