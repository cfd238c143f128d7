package tui

import (
	"sort"
	"strings"

	"github.com/dm/filtro-go/internal/model"
)

// sortFilterRows returns a sorted copy of rows.
// Column mapping:
//
//	0=Marca, 1=Modelo, 2=Caudal, 3=VolumenVasoFiltro
//
// col -1 means no sort (preserve classification order).
// Ties are broken by Modelo, then ID, ascending regardless of direction.
func sortFilterRows(rows []model.FilterRecord, col int, desc bool) []model.FilterRecord {
	out := make([]model.FilterRecord, len(rows))
	copy(out, rows)

	if col < 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less bool
		switch col {
		case 0:
			am, bm := strings.ToLower(a.Marca), strings.ToLower(b.Marca)
			if am == bm {
				return tieBreak(a, b)
			}
			less = am < bm
		case 1:
			am, bm := strings.ToLower(a.Modelo), strings.ToLower(b.Modelo)
			if am == bm {
				return a.ID < b.ID
			}
			less = am < bm
		case 2:
			if a.Caudal == b.Caudal {
				return tieBreak(a, b)
			}
			less = a.Caudal < b.Caudal
		case 3:
			if a.VolumenVasoFiltro == b.VolumenVasoFiltro {
				return tieBreak(a, b)
			}
			less = a.VolumenVasoFiltro < b.VolumenVasoFiltro
		default:
			return tieBreak(a, b)
		}
		if desc {
			return !less
		}
		return less
	})
	return out
}

func tieBreak(a, b model.FilterRecord) bool {
	am, bm := strings.ToLower(a.Modelo), strings.ToLower(b.Modelo)
	if am != bm {
		return am < bm
	}
	return a.ID < b.ID
}

// filterFilterRows returns rows whose Marca or Modelo contains search
// (case-insensitive). Returns all rows when search is empty.
func filterFilterRows(rows []model.FilterRecord, search string) []model.FilterRecord {
	if search == "" {
		return rows
	}
	lower := strings.ToLower(search)
	out := rows[:0:0]
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Marca), lower) ||
			strings.Contains(strings.ToLower(r.Modelo), lower) {
			out = append(out, r)
		}
	}
	return out
}
