package model

import "time"

// Tier is the suitability class a filter (or a pair of filters) lands in.
type Tier int

const (
	TierRecommended Tier = iota
	TierAdequate
	TierNotAdequate
)

// String returns the tier name used in combined filter IDs and CLI output.
func (t Tier) String() string {
	switch t {
	case TierRecommended:
		return "recommended"
	case TierAdequate:
		return "adequate"
	case TierNotAdequate:
		return "not-adequate"
	default:
		return "unknown"
	}
}

// FilterRecord is a single filter product from the catalog.
// Caudal is the rated flow in litres/hour; VolumenVasoFiltro is the usable
// media volume in litres.
type FilterRecord struct {
	ID                string  `json:"id" yaml:"id"`
	Marca             string  `json:"marca" yaml:"marca"`
	Modelo            string  `json:"modelo" yaml:"modelo"`
	Caudal            float64 `json:"caudal" yaml:"caudal"`
	VolumenVasoFiltro float64 `json:"volumen_vaso_filtro" yaml:"volumen_vaso_filtro"`
}

// CombinedFilter is two units of the same model running together.
// It only exists as a classification output and is never written back.
type CombinedFilter struct {
	ID                string  `json:"id"`
	Marca             string  `json:"marca"`
	Modelo            string  `json:"modelo"`
	Caudal            float64 `json:"caudal"`
	VolumenVasoFiltro float64 `json:"volumen_vaso_filtro"`
}

// AsRecord returns the combination shaped as a FilterRecord so it can share
// tables and sort helpers with single units.
func (c CombinedFilter) AsRecord() FilterRecord {
	return FilterRecord{
		ID:                c.ID,
		Marca:             c.Marca,
		Modelo:            c.Modelo,
		Caudal:            c.Caudal,
		VolumenVasoFiltro: c.VolumenVasoFiltro,
	}
}

// ClassificationResult holds the five output tiers of a classification run.
// All slices are non-nil.
type ClassificationResult struct {
	Recommended             []FilterRecord   `json:"recommended"`
	Adequate                []FilterRecord   `json:"adequate"`
	NotAdequate             []FilterRecord   `json:"not_adequate"`
	RecommendedCombinations []CombinedFilter `json:"recommended_combinations"`
	AdequateCombinations    []CombinedFilter `json:"adequate_combinations"`
}

// NewClassificationResult returns a result with every tier empty but non-nil.
func NewClassificationResult() ClassificationResult {
	return ClassificationResult{
		Recommended:             []FilterRecord{},
		Adequate:                []FilterRecord{},
		NotAdequate:             []FilterRecord{},
		RecommendedCombinations: []CombinedFilter{},
		AdequateCombinations:    []CombinedFilter{},
	}
}

// IsEmpty reports whether no tier holds any entry.
func (r ClassificationResult) IsEmpty() bool {
	return len(r.Recommended) == 0 &&
		len(r.Adequate) == 0 &&
		len(r.NotAdequate) == 0 &&
		len(r.RecommendedCombinations) == 0 &&
		len(r.AdequateCombinations) == 0
}

// SingleCount returns the number of single-unit entries across the three tiers.
func (r ClassificationResult) SingleCount() int {
	return len(r.Recommended) + len(r.Adequate) + len(r.NotAdequate)
}

// CombinationCount returns the number of combination entries.
func (r ClassificationResult) CombinationCount() int {
	return len(r.RecommendedCombinations) + len(r.AdequateCombinations)
}

// RowIssue describes a catalog row that was rejected before classification.
type RowIssue struct {
	Source string `json:"source"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Catalog is the result of one catalog load across all configured sources.
type Catalog struct {
	Filters      []FilterRecord
	Issues       []RowIssue
	SourceCounts map[string]int // accepted rows per source name
	FetchedAt    time.Time
}
