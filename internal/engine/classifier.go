package engine

import (
	"fmt"
	"math"

	"github.com/dm/filtro-go/internal/model"
)

const (
	flowTurnovers        = 10    // minimum flow = 10 tank volumes per hour
	recommendedMediaFrac = 0.05  // media volume >= 5% of tank → recommended
	adequateMediaFrac    = 0.025 // media volume >= 2.5% of tank → adequate
	combinedModelSuffix  = " x2"
)

// MinFlowRate returns the minimum flow in L/h a filter needs for a tank of
// volume litres.
func MinFlowRate(volume float64) float64 {
	return volume * flowTurnovers
}

// RecommendedMediaVolume returns the media volume in litres at or above which
// a filter with enough flow is recommended.
func RecommendedMediaVolume(volume float64) float64 {
	return volume * recommendedMediaFrac
}

// MinMediaVolume returns the media volume in litres at or above which a
// filter with enough flow is adequate.
func MinMediaVolume(volume float64) float64 {
	return volume * adequateMediaFrac
}

// CombinationThreshold returns the tank volume above which two-unit
// combinations are evaluated: a tenth of the highest flow in the catalog.
// Returns 0 for an empty catalog.
func CombinationThreshold(catalog []model.FilterRecord) float64 {
	var maxCaudal float64
	for i, f := range catalog {
		if i == 0 || f.Caudal > maxCaudal {
			maxCaudal = f.Caudal
		}
	}
	return maxCaudal / flowTurnovers
}

// ClassifySingle places one filter in a tier for the given tank volume.
// Flow is checked first; a filter below the minimum flow is not adequate
// whatever its media volume.
func ClassifySingle(volume float64, f model.FilterRecord) model.Tier {
	return tierFor(volume, f.Caudal, f.VolumenVasoFiltro)
}

func tierFor(volume, caudal, media float64) model.Tier {
	switch {
	case caudal < MinFlowRate(volume):
		return model.TierNotAdequate
	case media >= RecommendedMediaVolume(volume):
		return model.TierRecommended
	case media >= MinMediaVolume(volume):
		return model.TierAdequate
	default:
		return model.TierNotAdequate
	}
}

// Classify sorts the catalog into recommended, adequate and not-adequate
// tiers for a tank of aquariumVolume litres, and, when the tank is larger
// than CombinationThreshold, evaluates every pair of catalog rows sharing a
// model as a two-unit combination.
//
// Every catalog row lands in exactly one single-unit tier, in catalog order.
// Combinations are additive: a pair is kept as recommended or adequate, or
// discarded. A volume that is zero, negative, NaN or infinite, or an empty
// catalog, yields an empty (non-nil) result. The input slice is not modified.
func Classify(aquariumVolume float64, catalog []model.FilterRecord) model.ClassificationResult {
	result := model.NewClassificationResult()
	if !validVolume(aquariumVolume) || len(catalog) == 0 {
		return result
	}

	for _, f := range catalog {
		switch ClassifySingle(aquariumVolume, f) {
		case model.TierRecommended:
			result.Recommended = append(result.Recommended, f)
		case model.TierAdequate:
			result.Adequate = append(result.Adequate, f)
		default:
			result.NotAdequate = append(result.NotAdequate, f)
		}
	}

	if aquariumVolume <= CombinationThreshold(catalog) {
		return result
	}

	// Self-join on Modelo: index rows by model, then for each row i pair it
	// with the later rows j > i of the same model. Output order is i, then j.
	byModel := make(map[string][]int, len(catalog))
	for i, f := range catalog {
		byModel[f.Modelo] = append(byModel[f.Modelo], i)
	}

	minFlow := MinFlowRate(aquariumVolume)
	for i, a := range catalog {
		for _, j := range byModel[a.Modelo] {
			if j <= i {
				continue
			}
			b := catalog[j]
			caudal := a.Caudal + b.Caudal
			media := a.VolumenVasoFiltro + b.VolumenVasoFiltro
			if caudal < minFlow {
				continue
			}
			switch {
			case media >= RecommendedMediaVolume(aquariumVolume):
				result.RecommendedCombinations = append(result.RecommendedCombinations,
					combine(a, b, caudal, media, model.TierRecommended))
			case media >= MinMediaVolume(aquariumVolume):
				result.AdequateCombinations = append(result.AdequateCombinations,
					combine(a, b, caudal, media, model.TierAdequate))
			}
		}
	}

	return result
}

func combine(a, b model.FilterRecord, caudal, media float64, tier model.Tier) model.CombinedFilter {
	return model.CombinedFilter{
		ID:                fmt.Sprintf("%s-%s-%s", a.ID, b.ID, tier),
		Marca:             a.Marca,
		Modelo:            a.Modelo + combinedModelSuffix,
		Caudal:            caudal,
		VolumenVasoFiltro: media,
	}
}

// validVolume reports whether v is a usable tank volume.
func validVolume(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
