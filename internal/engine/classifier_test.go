package engine

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/filtro-go/internal/model"
)

// filter builds a catalog record for classifier tests.
func filter(id, modelo string, caudal, media float64) model.FilterRecord {
	return model.FilterRecord{
		ID:                id,
		Marca:             "Brand",
		Modelo:            modelo,
		Caudal:            caudal,
		VolumenVasoFiltro: media,
	}
}

func TestClassify_SingleRecommended(t *testing.T) {
	f1 := filter("1", "A", 1200, 6)

	got := Classify(100, []model.FilterRecord{f1})

	want := model.NewClassificationResult()
	want.Recommended = []model.FilterRecord{f1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_AdequateCombination(t *testing.T) {
	a := filter("1", "X", 1600, 4)
	b := filter("2", "X", 1600, 4)

	got := Classify(300, []model.FilterRecord{a, b})

	want := model.NewClassificationResult()
	want.NotAdequate = []model.FilterRecord{a, b}
	want.AdequateCombinations = []model.CombinedFilter{{
		ID:                "1-2-adequate",
		Marca:             "Brand",
		Modelo:            "X x2",
		Caudal:            3200,
		VolumenVasoFiltro: 8,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_EmptyInputs(t *testing.T) {
	catalog := []model.FilterRecord{filter("1", "A", 1200, 6)}

	tests := []struct {
		name    string
		volume  float64
		catalog []model.FilterRecord
	}{
		{"zero volume", 0, catalog},
		{"negative volume", -50, catalog},
		{"NaN volume", math.NaN(), catalog},
		{"infinite volume", math.Inf(1), catalog},
		{"empty catalog", 100, []model.FilterRecord{}},
		{"nil catalog", 100, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.volume, tc.catalog)
			assert.True(t, got.IsEmpty())
			assert.NotNil(t, got.Recommended)
			assert.NotNil(t, got.Adequate)
			assert.NotNil(t, got.NotAdequate)
			assert.NotNil(t, got.RecommendedCombinations)
			assert.NotNil(t, got.AdequateCombinations)
		})
	}
}

func TestClassify_InclusiveBoundaries(t *testing.T) {
	// volume 100 → min flow 1000, adequate media 2.5, recommended media 5
	tests := []struct {
		name string
		f    model.FilterRecord
		want model.Tier
	}{
		{"flow exactly minimum, media exactly 5%", filter("1", "A", 1000, 5), model.TierRecommended},
		{"flow exactly minimum, media exactly 2.5%", filter("2", "B", 1000, 2.5), model.TierAdequate},
		{"flow just below minimum", filter("3", "C", 999.99, 50), model.TierNotAdequate},
		{"media just below 2.5%", filter("4", "D", 5000, 2.49), model.TierNotAdequate},
		{"media between thresholds", filter("5", "E", 5000, 4.99), model.TierAdequate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifySingle(100, tc.f))
		})
	}
}

func TestClassify_CombinationGating(t *testing.T) {
	catalog := []model.FilterRecord{
		filter("1", "Big", 2000, 20),
		filter("2", "Big", 2000, 20),
	}
	require.Equal(t, 200.0, CombinationThreshold(catalog))

	atThreshold := Classify(200, catalog)
	assert.Empty(t, atThreshold.RecommendedCombinations, "no combinations at the threshold")
	assert.Empty(t, atThreshold.AdequateCombinations)

	below := Classify(150, catalog)
	assert.Zero(t, below.CombinationCount(), "no combinations below the threshold")

	above := Classify(201, catalog)
	require.Len(t, above.RecommendedCombinations, 1)
	assert.Equal(t, "1-2-recommended", above.RecommendedCombinations[0].ID)
	assert.Equal(t, 4000.0, above.RecommendedCombinations[0].Caudal)
	assert.Equal(t, 40.0, above.RecommendedCombinations[0].VolumenVasoFiltro)
}

func TestClassify_PairUniqueness(t *testing.T) {
	catalog := []model.FilterRecord{
		filter("a", "Twin", 1600, 8),
		filter("b", "Twin", 1600, 8),
		filter("c", "Twin", 1600, 8),
	}

	got := Classify(300, catalog)

	ids := make([]string, 0, len(got.RecommendedCombinations))
	for _, c := range got.RecommendedCombinations {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"a-b-recommended", "a-c-recommended", "b-c-recommended"}, ids)
	assert.Empty(t, got.AdequateCombinations)
}

func TestClassify_PairsOnlyWithinModel(t *testing.T) {
	catalog := []model.FilterRecord{
		filter("1", "X", 1600, 8),
		filter("2", "Y", 1600, 8),
		filter("3", "X", 1600, 8),
	}

	got := Classify(300, catalog)

	require.Len(t, got.RecommendedCombinations, 1)
	assert.Equal(t, "1-3-recommended", got.RecommendedCombinations[0].ID)
	assert.Equal(t, "X x2", got.RecommendedCombinations[0].Modelo)
}

func TestClassify_CombinationDroppedWhenInsufficient(t *testing.T) {
	tests := []struct {
		name    string
		catalog []model.FilterRecord
	}{
		{"combined flow too low", []model.FilterRecord{
			filter("1", "X", 1000, 20), filter("2", "X", 1000, 20), filter("3", "Big", 2900, 1),
		}},
		{"combined media too low", []model.FilterRecord{
			filter("1", "X", 1600, 3), filter("2", "X", 1600, 3),
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(300, tc.catalog)
			assert.Zero(t, got.CombinationCount())
			assert.Equal(t, len(tc.catalog), got.SingleCount())
		})
	}
}

func TestClassify_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	models := []string{"A", "B", "C", "D"}

	for run := 0; run < 50; run++ {
		n := 1 + rng.Intn(30)
		catalog := make([]model.FilterRecord, n)
		for i := range catalog {
			catalog[i] = filter(
				strconv.Itoa(i),
				models[rng.Intn(len(models))],
				float64(rng.Intn(4000)),
				float64(rng.Intn(200))/10,
			)
		}
		volume := 1 + float64(rng.Intn(600))

		got := Classify(volume, catalog)

		var union []model.FilterRecord
		union = append(union, got.Recommended...)
		union = append(union, got.Adequate...)
		union = append(union, got.NotAdequate...)

		byID := cmpopts.SortSlices(func(a, b model.FilterRecord) bool { return a.ID < b.ID })
		if diff := cmp.Diff(catalog, union, byID); diff != "" {
			t.Fatalf("run %d volume %.0f: tiers do not partition the catalog (-want +got):\n%s", run, volume, diff)
		}
	}
}

func TestClassify_PreservesCatalogOrder(t *testing.T) {
	catalog := []model.FilterRecord{
		filter("3", "A", 2000, 10),
		filter("1", "B", 2000, 10),
		filter("2", "C", 2000, 10),
	}

	got := Classify(100, catalog)

	assert.Equal(t, catalog, got.Recommended)
}

func TestClassify_DoesNotModifyInput(t *testing.T) {
	catalog := []model.FilterRecord{
		filter("1", "X", 1600, 4),
		filter("2", "X", 1600, 4),
	}
	before := append([]model.FilterRecord(nil), catalog...)

	_ = Classify(300, catalog)

	assert.Equal(t, before, catalog)
}

func TestThresholdHelpers(t *testing.T) {
	assert.Equal(t, 1000.0, MinFlowRate(100))
	assert.Equal(t, 5.0, RecommendedMediaVolume(100))
	assert.Equal(t, 2.5, MinMediaVolume(100))
	assert.Equal(t, 0.0, CombinationThreshold(nil))
	assert.Equal(t, 160.0, CombinationThreshold([]model.FilterRecord{
		filter("1", "X", 1600, 4),
		filter("2", "Y", 900, 4),
	}))
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "recommended", model.TierRecommended.String())
	assert.Equal(t, "adequate", model.TierAdequate.String())
	assert.Equal(t, "not-adequate", model.TierNotAdequate.String())
}
