package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

func TestAnalyzeNoData(t *testing.T) {
	a := NewDispersionAnalyzer(nil, nil, nil)
	rec := a.Analyze(models.FieldPERatio, []*models.SourceResult{
		result("alpha_vantage", map[models.Field]float64{models.FieldROE: 20}),
	})
	assert.Nil(t, rec)
}

func TestAnalyzeSingleSource(t *testing.T) {
	a := NewDispersionAnalyzer(nil, nil, nil)
	rec := a.Analyze(models.FieldPERatio, []*models.SourceResult{
		result("alpha_vantage", map[models.Field]float64{models.FieldPERatio: 20}),
	})
	require.NotNil(t, rec)
	assert.Equal(t, 20.0, rec.Value)
	assert.Equal(t, []string{"alpha_vantage"}, rec.Sources)
	assert.Zero(t, rec.CV)
	assert.Equal(t, 1.0, rec.ConfidenceAdj)
	assert.Equal(t, models.QualitySingleSource, rec.Quality)
}

func TestAnalyzeTwoIdenticalSources(t *testing.T) {
	a := NewDispersionAnalyzer(nil, nil, nil)
	rec := a.Analyze(models.FieldPERatio, []*models.SourceResult{
		result("alpha_vantage", map[models.Field]float64{models.FieldPERatio: 100}),
		result("twelvedata", map[models.Field]float64{models.FieldPERatio: 100}),
	})
	require.NotNil(t, rec)
	assert.Equal(t, 100.0, rec.Value)
	assert.Zero(t, rec.CV)
	assert.Equal(t, 1.0, rec.ConfidenceAdj)
	assert.Equal(t, models.QualityPremiumSources, rec.Quality)
}

func TestAnalyzeTwoDivergentSources(t *testing.T) {
	a := NewDispersionAnalyzer(nil, nil, nil)
	rec := a.Analyze(models.FieldPERatio, []*models.SourceResult{
		result("yahoo", map[models.Field]float64{models.FieldPERatio: 100}),
		result("finviz", map[models.Field]float64{models.FieldPERatio: 120}),
	})
	require.NotNil(t, rec)
	// mean=110, population std=10, cv = 10/110*100 ~ 9.09
	assert.Equal(t, 110.0, rec.Value)
	assert.InDelta(t, 9.09, rec.CV, 0.01)
	assert.Equal(t, 0.95, rec.ConfidenceAdj)
	assert.Equal(t, models.QualityMixedSources, rec.Quality)
}

func TestAnalyzePremiumPreferenceDiscardsScrapes(t *testing.T) {
	a := NewDispersionAnalyzer(nil, nil, nil)
	rec := a.Analyze(models.FieldROE, []*models.SourceResult{
		result("alpha_vantage", map[models.Field]float64{models.FieldROE: 20}),
		result("twelvedata", map[models.Field]float64{models.FieldROE: 22}),
		result("yahoo", map[models.Field]float64{models.FieldROE: 80}), // scraped outlier
	})
	require.NotNil(t, rec)
	assert.Equal(t, models.QualityPremiumSources, rec.Quality)
	assert.Equal(t, []string{"alpha_vantage", "twelvedata"}, rec.Sources)
	assert.Equal(t, 21.0, rec.Value, "median over premium values only")
}

func TestAnalyzeConfidenceBuckets(t *testing.T) {
	a := NewDispersionAnalyzer(nil, nil, nil)

	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"tight agreement", []float64{100, 101}, 1.0},
		{"moderate", []float64{100, 120}, 0.95},
		{"loose", []float64{100, 140}, 0.85},
		{"discrepant", []float64{100, 180}, 0.70},
		{"suspicious", []float64{100, 400}, 0.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.Analyze(models.FieldEBIT, []*models.SourceResult{
				result("yahoo", map[models.Field]float64{models.FieldEBIT: tt.values[0]}),
				result("finviz", map[models.Field]float64{models.FieldEBIT: tt.values[1]}),
			})
			require.NotNil(t, rec)
			assert.Equal(t, tt.want, rec.ConfidenceAdj)
		})
	}
}

func TestCoefficientOfVariationZeroMean(t *testing.T) {
	assert.Zero(t, coefficientOfVariation([]float64{-10, 10}))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 2, 3}))
}
