package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

func TestZScoreAgainstSector(t *testing.T) {
	s := NewSectorNormalizer(nil, nil)

	z, ok := s.ZScore(35.0, models.FieldROE, "Technology")
	require.True(t, ok)
	assert.InDelta(t, 1.529, z, 0.001)

	_, ok = s.ZScore(35.0, models.FieldROE, "Spacefaring")
	assert.False(t, ok)

	_, ok = s.ZScore(1.2, models.FieldDebtToEquity, "Financials")
	assert.False(t, ok, "financials carry no leverage benchmark")
}

type countingRecorder struct {
	sectors map[string]int
	errors  map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{sectors: make(map[string]int), errors: make(map[string]int)}
}

func (r *countingRecorder) RecordReconcile(string, float64)    {}
func (r *countingRecorder) RecordAdapterError(string)          {}
func (r *countingRecorder) RecordCompleteness(string, float64) {}
func (r *countingRecorder) RecordSectorUsage(sector string)    { r.sectors[sector]++ }
func (r *countingRecorder) RecordPeriodUsage(string)           {}
func (r *countingRecorder) RecordCacheResult(string, bool)     {}
func (r *countingRecorder) RecordError(kind string)            { r.errors[kind]++ }

func TestZScoreDegenerateBenchmark(t *testing.T) {
	rec := newCountingRecorder()
	s := NewSectorNormalizer(map[string]map[models.Field]models.SectorBenchmark{
		"Monoculture": {
			models.FieldROE: {Mean: 15, Std: 0},
		},
	}, rec)

	z, ok := s.ZScore(35.0, models.FieldROE, "Monoculture")
	require.True(t, ok)
	assert.Zero(t, z, "zero spread pins every value to the mean")

	// The lookup still counts as usage and the flat benchmark is surfaced.
	assert.Equal(t, 1, rec.sectors["Monoculture"])
	assert.Equal(t, 1, rec.errors["sector_benchmark_degenerate"])
}

func TestScoreFromZBuckets(t *testing.T) {
	s := NewSectorNormalizer(nil, nil)

	tests := []struct {
		z    float64
		want float64
	}{
		{2.5, 100}, {1.53, 85}, {0.3, 70}, {-0.5, 50}, {-1.5, 30}, {-2.5, 15},
	}
	for _, tt := range tests {
		z := tt.z
		assert.Equal(t, tt.want, s.ScoreFromZ(&z, false), "z=%v", tt.z)
	}

	assert.Equal(t, NeutralScore, s.ScoreFromZ(nil, false))
}

func TestScoreFromZInverted(t *testing.T) {
	s := NewSectorNormalizer(nil, nil)

	// High leverage is bad: a positive z flips below the mean.
	z := 1.2
	assert.Equal(t, 30.0, s.ScoreFromZ(&z, true))
	z = -2.5
	assert.Equal(t, 100.0, s.ScoreFromZ(&z, true))
}

func TestNormalizeAttachesBenchmark(t *testing.T) {
	s := NewSectorNormalizer(nil, nil)

	res := s.Normalize(35.0, models.FieldROE, "Technology", false)

	assert.Equal(t, 85.0, res.Score)
	require.NotNil(t, res.ZScore)
	assert.InDelta(t, 1.529, *res.ZScore, 0.001)
	require.NotNil(t, res.SectorMean)
	assert.Equal(t, 22.0, *res.SectorMean)
	require.NotNil(t, res.SectorStd)
	assert.Equal(t, 8.5, *res.SectorStd)
	require.NotNil(t, res.Percentile)
	assert.InDelta(t, 75.5, *res.Percentile, 0.1)
}

func TestNormalizeUnknownSectorIsNeutral(t *testing.T) {
	s := NewSectorNormalizer(nil, nil)

	res := s.Normalize(35.0, models.FieldROE, "Spacefaring", false)

	assert.Equal(t, NeutralScore, res.Score)
	assert.Nil(t, res.ZScore)
	assert.Nil(t, res.Percentile)
}

func TestSameRelativeStandingAcrossSectors(t *testing.T) {
	s := NewSectorNormalizer(nil, nil)

	tech := s.Normalize(35.0, models.FieldROE, "Technology", false) // z ≈ 1.53
	util := s.Normalize(14.5, models.FieldROE, "Utilities", false)  // z ≈ 1.56
	assert.Equal(t, tech.Score, util.Score, "similar z-scores score the same")
}

func TestSectorsAndMetricsEnumerate(t *testing.T) {
	s := NewSectorNormalizer(nil, nil)

	sectors := s.Sectors()
	assert.Len(t, sectors, 11)
	assert.Contains(t, sectors, "Real Estate")

	metrics := s.MetricsFor("Financials")
	assert.Len(t, metrics, 8)
	assert.NotContains(t, metrics, models.FieldDebtToEquity)

	assert.Nil(t, s.MetricsFor("Spacefaring"))
}
