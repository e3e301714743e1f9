package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

func TestNormalizePrefersTTM(t *testing.T) {
	n := NewPeriodNormalizer(nil)

	nm := n.Normalize("roe", map[string]float64{
		"roe_ttm": 22.3,
		"roe_mry": 21.8,
		"roe_5y":  19.5,
	}, nil)

	require.NotNil(t, nm)
	assert.Equal(t, 22.3, nm.Value)
	assert.Equal(t, models.PeriodTTM, nm.Period)
	assert.Equal(t, "roe_ttm", nm.SourceKey)
	assert.Equal(t, []models.Period{models.PeriodTTM}, nm.FallbackChain)
}

func TestNormalizeFallsThroughHierarchy(t *testing.T) {
	n := NewPeriodNormalizer(nil)

	nm := n.Normalize("roe", map[string]float64{"roe_5y": 19.5}, nil)

	require.NotNil(t, nm)
	assert.Equal(t, 19.5, nm.Value)
	assert.Equal(t, models.Period5Y, nm.Period)
	assert.Equal(t, []models.Period{
		models.PeriodTTM, models.PeriodMRQ, models.PeriodMRY, models.Period5Y,
	}, nm.FallbackChain)
}

func TestNormalizeBareKeyAssumesTTM(t *testing.T) {
	n := NewPeriodNormalizer(nil)

	nm := n.Normalize("roe", map[string]float64{"roe": 20.0}, nil)

	require.NotNil(t, nm)
	assert.Equal(t, 20.0, nm.Value)
	assert.Equal(t, models.PeriodTTMAssumed, nm.Period)
	assert.Equal(t, "roe", nm.SourceKey)
}

func TestNormalizeAllowedPeriodsRestrict(t *testing.T) {
	n := NewPeriodNormalizer(nil)
	raw := map[string]float64{"roe_5y": 19.5}

	nm := n.Normalize("roe", raw, []models.Period{models.PeriodTTM, models.PeriodMRQ})
	assert.Nil(t, nm)

	nm = n.Normalize("roe", raw, []models.Period{models.Period5Y})
	require.NotNil(t, nm)
	assert.Equal(t, models.Period5Y, nm.Period)
}

func TestNormalizeNoData(t *testing.T) {
	n := NewPeriodNormalizer(nil)
	assert.Nil(t, n.Normalize("roe", map[string]float64{}, nil))
}

func TestNormalizeBatch(t *testing.T) {
	n := NewPeriodNormalizer(nil)

	out := n.NormalizeBatch(map[string]float64{
		"roe_ttm":            22.3,
		"roe_mry":            21.8,
		"revenue_growth_mrq": 15.2,
	}, []string{"roe", "revenue_growth", "debt_to_equity"})

	assert.Equal(t, 2, out.NormalizedCount)
	assert.Equal(t, 1, out.FailedCount)
	assert.Equal(t, []string{"debt_to_equity"}, out.FailedMetrics)
	assert.Equal(t, 22.3, out.Values["roe"])
	assert.Equal(t, models.PeriodMRQ, out.Periods["revenue_growth"])
}

func TestPeriodStatsAccumulate(t *testing.T) {
	n := NewPeriodNormalizer(nil)
	n.Normalize("roe", map[string]float64{"roe_ttm": 22.3}, nil)
	n.Normalize("roic", map[string]float64{"roic_mry": 12.0}, nil)
	n.Normalize("net_margin", map[string]float64{"net_margin": 9.0}, nil)

	stats := n.Stats()
	assert.Equal(t, 3, stats.TotalNormalized)
	assert.Equal(t, 2, stats.PeriodUsage[models.PeriodTTM]) // bare key counts as TTM
	assert.Equal(t, 1, stats.PeriodUsage[models.PeriodMRY])

	n.Reset()
	assert.Zero(t, n.Stats().TotalNormalized)
}
