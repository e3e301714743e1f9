package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

func newDoc() *models.Document {
	return &models.Document{Ticker: "TEST", Metrics: &models.Metrics{}, Provenance: map[models.Field]string{}}
}

func TestSanityNullsImplausiblePE(t *testing.T) {
	v := NewSanityValidator(DefaultSanityBounds())
	doc := newDoc()
	doc.Metrics.Set(models.FieldPERatio, 1200)

	v.Apply(doc)

	assert.False(t, doc.Metrics.Has(models.FieldPERatio))
	require.NotEmpty(t, doc.Warnings)
	assert.Contains(t, doc.Warnings[len(doc.Warnings)-1], "Ignored out-of-range")
}

func TestSanitySoftWarningKeepsValue(t *testing.T) {
	v := NewSanityValidator(DefaultSanityBounds())
	doc := newDoc()
	doc.Metrics.Set(models.FieldPERatio, 95)

	v.Apply(doc)

	pe, ok := doc.Metrics.Value(models.FieldPERatio)
	require.True(t, ok)
	assert.Equal(t, 95.0, pe)
	assert.Contains(t, doc.Warnings[0], "Elevated P/E")
}

func TestSanityBoundsFamilies(t *testing.T) {
	v := NewSanityValidator(DefaultSanityBounds())

	tests := []struct {
		name  string
		field models.Field
		value float64
		kept  bool
	}{
		{"margin below floor", models.FieldNetMargin, -60, false},
		{"margin within", models.FieldNetMargin, -20, true},
		{"margin above cap", models.FieldGrossMargin, 250, false},
		{"negative leverage", models.FieldDebtToEquity, -0.5, false},
		{"leverage ok", models.FieldDebtToEquity, 1.2, true},
		{"growth below floor", models.FieldRevenueGrowth, -150, false},
		{"growth above cap", models.FieldEarningsGrowth, 350, false},
		{"growth within", models.FieldRevenueGrowth5Y, 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc()
			doc.Metrics.Set(tt.field, tt.value)
			v.Apply(doc)
			assert.Equal(t, tt.kept, doc.Metrics.Has(tt.field))
		})
	}
}

func TestSanityEstimatesROEAndROIC(t *testing.T) {
	v := NewSanityValidator(DefaultSanityBounds())
	doc := newDoc()
	doc.Metrics.Set(models.FieldROA, 10)
	doc.Metrics.Set(models.FieldEarningsGrowth, 15)

	v.Apply(doc)

	roe, ok := doc.Metrics.Value(models.FieldROE)
	require.True(t, ok)
	assert.InDelta(t, 12.0, roe, 1e-9)

	roic, ok := doc.Metrics.Value(models.FieldROIC)
	require.True(t, ok)
	assert.InDelta(t, 8.4, roic, 1e-9)

	assert.Contains(t, doc.Warnings, "ROE estimated from ROA.")
	assert.Contains(t, doc.Warnings, "ROIC estimated from ROE.")

	// Estimated values carry their own provenance.
	assert.Equal(t, "estimated:roa", doc.Provenance[models.FieldROE])
	assert.Equal(t, "estimated:roe", doc.Provenance[models.FieldROIC])
}

func TestSanityRecalcPEG(t *testing.T) {
	v := NewSanityValidator(DefaultSanityBounds())
	doc := newDoc()
	doc.Metrics.Set(models.FieldPERatio, 24)
	doc.Metrics.Set(models.FieldEarningsGrowth, 12)

	v.Apply(doc)

	peg, ok := doc.Metrics.Value(models.FieldPEGRatio)
	require.True(t, ok)
	assert.Equal(t, 2.0, peg)
	assert.Equal(t, "calculated:pe/growth", doc.Provenance[models.FieldPEGRatio])
	assert.Contains(t, doc.Warnings, "PEG recalculated from P/E and earnings growth.")
}

func TestSanityIdempotent(t *testing.T) {
	v := NewSanityValidator(DefaultSanityBounds())
	c := NewDerivedCalculator()

	doc := newDoc()
	doc.Metrics.Set(models.FieldPERatio, 95)
	doc.Metrics.Set(models.FieldROA, 10)
	doc.Metrics.Set(models.FieldEarningsGrowth, 15)
	doc.Metrics.Set(models.FieldFreeCashFlow, 100)
	doc.Metrics.Set(models.FieldMarketCap, 2000)
	doc.Metrics.Set(models.FieldNetMargin, 300) // out of range, nulled on first pass

	c.Apply(doc.Metrics, doc.Provenance)
	v.Apply(doc)

	snapshot := doc.Metrics.AsMap()
	warnings := append([]string(nil), doc.Warnings...)

	c.Apply(doc.Metrics, doc.Provenance)
	v.Apply(doc)

	assert.Equal(t, snapshot, doc.Metrics.AsMap(), "second pass must be a fixed point")
	assert.Equal(t, warnings, doc.Warnings, "warnings are deduplicated")
}

func TestDerivedMetrics(t *testing.T) {
	c := NewDerivedCalculator()

	m := &models.Metrics{}
	prov := map[models.Field]string{}
	m.Set(models.FieldFreeCashFlow, 100)
	m.Set(models.FieldMarketCap, 2000)
	m.Set(models.FieldEnterpriseValue, 1000)
	m.Set(models.FieldEBIT, 100)
	m.Set(models.FieldTotalDebt, 500)
	m.Set(models.FieldCashAndEquivalents, 200)
	m.Set(models.FieldEBITDA, 150)
	m.Set(models.FieldInterestExpense, 20)

	c.Apply(m, prov)

	fcfYield, _ := m.Value(models.FieldFCFYield)
	assert.Equal(t, 5.0, fcfYield)
	assert.Equal(t, "calculated:fcf/mcap", prov[models.FieldFCFYield])

	evToEBIT, _ := m.Value(models.FieldEVToEBIT)
	assert.Equal(t, 10.0, evToEBIT)

	netDebt, _ := m.Value(models.FieldNetDebtToEBITDA)
	assert.InDelta(t, 2.0, netDebt, 1e-9)

	cov, _ := m.Value(models.FieldInterestCoverage)
	assert.Equal(t, 5.0, cov)
}

func TestDerivedSkipsZeroDenominators(t *testing.T) {
	c := NewDerivedCalculator()

	m := &models.Metrics{}
	prov := map[models.Field]string{}
	m.Set(models.FieldEBIT, 0)
	m.Set(models.FieldInterestExpense, 20)
	m.Set(models.FieldEnterpriseValue, 1000)

	c.Apply(m, prov)

	// ebit=0 is a valid numerator for coverage but a blocked denominator
	// for EV/EBIT.
	cov, ok := m.Value(models.FieldInterestCoverage)
	assert.True(t, ok)
	assert.Zero(t, cov)
	assert.False(t, m.Has(models.FieldEVToEBIT))
}

func TestDerivedSkipsMissingInputs(t *testing.T) {
	c := NewDerivedCalculator()

	m := &models.Metrics{}
	prov := map[models.Field]string{}
	m.Set(models.FieldFreeCashFlow, 100)

	c.Apply(m, prov)

	assert.False(t, m.Has(models.FieldFCFYield))
	assert.Empty(t, prov)
}

func TestCompleteness(t *testing.T) {
	m := &models.Metrics{}
	assert.Zero(t, Completeness(m))

	// 6 of 12 required, one via an alternative.
	m.Set(models.FieldPERatio, 20)
	m.Set(models.FieldPriceToBook, 3)
	m.Set(models.FieldROE, 18)
	m.Set(models.FieldROIC, 12)
	m.Set(models.FieldDebtToEquity, 0.8)
	m.Set(models.FieldRevenueGrowthQoQ, 5) // stands in for revenue_growth
	assert.Equal(t, 50.0, Completeness(m))
}

func TestFlagMissingCritical(t *testing.T) {
	doc := newDoc()
	doc.Metrics.Set(models.FieldROA, 8) // covers roe via alternative

	FlagMissingCritical(doc, []models.Field{models.FieldROE, models.FieldPERatio})

	assert.True(t, doc.ManualInputRecommended)
	require.Len(t, doc.Warnings, 1)
	assert.Contains(t, doc.Warnings[0], "pe_ratio")
	assert.NotContains(t, doc.Warnings[0], "roe")
}
