package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	"github.com/williamppmm/rvc-investment-analyzer/internal/service/fallback"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/classify"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/normalize"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/reconcile"
)

type fakeAdapter struct {
	name  string
	res   *models.SourceResult
	err   error
	calls int
}

func (a *fakeAdapter) Name() string { return a.name }

func (a *fakeAdapter) Fetch(_ context.Context, _ string) (*models.SourceResult, error) {
	a.calls++
	return a.res, a.err
}

type memClassificationStore struct {
	entries map[string]*models.AssetClassification
	saves   int
}

func newMemStore() *memClassificationStore {
	return &memClassificationStore{entries: make(map[string]*models.AssetClassification)}
}

func (s *memClassificationStore) Load(_ context.Context, ticker string) (*models.AssetClassification, bool) {
	c, ok := s.entries[ticker]
	return c, ok
}

func (s *memClassificationStore) Save(_ context.Context, c *models.AssetClassification) error {
	s.entries[c.Ticker] = c
	s.saves++
	return nil
}

func (s *memClassificationStore) Close() error { return nil }

func newTestReconciler(store *memClassificationStore, adapters ...*fakeAdapter) *Reconciler {
	deps := ReconcilerDeps{
		Merger:          reconcile.NewMerger(reconcile.DefaultPolicy()),
		Dispersion:      reconcile.NewDispersionAnalyzer(nil, nil, nil),
		Derived:         reconcile.NewDerivedCalculator(),
		Sanity:          reconcile.NewSanityValidator(reconcile.DefaultSanityBounds()),
		Classifier:      classify.NewClassifier(nil),
		Classifications: store,
		Converter:       normalize.NewCurrencyConverter(nil),
	}
	for _, a := range adapters {
		deps.Adapters = append(deps.Adapters, a)
	}
	return NewReconciler(deps)
}

func equityResult(source string) *models.SourceResult {
	return &models.SourceResult{
		Source: source,
		Data: map[models.Field]float64{
			models.FieldCurrentPrice:  100,
			models.FieldPERatio:       24,
			models.FieldROE:           18,
			models.FieldMarketCap:     2000,
			models.FieldFreeCashFlow:  100,
			models.FieldDebtToEquity:  0.8,
			models.FieldNetMargin:     12,
		},
		Meta: map[models.Field]string{
			models.FieldCompanyName: "Test Corp",
			models.FieldSector:      "Technology",
			models.FieldQuoteType:   "EQUITY",
			models.FieldCurrency:    "USD",
		},
		Coverage: 7,
	}
}

func TestReconcilePipeline(t *testing.T) {
	store := newMemStore()
	a := &fakeAdapter{name: "alpha_vantage", res: equityResult("alpha_vantage")}
	b := &fakeAdapter{name: "yahoo", res: &models.SourceResult{
		Source: "yahoo",
		Data: map[models.Field]float64{
			models.FieldROE:  22,
			models.FieldROIC: 12,
		},
		Coverage: 2,
	}}
	r := newTestReconciler(store, a, b)

	doc, err := r.Reconcile(context.Background(), "test")
	require.NoError(t, err)

	assert.Equal(t, "TEST", doc.Ticker)
	assert.Equal(t, "Test Corp", doc.CompanyName)
	assert.Equal(t, "alpha_vantage", doc.PrimarySource)
	assert.Equal(t, models.AssetEquity, doc.AssetType)
	assert.True(t, doc.AnalysisAllowed)
	assert.Equal(t, models.SchemaVersion, doc.SchemaVersion)
	assert.False(t, doc.CollectedAt.IsZero())

	// Two sources reported roe; the consolidated median replaces the merge
	// winner and the dispersion record is attached.
	roe, ok := doc.Metrics.Value(models.FieldROE)
	require.True(t, ok)
	assert.Equal(t, 20.0, roe)
	rec, ok := doc.Dispersion[models.FieldROE]
	require.True(t, ok)
	assert.Len(t, rec.Sources, 2)

	// Derived metric from merged inputs.
	fcfYield, ok := doc.Metrics.Value(models.FieldFCFYield)
	require.True(t, ok)
	assert.Equal(t, 5.0, fcfYield)
	assert.Equal(t, "calculated:fcf/mcap", doc.Provenance[models.FieldFCFYield])

	// Classification was computed once and persisted.
	assert.Equal(t, 1, store.saves)
	stored, ok := store.entries["TEST"]
	require.True(t, ok)
	assert.Equal(t, models.AssetEquity, stored.AssetType)
}

func TestReconcileNoData(t *testing.T) {
	store := newMemStore()
	r := newTestReconciler(store,
		&fakeAdapter{name: "alpha_vantage"},
		&fakeAdapter{name: "yahoo", err: errors.New("boom")},
	)

	_, err := r.Reconcile(context.Background(), "NONE")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestReconcileAdapterFailureIsSwallowed(t *testing.T) {
	store := newMemStore()
	failing := &fakeAdapter{name: "alpha_vantage", err: errors.New("rate limited")}
	working := &fakeAdapter{name: "yahoo", res: equityResult("yahoo")}
	r := newTestReconciler(store, failing, working)

	doc, err := r.Reconcile(context.Background(), "TEST")
	require.NoError(t, err)
	assert.Equal(t, "yahoo", doc.PrimarySource)
}

func TestReconcileEarlyExit(t *testing.T) {
	store := newMemStore()
	first := &fakeAdapter{name: "alpha_vantage", res: equityResult("alpha_vantage")}
	second := &fakeAdapter{name: "yahoo", res: equityResult("yahoo")}
	r := newTestReconciler(store, first, second)
	r.earlyExit = 30 // equityResult covers well past 30% of required fields

	_, err := r.Reconcile(context.Background(), "TEST")
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls, "early exit must skip remaining adapters")
}

func TestReconcileETFGate(t *testing.T) {
	store := newMemStore()
	a := &fakeAdapter{name: "alpha_vantage", res: &models.SourceResult{
		Source: "alpha_vantage",
		Data: map[models.Field]float64{
			models.FieldCurrentPrice: 620.0,
			models.FieldPERatio:      25,
			models.FieldROE:          15,
		},
		Meta: map[models.Field]string{
			models.FieldQuoteType: "EQUITY", // provider mislabels; override wins
		},
	}}
	r := newTestReconciler(store, a)

	doc, err := r.Reconcile(context.Background(), "VOO")
	require.NoError(t, err)

	assert.Equal(t, models.AssetETF, doc.AssetType)
	assert.False(t, doc.AnalysisAllowed)
	assert.False(t, doc.Metrics.Has(models.FieldPERatio))
	assert.False(t, doc.Metrics.Has(models.FieldROE))
	require.NotNil(t, doc.ETFProfile)
	assert.Equal(t, "Vanguard", doc.ETFProfile.Provider)
	assert.Equal(t, "Vanguard S&P 500 ETF", doc.CompanyName)

	// Premium over the reference NAV of 617.10.
	premium, ok := doc.Metrics.Value(models.FieldPremiumDiscount)
	require.True(t, ok)
	assert.InDelta(t, 0.47, premium, 0.01)
	assert.NotEmpty(t, doc.AnalysisNote)
}

func TestReconcileFlagsExampleData(t *testing.T) {
	store := newMemStore()
	res := equityResult(fallback.SourceName)
	r := newTestReconciler(store, &fakeAdapter{name: fallback.SourceName, res: res})

	doc, err := r.Reconcile(context.Background(), "TEST")
	require.NoError(t, err)

	assert.True(t, doc.ManualInputRecommended)
	assert.Contains(t, doc.Warnings, exampleDataWarning)

	// Hand-entered values replace the advisory.
	over, _, err := r.ApplyOverrides(context.Background(), "TEST", doc, map[models.Field]float64{
		models.FieldPERatio: 30,
	})
	require.NoError(t, err)
	assert.NotContains(t, over.Warnings, exampleDataWarning)
}

func TestReconcileStickyClassification(t *testing.T) {
	store := newMemStore()
	store.entries["TEST"] = &models.AssetClassification{
		Ticker:    "TEST",
		AssetType: models.AssetIndex,
		TypeLabel: models.AssetIndex.Label(),
		Source:    "manual_override",
	}
	r := newTestReconciler(store, &fakeAdapter{name: "yahoo", res: equityResult("yahoo")})

	doc, err := r.Reconcile(context.Background(), "TEST")
	require.NoError(t, err)

	assert.Equal(t, models.AssetIndex, doc.AssetType, "stored classification wins over metadata")
	assert.False(t, doc.AnalysisAllowed)
	assert.Zero(t, store.saves)
}

func TestApplyOverrides(t *testing.T) {
	store := newMemStore()
	r := newTestReconciler(store, &fakeAdapter{name: "yahoo", res: equityResult("yahoo")})

	base, err := r.Reconcile(context.Background(), "TEST")
	require.NoError(t, err)

	doc, report, err := r.ApplyOverrides(context.Background(), "TEST", base, map[models.Field]float64{
		models.FieldPERatio:  30,
		models.FieldFCFYield: 9, // derived, not editable
	})
	require.NoError(t, err)

	assert.Equal(t, []models.Field{models.FieldPERatio}, report.Applied)
	require.Contains(t, report.Invalid, models.FieldFCFYield)

	pe, ok := doc.Metrics.Value(models.FieldPERatio)
	require.True(t, ok)
	assert.Equal(t, 30.0, pe)
	assert.Equal(t, "manual_override", doc.Provenance[models.FieldPERatio])
	assert.Equal(t, "manual_override", doc.PrimarySource)
	// Most critical fields are still missing after the override, so the
	// re-finalize pass flags manual input again.
	assert.True(t, doc.ManualInputRecommended)
	assert.Equal(t, []string{"pe_ratio"}, doc.ManualOverrides)
	assert.Contains(t, doc.Warnings, "Metrics updated manually: pe_ratio")

	// The base document is untouched.
	basePE, _ := base.Metrics.Value(models.FieldPERatio)
	assert.NotEqual(t, 30.0, basePE)
}

func TestApplyOverridesWithoutBase(t *testing.T) {
	store := newMemStore()
	r := newTestReconciler(store)

	doc, report, err := r.ApplyOverrides(context.Background(), "NEW", nil, map[models.Field]float64{
		models.FieldPERatio: 18,
		models.FieldROE:     22,
	})
	require.NoError(t, err)
	assert.Len(t, report.Applied, 2)
	assert.Equal(t, "manual_override", doc.PrimarySource)
	assert.Equal(t, models.SchemaVersion, doc.SchemaVersion)
}

func TestApplyOverridesNothingApplied(t *testing.T) {
	store := newMemStore()
	r := newTestReconciler(store)

	doc, report, err := r.ApplyOverrides(context.Background(), "TEST", nil, map[models.Field]float64{
		models.FieldFCFYield: 9,
	})
	require.NoError(t, err)
	assert.Empty(t, report.Applied)
	assert.True(t, doc.ManualInputRecommended)
	assert.Zero(t, doc.SchemaVersion, "document is not finalized when nothing applies")
}
