package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	drepo "github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
	"github.com/williamppmm/rvc-investment-analyzer/internal/service/fallback"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/classify"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/normalize"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/reconcile"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/logger"
)

// ErrNoData is returned when no source produced any metric for a ticker.
var ErrNoData = errors.New("no source returned data")

// exampleDataWarning marks documents built from the built-in example dataset.
const exampleDataWarning = "Example data used: approximate references, not real. Replace the values with current information before deciding."

// ManualEditableFields is the closed set of fields a caller may override by
// hand. Everything else is rejected as non-editable.
var ManualEditableFields = map[models.Field]struct{}{
	models.FieldCurrentPrice:       {},
	models.FieldMarketCap:          {},
	models.FieldPERatio:            {},
	models.FieldPEGRatio:           {},
	models.FieldPriceToBook:        {},
	models.FieldPriceToSales:       {},
	models.FieldEVToEBITDA:         {},
	models.FieldROE:                {},
	models.FieldROIC:               {},
	models.FieldROA:                {},
	models.FieldGrossMargin:        {},
	models.FieldOperatingMargin:    {},
	models.FieldNetMargin:          {},
	models.FieldDebtToEquity:       {},
	models.FieldCurrentRatio:       {},
	models.FieldQuickRatio:         {},
	models.FieldRevenueGrowth:      {},
	models.FieldRevenueGrowthQoQ:   {},
	models.FieldRevenueGrowth5Y:    {},
	models.FieldEarningsGrowth:     {},
	models.FieldEarningsGrowthTY:   {},
	models.FieldEarningsGrowthNY:   {},
	models.FieldEarningsGrowthN5Y:  {},
	models.FieldEarningsGrowthQoQ:  {},
	models.FieldNetDebtToEBITDA:    {},
	models.FieldInterestCoverage:   {},
	models.FieldTotalDebt:          {},
	models.FieldCashAndEquivalents: {},
	models.FieldEBITDA:             {},
	models.FieldInterestExpense:    {},
}

// OverrideReport lists which manual overrides were applied and which were
// rejected, with the rejection reason keyed by field.
type OverrideReport struct {
	Applied []models.Field          `json:"applied"`
	Invalid map[models.Field]string `json:"invalid,omitempty"`
}

// Reconciler runs the full pipeline for one ticker: fetch from adapters in
// priority order, merge with provenance, consolidate disagreements, derive,
// validate, classify and finalize into an immutable Document.
type Reconciler struct {
	adapters        []drepo.SourceAdapter
	merger          *reconcile.Merger
	dispersion      *reconcile.DispersionAnalyzer
	derived         *reconcile.DerivedCalculator
	sanity          *reconcile.SanityValidator
	classifier      *classify.Classifier
	classifications drepo.ClassificationStore
	converter       *normalize.CurrencyConverter
	snapshots       drepo.SnapshotStore
	publisher       drepo.Publisher
	metrics         drepo.Metrics
	log             *logger.Logger

	earlyExit float64
	now       func() time.Time
}

// ReconcilerDeps bundles the pipeline dependencies. snapshots, publisher and
// metrics are optional; everything else is required.
type ReconcilerDeps struct {
	Adapters        []drepo.SourceAdapter
	Merger          *reconcile.Merger
	Dispersion      *reconcile.DispersionAnalyzer
	Derived         *reconcile.DerivedCalculator
	Sanity          *reconcile.SanityValidator
	Classifier      *classify.Classifier
	Classifications drepo.ClassificationStore
	Converter       *normalize.CurrencyConverter
	Snapshots       drepo.SnapshotStore
	Publisher       drepo.Publisher
	Metrics         drepo.Metrics
	Logger          *logger.Logger

	// EarlyExitCompleteness stops querying further adapters once the
	// completeness score reaches this percentage. Zero disables the early
	// exit.
	EarlyExitCompleteness float64
}

// NewReconciler wires the pipeline.
func NewReconciler(deps ReconcilerDeps) *Reconciler {
	return &Reconciler{
		adapters:        deps.Adapters,
		merger:          deps.Merger,
		dispersion:      deps.Dispersion,
		derived:         deps.Derived,
		sanity:          deps.Sanity,
		classifier:      deps.Classifier,
		classifications: deps.Classifications,
		converter:       deps.Converter,
		snapshots:       deps.Snapshots,
		publisher:       deps.Publisher,
		metrics:         deps.Metrics,
		log:             deps.Logger,
		earlyExit:       deps.EarlyExitCompleteness,
		now:             time.Now,
	}
}

// Reconcile runs the pipeline for ticker. It returns ErrNoData when every
// adapter came back empty; adapter failures are logged and swallowed.
func (r *Reconciler) Reconcile(ctx context.Context, ticker string) (*models.Document, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	start := r.now()
	doc := &models.Document{
		Ticker:     ticker,
		Metrics:    &models.Metrics{},
		Provenance: make(map[models.Field]string),
	}
	meta := make(map[models.Field]string)

	var results []*models.SourceResult
	for _, adapter := range r.adapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := adapter.Fetch(ctx, ticker)
		if err != nil {
			r.warnf("source failed", logger.String("source", adapter.Name()), logger.String("ticker", ticker), logger.Error(err))
			if r.metrics != nil {
				r.metrics.RecordAdapterError(adapter.Name())
			}
			continue
		}
		if res == nil {
			continue
		}

		results = append(results, res)
		r.merger.Merge(doc.Metrics, doc.Provenance, meta, res)
		if doc.PrimarySource == "" {
			doc.PrimarySource = res.Source
		}

		if r.earlyExit > 0 && reconcile.Completeness(doc.Metrics) >= r.earlyExit {
			break
		}
	}

	if len(results) == 0 {
		return nil, ErrNoData
	}

	// Consolidate disagreements only when more than one source answered.
	if len(results) >= 2 {
		doc.Dispersion = make(map[models.Field]models.DispersionRecord)
		for _, field := range r.dispersion.CriticalFields() {
			rec := r.dispersion.Analyze(field, results)
			if rec == nil {
				continue
			}
			doc.Metrics.Set(field, rec.Value)
			doc.Dispersion[field] = *rec
		}
		if len(doc.Dispersion) == 0 {
			doc.Dispersion = nil
		}
	}

	r.derived.Apply(doc.Metrics, doc.Provenance)
	r.finalize(ctx, doc, meta)

	elapsed := r.now().Sub(start).Seconds()
	if r.metrics != nil {
		r.metrics.RecordReconcile(ticker, elapsed)
		r.metrics.RecordCompleteness(ticker, doc.DataCompleteness)
	}
	r.infof("reconcile finished",
		logger.String("ticker", ticker),
		logger.String("asset_type", string(doc.AssetType)),
		logger.Any("completeness", doc.DataCompleteness),
		logger.Int("sources", len(results)))

	r.emit(ctx, doc)
	return doc, nil
}

// ApplyOverrides applies user-supplied metric values on top of base and
// re-finalizes. base may be nil, in which case a fresh document is built
// from the overrides alone. Non-editable fields are reported in the result,
// not applied.
func (r *Reconciler) ApplyOverrides(ctx context.Context, ticker string, base *models.Document, overrides map[models.Field]float64) (*models.Document, OverrideReport, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, OverrideReport{}, fmt.Errorf("ticker is required")
	}

	doc := cloneDocument(base)
	doc.Ticker = ticker

	// Hand-entered values supersede the example-data and missing-metrics
	// advisories; finalize re-adds the latter if fields are still absent.
	doc.Warnings = dropWarningsContaining(doc.Warnings,
		"Example data used", "Sources did not return critical metrics")

	report := OverrideReport{Invalid: make(map[models.Field]string)}
	fields := make([]models.Field, 0, len(overrides))
	for field := range overrides {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	for _, field := range fields {
		if _, ok := ManualEditableFields[field]; !ok {
			report.Invalid[field] = "field is not manually editable"
			continue
		}
		doc.Metrics.Set(field, overrides[field])
		doc.Provenance[field] = "manual_override"
		report.Applied = append(report.Applied, field)
	}
	if len(report.Invalid) == 0 {
		report.Invalid = nil
	}

	if len(report.Applied) == 0 {
		doc.ManualInputRecommended = true
		return doc, report, nil
	}

	names := make([]string, len(report.Applied))
	for i, f := range report.Applied {
		names[i] = string(f)
	}
	doc.Warnings = dropWarningsContaining(doc.Warnings, "Metrics updated manually")
	doc.AddWarning("Metrics updated manually: " + strings.Join(names, ", "))
	doc.PrimarySource = "manual_override"
	doc.ManualInputRecommended = false
	doc.ManualOverrides = names

	meta := map[models.Field]string{
		models.FieldCompanyName: doc.CompanyName,
		models.FieldSector:      doc.Sector,
		models.FieldCurrency:    doc.Currency,
		models.FieldCategory:    doc.Category,
	}
	r.derived.Apply(doc.Metrics, doc.Provenance)
	r.finalize(ctx, doc, meta)

	r.infof("manual overrides applied",
		logger.String("ticker", ticker),
		logger.Strings("fields", names))
	return doc, report, nil
}

// finalize runs validation, classification and document assembly. It is
// idempotent: finalizing an already-final document changes nothing.
func (r *Reconciler) finalize(ctx context.Context, doc *models.Document, meta map[models.Field]string) {
	r.sanity.Apply(doc)

	if doc.PrimarySource == fallback.SourceName {
		doc.ManualInputRecommended = true
		doc.AddWarning(exampleDataWarning)
	}

	doc.CompanyName = firstNonEmpty(meta[models.FieldCompanyName], doc.CompanyName)
	doc.Sector = firstNonEmpty(meta[models.FieldSector], doc.Sector)
	doc.Industry = firstNonEmpty(meta[models.FieldIndustry], doc.Industry)
	doc.Category = firstNonEmpty(meta[models.FieldCategory], doc.Category)

	classification := r.classify(ctx, doc, meta)
	doc.Classification = classification
	doc.AssetType = classification.AssetType
	doc.AssetTypeLabel = classification.TypeLabel
	doc.AnalysisAllowed = classification.AssetType == models.AssetEquity

	doc.DataCompleteness = reconcile.Completeness(doc.Metrics)
	doc.MetricsCollected = reconcile.Collected(doc.Metrics)
	reconcile.FlagMissingCritical(doc, r.dispersion.CriticalFields())

	r.applySpecialCases(doc)
	r.attachCurrency(doc, meta)

	doc.SchemaVersion = models.SchemaVersion
	doc.CollectedAt = r.now().UTC().Truncate(time.Second)
	if doc.Warnings == nil {
		doc.Warnings = []string{}
	}
}

// classify resolves the sticky classification: stored value wins, otherwise
// classify from metadata and persist.
func (r *Reconciler) classify(ctx context.Context, doc *models.Document, meta map[models.Field]string) models.AssetClassification {
	if stored, ok := r.classifications.Load(ctx, doc.Ticker); ok {
		return *stored
	}

	c := r.classifier.Classify(models.ClassificationInput{
		Ticker:        doc.Ticker,
		QuoteType:     meta[models.FieldQuoteType],
		RawType:       string(doc.Classification.AssetType),
		CompanyName:   firstNonEmpty(meta[models.FieldCompanyName], doc.CompanyName),
		Sector:        firstNonEmpty(meta[models.FieldSector], doc.Sector),
		Category:      firstNonEmpty(meta[models.FieldCategory], doc.Category),
		PrimarySource: doc.PrimarySource,
	})
	if err := r.classifications.Save(ctx, &c); err != nil {
		r.warnf("classification save failed", logger.String("ticker", doc.Ticker), logger.Error(err))
	}
	return c
}

// applySpecialCases enforces the classification gate: non-equity assets lose
// their fundamental equity fields, ETFs additionally gain an informational
// profile.
func (r *Reconciler) applySpecialCases(doc *models.Document) {
	switch {
	case doc.AssetType == models.AssetEquity:
		return
	case doc.AssetType == models.AssetETF:
		r.applyETFProfile(doc)
	default:
		nullFundamentals(doc)
		note := fmt.Sprintf("Detected asset type: %s. Only individual stocks receive a fundamentals analysis.", doc.AssetTypeLabel)
		doc.AnalysisNote = note
		doc.AddWarning(note)
	}
	doc.AnalysisAllowed = false
	doc.ManualInputRecommended = false
}

func (r *Reconciler) applyETFProfile(doc *models.Document) {
	ref, hasRef := classify.StaticETFReferences()[doc.Ticker]
	if hasRef {
		if doc.CompanyName == "" {
			doc.CompanyName = ref.FundName
		}
		if doc.Category == "" {
			doc.Category = ref.Profile.Category
		}
		for field, value := range ref.Metrics {
			if !doc.Metrics.Has(field) {
				doc.Metrics.Set(field, value)
				doc.Provenance[field] = "etf_reference"
			}
		}
		profile := ref.Profile
		doc.ETFProfile = &profile
	} else {
		doc.ETFProfile = &models.ETFProfile{
			Ticker:      doc.Ticker,
			NAVCurrency: firstNonEmpty(doc.Currency, "USD"),
			Category:    doc.Category,
			DataSource:  firstNonEmpty(doc.PrimarySource, "unknown"),
		}
	}

	// NAV defaults to the market price when no reference supplies one.
	if !doc.Metrics.Has(models.FieldNAV) {
		if price, ok := doc.Metrics.Value(models.FieldCurrentPrice); ok {
			doc.Metrics.Set(models.FieldNAV, price)
		}
	}
	price, hasPrice := doc.Metrics.Value(models.FieldCurrentPrice)
	nav, hasNAV := doc.Metrics.Value(models.FieldNAV)
	if hasPrice && hasNAV {
		if premium, ok := classify.PremiumDiscount(price, nav); ok {
			doc.Metrics.Set(models.FieldPremiumDiscount, math.Round(premium*100)/100)
		}
	}

	removed := nullFundamentals(doc)

	// Equity-flavored warnings are noise on a fund document.
	doc.Warnings = dropWarningsContaining(doc.Warnings,
		"P/E", "PEG", "ROE", "ROIC", "critical metrics")
	if len(removed) > 0 {
		doc.AddWarning("ETF detected: traditional fundamental metrics omitted (" + strings.Join(removed, ", ") + ").")
	} else {
		doc.AddWarning("ETF detected: review cost and performance metrics.")
	}
	doc.AnalysisNote = "ETF detected: informational profile shown without a fundamentals rating."
}

// attachCurrency resolves the document currency, defaulting to USD, and
// flags currencies the converter cannot price.
func (r *Reconciler) attachCurrency(doc *models.Document, meta map[models.Field]string) {
	currency := firstNonEmpty(meta[models.FieldCurrency], doc.Currency)
	if currency == "" {
		if doc.Metrics.Has(models.FieldCurrentPrice) || doc.Metrics.Has(models.FieldMarketCap) {
			doc.AddWarning("Currency not identified; assuming USD for price and market cap.")
		}
		currency = "USD"
	}
	currency = strings.ToUpper(currency)
	doc.Currency = currency

	if currency != "USD" && r.converter != nil && !r.converter.Supported(currency) {
		doc.AddWarning(fmt.Sprintf("No exchange rate available for %s.", currency))
	}
}

// emit hands the finalized document to the optional downstream sinks.
// Sink failures never fail the reconciliation.
func (r *Reconciler) emit(ctx context.Context, doc *models.Document) {
	if r.snapshots != nil {
		if err := r.snapshots.Store(ctx, doc); err != nil {
			r.warnf("snapshot store failed", logger.String("ticker", doc.Ticker), logger.Error(err))
			if r.metrics != nil {
				r.metrics.RecordError("snapshot")
			}
		}
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, doc); err != nil {
			r.warnf("document publish failed", logger.String("ticker", doc.Ticker), logger.Error(err))
			if r.metrics != nil {
				r.metrics.RecordError("publish")
			}
		}
	}
}

func (r *Reconciler) infof(msg string, fields ...logger.Field) {
	if r.log != nil {
		r.log.Info(msg, fields...)
	}
}

func (r *Reconciler) warnf(msg string, fields ...logger.Field) {
	if r.log != nil {
		r.log.Warn(msg, fields...)
	}
}

func nullFundamentals(doc *models.Document) []string {
	var removed []string
	for _, field := range models.FundamentalFields {
		if doc.Metrics.Has(field) {
			doc.Metrics.Clear(field)
			removed = append(removed, string(field))
		}
	}
	return removed
}

func cloneDocument(base *models.Document) *models.Document {
	if base == nil {
		return &models.Document{
			Metrics:    &models.Metrics{},
			Provenance: make(map[models.Field]string),
		}
	}
	clone := *base
	clone.Metrics = base.Metrics.Clone()
	clone.Provenance = make(map[models.Field]string, len(base.Provenance))
	for k, v := range base.Provenance {
		clone.Provenance[k] = v
	}
	clone.Warnings = append([]string(nil), base.Warnings...)
	if base.Dispersion != nil {
		clone.Dispersion = make(map[models.Field]models.DispersionRecord, len(base.Dispersion))
		for k, v := range base.Dispersion {
			clone.Dispersion[k] = v
		}
	}
	if base.MetricsCollected != nil {
		clone.MetricsCollected = make(map[models.Field]bool, len(base.MetricsCollected))
		for k, v := range base.MetricsCollected {
			clone.MetricsCollected[k] = v
		}
	}
	if base.ETFProfile != nil {
		profile := *base.ETFProfile
		clone.ETFProfile = &profile
	}
	clone.ManualOverrides = append([]string(nil), base.ManualOverrides...)
	return &clone
}

func dropWarningsContaining(warnings []string, terms ...string) []string {
	kept := warnings[:0]
	for _, w := range warnings {
		match := false
		for _, term := range terms {
			if strings.Contains(w, term) {
				match = true
				break
			}
		}
		if !match {
			kept = append(kept, w)
		}
	}
	return kept
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
