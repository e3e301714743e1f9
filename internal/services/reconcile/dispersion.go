package reconcile

import (
	"math"
	"sort"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

// ConfidenceBucket maps a CV upper bound to a confidence adjustment.
type ConfidenceBucket struct {
	MaxCV      float64 `yaml:"max_cv"`
	Confidence float64 `yaml:"confidence"`
}

// DefaultConfidenceBuckets is the monotonic CV -> confidence step function.
// CVs above the last bound fall through to MinConfidence.
var DefaultConfidenceBuckets = []ConfidenceBucket{
	{MaxCV: 5, Confidence: 1.00},
	{MaxCV: 10, Confidence: 0.95},
	{MaxCV: 20, Confidence: 0.85},
	{MaxCV: 40, Confidence: 0.70},
}

// MinConfidence is the floor applied when sources disagree badly.
const MinConfidence = 0.50

// DefaultPremiumSources are the high-trust structured API providers.
var DefaultPremiumSources = []string{"alpha_vantage", "twelvedata"}

// DefaultCriticalFields are the fields re-reconciled from the raw
// multi-source sample after merging.
var DefaultCriticalFields = []models.Field{
	models.FieldPERatio,
	models.FieldPEGRatio,
	models.FieldPriceToBook,
	models.FieldROE,
	models.FieldROIC,
	models.FieldOperatingMargin,
	models.FieldNetMargin,
	models.FieldEVToEBIT,
	models.FieldFCFYield,
	models.FieldEnterpriseValue,
	models.FieldFreeCashFlow,
	models.FieldEBIT,
	models.FieldNetDebtToEBITDA,
	models.FieldInterestCoverage,
	models.FieldTotalDebt,
	models.FieldCashAndEquivalents,
	models.FieldEBITDA,
	models.FieldInterestExpense,
}

// DispersionAnalyzer re-derives critical fields from the raw multi-source
// sample. Unlike the merger, which resolves which single source wins, the
// analyzer consolidates all contributions into a median and scores how well
// the sources agree.
type DispersionAnalyzer struct {
	premium  map[string]struct{}
	buckets  []ConfidenceBucket
	critical []models.Field
}

// NewDispersionAnalyzer creates an analyzer. Nil slices fall back to the
// stock premium set, buckets and critical field list.
func NewDispersionAnalyzer(premiumSources []string, buckets []ConfidenceBucket, critical []models.Field) *DispersionAnalyzer {
	if premiumSources == nil {
		premiumSources = DefaultPremiumSources
	}
	if buckets == nil {
		buckets = DefaultConfidenceBuckets
	}
	if critical == nil {
		critical = DefaultCriticalFields
	}
	set := make(map[string]struct{}, len(premiumSources))
	for _, s := range premiumSources {
		set[s] = struct{}{}
	}
	return &DispersionAnalyzer{premium: set, buckets: buckets, critical: critical}
}

// CriticalFields returns the fields the analyzer re-reconciles.
func (a *DispersionAnalyzer) CriticalFields() []models.Field {
	return a.critical
}

// Analyze consolidates every non-null contribution for field across results.
// Returns nil when no source reported the field.
func (a *DispersionAnalyzer) Analyze(field models.Field, results []*models.SourceResult) *models.DispersionRecord {
	var values []float64
	var sources []string
	for _, res := range results {
		if v, ok := res.Value(field); ok {
			values = append(values, v)
			sources = append(sources, models.BaseSource(res.Source))
		}
	}

	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 {
		return &models.DispersionRecord{
			Value:         values[0],
			Sources:       sources,
			CV:            0,
			ConfidenceAdj: 1.0,
			Quality:       models.QualitySingleSource,
		}
	}

	// With two or more premium contributions, discard the rest.
	quality := models.QualityMixedSources
	var premValues []float64
	var premSources []string
	for i, s := range sources {
		if _, ok := a.premium[s]; ok {
			premValues = append(premValues, values[i])
			premSources = append(premSources, s)
		}
	}
	if len(premValues) >= 2 {
		values = premValues
		sources = premSources
		quality = models.QualityPremiumSources
	}

	consolidated := median(values)
	cv := coefficientOfVariation(values)

	return &models.DispersionRecord{
		Value:         consolidated,
		Sources:       sources,
		CV:            cv,
		ConfidenceAdj: a.confidence(cv),
		Quality:       quality,
	}
}

func (a *DispersionAnalyzer) confidence(cv float64) float64 {
	for _, b := range a.buckets {
		if cv < b.MaxCV {
			return b.Confidence
		}
	}
	return MinConfidence
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the population standard deviation.
func stddev(values []float64) float64 {
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// coefficientOfVariation is std/|mean|*100, zero when the mean vanishes.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if math.Abs(m) < 1e-9 {
		return 0
	}
	return stddev(values) / math.Abs(m) * 100
}
