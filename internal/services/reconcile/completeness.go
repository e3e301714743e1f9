package reconcile

import (
	"math"
	"strings"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

// requiredFields drive the completeness score.
var requiredFields = []models.Field{
	models.FieldPERatio,
	models.FieldPEGRatio,
	models.FieldPriceToBook,
	models.FieldROE,
	models.FieldROIC,
	models.FieldOperatingMargin,
	models.FieldNetMargin,
	models.FieldDebtToEquity,
	models.FieldCurrentRatio,
	models.FieldQuickRatio,
	models.FieldRevenueGrowth,
	models.FieldEarningsGrowth,
}

// completenessAlternatives lets a related field stand in for a missing one.
var completenessAlternatives = map[models.Field][]models.Field{
	models.FieldRevenueGrowth: {
		models.FieldRevenueGrowth5Y,
		models.FieldRevenueGrowthQoQ,
	},
	models.FieldEarningsGrowth: {
		models.FieldEarningsGrowthTY,
		models.FieldEarningsGrowthNY,
		models.FieldEarningsGrowthN5Y,
		models.FieldEarningsGrowthQoQ,
	},
}

// criticalAlternatives soften the missing-critical flag.
var criticalAlternatives = map[models.Field][]models.Field{
	models.FieldROE:             {models.FieldROA},
	models.FieldROIC:            {models.FieldROE},
	models.FieldOperatingMargin: {models.FieldGrossMargin},
	models.FieldNetMargin:       {models.FieldOperatingMargin},
}

// Completeness returns the share of required fields present (directly or via
// an alternative), as a percentage rounded to one decimal.
func Completeness(m *models.Metrics) float64 {
	available := 0
	for _, field := range requiredFields {
		if m.Has(field) {
			available++
			continue
		}
		for _, alt := range completenessAlternatives[field] {
			if m.Has(alt) {
				available++
				break
			}
		}
	}
	pct := float64(available) / float64(len(requiredFields)) * 100
	return math.Round(pct*10) / 10
}

// trackedFields appear in the metrics_collected map of the output document.
var trackedFields = []models.Field{
	models.FieldPERatio,
	models.FieldPEGRatio,
	models.FieldPriceToBook,
	models.FieldROE,
	models.FieldROIC,
	models.FieldROA,
	models.FieldOperatingMargin,
	models.FieldNetMargin,
	models.FieldDebtToEquity,
	models.FieldCurrentRatio,
	models.FieldQuickRatio,
	models.FieldRevenueGrowth,
	models.FieldRevenueGrowthQoQ,
	models.FieldRevenueGrowth5Y,
	models.FieldEarningsGrowth,
	models.FieldEarningsGrowthTY,
	models.FieldEarningsGrowthNY,
	models.FieldEarningsGrowthN5Y,
	models.FieldCurrentPrice,
	models.FieldEPSTTM,
}

// Collected reports which tracked fields hold values.
func Collected(m *models.Metrics) map[models.Field]bool {
	out := make(map[models.Field]bool, len(trackedFields))
	for _, f := range trackedFields {
		out[f] = m.Has(f)
	}
	return out
}

// FlagMissingCritical appends a warning listing critical fields that are
// absent with no usable alternative, and recommends manual input.
func FlagMissingCritical(doc *models.Document, critical []models.Field) {
	var missing []string
	for _, field := range critical {
		if doc.Metrics.Has(field) {
			continue
		}
		covered := false
		for _, alt := range criticalAlternatives[field] {
			if doc.Metrics.Has(alt) {
				covered = true
				break
			}
		}
		if !covered {
			missing = append(missing, string(field))
		}
	}
	if len(missing) == 0 {
		return
	}
	doc.AddWarning("Sources did not return critical metrics: " +
		strings.Join(missing, ", ") +
		". Enter these values manually and rerun if available.")
	doc.ManualInputRecommended = true
}
