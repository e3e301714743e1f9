package reconcile

import (
	"fmt"
	"math"
	"strings"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

// SanityBounds holds the per-family plausibility ranges. Values outside a
// hard range are nulled with a warning; soft thresholds keep the value but
// flag it as unusual.
type SanityBounds struct {
	PEMax      float64 `yaml:"pe_max"`
	PEWarn     float64 `yaml:"pe_warn"`
	PEGMax     float64 `yaml:"peg_max"`
	PEGWarn    float64 `yaml:"peg_warn"`
	MarginMin  float64 `yaml:"margin_min"`
	MarginMax  float64 `yaml:"margin_max"`
	ROEWarn    float64 `yaml:"roe_warn"`
	GrowthMin  float64 `yaml:"growth_min"`
	GrowthMax  float64 `yaml:"growth_max"`
	ROICEstCap float64 `yaml:"roic_estimate_cap"`
}

// DefaultSanityBounds returns the stock bounds.
func DefaultSanityBounds() SanityBounds {
	return SanityBounds{
		PEMax:      1000,
		PEWarn:     80,
		PEGMax:     50,
		PEGWarn:    8,
		MarginMin:  -50,
		MarginMax:  200,
		ROEWarn:    80,
		GrowthMin:  -100,
		GrowthMax:  300,
		ROICEstCap: 120,
	}
}

var marginFields = []models.Field{
	models.FieldROE,
	models.FieldROIC,
	models.FieldROA,
	models.FieldGrossMargin,
	models.FieldOperatingMargin,
	models.FieldNetMargin,
}

var nonNegativeFields = []models.Field{
	models.FieldDebtToEquity,
	models.FieldCurrentRatio,
	models.FieldQuickRatio,
}

var growthFields = []models.Field{
	models.FieldRevenueGrowth,
	models.FieldRevenueGrowthQoQ,
	models.FieldRevenueGrowth5Y,
	models.FieldEarningsGrowth,
	models.FieldEarningsGrowthTY,
	models.FieldEarningsGrowthNY,
	models.FieldEarningsGrowthN5Y,
	models.FieldEarningsGrowthQoQ,
}

// SanityValidator clips or nulls implausible values, emits warnings and
// applies estimation fallbacks. Nothing here is fatal, and applying the
// validator to an already-validated record changes nothing.
type SanityValidator struct {
	bounds SanityBounds
}

// NewSanityValidator creates a validator with the given bounds.
func NewSanityValidator(bounds SanityBounds) *SanityValidator {
	return &SanityValidator{bounds: bounds}
}

// Apply runs range checks, soft warnings, estimation fallbacks and the PEG
// recalculation against doc.Metrics.
func (v *SanityValidator) Apply(doc *models.Document) {
	m := doc.Metrics
	var ignored []string

	if pe, ok := m.Value(models.FieldPERatio); ok {
		if pe <= 0 || pe > v.bounds.PEMax {
			ignored = append(ignored, fmt.Sprintf("P/E (%.2f)", pe))
			m.Clear(models.FieldPERatio)
		} else if pe > v.bounds.PEWarn {
			doc.AddWarning(fmt.Sprintf("Elevated P/E (%.2f). Review growth expectations.", pe))
		}
	}

	if peg, ok := m.Value(models.FieldPEGRatio); ok {
		if peg <= 0 || peg > v.bounds.PEGMax {
			ignored = append(ignored, fmt.Sprintf("PEG (%.2f)", peg))
			m.Clear(models.FieldPEGRatio)
		} else if peg > v.bounds.PEGWarn {
			doc.AddWarning(fmt.Sprintf("Elevated PEG (%.2f).", peg))
		}
	}

	for _, field := range marginFields {
		if val, ok := m.Value(field); ok {
			if val < v.bounds.MarginMin || val > v.bounds.MarginMax {
				ignored = append(ignored, fmt.Sprintf("%s (%.1f%%)", field, val))
				m.Clear(field)
			}
		}
	}
	if roe, ok := m.Value(models.FieldROE); ok && roe > v.bounds.ROEWarn {
		doc.AddWarning(fmt.Sprintf("Extraordinary ROE (%.1f%%). Verify the equity base.", roe))
	}

	for _, field := range nonNegativeFields {
		if val, ok := m.Value(field); ok && val < 0 {
			ignored = append(ignored, fmt.Sprintf("%s (%.2f)", field, val))
			m.Clear(field)
		}
	}

	for _, field := range growthFields {
		if val, ok := m.Value(field); ok {
			if val < v.bounds.GrowthMin || val > v.bounds.GrowthMax {
				ignored = append(ignored, fmt.Sprintf("%s (%.1f%%)", field, val))
				m.Clear(field)
			}
		}
	}

	v.applyEstimates(doc)
	v.maybeRecalcPEG(doc)

	if len(ignored) > 0 {
		doc.AddWarning("Ignored out-of-range: " + strings.Join(ignored, ", ") + ".")
	}
}

// applyEstimates fills missing return metrics from related ones. Each rule
// only fires when its target is absent, so the pass is a fixed point.
func (v *SanityValidator) applyEstimates(doc *models.Document) {
	m := doc.Metrics

	if !m.Has(models.FieldROE) && m.Has(models.FieldEarningsGrowth) {
		if roa, ok := m.Value(models.FieldROA); ok {
			m.Set(models.FieldROE, roa*1.2)
			v.tag(doc, models.FieldROE, "estimated:roa")
			doc.AddWarning("ROE estimated from ROA.")
		}
	}

	if !m.Has(models.FieldROIC) {
		if roe, ok := m.Value(models.FieldROE); ok {
			m.Set(models.FieldROIC, math.Min(roe*0.7, v.bounds.ROICEstCap))
			v.tag(doc, models.FieldROIC, "estimated:roe")
			doc.AddWarning("ROIC estimated from ROE.")
		}
	}
}

// maybeRecalcPEG rebuilds a missing PEG from P/E and the best available
// earnings growth figure.
func (v *SanityValidator) maybeRecalcPEG(doc *models.Document) {
	m := doc.Metrics
	if m.Has(models.FieldPEGRatio) {
		return
	}
	pe, ok := m.Value(models.FieldPERatio)
	if !ok || pe == 0 {
		return
	}
	growthSources := []models.Field{
		models.FieldEarningsGrowthTY,
		models.FieldEarningsGrowthNY,
		models.FieldEarningsGrowthN5Y,
		models.FieldEarningsGrowth,
	}
	var growth float64
	for _, f := range growthSources {
		if g, ok := m.Value(f); ok && g != 0 {
			growth = g
			break
		}
	}
	if growth <= 0 {
		return
	}
	// Growth may arrive as a percent (18.0) or a decimal (0.18).
	peg := pe / growth
	if growth <= 1 {
		peg = pe / (growth * 100)
	}
	m.Set(models.FieldPEGRatio, math.Round(peg*100)/100)
	v.tag(doc, models.FieldPEGRatio, "calculated:pe/growth")
	doc.AddWarning("PEG recalculated from P/E and earnings growth.")
}

// tag records provenance for a value the validator wrote itself, so every
// non-null field keeps exactly one provenance entry.
func (v *SanityValidator) tag(doc *models.Document, field models.Field, source string) {
	if doc.Provenance == nil {
		doc.Provenance = make(map[models.Field]string)
	}
	doc.Provenance[field] = source
}
