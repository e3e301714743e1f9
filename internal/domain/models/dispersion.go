package models

// SourceQuality labels how a dispersion record's sample was assembled.
type SourceQuality string

const (
	QualitySingleSource   SourceQuality = "SINGLE_SOURCE"
	QualityPremiumSources SourceQuality = "PREMIUM_SOURCES"
	QualityMixedSources   SourceQuality = "MIXED_SOURCES"
)

// DispersionRecord is the cross-source agreement analysis for one critical
// field: the consolidated median, the coefficient of variation across the
// retained sample, and the resulting confidence adjustment in [0.5, 1.0].
type DispersionRecord struct {
	Value         float64       `json:"value"`
	Sources       []string      `json:"sources"`
	CV            float64       `json:"cv"`
	ConfidenceAdj float64       `json:"confidence_adj"`
	Quality       SourceQuality `json:"quality"`
}
