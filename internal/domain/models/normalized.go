package models

// Period is an accounting period tag within the normalization hierarchy.
type Period string

const (
	PeriodTTM Period = "TTM"
	PeriodMRQ Period = "MRQ"
	PeriodMRY Period = "MRY"
	Period5Y  Period = "5Y"
	PeriodFWD Period = "FWD"

	// PeriodTTMAssumed labels an unsuffixed key treated as trailing-twelve-months.
	PeriodTTMAssumed Period = "TTM (assumed)"
)

// NormalizedMetric is the period normalizer's output for one metric base.
type NormalizedMetric struct {
	Value         float64  `json:"value"`
	Period        Period   `json:"period"`
	FallbackChain []Period `json:"fallback_chain"`
	SourceKey     string   `json:"source_key"`
}

// BatchNormalization reports a batch normalization pass.
type BatchNormalization struct {
	Values          map[string]float64 `json:"values"`
	Periods         map[string]Period  `json:"periods"`
	NormalizedCount int                `json:"normalized_count"`
	FailedCount     int                `json:"failed_count"`
	FailedMetrics   []string           `json:"failed_metrics"`
}

// Conversion is the currency normalizer's output. Assumed marks an unknown
// source currency converted at 1:1.
type Conversion struct {
	Value         float64 `json:"value"`
	OriginalValue float64 `json:"original_value"`
	From          string  `json:"from_currency"`
	To            string  `json:"to_currency"`
	Rate          float64 `json:"exchange_rate"`
	Assumed       bool    `json:"assumed,omitempty"`
}

// SectorBenchmark is the static {mean, std} reference for one (sector, metric).
type SectorBenchmark struct {
	Mean float64 `json:"mean" yaml:"mean"`
	Std  float64 `json:"std" yaml:"std"`
}

// ZScoreResult is the sector-relative normalization of one metric value.
type ZScoreResult struct {
	Score      float64  `json:"score"`
	ZScore     *float64 `json:"z_score"`
	Value      float64  `json:"value"`
	SectorMean *float64 `json:"sector_mean,omitempty"`
	SectorStd  *float64 `json:"sector_std,omitempty"`
	Percentile *float64 `json:"percentile,omitempty"`
}
