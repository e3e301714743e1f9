package normalize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
)

// PeriodHierarchy orders accounting periods by preference. Trailing figures
// beat point-in-time ones, actuals beat estimates.
var PeriodHierarchy = []models.Period{
	models.PeriodTTM,
	models.PeriodMRQ,
	models.PeriodMRY,
	models.Period5Y,
	models.PeriodFWD,
}

// PeriodStats counts normalization outcomes since construction or the last
// Reset.
type PeriodStats struct {
	TotalNormalized int                   `json:"total_normalized"`
	PeriodUsage     map[models.Period]int `json:"period_usage"`
}

// PeriodNormalizer resolves period-suffixed metric keys ("roe_ttm",
// "roe_mry") into a single value per metric base, walking the hierarchy and
// recording which period won. Safe for concurrent use.
type PeriodNormalizer struct {
	mu       sync.Mutex
	stats    PeriodStats
	recorder repository.Metrics
}

// NewPeriodNormalizer creates a normalizer. recorder may be nil.
func NewPeriodNormalizer(recorder repository.Metrics) *PeriodNormalizer {
	return &PeriodNormalizer{
		stats:    PeriodStats{PeriodUsage: make(map[models.Period]int, len(PeriodHierarchy))},
		recorder: recorder,
	}
}

// Normalize picks the best available value for base from raw, which maps
// suffixed keys ("{base}_{period}") and possibly the bare base key to values.
// allowed restricts the candidate periods; nil allows all. Returns nil when
// no candidate key is present.
func (n *PeriodNormalizer) Normalize(base string, raw map[string]float64, allowed []models.Period) *models.NormalizedMetric {
	var chain []models.Period
	for _, period := range PeriodHierarchy {
		if allowed != nil && !containsPeriod(allowed, period) {
			continue
		}
		chain = append(chain, period)
		key := fmt.Sprintf("%s_%s", base, strings.ToLower(string(period)))
		value, ok := raw[key]
		if !ok {
			continue
		}
		n.count(period)
		return &models.NormalizedMetric{
			Value:         value,
			Period:        period,
			FallbackChain: chain,
			SourceKey:     key,
		}
	}

	// An unsuffixed key is treated as trailing-twelve-months.
	if value, ok := raw[base]; ok {
		n.count(models.PeriodTTM)
		return &models.NormalizedMetric{
			Value:         value,
			Period:        models.PeriodTTMAssumed,
			FallbackChain: []models.Period{models.PeriodTTM},
			SourceKey:     base,
		}
	}
	return nil
}

// NormalizeBatch runs Normalize over every name in bases and reports the
// aggregate outcome.
func (n *PeriodNormalizer) NormalizeBatch(raw map[string]float64, bases []string) *models.BatchNormalization {
	out := &models.BatchNormalization{
		Values:  make(map[string]float64, len(bases)),
		Periods: make(map[string]models.Period, len(bases)),
	}
	for _, base := range bases {
		nm := n.Normalize(base, raw, nil)
		if nm == nil {
			out.FailedCount++
			out.FailedMetrics = append(out.FailedMetrics, base)
			continue
		}
		out.Values[base] = nm.Value
		out.Periods[base] = nm.Period
		out.NormalizedCount++
	}
	return out
}

// Stats returns a copy of the accumulated counters.
func (n *PeriodNormalizer) Stats() PeriodStats {
	n.mu.Lock()
	defer n.mu.Unlock()
	usage := make(map[models.Period]int, len(n.stats.PeriodUsage))
	for k, v := range n.stats.PeriodUsage {
		usage[k] = v
	}
	return PeriodStats{TotalNormalized: n.stats.TotalNormalized, PeriodUsage: usage}
}

// Reset zeroes the counters.
func (n *PeriodNormalizer) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stats = PeriodStats{PeriodUsage: make(map[models.Period]int, len(PeriodHierarchy))}
}

func (n *PeriodNormalizer) count(period models.Period) {
	n.mu.Lock()
	n.stats.TotalNormalized++
	n.stats.PeriodUsage[period]++
	n.mu.Unlock()
	if n.recorder != nil {
		n.recorder.RecordPeriodUsage(string(period))
	}
}

func containsPeriod(periods []models.Period, p models.Period) bool {
	for _, candidate := range periods {
		if candidate == p {
			return true
		}
	}
	return false
}
