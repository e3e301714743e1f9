package normalize

import (
	"math"
	"sort"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
)

// NeutralScore is returned when no benchmark exists for a sector or metric.
const NeutralScore = 50.0

// SectorNormalizer scores a metric value against its sector's historical
// distribution. The z-score measures how many standard deviations a company
// sits from its sector mean, so a 12% ROE utility and a 30% ROE software
// company can both land "above average" against their own peers.
type SectorNormalizer struct {
	benchmarks map[string]map[models.Field]models.SectorBenchmark
	recorder   repository.Metrics
}

// NewSectorNormalizer creates a normalizer; nil benchmarks fall back to
// DefaultSectorBenchmarks. recorder may be nil.
func NewSectorNormalizer(benchmarks map[string]map[models.Field]models.SectorBenchmark, recorder repository.Metrics) *SectorNormalizer {
	if benchmarks == nil {
		benchmarks = DefaultSectorBenchmarks()
	}
	return &SectorNormalizer{benchmarks: benchmarks, recorder: recorder}
}

// ZScore computes (value - mean) / std for the metric in the sector. The
// second return is false when no benchmark exists.
func (s *SectorNormalizer) ZScore(value float64, metric models.Field, sector string) (float64, bool) {
	sectorData, ok := s.benchmarks[sector]
	if !ok {
		return 0, false
	}
	benchmark, ok := sectorData[metric]
	if !ok {
		return 0, false
	}
	if s.recorder != nil {
		s.recorder.RecordSectorUsage(sector)
	}
	if benchmark.Std == 0 {
		// A degenerate benchmark scores everything as the sector mean.
		if s.recorder != nil {
			s.recorder.RecordError("sector_benchmark_degenerate")
		}
		return 0, true
	}
	return (value - benchmark.Mean) / benchmark.Std, true
}

// ScoreFromZ maps a z-score onto the 0-100 scale. invert flips the sign for
// lower-is-better metrics such as debt_to_equity. A nil z-score is neutral.
func (s *SectorNormalizer) ScoreFromZ(z *float64, invert bool) float64 {
	if z == nil {
		return NeutralScore
	}
	v := *z
	if invert {
		v = -v
	}
	switch {
	case v > 2.0:
		return 100.0
	case v > 1.0:
		return 85.0
	case v > 0:
		return 70.0
	case v > -1.0:
		return 50.0
	case v > -2.0:
		return 30.0
	default:
		return 15.0
	}
}

// Normalize scores value for the metric within the sector and attaches the
// benchmark used. Without a benchmark the result is neutral with no z-score.
func (s *SectorNormalizer) Normalize(value float64, metric models.Field, sector string, invert bool) models.ZScoreResult {
	result := models.ZScoreResult{Value: value}

	z, ok := s.ZScore(value, metric, sector)
	if !ok {
		result.Score = NeutralScore
		return result
	}

	result.ZScore = &z
	result.Score = s.ScoreFromZ(&z, invert)

	benchmark := s.benchmarks[sector][metric]
	result.SectorMean = &benchmark.Mean
	result.SectorStd = &benchmark.Std

	// Linear percentile approximation: z=0 is the median, z=±3 the tails.
	percentile := math.Round((50+z/3*50)*10) / 10
	percentile = math.Max(0, math.Min(100, percentile))
	result.Percentile = &percentile

	return result
}

// Sectors lists the sectors with benchmarks, sorted.
func (s *SectorNormalizer) Sectors() []string {
	out := make([]string, 0, len(s.benchmarks))
	for sector := range s.benchmarks {
		out = append(out, sector)
	}
	sort.Strings(out)
	return out
}

// MetricsFor lists the benchmarked metrics for a sector, sorted.
func (s *SectorNormalizer) MetricsFor(sector string) []models.Field {
	data, ok := s.benchmarks[sector]
	if !ok {
		return nil
	}
	out := make([]models.Field, 0, len(data))
	for metric := range data {
		out = append(out, metric)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
