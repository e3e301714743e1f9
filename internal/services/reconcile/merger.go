package reconcile

import (
	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

// Merger folds SourceResults into a running metric record while maintaining
// provenance. Deterministic given a fixed presentation order of results.
type Merger struct {
	policy PriorityPolicy
}

// NewMerger creates a merger with the given priority policy.
func NewMerger(policy PriorityPolicy) *Merger {
	return &Merger{policy: policy}
}

// Merge folds one source result into the running record. Fields with an
// explicit priority order may be replaced per the policy; all other fields
// are first-non-null-wins. Text metadata merges first-non-empty.
func (m *Merger) Merge(metrics *models.Metrics, prov map[models.Field]string, meta map[models.Field]string, res *models.SourceResult) {
	if res == nil {
		return
	}
	for _, field := range models.NumericFields {
		value, ok := res.Value(field)
		if !ok {
			continue
		}
		current, set := metrics.Value(field)
		if !set {
			metrics.Set(field, value)
			prov[field] = m.provenanceLabel(prov, field, res.Source)
			continue
		}
		if m.policy.ShouldReplace(field, prov[field], res.Source, current, value) {
			metrics.Set(field, value)
			prov[field] = m.provenanceLabel(prov, field, res.Source)
		}
	}
	for field, value := range res.Meta {
		if value == "" {
			continue
		}
		if _, exists := meta[field]; !exists {
			meta[field] = value
			prov[field] = m.provenanceLabel(prov, field, res.Source)
		}
	}
}

// provenanceLabel keeps an existing sub-tagged label when the same base
// source rewrites a field ("alpha_vantage:quote" survives a plain
// "alpha_vantage" write).
func (m *Merger) provenanceLabel(prov map[models.Field]string, field models.Field, source string) string {
	existing, ok := prov[field]
	if ok && models.BaseSource(existing) == models.BaseSource(source) {
		return existing
	}
	return source
}
