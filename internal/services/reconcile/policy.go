// Package reconcile implements the multi-source metric reconciliation core:
// priority-based field merging, cross-source dispersion analysis, derived
// metric computation and sanity validation.
package reconcile

import (
	"math"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

const epsilon = 1e-6

// PriorityPolicy decides whether an incoming source may replace the current
// holder of a field. Two orthogonal rules: a total order over source
// identifiers per field, and a relative-delta override predicate for
// same-rank sources.
type PriorityPolicy struct {
	// Order maps a field to its source priority list, best first. Fields
	// absent from the map merge first-non-null-wins.
	Order map[models.Field][]string
	// OverrideDelta is the relative disagreement at which a same-rank source
	// replaces the current value (0.25 = 25%).
	OverrideDelta float64
}

// DefaultPriorityOrder prefers structured API sources over scraped HTML for
// the price-like fields where mis-parsing and scaling issues are common.
func DefaultPriorityOrder() map[models.Field][]string {
	order := []string{
		"manual_override",
		"twelvedata",
		"fmp",
		"alpha_vantage",
		"yahoo",
		"finviz",
		"marketwatch",
		"fallback_example",
	}
	return map[models.Field][]string{
		models.FieldCurrentPrice: order,
		models.FieldMarketCap:    order,
	}
}

// DefaultPolicy returns the policy with the stock priority lists and the 25%
// override threshold.
func DefaultPolicy() PriorityPolicy {
	return PriorityPolicy{
		Order:         DefaultPriorityOrder(),
		OverrideDelta: 0.25,
	}
}

// HasOrder reports whether field carries an explicit priority list.
func (p PriorityPolicy) HasOrder(field models.Field) bool {
	return len(p.Order[field]) > 0
}

// Rank returns the index of source in the field's priority list; sources
// absent from the list (and empty sources) get the worst rank. Sub-tags
// are stripped before lookup.
func (p PriorityPolicy) Rank(field models.Field, source string) int {
	order := p.Order[field]
	if len(order) == 0 {
		return 0
	}
	if source == "" {
		return len(order)
	}
	base := models.BaseSource(source)
	for i, s := range order {
		if s == base {
			return i
		}
	}
	return len(order)
}

// ShouldReplace applies the two merge rules for a field that already holds a
// value: a strictly better rank always wins; an equal rank wins only when the
// values disagree by at least OverrideDelta relative to the current value.
func (p PriorityPolicy) ShouldReplace(field models.Field, currentSource, incomingSource string, current, incoming float64) bool {
	if !p.HasOrder(field) {
		return false
	}
	currentRank := p.Rank(field, currentSource)
	incomingRank := p.Rank(field, incomingSource)
	if incomingRank < currentRank {
		return true
	}
	if incomingRank > currentRank {
		return false
	}
	baseline := math.Max(math.Abs(current), epsilon)
	return math.Abs(incoming-current)/baseline >= p.OverrideDelta
}
