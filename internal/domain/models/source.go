package models

// SourceResult is one adapter's partial view of a ticker. It lives for a
// single reconciliation run.
type SourceResult struct {
	// Data holds numeric metrics keyed by vocabulary field.
	Data map[Field]float64
	// Meta holds text metadata (company name, sector, currency, ...).
	Meta map[Field]string
	// Source identifies the adapter, optionally sub-tagged ("alpha_vantage:quote").
	Source string
	// Coverage counts fields the adapter reported.
	Coverage int
}

// Value returns the reported value for f, if any.
func (r *SourceResult) Value(f Field) (float64, bool) {
	if r == nil || r.Data == nil {
		return 0, false
	}
	v, ok := r.Data[f]
	return v, ok
}

// BaseSource strips an endpoint sub-tag: "alpha_vantage:quote" -> "alpha_vantage".
func BaseSource(source string) string {
	for i := 0; i < len(source); i++ {
		if source[i] == ':' {
			return source[:i]
		}
	}
	return source
}
