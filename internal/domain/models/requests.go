package models

// ReconcileRequest asks for a full multi-source reconciliation of one ticker.
type ReconcileRequest struct {
	Ticker string `json:"ticker" validate:"required,min=1,max=12"`
}

// OverridesRequest applies manual metric overrides on top of a fresh
// reconciliation. Keys are metric field names; unknown or non-editable
// fields are reported back, not applied.
type OverridesRequest struct {
	Ticker  string             `json:"ticker" validate:"required,min=1,max=12"`
	Metrics map[string]float64 `json:"metrics" validate:"required,min=1"`
}

// NormalizeRequest resolves raw period-suffixed metric keys into canonical
// per-base values. Allowed restricts the period hierarchy when non-empty.
type NormalizeRequest struct {
	Values  map[string]float64 `json:"values" validate:"required,min=1"`
	Bases   []string           `json:"bases" validate:"required,min=1"`
	Allowed []string           `json:"allowed,omitempty"`
}

// SectorScoreRequest scores one metric value against its sector benchmark.
// Value is a pointer so zero survives validation.
type SectorScoreRequest struct {
	Value  *float64 `json:"value" validate:"required"`
	Metric string   `json:"metric" validate:"required"`
	Sector string   `json:"sector" validate:"required"`
	Invert bool     `json:"invert"`
}

// ConvertRequest converts a value between supported currencies.
type ConvertRequest struct {
	Value *float64 `json:"value" validate:"required"`
	From  string   `json:"from_currency" validate:"required,len=3"`
	To    string   `json:"to_currency" validate:"required,len=3"`
}

// RefreshRequest enqueues a background reconciliation for one ticker.
type RefreshRequest struct {
	Ticker string `json:"ticker" validate:"required,min=1,max=12"`
}
