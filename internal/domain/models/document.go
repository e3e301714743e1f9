package models

import "time"

// SchemaVersion tags the output document layout. Downstream consumers must
// re-reconcile when the version they cached does not match.
const SchemaVersion = 3

// ETFProfile is the informational block attached to ETF documents.
type ETFProfile struct {
	Ticker      string `json:"ticker"`
	NAVCurrency string `json:"nav_currency,omitempty"`
	Category    string `json:"category,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Description string `json:"description,omitempty"`
	Index       string `json:"index,omitempty"`
	DataSource  string `json:"data_source,omitempty"`
}

// Document is the finalized, provenance-tracked output of one reconciliation
// run. It is handed to callers immutable; downstream consumers (scoring,
// snapshots, publishing) read it but never write back.
type Document struct {
	Ticker  string   `json:"ticker"`
	Metrics *Metrics `json:"metrics"`

	CompanyName string `json:"company_name,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Category    string `json:"category,omitempty"`

	Warnings   []string                   `json:"warnings"`
	Provenance map[Field]string           `json:"provenance"`
	Dispersion map[Field]DispersionRecord `json:"dispersion,omitempty"`

	AssetType        AssetType           `json:"asset_type"`
	AssetTypeLabel   string              `json:"asset_type_label"`
	Classification   AssetClassification `json:"asset_classification"`
	AnalysisAllowed  bool                `json:"analysis_allowed"`
	AnalysisNote     string              `json:"analysis_note,omitempty"`
	ETFProfile       *ETFProfile         `json:"etf_profile,omitempty"`
	DataCompleteness float64             `json:"data_completeness"`
	MetricsCollected map[Field]bool      `json:"metrics_collected,omitempty"`

	PrimarySource          string   `json:"primary_source,omitempty"`
	ManualInputRecommended bool     `json:"manual_input_recommended,omitempty"`
	ManualOverrides        []string `json:"manual_overrides,omitempty"`

	SchemaVersion int       `json:"schema_version"`
	CollectedAt   time.Time `json:"collected_at"`
}

// AddWarning appends msg unless an identical warning is already present.
// Warnings stay ordered and append-only.
func (d *Document) AddWarning(msg string) {
	for _, w := range d.Warnings {
		if w == msg {
			return
		}
	}
	d.Warnings = append(d.Warnings, msg)
}
