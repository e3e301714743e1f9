package models

// AssetType is the broad asset class assigned by the classification gate.
type AssetType string

const (
	AssetEquity     AssetType = "EQUITY"
	AssetETF        AssetType = "ETF"
	AssetREIT       AssetType = "REIT"
	AssetBond       AssetType = "BOND"
	AssetMutualFund AssetType = "MUTUALFUND"
	AssetIndex      AssetType = "INDEX"
	AssetCurrency   AssetType = "CURRENCY"
	AssetCrypto     AssetType = "CRYPTO"
	AssetCommodity  AssetType = "COMMODITY"
	AssetUnknown    AssetType = "UNKNOWN"
)

// AssetTypeLabels maps asset types to display labels.
var AssetTypeLabels = map[AssetType]string{
	AssetEquity:     "Stock",
	AssetETF:        "ETF",
	AssetREIT:       "REIT",
	AssetBond:       "Bond",
	AssetMutualFund: "Mutual fund",
	AssetIndex:      "Index",
	AssetCurrency:   "Currency",
	AssetCrypto:     "Cryptocurrency",
	AssetCommodity:  "Commodity",
	AssetUnknown:    "Unknown",
}

// Label returns the display label for t.
func (t AssetType) Label() string {
	if l, ok := AssetTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// specialMetricTypes need non-equity metric treatment (NAV, expense ratio, ...).
var specialMetricTypes = map[AssetType]struct{}{
	AssetETF:        {},
	AssetREIT:       {},
	AssetBond:       {},
	AssetMutualFund: {},
}

// NeedsSpecialMetrics reports whether t requires fund-style metrics.
func (t AssetType) NeedsSpecialMetrics() bool {
	_, ok := specialMetricTypes[t]
	return ok
}

// AssetClassification is the sticky per-ticker classification record.
// Invariant: IsAnalyzable == (AssetType == AssetEquity).
type AssetClassification struct {
	Ticker              string    `json:"ticker"`
	AssetType           AssetType `json:"asset_type"`
	RawType             string    `json:"raw_type,omitempty"`
	TypeLabel           string    `json:"type_label"`
	IsAnalyzable        bool      `json:"is_analyzable"`
	NeedsSpecialMetrics bool      `json:"needs_special_metrics"`
	Source              string    `json:"source"`
}

// ClassificationInput is the metadata the classifier works from.
type ClassificationInput struct {
	Ticker        string
	QuoteType     string
	RawType       string
	CompanyName   string
	Sector        string
	Category      string
	PrimarySource string
}
