package classify

import (
	"strings"
	"unicode"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

// ManualOverrides pins well-known tickers whose provider metadata is
// unreliable or absent. Overrides always beat the heuristics.
var ManualOverrides = map[string]models.AssetType{
	"IAU":  models.AssetETF,
	"VOO":  models.AssetETF,
	"VNQ":  models.AssetETF,
	"SPY":  models.AssetETF,
	"QQQ":  models.AssetETF,
	"DIA":  models.AssetETF,
	"GLD":  models.AssetETF,
	"DJI":  models.AssetIndex,
	"DJIA": models.AssetIndex,
	"^DJI": models.AssetIndex,
	"ADA":  models.AssetCrypto,
}

// Classifier assigns a broad asset class from source metadata. Pure: the
// same input always yields the same classification, which lets callers cache
// the result indefinitely.
type Classifier struct {
	overrides map[string]models.AssetType
}

// NewClassifier creates a classifier; nil overrides fall back to
// ManualOverrides.
func NewClassifier(overrides map[string]models.AssetType) *Classifier {
	if overrides == nil {
		overrides = ManualOverrides
	}
	return &Classifier{overrides: overrides}
}

// Classify derives the asset class for the input metadata.
func (c *Classifier) Classify(in models.ClassificationInput) models.AssetClassification {
	ticker := strings.ToUpper(strings.TrimSpace(in.Ticker))
	if ticker == "" {
		ticker = "?"
	}

	rawType := strings.ToUpper(firstNonEmpty(in.QuoteType, in.RawType))
	name := strings.ToUpper(in.CompanyName)
	category := strings.ToUpper(firstNonEmpty(in.Category, in.Sector))

	assetType, ok := c.overrides[ticker]
	if !ok {
		assetType = refine(rawType, name, category)
		if assetType == models.AssetUnknown && looksLikeEquityTicker(ticker) {
			assetType = models.AssetEquity
		}
	}

	source := in.PrimarySource
	if source == "" {
		source = "unknown"
	}

	return models.AssetClassification{
		Ticker:              ticker,
		AssetType:           assetType,
		RawType:             rawType,
		TypeLabel:           assetType.Label(),
		IsAnalyzable:        assetType == models.AssetEquity,
		NeedsSpecialMetrics: assetType.NeedsSpecialMetrics(),
		Source:              source,
	}
}

// refine maps raw provider type strings onto the closed asset vocabulary,
// using name and category hints to catch mislabeled funds.
func refine(rawType, name, category string) models.AssetType {
	if rawType == "" {
		rawType = string(models.AssetUnknown)
	}

	if strings.Contains(name, "ETF") {
		return models.AssetETF
	}

	switch rawType {
	case string(models.AssetEquity):
		if strings.Contains(name, "REIT") || strings.Contains(category, "REIT") {
			return models.AssetREIT
		}
		return models.AssetEquity
	case string(models.AssetETF):
		if strings.Contains(category, "BOND") || strings.Contains(category, "FIXED INCOME") {
			return models.AssetBond
		}
		return models.AssetETF
	case string(models.AssetMutualFund):
		return models.AssetMutualFund
	case string(models.AssetIndex):
		return models.AssetIndex
	case string(models.AssetCurrency):
		return models.AssetCurrency
	case "CRYPTOCURRENCY":
		return models.AssetCrypto
	}
	return models.AssetType(rawType)
}

// looksLikeEquityTicker reports whether a ticker that resolved to no type can
// be assumed to be a common stock: short and purely alphabetic, index carets
// stripped before the letter check.
func looksLikeEquityTicker(ticker string) bool {
	if ticker == "" || len(ticker) > 5 {
		return false
	}
	stripped := strings.ReplaceAll(ticker, "^", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
