package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

func TestClassifyEquity(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify(models.ClassificationInput{
		Ticker:        "aapl",
		QuoteType:     "EQUITY",
		CompanyName:   "Apple Inc.",
		Sector:        "Technology",
		PrimarySource: "yahoo",
	})

	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, models.AssetEquity, got.AssetType)
	assert.True(t, got.IsAnalyzable)
	assert.False(t, got.NeedsSpecialMetrics)
	assert.Equal(t, "yahoo", got.Source)
}

func TestClassifyOverrideBeatsHeuristic(t *testing.T) {
	c := NewClassifier(nil)

	// Provider metadata claims EQUITY; the override pins ETF.
	got := c.Classify(models.ClassificationInput{
		Ticker:      "SPY",
		QuoteType:   "EQUITY",
		CompanyName: "SPDR S&P 500 Trust",
	})

	assert.Equal(t, models.AssetETF, got.AssetType)
	assert.False(t, got.IsAnalyzable)
	assert.True(t, got.NeedsSpecialMetrics)
}

func TestClassifyHeuristics(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name string
		in   models.ClassificationInput
		want models.AssetType
	}{
		{
			"etf in name wins over raw type",
			models.ClassificationInput{Ticker: "SCHD", QuoteType: "EQUITY", CompanyName: "Schwab US Dividend Equity ETF"},
			models.AssetETF,
		},
		{
			"reit from name",
			models.ClassificationInput{Ticker: "O", QuoteType: "EQUITY", CompanyName: "Realty Income REIT"},
			models.AssetREIT,
		},
		{
			"reit from category",
			models.ClassificationInput{Ticker: "PLD", QuoteType: "EQUITY", CompanyName: "Prologis", Category: "REIT - Industrial"},
			models.AssetREIT,
		},
		{
			"bond fund from category",
			models.ClassificationInput{Ticker: "BND", QuoteType: "ETF", CompanyName: "Vanguard Total Bond Market", Category: "Fixed Income"},
			models.AssetBond,
		},
		{
			"crypto raw type",
			models.ClassificationInput{Ticker: "BTC-USD", QuoteType: "CRYPTOCURRENCY"},
			models.AssetCrypto,
		},
		{
			"index raw type",
			models.ClassificationInput{Ticker: "^GSPC", QuoteType: "INDEX"},
			models.AssetIndex,
		},
		{
			"long ticker with no type stays unknown",
			models.ClassificationInput{Ticker: "ZZZZZZ"},
			models.AssetUnknown,
		},
		{
			"composite ticker with no type stays unknown",
			models.ClassificationInput{Ticker: "BTC-USD"},
			models.AssetUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.in)
			assert.Equal(t, tt.want, got.AssetType)
		})
	}
}

func TestClassifyAssumesEquityForBareTicker(t *testing.T) {
	c := NewClassifier(nil)

	// A short alphabetic ticker with no resolved type is assumed to be a
	// common stock rather than UNKNOWN, which would null its fundamentals.
	got := c.Classify(models.ClassificationInput{Ticker: "ACME"})

	assert.Equal(t, models.AssetEquity, got.AssetType)
	assert.True(t, got.IsAnalyzable)

	// Numbers or length past five letters disqualify the assumption.
	assert.Equal(t, models.AssetUnknown, c.Classify(models.ClassificationInput{Ticker: "X9"}).AssetType)
	assert.Equal(t, models.AssetUnknown, c.Classify(models.ClassificationInput{Ticker: "ABCDEF"}).AssetType)
}

func TestClassifyStable(t *testing.T) {
	c := NewClassifier(nil)
	in := models.ClassificationInput{Ticker: "VNQ", QuoteType: "EQUITY", CompanyName: "Vanguard Real Estate ETF"}

	first := c.Classify(in)
	second := c.Classify(in)

	assert.Equal(t, first, second)
}

func TestClassifyFallsBackToRawType(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify(models.ClassificationInput{Ticker: "X1", QuoteType: "COMMODITY"})
	assert.Equal(t, models.AssetCommodity, got.AssetType)
	assert.Equal(t, "Commodity", got.TypeLabel)
}

func TestPremiumDiscount(t *testing.T) {
	got, ok := PremiumDiscount(102, 100)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, got, 1e-9)

	got, ok = PremiumDiscount(95, 100)
	assert.True(t, ok)
	assert.InDelta(t, -5.0, got, 1e-9)

	_, ok = PremiumDiscount(100, 0)
	assert.False(t, ok)
	_, ok = PremiumDiscount(0, 100)
	assert.False(t, ok)
}

func TestStaticETFReferences(t *testing.T) {
	refs := StaticETFReferences()

	voo, ok := refs["VOO"]
	assert.True(t, ok)
	assert.Equal(t, "Vanguard S&P 500 ETF", voo.FundName)
	assert.Equal(t, 617.10, voo.Metrics[models.FieldNAV])
	assert.Equal(t, "S&P 500", voo.Profile.Index)
}
