package classify

import "github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"

// ETFReference is a static snapshot for funds whose fundamentals the metric
// APIs do not cover.
type ETFReference struct {
	FundName string
	Profile  models.ETFProfile
	Metrics  map[models.Field]float64
}

// StaticETFReferences returns hand-maintained profiles for commodity and
// index funds. Values are point-in-time snapshots, refreshed manually.
func StaticETFReferences() map[string]ETFReference {
	return map[string]ETFReference{
		"IAU": {
			FundName: "iShares Gold Trust",
			Profile: models.ETFProfile{
				Ticker:      "IAU",
				NAVCurrency: "USD",
				Category:    "Commodity - Precious Metals",
				Provider:    "BlackRock",
				Description: "Tracks the spot price of physical gold held in vaulted bullion.",
				Index:       "Gold spot price",
				DataSource:  "manual snapshot 2025-10-20",
			},
			Metrics: map[models.Field]float64{
				models.FieldNAV:           79.60,
				models.FieldExpenseRatio:  0.25,
				models.FieldYTDReturn:     61.50,
				models.FieldAUM:           32_000_000_000,
				models.FieldDividendYield: 0.00,
				models.FieldHoldingsCount: 1,
			},
		},
		"VOO": {
			FundName: "Vanguard S&P 500 ETF",
			Profile: models.ETFProfile{
				Ticker:      "VOO",
				NAVCurrency: "USD",
				Category:    "Large Blend",
				Provider:    "Vanguard",
				Description: "Replicates the S&P 500 index at a very low cost.",
				Index:       "S&P 500",
				DataSource:  "manual snapshot 2025-10-20",
			},
			Metrics: map[models.Field]float64{
				models.FieldNAV:           617.10,
				models.FieldExpenseRatio:  0.03,
				models.FieldYTDReturn:     18.40,
				models.FieldAUM:           560_000_000_000,
				models.FieldDividendYield: 1.45,
				models.FieldHoldingsCount: 500,
			},
		},
		"VNQ": {
			FundName: "Vanguard Real Estate ETF",
			Profile: models.ETFProfile{
				Ticker:      "VNQ",
				NAVCurrency: "USD",
				Category:    "Real Estate",
				Provider:    "Vanguard",
				Description: "Diversified exposure to US real estate through listed REITs.",
				Index:       "MSCI US Investable Market Real Estate",
				DataSource:  "manual snapshot 2025-10-20",
			},
			Metrics: map[models.Field]float64{
				models.FieldNAV:           105.00,
				models.FieldExpenseRatio:  0.12,
				models.FieldYTDReturn:     9.20,
				models.FieldAUM:           36_000_000_000,
				models.FieldDividendYield: 3.98,
				models.FieldHoldingsCount: 160,
			},
		},
	}
}

// PremiumDiscount returns the percentage gap between market price and NAV.
// The second return is false when either input is unusable.
func PremiumDiscount(price, nav float64) (float64, bool) {
	if price == 0 || nav <= 0 {
		return 0, false
	}
	return (price - nav) / nav * 100, true
}
