// Package fallback provides a built-in example data source used when no
// live adapter is configured. Documents built from it carry primary_source
// "fallback_example" so downstream consumers can discount them.
package fallback

import (
	"context"
	"fmt"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/logger"
)

// SourceName is the adapter identity in priority policies and provenance.
const SourceName = "fallback_example"

// Adapter serves a static snapshot of well-known tickers, with a generic
// placeholder for everything else. It never fails and never returns nil.
type Adapter struct {
	logger *logger.Logger
}

// New creates the fallback adapter. The logger may be nil.
func New(l *logger.Logger) *Adapter {
	return &Adapter{logger: l}
}

func (a *Adapter) Name() string { return SourceName }

func (a *Adapter) Fetch(_ context.Context, ticker string) (*models.SourceResult, error) {
	data, meta, ok := exampleData(ticker)
	if !ok {
		data, meta = defaultData(ticker)
	}
	if a.logger != nil {
		a.logger.Warn("using fallback example data", logger.String("ticker", ticker))
	}
	return &models.SourceResult{
		Data:     data,
		Meta:     meta,
		Source:   SourceName,
		Coverage: len(data) + len(meta),
	}, nil
}

type example struct {
	data map[models.Field]float64
	meta map[models.Field]string
}

var examples = map[string]example{
	"AAPL": {
		data: map[models.Field]float64{
			models.FieldCurrentPrice:    230.45,
			models.FieldMarketCap:       3.5e12,
			models.FieldPERatio:         28.5,
			models.FieldPEGRatio:        2.3,
			models.FieldPriceToBook:     46.5,
			models.FieldROE:             147.5,
			models.FieldROIC:            28.1,
			models.FieldOperatingMargin: 29.8,
			models.FieldNetMargin:       25.3,
			models.FieldDebtToEquity:    1.95,
			models.FieldCurrentRatio:    0.98,
			models.FieldQuickRatio:      0.87,
			models.FieldRevenueGrowth:   8.1,
			models.FieldEarningsGrowth:  7.4,
		},
		meta: map[models.Field]string{
			models.FieldCompanyName: "Apple Inc.",
			models.FieldSector:      "Technology",
			models.FieldQuoteType:   "EQUITY",
		},
	},
	"MSFT": {
		data: map[models.Field]float64{
			models.FieldCurrentPrice:    425.30,
			models.FieldMarketCap:       3.1e12,
			models.FieldPERatio:         35.2,
			models.FieldPEGRatio:        2.1,
			models.FieldPriceToBook:     14.2,
			models.FieldROE:             39.2,
			models.FieldROIC:            23.5,
			models.FieldOperatingMargin: 42.1,
			models.FieldNetMargin:       34.1,
			models.FieldDebtToEquity:    0.69,
			models.FieldCurrentRatio:    1.82,
			models.FieldQuickRatio:      1.6,
			models.FieldRevenueGrowth:   12.5,
			models.FieldEarningsGrowth:  14.0,
		},
		meta: map[models.Field]string{
			models.FieldCompanyName: "Microsoft Corporation",
			models.FieldSector:      "Technology",
			models.FieldQuoteType:   "EQUITY",
		},
	},
	"NVDA": {
		data: map[models.Field]float64{
			models.FieldCurrentPrice:    880.25,
			models.FieldMarketCap:       2.2e12,
			models.FieldPERatio:         52.0,
			models.FieldPEGRatio:        1.43,
			models.FieldPriceToBook:     44.4,
			models.FieldROE:             109.4,
			models.FieldROIC:            76.6,
			models.FieldOperatingMargin: 58.1,
			models.FieldNetMargin:       52.4,
			models.FieldDebtToEquity:    0.18,
			models.FieldCurrentRatio:    3.5,
			models.FieldQuickRatio:      3.2,
			models.FieldRevenueGrowth:   55.6,
			models.FieldEarningsGrowth:  51.2,
		},
		meta: map[models.Field]string{
			models.FieldCompanyName: "NVIDIA Corporation",
			models.FieldSector:      "Technology - Semiconductors",
			models.FieldQuoteType:   "EQUITY",
		},
	},
	"INTC": {
		// Loss-making example: negative P/E survives the merge but the
		// sanity pass nulls it.
		data: map[models.Field]float64{
			models.FieldCurrentPrice:    25.30,
			models.FieldMarketCap:       103e9,
			models.FieldPERatio:         -15.2,
			models.FieldPriceToBook:     1.2,
			models.FieldROE:             -2.3,
			models.FieldROIC:            -1.8,
			models.FieldOperatingMargin: 2.1,
			models.FieldNetMargin:       -5.2,
			models.FieldDebtToEquity:    0.45,
			models.FieldCurrentRatio:    1.8,
			models.FieldQuickRatio:      1.5,
			models.FieldRevenueGrowth:   -2.5,
			models.FieldEarningsGrowth:  -15.8,
		},
		meta: map[models.Field]string{
			models.FieldCompanyName: "Intel Corporation",
			models.FieldSector:      "Technology - Semiconductors",
			models.FieldQuoteType:   "EQUITY",
		},
	},
	"IAU": {
		data: map[models.Field]float64{
			models.FieldCurrentPrice:  82.5,
			models.FieldNAV:           79.6,
			models.FieldExpenseRatio:  0.25,
			models.FieldYTDReturn:     61.5,
			models.FieldAUM:           32e9,
			models.FieldDividendYield: 0.0,
			models.FieldHoldingsCount: 1,
		},
		meta: map[models.Field]string{
			models.FieldCompanyName: "iShares Gold Trust",
			models.FieldSector:      "Commodity ETF",
			models.FieldCategory:    "Commodity - Precious Metals",
		},
	},
	"VOO": {
		data: map[models.Field]float64{
			models.FieldCurrentPrice:  617.2,
			models.FieldNAV:           617.1,
			models.FieldExpenseRatio:  0.03,
			models.FieldYTDReturn:     18.4,
			models.FieldAUM:           560e9,
			models.FieldDividendYield: 1.45,
			models.FieldHoldingsCount: 500,
		},
		meta: map[models.Field]string{
			models.FieldCompanyName: "Vanguard S&P 500 ETF",
			models.FieldSector:      "Large Blend ETF",
			models.FieldCategory:    "Large Blend",
		},
	},
	"VNQ": {
		data: map[models.Field]float64{
			models.FieldCurrentPrice:  105.4,
			models.FieldNAV:           105.0,
			models.FieldExpenseRatio:  0.12,
			models.FieldYTDReturn:     9.2,
			models.FieldAUM:           36e9,
			models.FieldDividendYield: 3.98,
			models.FieldHoldingsCount: 160,
		},
		meta: map[models.Field]string{
			models.FieldCompanyName: "Vanguard Real Estate ETF",
			models.FieldSector:      "Real Estate ETF",
			models.FieldCategory:    "Real Estate",
		},
	},
}

func exampleData(ticker string) (map[models.Field]float64, map[models.Field]string, bool) {
	ex, ok := examples[ticker]
	if !ok {
		return nil, nil, false
	}
	return cloneData(ex.data), cloneMeta(ex.meta), true
}

func defaultData(ticker string) (map[models.Field]float64, map[models.Field]string) {
	data := map[models.Field]float64{
		models.FieldCurrentPrice:    100.0,
		models.FieldMarketCap:       50e9,
		models.FieldPERatio:         20.0,
		models.FieldPEGRatio:        1.5,
		models.FieldPriceToBook:     3.0,
		models.FieldROE:             15.0,
		models.FieldROIC:            10.0,
		models.FieldOperatingMargin: 15.0,
		models.FieldNetMargin:       12.0,
		models.FieldDebtToEquity:    1.0,
		models.FieldCurrentRatio:    1.5,
		models.FieldQuickRatio:      1.2,
		models.FieldRevenueGrowth:   5.0,
		models.FieldEarningsGrowth:  4.0,
	}
	meta := map[models.Field]string{
		models.FieldCompanyName: fmt.Sprintf("%s Corporation", ticker),
		models.FieldSector:      "Unknown",
		models.FieldQuoteType:   "EQUITY",
	}
	return data, meta
}

func cloneData(src map[models.Field]float64) map[models.Field]float64 {
	out := make(map[models.Field]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneMeta(src map[models.Field]string) map[models.Field]string {
	out := make(map[models.Field]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
