package normalize

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

// DefaultExchangeRates maps ISO 4217 codes to their USD value. Static
// reference rates; a forex feed can replace them through config.
func DefaultExchangeRates() map[string]float64 {
	return map[string]float64{
		"USD": 1.0,
		"EUR": 1.08,
		"GBP": 1.22,
		"JPY": 0.0067,
		"CAD": 0.72,
		"MXN": 0.058,
		"BRL": 0.20,
		"CNY": 0.14,
		"INR": 0.012,
		"AUD": 0.65,
		"CHF": 1.12,
	}
}

// CurrencyConverter converts monetary values between currencies through a
// USD pivot. Unknown source currencies convert at 1:1 with Assumed set so
// callers can surface a warning. Safe for concurrent use.
type CurrencyConverter struct {
	rates map[string]float64

	mu          sync.Mutex
	conversions int
}

// NewCurrencyConverter creates a converter; nil rates fall back to
// DefaultExchangeRates.
func NewCurrencyConverter(rates map[string]float64) *CurrencyConverter {
	if len(rates) == 0 {
		rates = DefaultExchangeRates()
	}
	normalized := make(map[string]float64, len(rates))
	for code, rate := range rates {
		normalized[strings.ToUpper(code)] = rate
	}
	return &CurrencyConverter{rates: normalized}
}

// Supported reports whether a rate is known for the currency code.
func (c *CurrencyConverter) Supported(code string) bool {
	_, ok := c.rates[strings.ToUpper(code)]
	return ok
}

// SupportedCurrencies returns the known currency codes, sorted.
func (c *CurrencyConverter) SupportedCurrencies() []string {
	codes := make([]string, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Convert converts value from one currency to another. Same-currency calls
// are the identity and do not count as conversions.
func (c *CurrencyConverter) Convert(value float64, from, to string) models.Conversion {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if from == to {
		return models.Conversion{Value: value, OriginalValue: value, From: from, To: to, Rate: 1.0}
	}

	rate := 1.0
	assumed := false
	if fromUSD, ok := c.rates[from]; ok {
		toUSD, ok := c.rates[to]
		if !ok {
			toUSD = 1.0
		}
		rate = fromUSD / toUSD
	} else {
		assumed = true
	}

	c.mu.Lock()
	c.conversions++
	c.mu.Unlock()

	return models.Conversion{
		Value:         value * rate,
		OriginalValue: value,
		From:          from,
		To:            to,
		Rate:          math.Round(rate*1e6) / 1e6,
		Assumed:       assumed,
	}
}

// Conversions returns how many cross-currency conversions ran.
func (c *CurrencyConverter) Conversions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversions
}
