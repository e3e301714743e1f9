package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertEURToUSD(t *testing.T) {
	c := NewCurrencyConverter(nil)

	conv := c.Convert(100, "EUR", "USD")

	assert.InDelta(t, 108.0, conv.Value, 1e-9)
	assert.Equal(t, 100.0, conv.OriginalValue)
	assert.Equal(t, 1.08, conv.Rate)
	assert.False(t, conv.Assumed)
}

func TestConvertSameCurrencyIsIdentity(t *testing.T) {
	c := NewCurrencyConverter(nil)

	conv := c.Convert(100, "usd", "USD")

	assert.Equal(t, 100.0, conv.Value)
	assert.Equal(t, 1.0, conv.Rate)
	assert.Zero(t, c.Conversions())
}

func TestConvertCrossRateThroughUSDPivot(t *testing.T) {
	c := NewCurrencyConverter(nil)

	// EUR -> GBP: 1.08 / 1.22.
	conv := c.Convert(100, "EUR", "GBP")

	assert.InDelta(t, 100*1.08/1.22, conv.Value, 1e-4)
	assert.InDelta(t, 0.885246, conv.Rate, 1e-6)
}

func TestConvertUnknownCurrencyAssumesParity(t *testing.T) {
	c := NewCurrencyConverter(nil)

	conv := c.Convert(250, "XYZ", "USD")

	assert.Equal(t, 250.0, conv.Value)
	assert.Equal(t, 1.0, conv.Rate)
	assert.True(t, conv.Assumed)
}

func TestConversionsCounter(t *testing.T) {
	c := NewCurrencyConverter(nil)
	c.Convert(1, "EUR", "USD")
	c.Convert(1, "JPY", "USD")
	c.Convert(1, "USD", "USD")

	assert.Equal(t, 2, c.Conversions())
}

func TestSupported(t *testing.T) {
	c := NewCurrencyConverter(nil)
	assert.True(t, c.Supported("eur"))
	assert.False(t, c.Supported("XYZ"))
	assert.Contains(t, c.SupportedCurrencies(), "MXN")
}
