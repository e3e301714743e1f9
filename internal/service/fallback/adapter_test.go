package fallback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

func TestFetchKnownTicker(t *testing.T) {
	a := New(nil)

	res, err := a.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, SourceName, res.Source)
	assert.Equal(t, "Apple Inc.", res.Meta[models.FieldCompanyName])
	v, ok := res.Value(models.FieldPERatio)
	require.True(t, ok)
	assert.InDelta(t, 28.5, v, 0.001)
	assert.Equal(t, len(res.Data)+len(res.Meta), res.Coverage)
}

func TestFetchUnknownTickerUsesDefaults(t *testing.T) {
	a := New(nil)

	res, err := a.Fetch(context.Background(), "ZZZZ")
	require.NoError(t, err)

	assert.Equal(t, "ZZZZ Corporation", res.Meta[models.FieldCompanyName])
	assert.Equal(t, "Unknown", res.Meta[models.FieldSector])
	v, _ := res.Value(models.FieldMarketCap)
	assert.InDelta(t, 50e9, v, 1)
}

func TestFetchReturnsFreshCopies(t *testing.T) {
	a := New(nil)

	first, err := a.Fetch(context.Background(), "VOO")
	require.NoError(t, err)
	first.Data[models.FieldNAV] = 0
	first.Meta[models.FieldCompanyName] = "mutated"

	second, err := a.Fetch(context.Background(), "VOO")
	require.NoError(t, err)
	assert.InDelta(t, 617.1, second.Data[models.FieldNAV], 0.001)
	assert.Equal(t, "Vanguard S&P 500 ETF", second.Meta[models.FieldCompanyName])
}
