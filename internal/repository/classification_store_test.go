package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

func TestClassificationStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifications.json")
	ctx := context.Background()

	s, err := NewJSONClassificationStore(path, nil)
	require.NoError(t, err)

	_, ok := s.Load(ctx, "SPY")
	assert.False(t, ok)

	c := &models.AssetClassification{
		Ticker:              "SPY",
		AssetType:           models.AssetETF,
		TypeLabel:           models.AssetETF.Label(),
		NeedsSpecialMetrics: true,
		Source:              "manual_override",
	}
	require.NoError(t, s.Save(ctx, c))

	got, ok := s.Load(ctx, "spy")
	require.True(t, ok)
	assert.Equal(t, models.AssetETF, got.AssetType)

	// Reopen and confirm the classification stuck.
	reopened, err := NewJSONClassificationStore(path, nil)
	require.NoError(t, err)
	got, ok = reopened.Load(ctx, "SPY")
	require.True(t, ok)
	assert.Equal(t, models.AssetETF, got.AssetType)
	assert.Equal(t, "manual_override", got.Source)
}

func TestClassificationStoreLoadReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifications.json")
	ctx := context.Background()

	s, err := NewJSONClassificationStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, &models.AssetClassification{Ticker: "AAPL", AssetType: models.AssetEquity}))

	first, _ := s.Load(ctx, "AAPL")
	first.AssetType = models.AssetCrypto

	second, _ := s.Load(ctx, "AAPL")
	assert.Equal(t, models.AssetEquity, second.AssetType)
}

func TestClassificationStoreSeedDoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifications.json")
	ctx := context.Background()

	s, err := NewJSONClassificationStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, &models.AssetClassification{Ticker: "GLD", AssetType: models.AssetCommodity}))

	require.NoError(t, s.Seed([]models.AssetClassification{
		{Ticker: "GLD", AssetType: models.AssetETF},
		{Ticker: "VOO", AssetType: models.AssetETF},
	}))

	gld, _ := s.Load(ctx, "GLD")
	assert.Equal(t, models.AssetCommodity, gld.AssetType, "existing entries win")
	voo, ok := s.Load(ctx, "VOO")
	require.True(t, ok)
	assert.Equal(t, models.AssetETF, voo.AssetType)
	assert.Equal(t, 2, s.Len())
}

func TestClassificationStoreRejectsEmptyTicker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifications.json")
	s, err := NewJSONClassificationStore(path, nil)
	require.NoError(t, err)

	assert.Error(t, s.Save(context.Background(), &models.AssetClassification{}))
}
