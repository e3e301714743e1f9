package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamppmm/rvc-investment-analyzer/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func TestRefreshJobIdentity(t *testing.T) {
	job := NewRefreshJob(nil, nil)
	assert.Equal(t, "metric-refresh", job.Name())
	assert.Equal(t, RefreshMessageType, job.Type())
}

func TestRefreshJobHandle(t *testing.T) {
	store := newMemStore()
	r := newTestReconciler(store, &fakeAdapter{name: "yahoo", res: equityResult("yahoo")})
	job := NewRefreshJob(r, newTestLogger(t))

	// Queue payloads arrive as decoded JSON maps.
	err := job.Handle(context.Background(), map[string]interface{}{"ticker": "TEST"})
	require.NoError(t, err)
	assert.Contains(t, store.entries, "TEST")
}

func TestRefreshJobDropsUnknownTicker(t *testing.T) {
	r := newTestReconciler(newMemStore(), &fakeAdapter{name: "yahoo"})
	job := NewRefreshJob(r, newTestLogger(t))

	// No data is a stable answer: the job must not surface an error that
	// would send the message back for retries.
	err := job.Handle(context.Background(), map[string]interface{}{"ticker": "NONE"})
	assert.NoError(t, err)
}
