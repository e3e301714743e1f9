package usecase

import (
	"context"
	"errors"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/logger"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/queue"
)

// RefreshMessageType routes refresh payloads through the queue.
const RefreshMessageType = "reconcile.refresh"

// RefreshJob re-runs the full reconciliation for a ticker in the background.
// Tickers with no data are dropped, not retried; absence is a stable answer.
type RefreshJob struct {
	reconciler *Reconciler
	logger     *logger.Logger
}

// NewRefreshJob creates a queue job bound to the reconciler.
func NewRefreshJob(r *Reconciler, l *logger.Logger) *RefreshJob {
	return &RefreshJob{reconciler: r, logger: l}
}

func (j *RefreshJob) Name() string { return "metric-refresh" }

func (j *RefreshJob) Type() string { return RefreshMessageType }

func (j *RefreshJob) Handle(ctx context.Context, payload interface{}) error {
	req, err := queue.ParsePayload[models.RefreshRequest](payload)
	if err != nil {
		return err
	}

	doc, err := j.reconciler.Reconcile(ctx, req.Ticker)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			if j.logger != nil {
				j.logger.Warn("refresh found no data", logger.String("ticker", req.Ticker))
			}
			return nil
		}
		return err
	}

	if j.logger != nil {
		j.logger.Info("refresh completed",
			logger.String("ticker", doc.Ticker),
			logger.Any("completeness", doc.DataCompleteness))
	}
	return nil
}
