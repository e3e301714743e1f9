package repository

import (
	"context"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

// SourceAdapter produces a partial metric set for a ticker. A nil result with
// a nil error means "no data"; absence is data, not an error. Implementations
// must never panic across this boundary.
type SourceAdapter interface {
	Name() string
	Fetch(ctx context.Context, ticker string) (*models.SourceResult, error)
}

// ClassificationStore persists sticky asset classifications keyed by ticker.
// Implementations must serialize writes to the same key; distinct keys may be
// written concurrently.
type ClassificationStore interface {
	Load(ctx context.Context, ticker string) (*models.AssetClassification, bool)
	Save(ctx context.Context, c *models.AssetClassification) error
	Close() error
}

// SnapshotStore appends finalized documents for downstream scoring consumers.
type SnapshotStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, doc *models.Document) error
	Health(ctx context.Context) error
	Close() error
}

// Publisher pushes finalized documents to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, doc *models.Document) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordReconcile(ticker string, seconds float64)
	RecordAdapterError(source string)
	RecordCompleteness(ticker string, pct float64)
	RecordSectorUsage(sector string)
	RecordPeriodUsage(period string)
	RecordCacheResult(store string, hit bool)
	RecordError(kind string)
}
