package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
)

// ClickHouseSnapshotStore appends finalized documents to a ClickHouse table
// for downstream scoring and backtesting. One row per reconciliation run;
// the full document travels as JSON next to the columns queries filter on.
type ClickHouseSnapshotStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseSnapshotStore creates the store on an open connection pool.
func NewClickHouseSnapshotStore(db *sql.DB, table string) repository.SnapshotStore {
	return &ClickHouseSnapshotStore{db: db, table: table}
}

// Init ensures the snapshot table exists. Idempotent.
func (s *ClickHouseSnapshotStore) Init(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		collected_at    DateTime,
		ticker          LowCardinality(String),
		asset_type      LowCardinality(String),
		primary_source  LowCardinality(String),
		completeness    Float64,
		schema_version  UInt8,
		warnings        UInt16,
		document        String
	) ENGINE = MergeTree()
	PARTITION BY toYYYYMM(collected_at)
	ORDER BY (ticker, collected_at)`, s.table)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init snapshot table: %w", err)
	}
	return nil
}

// Store appends one document.
func (s *ClickHouseSnapshotStore) Store(ctx context.Context, doc *models.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	q := fmt.Sprintf("INSERT INTO %s (collected_at, ticker, asset_type, primary_source, completeness, schema_version, warnings, document) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err = s.db.ExecContext(ctx, q,
		doc.CollectedAt,
		doc.Ticker,
		string(doc.AssetType),
		doc.PrimarySource,
		doc.DataCompleteness,
		uint8(doc.SchemaVersion),
		uint16(len(doc.Warnings)),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *ClickHouseSnapshotStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSnapshotStore) Close() error {
	return nil // pool owned by pkg/clickhouse
}
