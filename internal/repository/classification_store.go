package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/cache"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/logger"
)

// JSONClassificationStore persists asset classifications in a single JSON
// file keyed by ticker. Classifications are sticky: once a ticker is
// classified it keeps that class until the file is edited or reseeded. The
// whole file is rewritten on save through a temp-file rename so a crash
// never leaves a torn document.
type JSONClassificationStore struct {
	path string
	log  *logger.Logger

	mu      sync.Mutex
	entries map[string]*models.AssetClassification
}

// NewJSONClassificationStore opens (or creates) the store at path.
func NewJSONClassificationStore(path string, log *logger.Logger) (*JSONClassificationStore, error) {
	s := &JSONClassificationStore{
		path:    path,
		log:     log,
		entries: make(map[string]*models.AssetClassification),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read classification store: %w", err)
		}
		return s, nil
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			return nil, fmt.Errorf("decode classification store: %w", err)
		}
	}
	if log != nil {
		log.Info("classification store loaded",
			logger.String("path", path),
			logger.Int("entries", len(s.entries)))
	}
	return s, nil
}

// Load implements repository.ClassificationStore.
func (s *JSONClassificationStore) Load(_ context.Context, ticker string) (*models.AssetClassification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.entries[strings.ToUpper(ticker)]
	if !ok {
		return nil, false
	}
	clone := *c
	return &clone, true
}

// Save implements repository.ClassificationStore.
func (s *JSONClassificationStore) Save(_ context.Context, c *models.AssetClassification) error {
	if c == nil || c.Ticker == "" {
		return fmt.Errorf("classification requires a ticker")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *c
	s.entries[strings.ToUpper(c.Ticker)] = &clone
	return s.flushLocked()
}

// Seed inserts classifications that are not yet present. Existing entries
// win; seeding never downgrades a stored classification.
func (s *JSONClassificationStore) Seed(entries []models.AssetClassification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for i := range entries {
		key := strings.ToUpper(entries[i].Ticker)
		if key == "" {
			continue
		}
		if _, ok := s.entries[key]; ok {
			continue
		}
		clone := entries[i]
		s.entries[key] = &clone
		added++
	}
	if added == 0 {
		return nil
	}
	if s.log != nil {
		s.log.Info("classification store seeded", logger.Int("added", added))
	}
	return s.flushLocked()
}

// Len returns the number of stored classifications.
func (s *JSONClassificationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close implements repository.ClassificationStore.
func (s *JSONClassificationStore) Close() error {
	return nil
}

func (s *JSONClassificationStore) flushLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode classification store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create classification store dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write classification store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace classification store: %w", err)
	}
	return nil
}

// CachedClassificationStore fronts a ClassificationStore with a cache layer
// so hot tickers skip the file store entirely.
type CachedClassificationStore struct {
	inner    repository.ClassificationStore
	cache    cache.Service
	ttl      time.Duration
	recorder repository.Metrics
}

// NewCachedClassificationStore wraps inner with c. recorder may be nil.
func NewCachedClassificationStore(inner repository.ClassificationStore, c cache.Service, ttl time.Duration, recorder repository.Metrics) *CachedClassificationStore {
	return &CachedClassificationStore{inner: inner, cache: c, ttl: ttl, recorder: recorder}
}

func (s *CachedClassificationStore) Load(ctx context.Context, ticker string) (*models.AssetClassification, bool) {
	key := cacheKey(ticker)
	var cached models.AssetClassification
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.record(true)
		return &cached, true
	}
	s.record(false)

	c, ok := s.inner.Load(ctx, ticker)
	if !ok {
		return nil, false
	}
	_ = s.cache.Set(ctx, key, c, s.ttl)
	return c, true
}

func (s *CachedClassificationStore) Save(ctx context.Context, c *models.AssetClassification) error {
	if err := s.inner.Save(ctx, c); err != nil {
		return err
	}
	return s.cache.Set(ctx, cacheKey(c.Ticker), c, s.ttl)
}

func (s *CachedClassificationStore) Close() error {
	return s.inner.Close()
}

func (s *CachedClassificationStore) record(hit bool) {
	if s.recorder != nil {
		s.recorder.RecordCacheResult("classification", hit)
	}
}

func cacheKey(ticker string) string {
	return cache.GenerateKey("classification", strings.ToUpper(ticker))
}
