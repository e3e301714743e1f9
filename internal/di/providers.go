package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
	"github.com/williamppmm/rvc-investment-analyzer/internal/handler/api"
	internalrepo "github.com/williamppmm/rvc-investment-analyzer/internal/repository"
	"github.com/williamppmm/rvc-investment-analyzer/internal/service/fallback"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/classify"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/normalize"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/reconcile"
	"github.com/williamppmm/rvc-investment-analyzer/internal/usecase"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/cache"
	pkgch "github.com/williamppmm/rvc-investment-analyzer/pkg/clickhouse"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/config"
	xhttp "github.com/williamppmm/rvc-investment-analyzer/pkg/http"
	pkgkafka "github.com/williamppmm/rvc-investment-analyzer/pkg/kafka"
	applogger "github.com/williamppmm/rvc-investment-analyzer/pkg/logger"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/metrics"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/queue"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: "stdout",
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRedisCache creates the shared Redis cache client. Returns nil when
// Redis is disabled; downstream components fall back to uncached paths.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	host, port, err := splitHostPort(cfg.Redis.Addr, 6379)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	return cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
}

// ProvideClickHouseClient creates the ClickHouse client, nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSnapshotStore creates the document snapshot store and its schema.
// Nil when ClickHouse is disabled.
func ProvideSnapshotStore(chClient *pkgch.Client, cfg *config.Config) (repository.SnapshotStore, error) {
	if chClient == nil {
		return nil, nil
	}

	store := internalrepo.NewClickHouseSnapshotStore(chClient.DB(), cfg.ClickHouse.Database+"."+cfg.ClickHouse.Table)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("snapshot schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates the Kafka producer, nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideDocumentPublisher creates the Kafka document publisher.
func ProvideDocumentPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideClassifier creates the asset classifier with the built-in override
// table.
func ProvideClassifier() *classify.Classifier {
	return classify.NewClassifier(nil)
}

// ProvideClassificationStore creates the sticky classification store: a JSON
// file, optionally fronted by Redis, seeded from the manual override table.
func ProvideClassificationStore(
	cfg *config.Config,
	l *applogger.Logger,
	redisCache *cache.RedisCache,
	classifier *classify.Classifier,
	rec repository.Metrics,
) (repository.ClassificationStore, error) {
	store, err := internalrepo.NewJSONClassificationStore(cfg.Classification.StorePath, l)
	if err != nil {
		return nil, fmt.Errorf("classification store: %w", err)
	}

	if cfg.Classification.Seed {
		seed := make([]models.AssetClassification, 0, len(classify.ManualOverrides))
		for ticker := range classify.ManualOverrides {
			seed = append(seed, classifier.Classify(models.ClassificationInput{
				Ticker:        ticker,
				PrimarySource: "manual_override",
			}))
		}
		if err := store.Seed(seed); err != nil {
			return nil, fmt.Errorf("seed classifications: %w", err)
		}
	}

	// L1 memory everywhere; L2 Redis when available.
	var svc cache.Service
	if redisCache != nil {
		svc = cache.NewLayeredCache(redisCache)
	} else {
		svc = cache.NewMemoryCache()
	}
	return internalrepo.NewCachedClassificationStore(store, svc, cfg.Classification.CacheTTL, rec), nil
}

// ProvideCurrencyConverter creates the converter from configured rates,
// falling back to the built-in table.
func ProvideCurrencyConverter(cfg *config.Config) *normalize.CurrencyConverter {
	return normalize.NewCurrencyConverter(cfg.Normalize.ExchangeRates)
}

// ProvidePeriodNormalizer creates the period hierarchy normalizer.
func ProvidePeriodNormalizer(rec repository.Metrics) *normalize.PeriodNormalizer {
	return normalize.NewPeriodNormalizer(rec)
}

// ProvideSectorNormalizer creates the sector z-score normalizer with the
// built-in benchmark table.
func ProvideSectorNormalizer(rec repository.Metrics) *normalize.SectorNormalizer {
	return normalize.NewSectorNormalizer(nil, rec)
}

// ProvideMerger creates the priority merger.
func ProvideMerger(cfg *config.Config) *reconcile.Merger {
	policy := reconcile.DefaultPolicy()
	if cfg.Reconcile.OverrideDelta > 0 {
		policy.OverrideDelta = cfg.Reconcile.OverrideDelta
	}
	return reconcile.NewMerger(policy)
}

// ProvideDispersionAnalyzer creates the cross-source dispersion analyzer.
func ProvideDispersionAnalyzer(cfg *config.Config) *reconcile.DispersionAnalyzer {
	var buckets []reconcile.ConfidenceBucket
	for _, b := range cfg.Reconcile.ConfidenceBuckets {
		buckets = append(buckets, reconcile.ConfidenceBucket{MaxCV: b.MaxCV, Confidence: b.Confidence})
	}
	return reconcile.NewDispersionAnalyzer(cfg.Reconcile.PremiumSources, buckets, nil)
}

// ProvideDerivedCalculator creates the derived metric calculator.
func ProvideDerivedCalculator() *reconcile.DerivedCalculator {
	return reconcile.NewDerivedCalculator()
}

// ProvideSanityValidator creates the plausibility validator.
func ProvideSanityValidator() *reconcile.SanityValidator {
	return reconcile.NewSanityValidator(reconcile.DefaultSanityBounds())
}

// ProvideAdapters assembles the source adapter chain, best source first.
func ProvideAdapters(l *applogger.Logger) []repository.SourceAdapter {
	return []repository.SourceAdapter{
		fallback.New(l),
	}
}

// ProvideReconciler wires the reconciliation pipeline.
func ProvideReconciler(
	cfg *config.Config,
	adapters []repository.SourceAdapter,
	merger *reconcile.Merger,
	dispersion *reconcile.DispersionAnalyzer,
	derived *reconcile.DerivedCalculator,
	sanity *reconcile.SanityValidator,
	classifier *classify.Classifier,
	classifications repository.ClassificationStore,
	converter *normalize.CurrencyConverter,
	snapshots repository.SnapshotStore,
	publisher repository.Publisher,
	rec repository.Metrics,
	l *applogger.Logger,
) *usecase.Reconciler {
	return usecase.NewReconciler(usecase.ReconcilerDeps{
		Adapters:              adapters,
		Merger:                merger,
		Dispersion:            dispersion,
		Derived:               derived,
		Sanity:                sanity,
		Classifier:            classifier,
		Classifications:       classifications,
		Converter:             converter,
		Snapshots:             snapshots,
		Publisher:             publisher,
		Metrics:               rec,
		Logger:                l,
		EarlyExitCompleteness: cfg.Reconcile.EarlyExitCompleteness,
	})
}

// ProvideRefreshQueue creates the Redis-backed background refresh queue with
// the reconcile job registered. Nil when Redis is disabled.
func ProvideRefreshQueue(
	l *applogger.Logger,
	redisCache *cache.RedisCache,
	reconciler *usecase.Reconciler,
) *queue.RedisQueue {
	if redisCache == nil {
		return nil
	}

	job := usecase.NewRefreshJob(reconciler, l)
	return queue.NewRedisConsumer(l, &queue.QueueConfig{Workers: 2, RetryLimit: 3}, redisCache.Client(), []queue.Job{job})
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	reconciler *usecase.Reconciler,
	periods *normalize.PeriodNormalizer,
	sectors *normalize.SectorNormalizer,
	converter *normalize.CurrencyConverter,
	classifications repository.ClassificationStore,
	snapshots repository.SnapshotStore,
	refreshQueue *queue.RedisQueue,
) xhttp.Handler {
	deps := api.ReconcileHandlerDeps{
		Logger:          l,
		Reconciler:      reconciler,
		Periods:         periods,
		Sectors:         sectors,
		Converter:       converter,
		Classifications: classifications,
		Snapshots:       snapshots,
	}
	if refreshQueue != nil {
		deps.RefreshQueue = refreshQueue
	}
	return api.NewReconcileEchoHandler(deps)
}

// ProvideApp assembles the application with its owned resources.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	refreshQueue *queue.RedisQueue,
	chClient *pkgch.Client,
	redisCache *cache.RedisCache,
	producer *pkgkafka.Producer,
	classifications repository.ClassificationStore,
) *server.App {
	return server.New(cfg, l, handler, server.Resources{
		RefreshQueue:    refreshQueue,
		ClickHouse:      chClient,
		Redis:           redisCache,
		KafkaProducer:   producer,
		Classifications: classifications,
	})
}

func splitHostPort(addr string, defaultPort int) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, defaultPort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	return host, port, nil
}
