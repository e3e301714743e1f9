//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/williamppmm/rvc-investment-analyzer/pkg/config"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient infrastructure
		ProvideLogger,
		ProvideMetrics,
		ProvideRedisCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideSnapshotStore,
		ProvideDocumentPublisher,
		ProvideClassificationStore,

		// Domain services
		ProvideClassifier,
		ProvideCurrencyConverter,
		ProvidePeriodNormalizer,
		ProvideSectorNormalizer,
		ProvideMerger,
		ProvideDispersionAnalyzer,
		ProvideDerivedCalculator,
		ProvideSanityValidator,

		// Pipeline
		ProvideAdapters,
		ProvideReconciler,
		ProvideRefreshQueue,

		// Delivery
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
