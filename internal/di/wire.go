//go:build wireinject
// +build wireinject

package di

import (
	"CycleSense/pkg/config"
	"CycleSense/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
    wire.Build(
        // Metrics
        ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories (with business logic)
		ProvideEntryStorage,
		ProvideEntryPublisher,
		ProvideHealthSyncStream,

        // Use cases
        ProvideEntryProcessor,
        ProvideEntryCollector,
        ProvideKafkaConsumer,
        ProvideKafkaEntriesHandler,

        // Application server
        ProvideApp,
    )
    return &server.App{}, nil
}
