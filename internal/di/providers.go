package di

import (
    "context"
    "fmt"
    "time"

    "CycleSense/internal/domain/repository"
    mid "CycleSense/internal/middleware"
    internalrepo "CycleSense/internal/repository"
    "CycleSense/internal/service/healthsync"
    "CycleSense/internal/usecase"
    pkgch "CycleSense/pkg/clickhouse"
    "CycleSense/pkg/config"
    pkgkafka "CycleSense/pkg/kafka"
    "CycleSense/pkg/metrics"
    "CycleSense/pkg/server"
)

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
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

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS cyclesense",
		"CREATE TABLE IF NOT EXISTS cyclesense.cycle_records (id String, user_id String, start_date Date, end_date Nullable(Date), flow String, notes String, created_at DateTime) ENGINE=MergeTree ORDER BY (user_id, start_date)",
		"CREATE TABLE IF NOT EXISTS cyclesense.symptom_observations (id String, user_id String, date Date, type String, severity String, note String, created_at DateTime) ENGINE=MergeTree ORDER BY (user_id, date)",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
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

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideEntryStorage creates ClickHouse storage repository.
func ProvideEntryStorage(chClient *pkgch.Client, cfg *config.Config) repository.Storage {
	return internalrepo.NewClickHouseStorage(
		chClient.DB(),
		cfg.ClickHouse.Database+".cycle_records",
		cfg.ClickHouse.Database+".symptom_observations",
	)
}

// ProvideEntryPublisher creates Kafka publisher repository.
func ProvideEntryPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaEntriesHandler registers handler for the entries topic.
func ProvideKafkaEntriesHandler(store repository.Storage, metrics repository.Metrics, cfg *config.Config) *usecase.KafkaEntriesHandler {
	return usecase.NewKafkaEntriesHandler(cfg.Kafka.Topic, store, metrics)
}

// ProvideHealthSyncStream creates the device sync-gateway WebSocket stream.
func ProvideHealthSyncStream(cfg *config.Config) repository.SyncStream {
	return healthsync.New(
		cfg.HealthSync.APIKey,
		cfg.HealthSync.WebSocketURL,
		cfg.HealthSync.Channels,
		cfg.HealthSync.ReconnectDelay,
		cfg.HealthSync.PingInterval,
	)
}

// ProvideEntryProcessor creates entry processor use case.
func ProvideEntryProcessor(
	pub repository.Publisher,
	store repository.Storage,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.EntryProcessor {
	return usecase.NewEntryProcessor(
		pub,
		store,
		metrics,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideEntryCollector creates entry collector use case.
func ProvideEntryCollector(
    stream repository.SyncStream,
    processor *usecase.EntryProcessor,
    metrics repository.Metrics,
    cfg *config.Config,
) *usecase.EntryCollector {
    // Build middleware pipeline between WebSocket and the backend
    opts := []mid.PipelineOption{}
    if cfg.Insights.Ingest.MaxRPS > 0 {
        opts = append(opts, mid.WithMaxRPS(cfg.Insights.Ingest.MaxRPS))
    }
    if cfg.Insights.Ingest.BufferSize > 0 {
        opts = append(opts, mid.WithBufferSize(cfg.Insights.Ingest.BufferSize))
    }
    pipe := mid.NewIngestPipeline(processor, metrics, opts...)
    return usecase.NewEntryCollector(stream, processor, metrics, pipe)
}

// ProvideApp creates the application server.
func ProvideApp(
    cfg *config.Config,
    collector *usecase.EntryCollector,
    consumer *pkgkafka.Consumer,
    kh *usecase.KafkaEntriesHandler,
    chClient *pkgch.Client,
) *server.App {
    // Attach hook to consumer: example NoopHook for now; can be replaced via config
    if consumer != nil {
        consumer.WithConsumerHook(pkgkafka.NoopHook{})
    }
    app := server.New(cfg, collector, consumer, kh, chClient)
    // attach entry processor to app for closing resources via collector
    if collector != nil {
        app.EntryProc = collector.Processor()
    }
    return app
}
