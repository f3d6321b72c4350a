package server

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"CycleSense/internal/handler/api"
	"CycleSense/internal/repository"
	icache "CycleSense/internal/service/cache"
	analytics "CycleSense/internal/services/analytics"
	"CycleSense/internal/usecase"
	pkgcache "CycleSense/pkg/cache"
	pkgch "CycleSense/pkg/clickhouse"
	"CycleSense/pkg/config"
	xhttp "CycleSense/pkg/http"
	pkgkafka "CycleSense/pkg/kafka"
	applogger "CycleSense/pkg/logger"
	pkgqueue "CycleSense/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	collector   *usecase.EntryCollector
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	jobQueue    *pkgqueue.RedisQueue
	EntryProc   *usecase.EntryProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	collector *usecase.EntryCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init app logger (console info by default)
	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	// Insight cache: Redis when configured, otherwise in-process memory.
	var insightCache pkgcache.Service
	var redisCache *pkgcache.RedisCache
	if a.cfg.Insights.Redis.Enabled {
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(redisHost(a.cfg.Insights.Redis.Addr)),
			pkgcache.WithRedisPort(redisPort(a.cfg.Insights.Redis.Addr)),
			pkgcache.WithRedisPassword(a.cfg.Insights.Redis.Password),
			pkgcache.WithRedisDB(a.cfg.Insights.Redis.DB),
		)
		if err != nil {
			l.Warn("redis cache unavailable, using memory cache", applogger.Error(err))
		} else {
			redisCache = rc
			insightCache = rc
		}
	}
	if insightCache == nil {
		insightCache = pkgcache.NewMemoryCache()
	}

	// Setup Echo HTTP server using pkg/http and register routes via handlers
	var httpHandler xhttp.Handler
	var agg *usecase.InsightAggregator
	var bundle *usecase.InsightsBundleUseCase
	var entriesHandler *api.EntriesEchoHandler
	if a.httpHandler != nil {
		httpHandler = a.httpHandler
	} else if a.chClient != nil {
		store := repository.NewCHRecordStore(a.chClient)
		store.SetLogger(l)

		agg = usecase.NewInsightAggregator(
			store,
			analytics.NewPredictionEngine(),
			analytics.NewCycleAnomalyDetector(),
			analytics.NewSymptomCorrelator(),
			analytics.NewHormonalInferenceLayer(analytics.DefaultHormoneTable()),
			analytics.NewHealthScoreAggregator(),
			insightCache,
			a.cfg.Insights.CacheTTL,
			nil,
		)
		bundle = usecase.NewInsightsBundleUseCase(agg)

		ih := api.NewInsightsEchoHandler(l, agg, bundle)
		entriesHandler = api.NewEntriesEchoHandler(l, a.EntryProc, usecase.NewRecordsUseCase(store))
		ph := api.NewInsightsPlainHandler(agg)
		if a.cfg.Insights.Redis.Enabled {
			ph.SetCache(icache.NewRedisCache(icache.RedisConfig{
				Addr:     a.cfg.Insights.Redis.Addr,
				Password: a.cfg.Insights.Redis.Password,
				DB:       a.cfg.Insights.Redis.DB,
			}))
		} else {
			ph.SetCache(icache.NewTTLCache())
		}
		ph.SetLogger(l)
		httpHandler = xhttp.Handlers(ih, entriesHandler, ph)
	}

	// Background recompute queue when Redis is available.
	if redisCache != nil && agg != nil {
		job := usecase.NewInsightRecomputeJob(agg, bundle, insightCache)
		a.jobQueue = pkgqueue.NewRedisQueue(l, &pkgqueue.QueueConfig{Workers: 2}, redisCache.Client(), pkgqueue.ModeProducerConsumer)
		a.jobQueue.RegisterJob(job)
		if err := a.jobQueue.Start(); err != nil {
			l.Warn("job queue start error", applogger.Error(err))
		} else if entriesHandler != nil {
			entriesHandler.SetJobQueue(a.jobQueue)
		}
	}

	a.httpServer = xhttp.NewServer(httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start collector if a sync gateway is configured
	if a.collector != nil && a.cfg.HealthSync.WebSocketURL != "" {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("collector error", applogger.Error(err))
			}
		}()
		l.Info("collector started", applogger.Strings("channels", a.cfg.HealthSync.Channels))
	}

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	// best-effort logging via stdout
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Stop collector (pipeline + stream)
	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			l.Warn("collector stop error", applogger.Error(err))
		}
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop background queue
	if a.jobQueue != nil {
		if err := a.jobQueue.Stop(shutdownCtx); err != nil {
			l.Warn("job queue stop error", applogger.Error(err))
		}
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close entry processor resources (publisher/storage)
	if a.EntryProc != nil {
		a.EntryProc.Close()
	}

	l.Info("shutdown complete")
	return nil
}

func redisHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil || host == "" {
		return "localhost"
	}
	return host
}

func redisPort(addr string) int {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return 6379
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return 6379
	}
	return n
}
