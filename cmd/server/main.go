package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/climate-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/climate-risk-service/internal/catalog"
	"github.com/couchcryptid/climate-risk-service/internal/config"
	"github.com/couchcryptid/climate-risk-service/internal/locale"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
	"github.com/couchcryptid/climate-risk-service/internal/report"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	dict, err := locale.Load(cfg.LocalePath)
	if err != nil {
		return fmt.Errorf("load locale strings: %w", err)
	}
	logger.Info("data loaded", "regions", len(cat.Regions()), "lakes", len(cat.Lakes()), "components", len(dict.Components()))

	// Report sink: Kafka when brokers are configured, otherwise the log.
	var loader report.BatchLoader
	var writer *kafkaadapter.Writer
	if len(cfg.KafkaBrokers) > 0 {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loader = writer
		logger.Info("kafka report sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReportTopic)
	} else {
		loader = report.NewLogLoader(logger)
		logger.Info("logging report sink enabled")
	}

	queue := report.NewQueue(cfg.ReportQueueSize, cfg.BatchFlushInterval, clock, metrics)
	builder := report.NewBuilder(cat, dict, cfg.ReportDelay, clock, logger)
	p := report.New(queue, builder, loader, logger, metrics, clock, cfg.BatchSize)

	if cfg.HasRandomSeed {
		logger.Info("seeded random source", "seed", cfg.RandomSeed)
	}
	api := httpadapter.NewAPI(httpadapter.Dependencies{
		Catalog: cat,
		Strings: dict,
		Reports: queue,
		Random:  cfg.RandomSources(),
		Series: httpadapter.SeriesDefaults{
			Start:   cfg.SeriesStart,
			Days:    cfg.SeriesDays,
			MaxDays: cfg.SeriesMaxDays,
		},
		Metrics: metrics,
		Logger:  logger,
	})
	srv := httpadapter.NewServer(cfg.HTTPAddr, api, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := p.Run(ctx); err != nil {
			logger.Error("report pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("report pipeline did not stop before shutdown timeout")
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete", "reports_generated", p.Generated(), "reports_pending", queue.Len())
	return nil
}
