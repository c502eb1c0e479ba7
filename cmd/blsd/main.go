package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	blsadapter "github.com/reedmaris/bls-data-service/internal/adapter/bls"
	httpadapter "github.com/reedmaris/bls-data-service/internal/adapter/http"
	kafkaadapter "github.com/reedmaris/bls-data-service/internal/adapter/kafka"
	"github.com/reedmaris/bls-data-service/internal/area"
	"github.com/reedmaris/bls-data-service/internal/config"
	"github.com/reedmaris/bls-data-service/internal/domain"
	"github.com/reedmaris/bls-data-service/internal/observability"
	"github.com/reedmaris/bls-data-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	tables, err := loadTables(cfg)
	if err != nil {
		logger.Error("failed to load geography tables", "error", err)
		os.Exit(1)
	}
	resolver := area.NewResolver(tables, logger)

	fetcher, seriesIDs, err := buildFetcher(cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to build fetcher", "error", err)
		os.Exit(1)
	}

	// Kafka export of canonical rows (feature-flagged via KAFKA_ENABLED).
	var exporter pipeline.Exporter
	var exporterCloser interface{ Close() error }
	if cfg.KafkaEnabled {
		kexp := kafkaadapter.NewExporter(cfg, logger)
		exporter = kexp
		exporterCloser = kexp
		logger.Info("kafka export enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka export disabled")
	}

	p := pipeline.New(fetcher, resolver, exporter, logger, metrics, pipeline.Options{
		SeriesIDs:       seriesIDs,
		StartYear:       cfg.StartYear,
		EndYear:         cfg.EndYear,
		StrictLocations: cfg.StrictLocations,
		RefreshInterval: cfg.RefreshInterval,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if exporterCloser != nil {
		if err := exporterCloser.Close(); err != nil {
			logger.Error("kafka exporter close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// loadTables uses the embedded geography reference tables unless
// AREA_TABLE_DIR points at replacements on disk.
func loadTables(cfg *config.Config) (area.Tables, error) {
	if cfg.AreaTableDir != "" {
		return area.LoadDir(cfg.AreaTableDir)
	}
	return area.LoadEmbedded()
}

// buildFetcher selects between snapshot replay and the live BLS API. With a
// snapshot and no configured series, the snapshot's own series are used.
func buildFetcher(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (domain.Fetcher, []string, error) {
	if cfg.SnapshotPath != "" {
		sf, err := blsadapter.NewSnapshotFetcher(cfg.SnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		seriesIDs := cfg.SeriesIDs
		if len(seriesIDs) == 0 {
			seriesIDs = sf.SeriesIDs()
		}
		logger.Info("replaying snapshot", "path", cfg.SnapshotPath, "series", len(seriesIDs))
		return sf, seriesIDs, nil
	}

	client := blsadapter.NewClient(cfg.APIKey, cfg.APITimeout, metrics, logger)
	fetcher := blsadapter.NewCachedFetcher(client, cfg.FetchCacheSize, metrics)
	logger.Info("using BLS API", "cache_size", cfg.FetchCacheSize, "timeout", cfg.APITimeout)
	return fetcher, cfg.SeriesIDs, nil
}
