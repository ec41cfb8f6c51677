// Package app assembles the explorer and its optional sinks from config.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"travel/internal/config"
	"travel/internal/journal"
	"travel/internal/service"
	"travel/internal/storage"
	"travel/pkg/kafkaclient"
	"travel/pkg/location"
	"travel/pkg/overpass"
	"travel/pkg/weather"
)

type App struct {
	Explorer *service.Explorer
	Journal  *journal.Journal
	// History is nil unless DATABASE_URL is set.
	History *storage.HistoryStore

	closers []func()
}

// New connects every configured backend. On error, whatever was already
// opened is closed.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}
	var sinks []journal.Sink

	if cfg.HistoryEnabled() {
		pool, err := storage.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		a.History = storage.NewHistoryStore(pool)
		if err := a.History.EnsureSchema(ctx); err != nil {
			a.Close()
			return nil, err
		}
		sinks = append(sinks, journal.NewHistorySink(a.History))
	}

	if cfg.ArchiveEnabled() {
		s3, err := storage.NewS3Service(storage.S3Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
		}, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		if _, err := s3.CreateBucket(ctx, cfg.ResultsBucket, ""); err != nil {
			a.Close()
			return nil, fmt.Errorf("create bucket %s: %w", cfg.ResultsBucket, err)
		}
		sinks = append(sinks, journal.NewArchiveSink(s3, cfg.ResultsBucket))
	}

	if cfg.PublishEnabled() {
		producer := kafkaclient.NewProducer(cfg.KafkaResultTopic, cfg.KafkaBroker, logger)
		a.closers = append(a.closers, func() {
			if err := producer.Close(); err != nil {
				logger.Warn("failed to close kafka producer", zap.Error(err))
			}
		})
		sinks = append(sinks, journal.NewPublishSink(producer))
	}

	a.Journal = journal.New(logger, sinks...)
	logger.Info("journal configured", zap.Int("sinks", a.Journal.Len()))

	var recorder service.Recorder
	if a.Journal.Len() > 0 {
		recorder = a.Journal
	}

	a.Explorer = service.NewExplorer(
		location.NewClient(cfg.NominatimURL, cfg.UserAgent, cfg.HTTPTimeout),
		weather.NewClient(cfg.OpenMeteoURL, cfg.HTTPTimeout),
		overpass.NewClient(cfg.OverpassURL, cfg.POIRadiusMeters, cfg.POILimit, cfg.HTTPTimeout),
		recorder,
		logger,
	)
	return a, nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
