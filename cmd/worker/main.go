package main

import (
	"context"

	"go.uber.org/zap"

	"travel/internal/app"
	"travel/internal/config"
	"travel/internal/logger"
	"travel/internal/models"
	"travel/internal/service"
	"travel/internal/session"
	"travel/pkg/graceful"
	"travel/pkg/kafkaclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Must("error", "console").Fatal("failed to load config", zap.Error(err))
	}
	log := logger.Must(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := cfg.RequireWorker(); err != nil {
		log.Fatal("worker is not configured", zap.Error(err))
	}

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start", zap.Error(err))
	}
	defer a.Close()

	log.Info("connecting to kafka",
		zap.String("broker", cfg.KafkaBroker),
		zap.String("topic", cfg.KafkaQueryTopic),
		zap.String("group", cfg.KafkaGroupID),
	)
	consumer := kafkaclient.NewKafkaConsumer(cfg.KafkaQueryTopic, cfg.KafkaGroupID, cfg.KafkaBroker, log)
	consumer.StartConsuming(ctx)

	iterator := service.NewIterator[models.QueryRequest](consumer, log)
	iterator.Run(ctx, func(ctx context.Context, q models.QueryRequest) error {
		result, err := a.Explorer.Explore(ctx, q.Query)
		if err != nil {
			log.Info("query failed",
				zap.String("request_id", q.ID),
				zap.String("message", session.Message(err)),
			)
			return err
		}
		log.Info("query explored",
			zap.String("request_id", q.ID),
			zap.String("result_id", result.ID),
			zap.String("place", result.Place),
		)
		return nil
	})

	consumer.Stop()
	log.Info("worker finished")
}
