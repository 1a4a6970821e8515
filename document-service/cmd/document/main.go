package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"device-ingest/document-service/internal/config"
	"device-ingest/document-service/internal/handler"
	"device-ingest/document-service/internal/storage"
	"device-ingest/pkg/kafka"
	"device-ingest/pkg/observability"
	"device-ingest/pkg/pprof"
)

func main() {
	cfg := config.Load()

	pprof.Start(cfg.PprofPort)

	observability.Init()
	observability.ServeMetrics(cfg.MetricsPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewRedisStore(ctx, cfg.RedisAddr, cfg.Container)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	pool := kafka.NewPool(ctx, cfg.WorkerCount, 1000)
	defer func() {
		log.Println("shutting down pool...")
		pool.Shutdown()
	}()

	consumer := kafka.NewConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.GroupID,
		pool,
		handler.New(store, cfg.LogPayloads),
	)
	defer consumer.Close()

	log.Println("document service started")

	if err := consumer.Run(ctx); err != nil {
		log.Printf("consumer stopped: %v", err)
	}
}
