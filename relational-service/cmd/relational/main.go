package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"device-ingest/pkg/kafka"
	"device-ingest/pkg/observability"
	"device-ingest/pkg/pprof"
	"device-ingest/relational-service/internal/config"
	"device-ingest/relational-service/internal/handler"
	"device-ingest/relational-service/internal/storage"
)

func main() {
	cfg := config.Load()

	pprof.Start(cfg.PprofPort)

	observability.Init()
	observability.ServeMetrics(cfg.MetricsPort)

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Fatalf("bad TIMESTAMP_TZ %q: %v", cfg.TimeZone, err)
	}

	store, err := storage.NewPostgresStore(cfg.PostgresDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if err := storage.RunMigrations(cfg.PostgresDSN, cfg.MigrationsPath); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		handler.New(store, loc, cfg.LogPayloads),
	)
	defer consumer.Close()

	log.Println("relational service started")

	if err := consumer.Run(ctx); err != nil {
		log.Printf("consumer stopped: %v", err)
	}
}
