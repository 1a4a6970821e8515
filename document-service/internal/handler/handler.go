package handler

import (
	"context"
	"fmt"
	"log"
	"time"

	"device-ingest/document-service/internal/storage"
	"device-ingest/pkg/event"
	"device-ingest/pkg/observability"
)

// DocumentStore is the slice of the store the handler needs. Satisfied by
// storage.RedisStore.
type DocumentStore interface {
	PutDocument(ctx context.Context, doc storage.Document) error
}

// Handler maps one inbound device event onto one document write. Events
// without a payload are acknowledged as a no-op.
type Handler struct {
	store       DocumentStore
	logPayloads bool
}

func New(store DocumentStore, logPayloads bool) *Handler {
	return &Handler{store: store, logPayloads: logPayloads}
}

func (h *Handler) Handle(ctx context.Context, key string, value []byte) error {
	env, err := event.Parse(value)
	if err != nil {
		return err
	}

	if !env.HasData() {
		observability.EventsSkipped.Inc()
		log.Printf("event %s: no data, skipping", env.ID)
		return nil
	}
	if h.logPayloads {
		log.Printf("event %s type=%s source=%s payload: %s", env.ID, env.Type, env.Source, env.Data)
	}

	deviceID, entry, err := event.ExtractDevice(env.Data)
	if err != nil {
		return fmt.Errorf("event %s: %w", env.ID, err)
	}

	doc := storage.Document{
		ID:                     env.ID,
		PartitionKey:           deviceID,
		DeviceID:               deviceID,
		MachineData:            entry.MachineData,
		CamStatisticsPerMinute: entry.CamStatisticsPerMinute,
		CamStatisticsPercent:   entry.CamStatisticsPercent,
		EventType:              env.Type,
		EventTime:              env.Time,
	}

	start := time.Now()
	if err := h.store.PutDocument(ctx, doc); err != nil {
		return fmt.Errorf("event %s: %w", env.ID, err)
	}
	observability.PersistLatency.Observe(time.Since(start).Seconds())
	observability.DocumentsWritten.Inc()
	return nil
}
