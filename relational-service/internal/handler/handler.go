package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"device-ingest/pkg/event"
	"device-ingest/pkg/observability"
	"device-ingest/relational-service/internal/storage"
)

// RowStore is the slice of the store the handler needs. Satisfied by
// storage.PostgresStore.
type RowStore interface {
	InsertRow(ctx context.Context, row storage.Row) error
}

// Handler flattens one inbound device event into one device_data row. The
// payload is an unwrapped DeviceData; date and hour are derived from the
// machine timestamp in the configured zone so the same event always yields
// the same strings regardless of host time zone.
type Handler struct {
	store       RowStore
	loc         *time.Location
	logPayloads bool
}

func New(store RowStore, loc *time.Location, logPayloads bool) *Handler {
	return &Handler{store: store, loc: loc, logPayloads: logPayloads}
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

	var dd event.DeviceData
	if err := json.Unmarshal(env.Data, &dd); err != nil {
		return fmt.Errorf("event %s: %w: %v", env.ID, event.ErrBadPayload, err)
	}

	date, hour, err := deriveDateHour(dd.MachineData.TimeStamp, h.loc)
	if err != nil {
		return fmt.Errorf("event %s: %w", env.ID, err)
	}

	row := storage.Row{
		EventID:            env.ID,
		DeviceID:           dd.MachineData.DeviceID,
		Timestamp:          dd.MachineData.TimeStamp,
		Date:               date,
		Hour:               hour,
		StateCurrent:       dd.MachineData.StateCurrent,
		CurMachSpeed:       dd.MachineData.CurMachSpeed,
		MachSpeed:          dd.MachineData.MachSpeed,
		ProdProcessedCount: dd.MachineData.ProdProcessedCount,
		PerMinute:          dd.PerMinute,
		Percent:            dd.Percent,
		EventTime:          env.Time,
	}

	start := time.Now()
	if err := h.store.InsertRow(ctx, row); err != nil {
		return fmt.Errorf("event %s: %w", env.ID, err)
	}
	observability.PersistLatency.Observe(time.Since(start).Seconds())
	observability.RowsInserted.Inc()
	return nil
}

// deriveDateHour splits a machine timestamp into its calendar date
// (YYYY-MM-DD) and minute-truncated time of day (HH:MM), rendered in loc.
func deriveDateHour(ts string, loc *time.Location) (string, string, error) {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return "", "", fmt.Errorf("%w: bad machineData.TimeStamp %q: %v", event.ErrBadPayload, ts, err)
	}
	t = t.In(loc)
	return t.Format("2006-01-02"), t.Format("15:04"), nil
}
