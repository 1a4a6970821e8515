package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Document is the record written to the document store: the event identity
// plus the device payload sub-objects passed through unmodified.
type Document struct {
	ID                     string          `json:"id"`
	PartitionKey           string          `json:"partitionKey"`
	DeviceID               string          `json:"deviceId"`
	MachineData            json.RawMessage `json:"machineData"`
	CamStatisticsPerMinute json.RawMessage `json:"camStatistics_PerMinute"`
	CamStatisticsPercent   json.RawMessage `json:"camStatistics_Percent"`
	EventType              string          `json:"eventType"`
	EventTime              string          `json:"eventTime"`
}

// RedisStore persists documents as JSON values keyed by container name,
// partition key and document id. Event ids are assumed globally unique, so
// a key collision only happens on redelivery and rewrites the same document.
type RedisStore struct {
	client    *redis.Client
	container string
}

func NewRedisStore(ctx context.Context, addr, container string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping document store: %w", err)
	}
	return &RedisStore{client: rdb, container: container}, nil
}

func (s *RedisStore) PutDocument(ctx context.Context, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", doc.ID, err)
	}

	key := DocumentKey(s.container, doc.PartitionKey, doc.ID)
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("write document %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// DocumentKey builds the store key for one document, e.g.
// "sim_events:22110:e1".
func DocumentKey(container, partitionKey, id string) string {
	return fmt.Sprintf("%s:%s:%s", container, partitionKey, id)
}
