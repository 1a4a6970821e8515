package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"device-ingest/pkg/event"
	"device-ingest/pkg/kafka"
)

func main() {
	// CLI flags
	broker := flag.String("broker", "localhost:9092", "Kafka broker address")
	topic := flag.String("topic", "device.events", "Kafka topic to publish to")
	device := flag.String("device", "22110", "Device identifier")
	shape := flag.String("shape", "wrapped", "Payload shape: wrapped (document sink) or flat (relational sink)")
	rps := flag.Int("rps", 100, "Events per second")
	duration := flag.Int("duration", 10, "Duration in seconds")
	flag.Parse()

	producer := kafka.NewProducer(*broker, *topic)
	defer producer.Close()

	fmt.Printf("Starting loadgen: %d eps for %d seconds to topic %s (%s payloads)\n", *rps, *duration, *topic, *shape)

	ctx := context.Background()
	ticker := time.NewTicker(time.Second / time.Duration(*rps))
	defer ticker.Stop()

	end := time.Now().Add(time.Duration(*duration) * time.Second)
	count := 0

	for time.Now().Before(end) {
		<-ticker.C
		count++

		go func() {
			key, value, err := deviceEvent(*device, *shape)
			if err != nil {
				log.Printf("failed to build event: %v", err)
				return
			}
			if err := producer.Publish(ctx, key, value); err != nil {
				log.Printf("failed to publish event %s: %v", key, err)
			}
		}()
	}

	fmt.Printf("Load generation complete: %d events sent\n", count)
}

// deviceEvent builds one synthetic envelope. The wrapped shape nests the
// device data under its device id, as the document sink expects; flat sends
// the device data directly, as the relational sink expects.
func deviceEvent(deviceID, shape string) (string, []byte, error) {
	now := time.Now().UTC()
	ok := 50 + rand.Intn(10)
	waste := rand.Intn(3)
	empty := 60 - ok - waste

	deviceData := map[string]any{
		"machineData": map[string]any{
			"DeviceID":           deviceID,
			"TimeStamp":          now.Format(time.RFC3339),
			"StateCurrent":       "Execute",
			"CurMachSpeed":       50 + rand.Float64()*10,
			"MachSpeed":          60,
			"ProdProcessedCount": rand.Intn(100000),
		},
		"camStatistics_PerMinute": map[string]any{
			"minutes": 1, "first": now.Add(-time.Minute).Format("15:04"),
			"last": now.Format("15:04"), "total": 60,
			"empty": empty, "ok": ok, "returns": 0, "waste": waste,
			"double": 0, "bellyback": 0, "head": 0, "misc": 0,
			"total_fpm": 60, "dbg_total": 60,
		},
		"camStatistics_Percent": map[string]any{
			"minutes": 1, "total": 100,
			"empty": float64(empty) / 0.6, "ok": float64(ok) / 0.6,
			"returns": 0, "waste": float64(waste) / 0.6,
			"double": 0, "bellyback": 0, "head": 0, "misc": 0,
		},
	}

	var payload any = deviceData
	if shape == "wrapped" {
		payload = map[string]any{deviceID: deviceData}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", nil, err
	}

	env := event.Envelope{
		ID:     uuid.New().String(),
		Type:   "DeviceUpdate",
		Source: "/loadgen/" + deviceID,
		Time:   now.Format(time.RFC3339),
		Data:   data,
	}

	value, err := json.Marshal(env)
	return env.ID, value, err
}
