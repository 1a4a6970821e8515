package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	KafkaBroker string
	KafkaTopic  string
	GroupID     string
	RedisAddr   string
	Container   string
	WorkerCount int
	MetricsPort string
	PprofPort   string
	LogPayloads bool
}

func Load() Config {
	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	return Config{
		KafkaBroker: getenv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:  getenv("KAFKA_TOPIC", "device.events"),
		GroupID:     getenv("KAFKA_GROUP", "document-service"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		Container:   getenv("DOC_CONTAINER", "sim_events"),
		WorkerCount: getenvInt("WORKERS", 8),
		MetricsPort: getenv("METRICS_PORT", "8084"),
		PprofPort:   getenv("PPROF_PORT", ""),
		LogPayloads: getenvBool("LOG_PAYLOADS", false),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
