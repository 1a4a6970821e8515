package config

import (
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	KafkaBroker    string
	KafkaTopic     string
	GroupID        string
	PostgresDSN    string
	MigrationsPath string
	TimeZone       string
	WorkerCount    int
	MetricsPort    string
	PprofPort      string
	LogPayloads    bool
}

func Load() Config {
	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	return Config{
		KafkaBroker:    getenv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:     getenv("KAFKA_TOPIC", "device.events"),
		GroupID:        getenv("KAFKA_GROUP", "relational-service"),
		PostgresDSN:    postgresDSN(),
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),
		TimeZone:       getenv("TIMESTAMP_TZ", "UTC"),
		WorkerCount:    getenvInt("WORKERS", 8),
		MetricsPort:    getenv("METRICS_PORT", "8085"),
		PprofPort:      getenv("PPROF_PORT", ""),
		LogPayloads:    getenvBool("LOG_PAYLOADS", false),
	}
}

// postgresDSN prefers a full POSTGRES_DSN and otherwise assembles one from
// the individual PG_* settings.
func postgresDSN() string {
	if dsn := getenv("POSTGRES_DSN", ""); dsn != "" {
		return dsn
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getenv("PG_USER", "postgres"), getenv("PG_PASSWORD", "postgres")),
		Host:     net.JoinHostPort(getenv("PG_HOST", "localhost"), getenv("PG_PORT", "5432")),
		Path:     getenv("PG_DATABASE", "blogicbi"),
		RawQuery: "sslmode=disable",
	}
	return u.String()
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
