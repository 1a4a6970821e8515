package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DocumentsWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "documents_written_total",
		Help: "Total number of device documents written to the document store",
	})

	RowsInserted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rows_inserted_total",
		Help: "Total number of device_data rows inserted",
	})

	EventsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "events_skipped_total",
		Help: "Total number of events acknowledged without a payload",
	})

	EventsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "events_failed_total",
		Help: "Total number of events dropped after a handler error",
	})

	PersistLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "persist_latency_seconds",
		Help:    "Time to transform and persist a single event",
		Buckets: prometheus.LinearBuckets(0.001, 0.01, 10),
	})
)

func Init() {
	prometheus.MustRegister(DocumentsWritten, RowsInserted, EventsSkipped, EventsFailed, PersistLatency)
}

// Expose /metrics HTTP handler on the given port
func ServeMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()
}
