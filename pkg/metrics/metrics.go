package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_rooms_created_total",
		Help: "Rooms created via the create endpoint.",
	})
	RoomsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_rooms_evicted_total",
		Help: "Rooms reclaimed by the idle sweeper.",
	})
	OpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_open_connections",
		Help: "Currently joined websocket connections.",
	})
	MessagesRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_messages_total",
		Help: "Inbound payloads relayed, by classification.",
	}, []string{"kind"}) // kind: signal | chat
	DroppedDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_dropped_deliveries_total",
		Help: "Per-handle deliveries that failed and were skipped.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
