package wsadapter

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments shared by every Client in the
// process. Like pkg/middleware's Vango metrics, instruments are registered
// once per Registry (a sync.Once-guarded singleton for the common case of
// prometheus.DefaultRegisterer) so that running several Sockets never
// trips a duplicate-registration panic; a Client given its own Registry
// (typical in tests) gets its own independent instance instead.
type metrics struct {
	reconnectsTotal    prometheus.Counter
	electionsTotal     prometheus.Counter
	selfElectionsTotal prometheus.Counter
	sessionRotations   prometheus.Counter
	retryCount         prometheus.Gauge
	connectionState    prometheus.Gauge
}

var (
	defaultMetrics     *metrics
	defaultMetricsOnce sync.Once
)

func newMetrics(registry prometheus.Registerer) *metrics {
	if registry == prometheus.DefaultRegisterer {
		defaultMetricsOnce.Do(func() { defaultMetrics = buildMetrics(registry) })
		return defaultMetrics
	}
	return buildMetrics(registry)
}

func buildMetrics(registry prometheus.Registerer) *metrics {
	factory := promauto.With(registry)

	return &metrics{
		reconnectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lamdera_ws",
			Name:      "reconnects_total",
			Help:      "Total number of connection attempts made, including the first.",
		}),
		electionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lamdera_ws",
			Name:      "elections_total",
			Help:      "Total number of leader-election frames received.",
		}),
		selfElectionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lamdera_ws",
			Name:      "self_elections_total",
			Help:      "Total number of times this connection saw itself elected leader and tore down.",
		}),
		sessionRotations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lamdera_ws",
			Name:      "session_rotations_total",
			Help:      "Total number of times the session ID was rotated after a self-election.",
		}),
		retryCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "lamdera_ws",
			Name:      "retry_count",
			Help:      "Current leader-avoidance retry counter for the active connection.",
		}),
		connectionState: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "lamdera_ws",
			Name:      "connection_state",
			Help:      "Current ConnectionState as an integer (0=CONNECTING,1=OPEN,2=CLOSING,3=CLOSED).",
		}),
	}
}
