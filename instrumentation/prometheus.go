package instrumentation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector is a Collector backed by Prometheus counters and a
// gauge, registered under a caller-supplied channel name so that multiple
// channels in the same process get distinct, bounded-cardinality series
// (the channel name is the only label value, never a per-message tag).
type PrometheusCollector struct {
	sendTotal    *prometheus.CounterVec
	receiveTotal *prometheus.CounterVec
	waitTotal    *prometheus.CounterVec
	depth        prometheus.Gauge
}

// NewPrometheusCollector registers a PrometheusCollector's metrics against
// reg. Pass prometheus.DefaultRegisterer for the global registry.
func NewPrometheusCollector(reg prometheus.Registerer, channelName string) *PrometheusCollector {
	factory := promauto.With(reg)
	return &PrometheusCollector{
		sendTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "latchan_send_total",
			Help:        "Total TrySend/Send attempts by outcome status.",
			ConstLabels: prometheus.Labels{"channel": channelName},
		}, []string{"status"}),
		receiveTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "latchan_receive_total",
			Help:        "Total TryReceive/Receive attempts by outcome status.",
			ConstLabels: prometheus.Labels{"channel": channelName},
		}, []string{"status"}),
		waitTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "latchan_wait_total",
			Help:        "Total blocking-retry iterations by wait strategy.",
			ConstLabels: prometheus.Labels{"channel": channelName},
		}, []string{"strategy"}),
		depth: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "latchan_depth",
			Help:        "Approximate number of live elements in an SPSC ring.",
			ConstLabels: prometheus.Labels{"channel": channelName},
		}),
	}
}

func (c *PrometheusCollector) ObserveSend(status string) {
	c.sendTotal.WithLabelValues(status).Inc()
}

func (c *PrometheusCollector) ObserveReceive(status string) {
	c.receiveTotal.WithLabelValues(status).Inc()
}

func (c *PrometheusCollector) ObserveWait(strategy string) {
	c.waitTotal.WithLabelValues(strategy).Inc()
}

func (c *PrometheusCollector) SetDepth(depth int64) {
	c.depth.Set(float64(depth))
}
