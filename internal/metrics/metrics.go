// Package metrics exposes socket subscription counters for prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "multiview"

type Kind string

const (
	KindVideo       Kind = "video"
	KindScreenShare Kind = "vbss"
)

type Metrics struct {
	subscribes    *prometheus.CounterVec
	unsubscribes  *prometheus.CounterVec
	evictions     prometheus.Counter
	socketErrors  *prometheus.CounterVec
	subscriptions *prometheus.GaugeVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		subscribes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscribes_total",
			Help:      "Socket subscribe calls that succeeded.",
		}, []string{"kind"}),
		unsubscribes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unsubscribes_total",
			Help:      "Socket unsubscribe calls that succeeded.",
		}, []string{"kind"}),
		evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Least recently used sources evicted to make room for a forced subscription.",
		}),
		socketErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "socket_errors_total",
			Help:      "Failed socket calls, by operation.",
		}, []string{"kind", "op"}),
		subscriptions: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "video_subscriptions",
			Help:      "Multiview sockets currently assigned, per call.",
		}, []string{"call"}),
	}
}

// All methods accept a nil receiver so callers need no guard.

func (m *Metrics) Subscribed(k Kind) {
	if m == nil {
		return
	}
	m.subscribes.WithLabelValues(string(k)).Inc()
}

func (m *Metrics) Unsubscribed(k Kind) {
	if m == nil {
		return
	}
	m.unsubscribes.WithLabelValues(string(k)).Inc()
}

func (m *Metrics) Evicted() {
	if m == nil {
		return
	}
	m.evictions.Inc()
}

func (m *Metrics) SocketError(k Kind, op string) {
	if m == nil {
		return
	}
	m.socketErrors.WithLabelValues(string(k), op).Inc()
}

func (m *Metrics) SetSubscriptions(call string, n int) {
	if m == nil {
		return
	}
	m.subscriptions.WithLabelValues(call).Set(float64(n))
}

func (m *Metrics) ForgetCall(call string) {
	if m == nil {
		return
	}
	m.subscriptions.DeleteLabelValues(call)
}
