package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts session lifecycle events. A nil *Metrics is a no-op, so
// tests that don't care about counters can pass nil.
type Metrics struct {
	logins    *prometheus.CounterVec
	reissues  *prometheus.CounterVec
	logouts   prometheus.Counter
	theft     prometheus.Counter
	blacklist prometheus.Counter
}

// NewMetrics registers session counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chonggak",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		reissues: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chonggak",
			Subsystem: "auth",
			Name:      "reissues_total",
			Help:      "Refresh-token reissue attempts by result.",
		}, []string{"result"}),
		logouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "chonggak",
			Subsystem: "auth",
			Name:      "logouts_total",
			Help:      "Completed logouts.",
		}),
		theft: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "chonggak",
			Subsystem: "auth",
			Name:      "refresh_theft_detected_total",
			Help:      "Refresh-token mismatches that triggered a full-account revocation sweep.",
		}),
		blacklist: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "chonggak",
			Subsystem: "auth",
			Name:      "blacklisted_rejections_total",
			Help:      "Requests rejected because the access token jti was blacklisted.",
		}),
	}
}

func (m *Metrics) login(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) reissue(result string) {
	if m == nil {
		return
	}
	m.reissues.WithLabelValues(result).Inc()
}

func (m *Metrics) logout() {
	if m == nil {
		return
	}
	m.logouts.Inc()
}

func (m *Metrics) theftDetected() {
	if m == nil {
		return
	}
	m.theft.Inc()
}

func (m *Metrics) blacklistedRejected() {
	if m == nil {
		return
	}
	m.blacklist.Inc()
}
