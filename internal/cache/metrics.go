package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts cache outcomes. A nil *Metrics records nothing.
type Metrics struct {
	requests    *prometheus.CounterVec
	fetchErrors prometheus.Counter
}

// NewMetrics registers the cache counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "read_cache_requests_total",
				Help: "Read-through cache lookups by outcome (hit, miss, coalesced).",
			},
			[]string{"outcome"},
		),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "read_cache_fetch_errors_total",
			Help: "Fetches that failed and were not cached.",
		}),
	}
	if err := reg.Register(m.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(m.fetchErrors); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) hit() {
	if m != nil {
		m.requests.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.requests.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) coalesced() {
	if m != nil {
		m.requests.WithLabelValues("coalesced").Inc()
	}
}

func (m *Metrics) fetchError() {
	if m != nil {
		m.fetchErrors.Inc()
	}
}
