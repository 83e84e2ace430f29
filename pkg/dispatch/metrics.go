package dispatch

// metrics.go is a thin abstraction over Prometheus, directly modeled on the
// teacher's pkg/metrics.go metricsSink split: a no-op sink when the caller
// doesn't pass WithMetrics, a Prometheus-backed one when they do, so the hot
// path never pays for a metric update it didn't ask for.
//
// ┌───────────────────────────────┬───────┬────────────────┐
// │ Metric                        │ Type  │ Labels         │
// ├────────────────────────────────┼───────┼────────────────┤
// │ dispatch_lookups_total         │ Ctr   │ result         │
// │ dispatch_cache_hits_total      │ Ctr   │ —              │
// │ dispatch_init_waits_total      │ Ctr   │ —              │
// │ dispatch_dtable_bytes          │ Gge   │ —              │
// └───────────────────────────────┴───────┴────────────────┘

import (
	"github.com/prometheus/client_golang/prometheus"
)

// lookup results a send may resolve to, used as the `result` label.
const (
	resultHit     = "hit"
	resultMiss    = "miss"
	resultForward = "forward"
	resultProxy   = "proxy"
)

type metricsSink interface {
	incLookup(result string)
	incCacheHit()
	incInitWait()
	setDtableBytes(v int64)
}

type noopMetrics struct{}

func (noopMetrics) incLookup(string)     {}
func (noopMetrics) incCacheHit()         {}
func (noopMetrics) incInitWait()         {}
func (noopMetrics) setDtableBytes(int64) {}

type promMetrics struct {
	lookups      *prometheus.CounterVec
	cacheHits    prometheus.Counter
	initWaits    prometheus.Counter
	dtableBytes  prometheus.Gauge
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	pm := &promMetrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "lookups_total",
			Help:      "Message sends resolved, by how they resolved.",
		}, []string{"result"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "cache_hits_total",
			Help:      "Dtable round-robin cache hits.",
		}),
		initWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "init_waits_total",
			Help:      "Times a sender blocked on another class's initializer.",
		}),
		dtableBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dispatch",
			Name:      "dtable_bytes",
			Help:      "Bytes allocated across the dtable, slot and type-list pools.",
		}),
	}
	reg.MustRegister(pm.lookups, pm.cacheHits, pm.initWaits, pm.dtableBytes)
	return pm
}

func (m *promMetrics) incLookup(result string) { m.lookups.WithLabelValues(result).Inc() }
func (m *promMetrics) incCacheHit()            { m.cacheHits.Inc() }
func (m *promMetrics) incInitWait()            { m.initWaits.Inc() }
func (m *promMetrics) setDtableBytes(v int64)  { m.dtableBytes.Set(float64(v)) }

func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
