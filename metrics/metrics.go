// Package metrics wires the named counters/gauges/histograms consensus
// components emit into a caller-supplied prometheus.Registerer, the way
// the teacher's metrics.Metrics wraps one.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry owns the named collectors for one consensus instance and
// registers them against the caller's prometheus.Registerer.
type Registry struct {
	reg prometheus.Registerer

	RoundDuration       prometheus.Histogram
	BlocksAdmitted      prometheus.Counter
	BlocksFinalized     prometheus.Counter
	SelectionMisses     prometheus.Counter
	SlashEvents         prometheus.Counter
	FeesRecycled        prometheus.Counter
	TelemetryDropped    prometheus.Counter
	GossipDropped       prometheus.Counter
	PoisonedModelEvents prometheus.Counter
}

// New creates and registers a Registry's collectors against reg. If reg is
// nil, a private registry is created so callers in tests never collide
// with the global default registerer.
func New(reg prometheus.Registerer) *Registry {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Registry{
		reg: reg,
		RoundDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ippan_round_duration_seconds",
			Help:    "Wall-clock duration of a consensus round.",
			Buckets: prometheus.DefBuckets,
		}),
		BlocksAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ippan_blocks_admitted_total",
			Help: "Blocks accepted into the DAG.",
		}),
		BlocksFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ippan_blocks_finalized_total",
			Help: "Blocks marked finalized at a round boundary.",
		}),
		SelectionMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ippan_selection_misses_total",
			Help: "Rounds where the candidate set was empty or undersized.",
		}),
		SlashEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ippan_slash_events_total",
			Help: "Bond slashing events applied.",
		}),
		FeesRecycled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ippan_fees_recycled_total",
			Help: "Atomic units recycled from the fee accumulator into the reward pool.",
		}),
		TelemetryDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ippan_telemetry_dropped_total",
			Help: "Telemetry samples dropped due to bounded-queue backpressure.",
		}),
		GossipDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ippan_gossip_dropped_total",
			Help: "Gossip messages dropped due to bounded-queue backpressure.",
		}),
		PoisonedModelEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ippan_poisoned_model_events_total",
			Help: "Times a model was latched poisoned after a runtime structural violation.",
		}),
	}
	for _, c := range []prometheus.Collector{
		r.RoundDuration, r.BlocksAdmitted, r.BlocksFinalized, r.SelectionMisses,
		r.SlashEvents, r.FeesRecycled, r.TelemetryDropped, r.GossipDropped,
		r.PoisonedModelEvents,
	} {
		_ = r.reg.Register(c)
	}
	return r
}

// Register registers an additional collector against the same registerer.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.reg.Register(c)
}
