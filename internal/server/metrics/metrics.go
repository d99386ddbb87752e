// Package metrics holds the Prometheus collectors of the hang service.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "letshang_mutations_total", Help: "Total state-changing operations by kind and result"},
		[]string{"op", "result"},
	)
	Votes = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "letshang_votes_total", Help: "Total suggestion votes recorded"},
	)
	ActiveHangs = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "letshang_active_hangs", Help: "Active hangs seen by the most recent listing"},
	)
	RPCDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "letshang_rpc_duration_seconds",
			Help:    "gRPC handling time by method and status code",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)
)

// Register adds every collector to reg. Collectors that are already
// registered there are skipped.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{Mutations, Votes, ActiveHangs, RPCDuration} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveMutation counts one operation under op with a result label derived from err.
func ObserveMutation(op string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	Mutations.WithLabelValues(op, result).Inc()
}
