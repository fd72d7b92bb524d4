package observability

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mohammed-shakir/digipin/pkg/digipin"
)

type collectors struct {
	ops          *prometheus.CounterVec
	opDuration   *prometheus.HistogramVec
	errs         *prometheus.CounterVec
	cacheResults *prometheus.CounterVec
}

var current atomic.Pointer[collectors]

// Init registers the codec metrics on reg. With enabled=false (or a nil
// registerer) every Observe/Inc helper becomes a no-op.
func Init(reg prometheus.Registerer, enabled bool) {
	if !enabled || reg == nil {
		current.Store(nil)
		return
	}
	c := &collectors{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digipin_ops_total",
				Help: "Codec operations by outcome.",
			},
			[]string{"op", "outcome"},
		),
		opDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "digipin_op_duration_seconds",
				Help:    "Duration of codec operations in seconds.",
				Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10), // 100ns to ~26ms
			},
			[]string{"op"},
		),
		errs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digipin_errors_total",
				Help: "Rejected codec inputs by error kind.",
			},
			[]string{"op", "kind"},
		),
		cacheResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_results_total",
				Help: "Memo cache results by outcome.",
			},
			[]string{"cache", "outcome"},
		),
	}
	reg.MustRegister(c.ops, c.opDuration, c.errs, c.cacheResults)
	current.Store(c)
}

func ObserveOp(op string, err error, durationSeconds float64) {
	c := current.Load()
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		c.errs.WithLabelValues(op, ErrorKind(err)).Inc()
	}
	c.ops.WithLabelValues(op, outcome).Inc()
	c.opDuration.WithLabelValues(op).Observe(durationSeconds)
}

func IncCacheHit(cache string) {
	if c := current.Load(); c != nil {
		c.cacheResults.WithLabelValues(cache, "hit").Inc()
	}
}

func IncCacheMiss(cache string) {
	if c := current.Load(); c != nil {
		c.cacheResults.WithLabelValues(cache, "miss").Inc()
	}
}

// ErrorKind maps an error to a low-cardinality label value.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, digipin.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, digipin.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, digipin.ErrInvalidCharacter):
		return "invalid_character"
	default:
		return "other"
	}
}
