package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BatchesTotal is the number of GetRecords batches fetched, empty ones included.
	BatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kiter",
			Name:      "batches_total",
			Help:      "GetRecords batches fetched per shard.",
		},
		[]string{"shard"},
	)

	// RecordsTotal is the number of records fetched.
	RecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kiter",
			Name:      "records_total",
			Help:      "Records fetched per shard.",
		},
		[]string{"shard"},
	)

	// ErrorsTotal is the number of failed calls to the stream service, by error kind.
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kiter",
			Name:      "errors_total",
			Help:      "Failed stream service calls per shard and error kind.",
		},
		[]string{"shard", "kind"},
	)

	// RetriesTotal is the number of backoff retries.
	RetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kiter",
			Name:      "retries_total",
			Help:      "Retries after transient failures per shard.",
		},
		[]string{"shard"},
	)

	// MillisBehindLatest is the lag reported by the last GetRecords call.
	MillisBehindLatest = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "kiter",
			Name:      "millis_behind_latest",
			Help:      "MillisBehindLatest reported by the last GetRecords call per shard.",
		},
		[]string{"shard"},
	)

	// ActivePollers is the number of shard pollers currently running.
	ActivePollers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "kiter",
			Name:      "active_pollers",
			Help:      "Shard pollers currently running.",
		},
	)
)

// Collectors returns every collector defined in this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		BatchesTotal,
		RecordsTotal,
		ErrorsTotal,
		RetriesTotal,
		MillisBehindLatest,
		ActivePollers,
	}
}

// Register adds all collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
