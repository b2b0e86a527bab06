package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of resource store operations by collection and operation",
		},
		[]string{"collection", "operation"},
	)

	StoreMutationMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_mutation_misses_total",
			Help: "Total number of update/remove operations that matched no record",
		},
		[]string{"collection", "operation"},
	)

	StoreCollectionSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_collection_size",
			Help: "Current number of records per collection",
		},
		[]string{"collection"},
	)
)
