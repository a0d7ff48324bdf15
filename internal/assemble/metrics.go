package assemble

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Assembly counters. Registered on the default registry; callers that
// serve /metrics get them for free.
var (
	contigsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assembly_contigs_emitted_total",
		Help: "Assembled contigs that passed the acceptance filters",
	})

	contigsFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assembly_contigs_filtered_total",
		Help: "Assembled contigs rejected by an acceptance filter",
	}, []string{"reason"})

	budgetAbandoned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assembly_path_budget_abandoned_total",
		Help: "Assembly attempts abandoned after exhausting the path traversal budget",
	})

	frontierCompactions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assembly_frontier_compactions_total",
		Help: "Frontier heap compactions across all drivers",
	})
)
