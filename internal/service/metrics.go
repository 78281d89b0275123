package service

import "github.com/prometheus/client_golang/prometheus"

var rolloverWriteBacks = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "moneymate_rollover_writebacks_total",
		Help: "How many save plans were written back after a monthly rollover, partitioned by result.",
	},
	[]string{"result"},
)

// Metrics are the Prometheus collectors of the services. They are registered
// by the router.
var Metrics = []prometheus.Collector{
	rolloverWriteBacks,
}
