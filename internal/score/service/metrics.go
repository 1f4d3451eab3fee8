package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerOpsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contribution_points",
		Subsystem: "ledger",
		Name:      "operations_total",
		Help:      "The total number of ledger operations",
	}, []string{"op", "status"})

	ledgerPointsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contribution_points",
		Subsystem: "ledger",
		Name:      "points_total",
		Help:      "The total number of points credited or debited per span",
	}, []string{"op", "time_span"})
)

func observe(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ledgerOpsCounter.WithLabelValues(op, status).Inc()
}
