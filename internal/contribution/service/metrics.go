package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contribution_points",
		Subsystem: "ingest",
		Name:      "contributions_total",
		Help:      "The total number of contribution ingestion attempts",
	}, []string{"result"})

	classifiedPointsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contribution_points",
		Subsystem: "ingest",
		Name:      "classified_total",
		Help:      "The total number of ingested contributions per point class",
	}, []string{"points"})
)
