package state

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK    = "ok"
	resultError = "error"
	resultEmpty = "empty"
)

var (
	dispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_engine_dispatch_total",
			Help: "Total number of actions applied by a state engine.",
		},
		[]string{"engine", "action"},
	)

	persistTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_engine_persist_total",
			Help: "Total number of state persistence writes by result.",
		},
		[]string{"engine", "result"},
	)

	hydrateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_engine_hydrate_total",
			Help: "Total number of hydration attempts by result.",
		},
		[]string{"engine", "result"},
	)
)
