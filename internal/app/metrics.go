package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricCallsAnswered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "teamsbot",
		Name:      "calls_answered_total",
		Help:      "Inbound calls the bot attempted to answer.",
	})
	MetricJoins = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "teamsbot",
		Name:      "joins_total",
		Help:      "Successful add-call operations.",
	})
	MetricCallsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "teamsbot",
		Name:      "calls_removed_total",
		Help:      "Tracked calls removed by platform notifications.",
	})
	MetricForceRemovals = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "teamsbot",
		Name:      "force_removals_total",
		Help:      "End-call fallbacks that force-removed a call from the platform.",
	})
	MetricTaskFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "teamsbot",
		Name:      "task_failures_total",
		Help:      "Detached background tasks that failed or panicked.",
	})
	MetricActiveCalls = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "teamsbot",
		Name:      "active_calls",
		Help:      "Calls currently tracked in the registry.",
	})
)
