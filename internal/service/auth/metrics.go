package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness",
		Subsystem: "auth",
		Name:      "operations_total",
		Help:      "Auth operations by name and result.",
	}, []string{"op", "result"})

	refreshCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness",
		Subsystem: "auth",
		Name:      "refresh_cache_total",
		Help:      "Refresh token cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	janitorPurgedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness",
		Subsystem: "auth",
		Name:      "janitor_purged_total",
		Help:      "Expired rows removed by the janitor.",
	}, []string{"kind"})
)

// observe фиксирует результат операции: "ok" или "error".
func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	authOpsTotal.WithLabelValues(op, result).Inc()
}
