package cache

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "retromat",
	Subsystem: "cache",
	Name:      "requests_total",
	Help:      "Total number of cache lookups broken down by key namespace and hit/miss.",
}, []string{"namespace", "result"})

func recordRequest(key string, hit bool) {
	namespace, _, _ := strings.Cut(key, ":")
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequests.WithLabelValues(namespace, result).Inc()
}
