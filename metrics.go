package styleai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "styleai_client",
		Name:      "requests_total",
		Help:      "Backend requests issued by the SDK, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

func observeRequest(endpoint string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	requestsTotal.WithLabelValues(endpoint, outcome).Inc()
}
