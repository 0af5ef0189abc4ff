package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	CalculatorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "divihub",
			Subsystem: "calculators",
			Name:      "latency_seconds",
			Help:      "Latency of calculator endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	CalculatorErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "divihub",
			Subsystem: "calculators",
			Name:      "errors_total",
			Help:      "Errors by calculator endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(CalculatorLatency, CalculatorErrors)
	})
}
