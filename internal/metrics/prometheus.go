package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus holds the metric vectors exposed by the service.
type Prometheus struct {
	Samples     *prometheus.CounterVec
	Fits        *prometheus.CounterVec
	FitDuration prometheus.Histogram
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "draw",
				Name:      "samples",
			}, []string{"source", "outcome"}),
		Fits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "draw",
				Name:      "fits",
			}, []string{"outcome"}),
		FitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "draw",
				Name:      "fit_duration_seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			}),
	}
}
