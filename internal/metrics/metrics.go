package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Observer is the process wide metrics sink.
var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(
		Observer.prometheus.Samples,
		Observer.prometheus.Fits,
		Observer.prometheus.FitDuration,
	)
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

// Sample counts an incoming feature vector per source and outcome.
func (m *Metrics) Sample(labels ...string) {
	m.prometheus.Samples.WithLabelValues(labels...).Inc()
}

// Fit counts a decomposition run per outcome.
func (m *Metrics) Fit(outcome string) {
	m.prometheus.Fits.WithLabelValues(outcome).Inc()
}

// FitDuration records how long a decomposition run took.
func (m *Metrics) FitDuration(seconds float64) {
	m.prometheus.FitDuration.Observe(seconds)
}

// Serve exposes the metrics endpoint on the given port.
func Serve(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil); err != nil {
			log.Error().Err(err).Int("port", port).Msg("could not serve metrics")
		}
	}()
}
