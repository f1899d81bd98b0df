package apiclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "catalogo_gateway"

// Collector métricas de las llamadas del cliente REST. Implementa prometheus.Collector.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsCollector construye el collector; registrarlo es responsabilidad del llamador.
func NewMetricsCollector() *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "Llamadas a la API de catálogo por recurso, operación y resultado.",
			}, []string{"recurso", "operacion", "resultado"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "Duración de las llamadas a la API de catálogo.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			}, []string{"recurso", "operacion"},
		),
	}
}

// Describe envía las descripciones de las métricas (prometheus.Collector).
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.duration.Describe(ch)
}

// Collect envía los valores actuales de las métricas (prometheus.Collector).
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.duration.Collect(ch)
}

// observe registra una llamada. resultado: "ok", "http_4xx", "http_5xx" o "red".
func (c *Collector) observe(recurso, operacion, resultado string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(recurso, operacion, resultado).Inc()
	c.duration.WithLabelValues(recurso, operacion).Observe(elapsed.Seconds())
}
