package prometheus

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sifan077/GifBoard/config"
)

const (
	scrapeTimeout = 10 * time.Second
	defaultPort   = 9090
)

// NewRegistry returns a registry holding the Go runtime and process
// collectors; NewMetrics adds the gif collectors to it.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)
	return reg
}

// NewServer serves reg on /metrics at cfg.Port.
func NewServer(cfg config.PrometheusConfig, reg *prometheus.Registry) *http.Server {
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: scrapeTimeout / 2,
		WriteTimeout:      scrapeTimeout,
	}
}

// Handler exposes reg, instrumented with the scrape counters of reg itself.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.InstrumentMetricHandler(reg, promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry:          reg,
		Timeout:           scrapeTimeout,
		EnableOpenMetrics: true,
	}))
}
