package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the layout engine's Prometheus collectors on a private registry.
type Metrics struct {
	Registry     *prometheus.Registry
	operations   *prometheus.CounterVec
	publishBytes prometheus.Histogram
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pagebuilder_layout_operations_total",
			Help: "Layout save, load and publish calls by result.",
		}, []string{"op", "result"}),
		publishBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pagebuilder_publish_bytes",
			Help:    "Size of published documents in bytes.",
			Buckets: prometheus.ExponentialBuckets(512, 2, 8),
		}),
	}
	reg.MustRegister(m.operations, m.publishBytes)
	return m
}

// ObserveOperation counts one call of op with the given result label
// ("ok", "validation", "store", "surface", "error"). Safe on a nil receiver.
func (m *Metrics) ObserveOperation(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// ObservePublish records the size of a rendered document.
func (m *Metrics) ObservePublish(size int) {
	if m == nil {
		return
	}
	m.publishBytes.Observe(float64(size))
}

// OperationCount returns the current counter value, for tests and diagnostics.
func (m *Metrics) OperationCount(op, result string) float64 {
	if m == nil {
		return 0
	}
	families, err := m.Registry.Gather()
	if err != nil {
		return 0
	}
	for _, f := range families {
		if f.GetName() != "pagebuilder_layout_operations_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["op"] == op && labels["result"] == result {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

// Serve exposes /metrics and /healthz on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	startTime := time.Now()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok " + time.Since(startTime).Round(time.Second).String()))
	})

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listener started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
