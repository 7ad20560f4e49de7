package main

import (
	"log"
	"strings"

	"db2schema/internal/config"
	"db2schema/internal/metrics"
	"db2schema/internal/metrics/datadog"
	"db2schema/internal/metrics/prompush"
)

// setupMetrics installs the configured backend and returns the function that
// flushes it at exit.
func setupMetrics(m config.Metrics, logger *log.Logger, verbosity int) func() {
	flush := func() {
		if err := metrics.Flush(); err != nil {
			logger.Printf("metrics: flush error: %v", err)
		}
	}

	backend := strings.ToLower(strings.TrimSpace(m.Backend))
	switch backend {
	case "pushgateway", "prom", "prometheus":
		b, err := prompush.NewBackend(m.JobOrDefault(), m.PushgatewayURL)
		if err != nil {
			logger.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return func() {}
		}
		if verbosity >= 1 {
			logger.Printf("metrics: url=%v, backend=%v, job_name=%v", m.PushgatewayURL, backend, m.JobOrDefault())
		}
		metrics.SetBackend(b)
		return flush

	case "datadog", "dogstatsd":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       m.DatadogAddr,
			GlobalTags: append([]string{"job:" + m.JobOrDefault()}, m.DatadogTags...),
		})
		if err != nil {
			logger.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return func() {}
		}
		if verbosity >= 1 {
			logger.Printf("metrics: addr=%v, backend=%v", m.DatadogAddr, backend)
		}
		metrics.SetBackend(b)
		return flush

	case "", "none":
		if verbosity >= 2 {
			logger.Printf("metrics: disabled (backend=%q)", m.Backend)
		}
	default:
		logger.Printf("metrics: unknown backend %q; metrics disabled", m.Backend)
	}
	return func() {}
}
