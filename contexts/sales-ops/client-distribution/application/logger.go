package application

import (
	"log/slog"
	"time"

	"roster/contexts/sales-ops/client-distribution/ports"
)

func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// ResolveMetrics falls back to a recorder that drops every observation.
func ResolveMetrics(metrics ports.Metrics) ports.Metrics {
	if metrics != nil {
		return metrics
	}
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveAssignment(string) {}

func (noopMetrics) ObserveSkip() {}

func (noopMetrics) ObserveImport(int, int, time.Duration) {}

func (noopMetrics) ObserveOrphans(int) {}
