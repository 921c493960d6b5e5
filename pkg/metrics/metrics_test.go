package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistryRecords(t *testing.T) {
	registry := NewRegistry(prometheus.NewRegistry())

	registry.JobsSubmitted.WithLabelValues("r1").Inc()
	registry.JobsSubmitted.WithLabelValues("r1").Inc()
	registry.JobsFailed.WithLabelValues("r1").Inc()
	registry.QueueDepth.WithLabelValues("r1").Set(3)

	if got := promtest.ToFloat64(registry.JobsSubmitted.WithLabelValues("r1")); got != 2 {
		t.Errorf("expected 2 submitted jobs, got %v", got)
	}
	if got := promtest.ToFloat64(registry.JobsFailed.WithLabelValues("r1")); got != 1 {
		t.Errorf("expected 1 failed job, got %v", got)
	}
	if got := promtest.ToFloat64(registry.QueueDepth.WithLabelValues("r1")); got != 3 {
		t.Errorf("expected queue depth 3, got %v", got)
	}
}

func TestRegistriesAreIsolated(t *testing.T) {
	a := NewRegistry(prometheus.NewRegistry())
	b := NewRegistry(prometheus.NewRegistry())

	a.ScheduledRuns.WithLabelValues("nightly").Inc()

	if got := promtest.ToFloat64(b.ScheduledRuns.WithLabelValues("nightly")); got != 0 {
		t.Errorf("expected isolated registry to read 0, got %v", got)
	}
}
