package benchmark

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/seqflow/pkg/metrics"
	"github.com/vnykmshr/seqflow/pkg/scheduling/runner"
)

// BenchmarkSubmit measures job submission and execution throughput.
func BenchmarkSubmit(b *testing.B) {
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	r := runner.NewWithConfig(runner.Config{
		Name:      "bench",
		Workers:   4,
		QueueSize: 1024,
		Metrics:   reg,
	})
	defer func() { <-r.Shutdown() }()

	// drain results so workers never block on delivery
	go func() {
		for range r.Results() {
		}
	}()

	job := runner.JobFunc(func(context.Context) error { return nil })

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Submit("noop", job); err != nil {
			b.Fatal(err)
		}
	}
}
