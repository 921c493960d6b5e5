package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	// Create a separate registry for this test
	testRegistry := prometheus.NewRegistry()
	registry := NewRegistry(testRegistry)

	// Example of recording job outcomes
	registry.JobsSubmitted.WithLabelValues("reports").Add(10)
	registry.JobsCompleted.WithLabelValues("reports").Add(8)
	registry.JobsFailed.WithLabelValues("reports").Add(2)

	fmt.Println("Metrics updated successfully")

	// Output:
	// Metrics updated successfully
}

// Example_customNamespace demonstrates overriding the metric namespace.
func Example_customNamespace() {
	cfg := Config{
		Registry:  prometheus.NewRegistry(),
		Namespace: "myapp",
	}
	registry := NewRegistryWith(cfg)

	registry.PipelineElements.WithLabelValues("ingest").Add(100)

	fmt.Printf("Namespace: %s\n", cfg.Namespace)

	// Output:
	// Namespace: myapp
}

// Example_configuration demonstrates the default configuration.
func Example_configuration() {
	cfg := DefaultConfig()
	fmt.Printf("Default namespace: %s\n", cfg.Namespace)

	// Output:
	// Default namespace: seqflow
}
