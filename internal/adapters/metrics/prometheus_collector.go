package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

const (
	// Namespace for all metrics
	namespace = "swarmsim"
	// Subsystem for simulation metrics
	subsystem = "simulation"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSimulationCollector is set by SetGlobalSimulationCollector() when
	// metrics are enabled
	globalSimulationCollector SimulationMetricsRecorder
)

// SimulationMetricsRecorder records the outcome of simulation runs
type SimulationMetricsRecorder interface {
	RecordRunCompletion(scenarioName string, durationSeconds float64, results *simulation.Results)
	RecordRunFailure(scenarioName string, durationSeconds float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalSimulationCollector sets the global simulation metrics collector
func SetGlobalSimulationCollector(collector SimulationMetricsRecorder) {
	globalSimulationCollector = collector
}

// RecordRunCompletion records a finished run globally
func RecordRunCompletion(scenarioName string, durationSeconds float64, results *simulation.Results) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordRunCompletion(scenarioName, durationSeconds, results)
	}
}

// RecordRunFailure records a run that returned an error globally
func RecordRunFailure(scenarioName string, durationSeconds float64) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordRunFailure(scenarioName, durationSeconds)
	}
}

// WriteTextfile writes the global registry in Prometheus text format, for
// the node exporter textfile collector. No-op when metrics are disabled.
func WriteTextfile(path string) error {
	if Registry == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Setup initializes the registry and registers every collector, making them
// globally reachable. Reset undoes it.
func Setup() (*SimulationMetricsCollector, *CommandMetricsCollector, error) {
	InitRegistry()

	simCollector := NewSimulationMetricsCollector()
	if err := simCollector.Register(); err != nil {
		return nil, nil, fmt.Errorf("failed to register simulation metrics: %w", err)
	}
	cmdCollector := NewCommandMetricsCollector()
	if err := cmdCollector.Register(); err != nil {
		return nil, nil, fmt.Errorf("failed to register command metrics: %w", err)
	}

	SetGlobalSimulationCollector(simCollector)
	return simCollector, cmdCollector, nil
}

// Reset clears the global registry and recorder
func Reset() {
	Registry = nil
	globalSimulationCollector = nil
}
