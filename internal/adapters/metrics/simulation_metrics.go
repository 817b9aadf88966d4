package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

// SimulationMetricsCollector handles run outcome metrics. Gauges hold the
// figures of the latest completed run per scenario.
type SimulationMetricsCollector struct {
	runsTotal          *prometheus.CounterVec
	runDuration        *prometheus.HistogramVec
	daysSimulatedTotal *prometheus.CounterVec

	finalAreaM2         *prometheus.GaugeVec
	deliveredPowerGW    *prometheus.GaugeVec
	massDriversOnline   *prometheus.GaugeVec
	growthMultiplier    *prometheus.GaugeVec
	resourceRemainingKg *prometheus.GaugeVec
	yearsToTarget       *prometheus.GaugeVec
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      name,
				Help:      help,
			},
			[]string{"scenario"},
		)
	}

	return &SimulationMetricsCollector{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Total number of simulation runs by scenario and status",
			},
			[]string{"scenario", "status"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "run_duration_seconds",
				Help:      "Wall-clock duration of simulation runs",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"scenario"},
		),
		daysSimulatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "days_simulated_total",
				Help:      "Total number of simulated days across runs",
			},
			[]string{"scenario"},
		),
		finalAreaM2:         gauge("final_area_m2", "Cumulative deployed collector area at the end of the latest run"),
		deliveredPowerGW:    gauge("delivered_power_gw", "Delivered power at 1 AU equivalent at the end of the latest run"),
		massDriversOnline:   gauge("mass_drivers_online", "Mass drivers online at the end of the latest run"),
		growthMultiplier:    gauge("growth_multiplier", "Factory growth multiplier at the end of the latest run"),
		resourceRemainingKg: gauge("resource_remaining_kg", "Usable site mass left at the end of the latest run"),
		yearsToTarget:       gauge("years_to_target", "Years until the area target was first reached in the latest run"),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.runsTotal,
		c.runDuration,
		c.daysSimulatedTotal,
		c.finalAreaM2,
		c.deliveredPowerGW,
		c.massDriversOnline,
		c.growthMultiplier,
		c.resourceRemainingKg,
		c.yearsToTarget,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordRunCompletion records a successful run. Unreached targets and
// unbounded resources leave their gauges untouched.
func (c *SimulationMetricsCollector) RecordRunCompletion(scenarioName string, durationSeconds float64, results *simulation.Results) {
	c.runsTotal.WithLabelValues(scenarioName, "success").Inc()
	c.runDuration.WithLabelValues(scenarioName).Observe(durationSeconds)

	if results == nil || len(results.Timeseries) == 0 {
		return
	}
	c.daysSimulatedTotal.WithLabelValues(scenarioName).Add(float64(len(results.Timeseries)))

	final := results.Final()
	c.finalAreaM2.WithLabelValues(scenarioName).Set(final.CumAreaM2)
	c.deliveredPowerGW.WithLabelValues(scenarioName).Set(final.PowerGW)
	c.massDriversOnline.WithLabelValues(scenarioName).Set(float64(final.MassDriversOnline))
	c.growthMultiplier.WithLabelValues(scenarioName).Set(final.GrowthMultiplier)

	if final.ResourceRemainingKg != nil {
		c.resourceRemainingKg.WithLabelValues(scenarioName).Set(*final.ResourceRemainingKg)
	}
	if years := results.Summary.YearsToTarget; years != nil {
		c.yearsToTarget.WithLabelValues(scenarioName).Set(*years)
	}
}

// RecordRunFailure records a run that returned an error
func (c *SimulationMetricsCollector) RecordRunFailure(scenarioName string, durationSeconds float64) {
	c.runsTotal.WithLabelValues(scenarioName, "error").Inc()
	c.runDuration.WithLabelValues(scenarioName).Observe(durationSeconds)
}
