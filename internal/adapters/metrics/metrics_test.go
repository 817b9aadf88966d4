package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/application/common"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

func float64Ptr(v float64) *float64 { return &v }

func sampleResults() *simulation.Results {
	return &simulation.Results{
		Timeseries: []simulation.DayRecord{
			{Day: 0, CumAreaM2: 10},
			{Day: 1, CumAreaM2: 25, PowerGW: 0.5, MassDriversOnline: 2, GrowthMultiplier: 1.5, ResourceRemainingKg: float64Ptr(900)},
		},
		Summary: simulation.Summary{YearsToTarget: float64Ptr(0.25)},
	}
}

func TestSimulationMetricsCollector_RecordRunCompletion(t *testing.T) {
	// Arrange
	InitRegistry()
	t.Cleanup(Reset)
	collector := NewSimulationMetricsCollector()
	require.NoError(t, collector.Register())

	// Act
	collector.RecordRunCompletion("baseline", 0.2, sampleResults())

	// Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.runsTotal.WithLabelValues("baseline", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.daysSimulatedTotal.WithLabelValues("baseline")))
	assert.Equal(t, 25.0, testutil.ToFloat64(collector.finalAreaM2.WithLabelValues("baseline")))
	assert.Equal(t, 0.5, testutil.ToFloat64(collector.deliveredPowerGW.WithLabelValues("baseline")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.massDriversOnline.WithLabelValues("baseline")))
	assert.Equal(t, 1.5, testutil.ToFloat64(collector.growthMultiplier.WithLabelValues("baseline")))
	assert.Equal(t, 900.0, testutil.ToFloat64(collector.resourceRemainingKg.WithLabelValues("baseline")))
	assert.Equal(t, 0.25, testutil.ToFloat64(collector.yearsToTarget.WithLabelValues("baseline")))
}

func TestRecordRunFailure_Global(t *testing.T) {
	// Arrange
	simCollector, _, err := Setup()
	require.NoError(t, err)
	t.Cleanup(Reset)

	// Act
	RecordRunFailure("baseline", 0.01)
	RecordRunFailure("baseline", 0.02)

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(simCollector.runsTotal.WithLabelValues("baseline", "error")))
}

func TestGlobalRecorder_DisabledIsNoop(t *testing.T) {
	// Arrange
	Reset()

	// Act / Assert
	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() { RecordRunCompletion("baseline", 1, sampleResults()) })
	assert.NoError(t, WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
}

func TestWriteTextfile(t *testing.T) {
	// Arrange
	_, _, err := Setup()
	require.NoError(t, err)
	t.Cleanup(Reset)
	RecordRunCompletion("baseline", 0.1, sampleResults())
	path := filepath.Join(t.TempDir(), "swarmsim.prom")

	// Act
	err = WriteTextfile(path)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `swarmsim_simulation_runs_total{scenario="baseline",status="success"} 1`)
	assert.Contains(t, string(data), "swarmsim_simulation_final_area_m2")
}

type runSweepCommand struct{}

func TestPrometheusMiddleware_RecordsStatus(t *testing.T) {
	// Arrange
	InitRegistry()
	t.Cleanup(Reset)
	collector := NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := PrometheusMiddleware(collector)

	ok := func(ctx context.Context, request common.Request) (common.Response, error) { return "done", nil }
	fail := func(ctx context.Context, request common.Request) (common.Response, error) {
		return nil, errors.New("boom")
	}

	// Act
	resp, err := mw(context.Background(), &runSweepCommand{}, ok)
	require.NoError(t, err)
	_, failErr := mw(context.Background(), &runSweepCommand{}, fail)

	// Assert
	assert.Equal(t, "done", resp)
	assert.Error(t, failErr)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("runSweepCommand", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("runSweepCommand", "error")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	// Arrange
	mw := PrometheusMiddleware(nil)

	// Act
	resp, err := mw(context.Background(), &runSweepCommand{}, func(ctx context.Context, request common.Request) (common.Response, error) {
		return 7, nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, resp)
}
