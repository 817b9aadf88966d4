package commands_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/export"
	"github.com/andrescamacho/swarmsim-go/internal/application/common"
	"github.com/andrescamacho/swarmsim-go/internal/application/simulation/commands"
	"github.com/andrescamacho/swarmsim-go/internal/domain/shared"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/config"
	"github.com/andrescamacho/swarmsim-go/test/helpers"
)

// shortOverrides turns the baseline into a one-year run with early launches
func shortOverrides() map[string]interface{} {
	return map[string]interface{}{
		"horizon_years":      1.0,
		"phases.phase0_days": 20.0,
		"phases.phase1_days": 20.0,
	}
}

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingLogger) count(message string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.messages {
		if m == message {
			n++
		}
	}
	return n
}

func TestRunSimulationHandler_SingleRunWritesAndPersists(t *testing.T) {
	// Arrange
	repo := helpers.NewTestRunRepository(t)
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	handler := commands.NewRunSimulationHandler(config.NewScenarioLoader(), commands.RunnerOptions{
		Repo:   repo,
		Writer: export.NewDirectoryWriter(),
		Clock:  shared.NewMockClock(start, time.Second),
	})
	outDir := filepath.Join(t.TempDir(), "out")

	// Act
	resp, err := handler.Handle(context.Background(), &commands.RunSimulationCommand{
		Overrides: shortOverrides(),
		OutputDir: outDir,
		Persist:   true,
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.RunSimulationResponse)
	require.Len(t, result.Runs, 1)
	run := result.Runs[0]
	assert.Equal(t, "mercury_baseline", run.ScenarioName)
	assert.Equal(t, int64(42), run.Seed)
	assert.Equal(t, start, run.CreatedAt)
	assert.Len(t, run.Results.Timeseries, 365)
	assert.Equal(t, []string{outDir}, result.OutputDirs)
	assert.FileExists(t, filepath.Join(outDir, export.TimeseriesFile))
	assert.FileExists(t, filepath.Join(outDir, export.SummaryFile))

	stored, err := repo.FindByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Results.Timeseries, 365)
}

func TestRunSimulationHandler_Replicates(t *testing.T) {
	// Arrange
	handler := commands.NewRunSimulationHandler(config.NewScenarioLoader(), commands.RunnerOptions{
		Writer:  export.NewDirectoryWriter(),
		Workers: 2,
	})
	outDir := t.TempDir()

	// Act
	resp, err := handler.Handle(context.Background(), &commands.RunSimulationCommand{
		Overrides:  shortOverrides(),
		Replicates: 3,
		OutputDir:  outDir,
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.RunSimulationResponse)
	require.Len(t, result.Runs, 3)
	for i, run := range result.Runs {
		assert.Equal(t, int64(42+i), run.Seed)
		assert.Equal(t, filepath.Join(outDir, fmt.Sprintf("replicate_%03d", i)), result.OutputDirs[i])
		assert.DirExists(t, result.OutputDirs[i])
		// the model has no stochastic terms, so replicates agree
		assert.Equal(t, result.Runs[0].Results.Summary.TotalAreaM2, run.Results.Summary.TotalAreaM2)
	}
	assert.NotEqual(t, result.Runs[0].ID, result.Runs[1].ID)
}

func TestRunSimulationHandler_ProgressIsThrottledAndLogged(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)
	handler := commands.NewRunSimulationHandler(config.NewScenarioLoader(), commands.RunnerOptions{
		ProgressInterval: time.Hour,
	})

	// Act
	_, err := handler.Handle(ctx, &commands.RunSimulationCommand{Overrides: shortOverrides()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, logger.count("Simulation started"))
	assert.Equal(t, 1, logger.count("Simulation finished"))
	assert.Equal(t, 1, logger.count("Simulation progress"))
}

func TestRunSimulationHandler_Errors(t *testing.T) {
	handler := commands.NewRunSimulationHandler(config.NewScenarioLoader(), commands.RunnerOptions{})

	t.Run("invalid scenario fails before running", func(t *testing.T) {
		overrides := shortOverrides()
		overrides["vehicles.launchers.mercury_mass_driver.cooldown_s"] = 0.0

		_, err := handler.Handle(context.Background(), &commands.RunSimulationCommand{Overrides: overrides})

		assert.ErrorContains(t, err, "cooldown_s")
	})

	t.Run("persist without repository", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), &commands.RunSimulationCommand{
			Overrides: shortOverrides(),
			Persist:   true,
		})

		assert.ErrorContains(t, err, "no run repository")
	})

	t.Run("wrong request type", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), &commands.RunSweepCommand{})

		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := handler.Handle(ctx, &commands.RunSimulationCommand{Overrides: shortOverrides()})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseSweepParam(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		key     string
		values  []float64
		wantErr bool
	}{
		{name: "inclusive end", spec: "production.uptime_fraction=0.7:0.9:0.1", key: "production.uptime_fraction", values: []float64{0.7, 0.8, 0.9}},
		{name: "single point", spec: "caps.max_growth_multiplier=5:5:1", key: "caps.max_growth_multiplier", values: []float64{5}},
		{name: "integer steps", spec: "horizon_years=1:3:1", key: "horizon_years", values: []float64{1, 2, 3}},
		{name: "missing equals", spec: "production.uptime_fraction", wantErr: true},
		{name: "two bounds", spec: "x=1:2", wantErr: true},
		{name: "zero step", spec: "x=1:2:0", wantErr: true},
		{name: "min above max", spec: "x=3:2:1", wantErr: true},
		{name: "not a number", spec: "x=a:2:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			param, err := commands.ParseSweepParam(tt.spec)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, param.Key)
			assert.InDeltaSlice(t, tt.values, param.Values, 1e-9)
		})
	}
}

func TestSweepParam_DirName(t *testing.T) {
	param := commands.SweepParam{Key: "production.uptime_fraction"}

	assert.Equal(t, "production_uptime_fraction_0.85", param.DirName(0.85))
	assert.Equal(t, "production_uptime_fraction_2", param.DirName(2))
}

func TestSweepParam_DirNameKeepsCloseValuesApart(t *testing.T) {
	// Arrange
	param, err := commands.ParseSweepParam("production.uptime_fraction=0.3:0.3012:0.0004")
	require.NoError(t, err)
	require.Len(t, param.Values, 4)

	// Act
	dirs := make(map[string]float64, len(param.Values))
	for _, v := range param.Values {
		dirs[param.DirName(v)] = v
	}

	// Assert
	assert.Len(t, dirs, len(param.Values))
	assert.Contains(t, dirs, "production_uptime_fraction_0.3")
	assert.Contains(t, dirs, "production_uptime_fraction_0.3004")
}

func TestParseSweepParam_DropsStepNoise(t *testing.T) {
	param, err := commands.ParseSweepParam("k=0.1:0.3:0.1")

	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, param.Values)
}

func TestParseSweepParam_RejectsStepBelowResolution(t *testing.T) {
	_, err := commands.ParseSweepParam("k=1:1.0000000000001:0.00000000000002")

	assert.Error(t, err)
}

func TestRunSweepHandler_OrderedPoints(t *testing.T) {
	// Arrange
	repo := helpers.NewTestRunRepository(t)
	handler := commands.NewRunSweepHandler(config.NewScenarioLoader(), commands.RunnerOptions{
		Repo:    repo,
		Writer:  export.NewDirectoryWriter(),
		Workers: 3,
	})
	outDir := t.TempDir()

	// Act
	resp, err := handler.Handle(context.Background(), &commands.RunSweepCommand{
		Param:     "production.uptime_fraction=0.5:0.9:0.2",
		Overrides: shortOverrides(),
		OutputDir: outDir,
		Persist:   true,
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.RunSweepResponse)
	assert.Equal(t, "production.uptime_fraction", result.Key)
	require.Len(t, result.Points, 3)
	for i, p := range result.Points {
		require.NotNil(t, p.Run)
		assert.DirExists(t, p.OutputDir)
		if i > 0 {
			assert.Greater(t, p.Value, result.Points[i-1].Value)
			assert.GreaterOrEqual(t, p.Run.Results.Summary.TotalAreaM2, result.Points[i-1].Run.Results.Summary.TotalAreaM2)
		}
	}
	assert.Equal(t, filepath.Join(outDir, "production_uptime_fraction_0.5"), result.Points[0].OutputDir)
	assert.Equal(t, "production.uptime_fraction=0.5", result.Points[0].Run.Label)

	stored, err := repo.List(context.Background(), simulationListAll())
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestRunSweepHandler_InvalidPointFailsBeforeRunning(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)
	handler := commands.NewRunSweepHandler(config.NewScenarioLoader(), commands.RunnerOptions{})

	// Act
	_, err := handler.Handle(ctx, &commands.RunSweepCommand{
		Param:     "vehicles.launchers.mercury_mass_driver.cooldown_s=0:60:60",
		Overrides: shortOverrides(),
	})

	// Assert
	assert.Error(t, err)
	assert.Zero(t, logger.count("Simulation started"))
}

func simulationListAll() simulation.ListOptions {
	return simulation.ListOptions{Limit: 100}
}
