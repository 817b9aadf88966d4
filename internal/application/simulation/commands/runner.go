package commands

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/metrics"
	"github.com/andrescamacho/swarmsim-go/internal/application/common"
	"github.com/andrescamacho/swarmsim-go/internal/domain/scenario"
	"github.com/andrescamacho/swarmsim-go/internal/domain/shared"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/tracing"
)

// RunnerOptions are the collaborators shared by the run and sweep handlers.
// Repo and Writer may be nil when nothing is persisted or written.
type RunnerOptions struct {
	Repo             simulation.RunRepository
	Writer           ResultsWriter
	Clock            shared.Clock
	Workers          int
	ProgressInterval time.Duration
}

// runner executes one scenario end to end: engine, outputs, persistence,
// metrics and tracing
type runner struct {
	repo             simulation.RunRepository
	writer           ResultsWriter
	clock            shared.Clock
	workers          int
	progressInterval time.Duration
}

func newRunner(opts RunnerOptions) *runner {
	clock := opts.Clock
	if clock == nil {
		clock = shared.NewRealClock()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	return &runner{
		repo:             opts.Repo,
		writer:           opts.Writer,
		clock:            clock,
		workers:          workers,
		progressInterval: opts.ProgressInterval,
	}
}

// runSpec is one engine execution
type runSpec struct {
	scenario  scenario.Scenario
	label     string
	outputDir string
	persist   bool
}

func (r *runner) execute(ctx context.Context, spec runSpec) (*simulation.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)
	sc := spec.scenario
	name := scenarioName(sc)

	ctx, span := tracing.Tracer().Start(ctx, "simulation.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("scenario.name", name),
		attribute.Int64("scenario.seed", sc.Seed),
		attribute.Int("scenario.horizon_years", sc.Horizon()),
		attribute.String("run.label", spec.label),
	)

	engine, err := simulation.NewEngine(sc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid scenario")
		return nil, fmt.Errorf("failed to build simulation: %w", err)
	}

	r.attachProgress(engine, logger, name, spec.label)

	logger.Log("INFO", "Simulation started", map[string]interface{}{
		"scenario": name,
		"label":    spec.label,
		"seed":     sc.Seed,
		"days":     engine.Days(),
	})

	start := time.Now()
	results, err := engine.Run()
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordRunFailure(name, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "simulation failed")
		return nil, fmt.Errorf("simulation %s failed: %w", name, err)
	}
	metrics.RecordRunCompletion(name, elapsed, results)

	run := simulation.NewRun(name, sc.Seed, sc.Horizon(), r.clock.Now(), results)
	run.Label = spec.label
	span.SetAttributes(
		attribute.String("run.id", run.ID.String()),
		attribute.Float64("run.total_area_m2", results.Summary.TotalAreaM2),
	)

	if spec.outputDir != "" && r.writer != nil {
		if err := r.writer.Write(spec.outputDir, results); err != nil {
			return nil, fmt.Errorf("failed to write outputs: %w", err)
		}
	}

	if spec.persist {
		if r.repo == nil {
			return nil, fmt.Errorf("persistence requested but no run repository is configured")
		}
		if err := r.repo.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to persist run: %w", err)
		}
	}

	fields := map[string]interface{}{
		"scenario":      name,
		"label":         spec.label,
		"run_id":        run.ID.Short(),
		"total_area_m2": results.Summary.TotalAreaM2,
		"power_gw":      results.Summary.DeliveredPowerGW,
		"elapsed_s":     elapsed,
	}
	if y := results.Summary.YearsToTarget; y != nil {
		fields["years_to_target"] = *y
	}
	logger.Log("INFO", "Simulation finished", fields)

	return run, nil
}

// attachProgress logs day records at most once per progress interval. A
// zero interval disables progress lines.
func (r *runner) attachProgress(engine *simulation.Engine, logger common.RunLogger, name, label string) {
	if r.progressInterval <= 0 {
		return
	}

	limiter := rate.NewLimiter(rate.Every(r.progressInterval), 1)
	total := engine.Days()
	engine.RegisterDayListener(func(rec simulation.DayRecord) {
		if !limiter.Allow() {
			return
		}
		logger.Log("DEBUG", "Simulation progress", map[string]interface{}{
			"scenario":    name,
			"label":       label,
			"day":         rec.Day + 1,
			"days":        total,
			"phase":       rec.Phase.String(),
			"cum_area_m2": rec.CumAreaM2,
		})
	})
}

func scenarioName(sc scenario.Scenario) string {
	if sc.Name == "" {
		return "unnamed"
	}
	return sc.Name
}
