package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/swarmsim-go/internal/application/common"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/tracing"
)

// sweepSlack keeps the max endpoint despite float accumulation in the step
const sweepSlack = 1e-12

// sweepDigits is the significant-digit resolution of generated sweep values
const sweepDigits = 12

// SweepParam is a parsed key=min:max:step sweep definition
type SweepParam struct {
	Key    string
	Values []float64
}

// ParseSweepParam parses key=min:max:step. Values run from min to max
// inclusive in increments of step.
func ParseSweepParam(spec string) (SweepParam, error) {
	key, rng, ok := strings.Cut(spec, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return SweepParam{}, fmt.Errorf("sweep param %q must look like key=min:max:step", spec)
	}

	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return SweepParam{}, fmt.Errorf("sweep range %q must look like min:max:step", rng)
	}
	bounds := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return SweepParam{}, fmt.Errorf("invalid sweep bound %q: %w", p, err)
		}
		bounds[i] = v
	}
	minV, maxV, step := bounds[0], bounds[1], bounds[2]
	if step <= 0 {
		return SweepParam{}, fmt.Errorf("sweep step must be positive, got %g", step)
	}
	if minV > maxV {
		return SweepParam{}, fmt.Errorf("sweep min %g exceeds max %g", minV, maxV)
	}

	var values []float64
	for i := 0; ; i++ {
		v := minV + float64(i)*step
		if v > maxV+sweepSlack {
			break
		}
		v = roundSignificant(v, sweepDigits)
		if n := len(values); n > 0 && values[n-1] == v {
			return SweepParam{}, fmt.Errorf("sweep step %g is too fine to tell %g from the previous value", step, v)
		}
		values = append(values, v)
	}
	return SweepParam{Key: key, Values: values}, nil
}

// DirName is the output directory name of one sweep point. The value is
// written in its shortest exact form so distinct values never share a
// directory.
func (p SweepParam) DirName(value float64) string {
	return strings.ReplaceAll(p.Key, ".", "_") + "_" + strconv.FormatFloat(value, 'g', -1, 64)
}

// roundSignificant drops accumulated step noise, so 0.5+2*0.2 reads 0.9
func roundSignificant(v float64, digits int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

// RunSweepCommand runs a scenario once per value of one parameter
type RunSweepCommand struct {
	ScenarioPath string
	Param        string
	Overrides    map[string]interface{}
	// OutputDir receives one subdirectory per sweep point. Empty skips
	// file output.
	OutputDir string
	Persist   bool
}

// SweepPoint is the run for one parameter value
type SweepPoint struct {
	Value     float64
	Run       *simulation.Run
	OutputDir string
}

// RunSweepResponse lists points in ascending parameter order
type RunSweepResponse struct {
	Key    string
	Points []SweepPoint
}

// RunSweepHandler handles the RunSweep command
type RunSweepHandler struct {
	source ScenarioSource
	runner *runner
}

// NewRunSweepHandler creates a new RunSweepHandler
func NewRunSweepHandler(source ScenarioSource, opts RunnerOptions) *RunSweepHandler {
	return &RunSweepHandler{
		source: source,
		runner: newRunner(opts),
	}
}

// Handle executes the RunSweep command. Every point's scenario is loaded
// and validated before any run starts.
func (h *RunSweepHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunSweepCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunSweepCommand")
	}

	param, err := ParseSweepParam(cmd.Param)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.Tracer().Start(ctx, "simulation.sweep")
	defer span.End()
	span.SetAttributes(
		attribute.String("sweep.key", param.Key),
		attribute.Int("sweep.points", len(param.Values)),
	)

	points := make([]SweepPoint, len(param.Values))
	specs := make([]runSpec, len(param.Values))
	for i, value := range param.Values {
		overrides := make(map[string]interface{}, len(cmd.Overrides)+1)
		for k, v := range cmd.Overrides {
			overrides[k] = v
		}
		overrides[param.Key] = value

		sc, err := h.source.Load(cmd.ScenarioPath, overrides)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario for %s=%g: %w", param.Key, value, err)
		}

		outDir := ""
		if cmd.OutputDir != "" {
			outDir = filepath.Join(cmd.OutputDir, param.DirName(value))
		}
		specs[i] = runSpec{
			scenario:  *sc,
			label:     fmt.Sprintf("%s=%g", param.Key, value),
			outputDir: outDir,
			persist:   cmd.Persist,
		}
		points[i] = SweepPoint{Value: value, OutputDir: outDir}
	}

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Sweep started", map[string]interface{}{
		"key":     param.Key,
		"points":  len(points),
		"workers": h.runner.workers,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.runner.workers)
	for i := range specs {
		i := i
		g.Go(func() error {
			run, err := h.runner.execute(gctx, specs[i])
			if err != nil {
				return fmt.Errorf("sweep point %s: %w", specs[i].label, err)
			}
			points[i].Run = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &RunSweepResponse{Key: param.Key, Points: points}, nil
}
