package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/swarmsim-go/internal/application/common"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

// RunSimulationCommand runs a scenario once, or as Monte-Carlo replicates
// with seeds seed, seed+1, ...
type RunSimulationCommand struct {
	ScenarioPath string
	Overrides    map[string]interface{}
	// Replicates <= 1 means a single run
	Replicates int
	// OutputDir receives the run files; replicate i writes to
	// OutputDir/replicate_00i. Empty skips file output.
	OutputDir string
	Persist   bool
}

// RunSimulationResponse lists runs in replicate order
type RunSimulationResponse struct {
	Runs       []*simulation.Run
	OutputDirs []string
}

// RunSimulationHandler handles the RunSimulation command
type RunSimulationHandler struct {
	source ScenarioSource
	runner *runner
}

// NewRunSimulationHandler creates a new RunSimulationHandler
func NewRunSimulationHandler(source ScenarioSource, opts RunnerOptions) *RunSimulationHandler {
	return &RunSimulationHandler{
		source: source,
		runner: newRunner(opts),
	}
}

// Handle executes the RunSimulation command
func (h *RunSimulationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunSimulationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunSimulationCommand")
	}

	base, err := h.source.Load(cmd.ScenarioPath, cmd.Overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	replicates := cmd.Replicates
	if replicates < 1 {
		replicates = 1
	}

	specs := make([]runSpec, replicates)
	outputDirs := make([]string, replicates)
	for i := range specs {
		sc := *base
		sc.Seed = base.Seed + int64(i)

		label := ""
		outDir := cmd.OutputDir
		if replicates > 1 {
			label = fmt.Sprintf("replicate_%03d", i)
			if outDir != "" {
				outDir = filepath.Join(cmd.OutputDir, label)
			}
		}

		specs[i] = runSpec{scenario: sc, label: label, outputDir: outDir, persist: cmd.Persist}
		outputDirs[i] = outDir
	}

	runs := make([]*simulation.Run, replicates)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.runner.workers)
	for i := range specs {
		i := i
		g.Go(func() error {
			run, err := h.runner.execute(gctx, specs[i])
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &RunSimulationResponse{Runs: runs, OutputDirs: outputDirs}, nil
}
