package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/export"
	"github.com/andrescamacho/swarmsim-go/internal/application/simulation/commands"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/config"
)

// replicatesOutput is printed after a Monte-Carlo run
type replicatesOutput struct {
	MC        int                  `json:"mc"`
	Summaries []simulation.Summary `json:"summaries"`
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		scenarioPath string
		outDir       string
		replicates   int
		sets         []string
		persist      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario",
		Long: `Run a scenario over its horizon and write the time series, events,
summary, parameters and band summary under the output directory.

With --mc N the scenario runs N times with seeds seed, seed+1, ... and each
replicate writes to <out>/replicate_000, <out>/replicate_001, ...

The summary (or the list of replicate summaries) is printed as JSON.

Examples:
  swarmsim run --out runs/baseline
  swarmsim run --scenario configs/aggressive.yaml --out runs/aggressive --persist
  swarmsim run --mc 5 --out runs/mc --set production.learning_curve_b=0.8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := config.ParseOverrides(sets)
			if err != nil {
				return err
			}

			needDB := func(cfg *config.Config) bool { return resolvePersist(cmd, persist, cfg) }
			return withApp(cmd.Context(), needDB, func(ctx context.Context, a *app) error {
				if !cmd.Flags().Changed("scenario") {
					scenarioPath = a.cfg.Simulation.ScenarioPath
				}
				if !cmd.Flags().Changed("out") {
					outDir = a.cfg.Simulation.OutputDir
				}

				resp, err := a.mediator.Send(ctx, &commands.RunSimulationCommand{
					ScenarioPath: scenarioPath,
					Overrides:    overrides,
					Replicates:   replicates,
					OutputDir:    outDir,
					Persist:      resolvePersist(cmd, persist, a.cfg),
				})
				if err != nil {
					return err
				}
				result := resp.(*commands.RunSimulationResponse)

				if len(result.Runs) == 1 {
					return export.WriteJSON(cmd.OutOrStdout(), result.Runs[0].Results.Summary)
				}
				out := replicatesOutput{MC: len(result.Runs)}
				for _, run := range result.Runs {
					out.Summaries = append(out.Summaries, run.Results.Summary)
				}
				return export.WriteJSON(cmd.OutOrStdout(), out)
			})
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML merged over the built-in baseline")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: simulation.output_dir)")
	cmd.Flags().IntVar(&replicates, "mc", 1, "Number of Monte-Carlo replicates")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a scenario value, e.g. --set horizon_years=10 (repeatable)")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store the run in the database (default: simulation.persist)")

	return cmd
}

// resolvePersist applies the config default when --persist was not given
func resolvePersist(cmd *cobra.Command, flag bool, cfg *config.Config) bool {
	if cmd.Flags().Changed("persist") {
		return flag
	}
	return cfg.Simulation.Persist
}
