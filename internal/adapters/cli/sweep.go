package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/export"
	"github.com/andrescamacho/swarmsim-go/internal/application/simulation/commands"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/config"
)

// sweepOutput is printed after a sweep, values and summaries index-aligned
type sweepOutput struct {
	SweepParam string               `json:"sweep_param"`
	Values     []float64            `json:"values"`
	Summaries  []simulation.Summary `json:"summaries"`
}

// NewSweepCommand creates the sweep command
func NewSweepCommand() *cobra.Command {
	var (
		scenarioPath string
		outDir       string
		param        string
		sets         []string
		persist      bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep one scenario parameter over a range",
		Long: `Run the scenario once per value of a parameter, from min to max
inclusive in increments of step. Points run in parallel, bounded by
simulation.sweep_workers, and each writes to <out>/<key>_<value>.

Examples:
  swarmsim sweep --param production.uptime_fraction=0.7:0.95:0.05 --out runs/uptime
  swarmsim sweep --param caps.max_growth_multiplier=2:20:2 --set horizon_years=15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := config.ParseOverrides(sets)
			if err != nil {
				return err
			}
			// fail on a malformed range before touching config or the database
			if _, err := commands.ParseSweepParam(param); err != nil {
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

				resp, err := a.mediator.Send(ctx, &commands.RunSweepCommand{
					ScenarioPath: scenarioPath,
					Param:        param,
					Overrides:    overrides,
					OutputDir:    outDir,
					Persist:      resolvePersist(cmd, persist, a.cfg),
				})
				if err != nil {
					return err
				}
				result := resp.(*commands.RunSweepResponse)

				out := sweepOutput{SweepParam: result.Key}
				for _, p := range result.Points {
					out.Values = append(out.Values, p.Value)
					out.Summaries = append(out.Summaries, p.Run.Results.Summary)
				}
				return export.WriteJSON(cmd.OutOrStdout(), out)
			})
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML merged over the built-in baseline")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: simulation.output_dir)")
	cmd.Flags().StringVar(&param, "param", "", "Sweep definition key=min:max:step")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a scenario value for every point (repeatable)")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store every run in the database (default: simulation.persist)")
	_ = cmd.MarkFlagRequired("param")

	return cmd
}
