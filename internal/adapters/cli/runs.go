package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/export"
	"github.com/andrescamacho/swarmsim-go/internal/application/simulation/queries"
)

// NewRunsCommand creates the runs command with subcommands
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse persisted simulation runs",
		Long: `List and inspect runs stored with --persist (or simulation.persist).

Examples:
  swarmsim runs list
  swarmsim runs list --scenario mercury_baseline --limit 5
  swarmsim runs show 3f0c2a9e-5d7b-4c1e-9a43-2b8f6f1d0e77
  swarmsim runs show 3f0c2a9e-5d7b-4c1e-9a43-2b8f6f1d0e77 --timeseries > ts.csv`,
	}

	// Add subcommands
	cmd.AddCommand(newRunsListCommand())
	cmd.AddCommand(newRunsShowCommand())

	return cmd
}

// newRunsListCommand creates the runs list subcommand
func newRunsListCommand() *cobra.Command {
	var (
		scenarioName string
		limit        int
		offset       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), always, func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &queries.ListRunsQuery{
					ScenarioName: scenarioName,
					Limit:        limit,
					Offset:       offset,
				})
				if err != nil {
					return err
				}
				runs := resp.(*queries.ListRunsResponse).Runs

				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs found")
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSCENARIO\tLABEL\tSEED\tYEARS\tCREATED\tAREA (m2)\tPOWER (GW)\tYEARS TO TARGET")
				for _, run := range runs {
					s := run.Results.Summary
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.4g\t%.4g\t%s\n",
						run.ID.Short(),
						run.ScenarioName,
						orDash(run.Label),
						run.Seed,
						run.HorizonYears,
						run.CreatedAt.Format("2006-01-02 15:04:05"),
						s.TotalAreaM2,
						s.DeliveredPowerGW,
						formatOptionalYears(s.YearsToTarget),
					)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&scenarioName, "scenario", "", "Only runs of this scenario name")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of runs to skip")

	return cmd
}

// newRunsShowCommand creates the runs show subcommand
func newRunsShowCommand() *cobra.Command {
	var (
		asJSON     bool
		timeseries bool
		events     bool
	)

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run",
		Long: `Show the summary of a stored run. --json prints the full summary,
--timeseries and --events print the stored rows as CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), always, func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &queries.GetRunQuery{RunID: args[0]})
				if err != nil {
					return err
				}
				run := resp.(*queries.GetRunResponse).Run
				out := cmd.OutOrStdout()

				switch {
				case timeseries:
					return export.WriteTimeseriesCSV(out, run.Results.Timeseries)
				case events:
					return export.WriteEventsCSV(out, run.Results.Events)
				case asJSON:
					return export.WriteJSON(out, run.Results.Summary)
				}

				s := run.Results.Summary
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "Run:\t%s\n", run.ID)
				fmt.Fprintf(w, "Scenario:\t%s\n", run.ScenarioName)
				fmt.Fprintf(w, "Label:\t%s\n", orDash(run.Label))
				fmt.Fprintf(w, "Seed:\t%d\n", run.Seed)
				fmt.Fprintf(w, "Created:\t%s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(w, "Days:\t%d\n", len(run.Results.Timeseries))
				fmt.Fprintf(w, "Total area:\t%.6g m2\n", s.TotalAreaM2)
				fmt.Fprintf(w, "Delivered power:\t%.6g GW (1 AU equiv)\n", s.DeliveredPowerGW)
				fmt.Fprintf(w, "Years to target:\t%s\n", formatOptionalYears(s.YearsToTarget))
				fmt.Fprintf(w, "Mass drivers online:\t%d\n", s.MassDriversOnline)
				fmt.Fprintf(w, "Growth multiplier:\t%.4g\n", s.Caps.GrowthMultiplierFinal)
				fmt.Fprintf(w, "Energy:\t%.6g kWh\n", s.EnergyKWhTotal)
				fmt.Fprintf(w, "Transport energy:\t%.6g MWh\n", s.TransportMWhTotal)
				if err := w.Flush(); err != nil {
					return err
				}

				if len(s.Bands) > 0 {
					fmt.Fprintln(out)
					w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "BAND\tA (AU)\tWEIGHT\tAREA (m2)\tOPTICAL DEPTH\tPOWER (GW)")
					for _, b := range s.Bands {
						fmt.Fprintf(w, "%d\t%.3f-%.3f\t%.3f\t%.4g\t%.3g\t%.4g\n",
							b.Index, b.InnerAU, b.OuterAU, b.Weight, b.CumAreaM2, b.OpticalDepth, b.PowerGW)
					}
					return w.Flush()
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full summary as JSON")
	cmd.Flags().BoolVar(&timeseries, "timeseries", false, "Print the time series as CSV")
	cmd.Flags().BoolVar(&events, "events", false, "Print the events as CSV")
	cmd.MarkFlagsMutuallyExclusive("json", "timeseries", "events")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatOptionalYears(v *float64) string {
	if v == nil {
		return "not reached"
	}
	return fmt.Sprintf("%.2f", *v)
}
