package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	metricsFile string
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "swarmsim",
		Short: "Swarm build-out simulator for a Mercury-sourced collector swarm",
		Long: `swarmsim runs a deterministic day-by-day model of a self-replicating
industrial base on Mercury that manufactures solar collectors, launches them
with mass drivers and tugs them into target orbital bands.

Scenario files are merged over the built-in Mercury baseline. Any scenario
value can be overridden with --set key=value using dotted keys.

Examples:
  swarmsim run --out runs/baseline
  swarmsim run --scenario configs/aggressive.yaml --mc 10 --out runs/mc
  swarmsim run --set production.uptime_fraction=0.9 --set horizon_years=10
  swarmsim sweep --param production.uptime_fraction=0.7:0.95:0.05 --out runs/sweep
  swarmsim params
  swarmsim runs list --scenario mercury_baseline
  swarmsim runs show <run-id>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to swarmsim.yaml (default: ./swarmsim.yaml, ./configs, /etc/swarmsim)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging, including run progress")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "",
		"Write Prometheus metrics to this textfile after the command (enables metrics)")

	// Add command groups
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewSweepCommand())
	rootCmd.AddCommand(NewParamsCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}
