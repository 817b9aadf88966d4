package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/export"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect swarmsim configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SWARM_* prefix, DATABASE_URL)
2. Config file (swarmsim.yaml)
3. Default values

Examples:
  swarmsim config show
  swarmsim config baseline > configs/my_scenario.yaml`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigBaselineCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.Database.URL = maskPassword(cfg.Database.URL)
			if cfg.Database.Password != "" {
				cfg.Database.Password = "****"
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return export.WriteJSON(out, cfg)
			}

			fmt.Fprintln(out, "swarmsim Configuration")
			fmt.Fprintln(out, "======================")

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", cfg.Database.URL)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
				fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}
			fmt.Fprintf(out, "  Batch Size:       %d\n", cfg.Database.BatchSize)

			fmt.Fprintln(out, "\nSimulation:")
			fmt.Fprintf(out, "  Scenario:         %s\n", orDefault(cfg.Simulation.ScenarioPath, "(built-in baseline)"))
			fmt.Fprintf(out, "  Output Dir:       %s\n", cfg.Simulation.OutputDir)
			fmt.Fprintf(out, "  Sweep Workers:    %d\n", cfg.Simulation.SweepWorkers)
			fmt.Fprintf(out, "  Persist:          %t\n", cfg.Simulation.Persist)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
			fmt.Fprintf(out, "  Progress Every:   %s\n", cfg.Logging.ProgressInterval)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Textfile:         %s\n", orDefault(cfg.Metrics.TextfilePath, "(none)"))

			fmt.Fprintln(out, "\nTracing:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Tracing.Enabled)
			fmt.Fprintf(out, "  Exporter:         %s\n", cfg.Tracing.Exporter)
			if cfg.Tracing.Exporter == "otlp" {
				fmt.Fprintf(out, "  Endpoint:         %s\n", cfg.Tracing.Endpoint)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the configuration as JSON")

	return cmd
}

// newConfigBaselineCommand creates the config baseline subcommand
func newConfigBaselineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "baseline",
		Short: "Print the built-in Mercury baseline scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.BaselineScenarioYAML())
			return err
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
