package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/export"
	"github.com/andrescamacho/swarmsim-go/internal/domain/scenario"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/config"
)

// NewParamsCommand creates the params command
func NewParamsCommand() *cobra.Command {
	var (
		scenarioPath string
		sets         []string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Show documented scenario parameters and their resolved values",
		Long: `List every documented scenario parameter with what it does and the
value the given scenario resolves it to after defaults.

Examples:
  swarmsim params
  swarmsim params --scenario configs/aggressive.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := config.ParseOverrides(sets)
			if err != nil {
				return err
			}

			sc, err := config.LoadScenario(scenarioPath, overrides)
			if err != nil {
				return err
			}
			prov := simulation.ProvenanceFor(*sc)

			if asJSON {
				return export.WriteJSON(cmd.OutOrStdout(), prov)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PARAMETER\tVALUE\tDESCRIPTION")
			for _, doc := range scenario.ParameterDocs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", doc.Key, formatParamValue(prov.Values[doc.Key]), doc.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML merged over the built-in baseline")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a scenario value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print docs and values as JSON")

	return cmd
}

func formatParamValue(v interface{}) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", v)
}
