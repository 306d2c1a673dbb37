package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openfroyo/froyo-analyzer/pkg/policy"
)

func newPoliciesCommand(version string) *cobra.Command {
	var (
		packs []string
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List loaded policies with their effective settings",
		Long: `List every loaded policy with its pack, language, kind and effective
enforcement level after configuration overrides. Disabled policies are
hidden unless --all is given.`,
		Example: `  # Policies from the configuration and an extra pack
  froyo-analyzer policies --packs ./policies

  # Include disabled policies
  froyo-analyzer policies --all --config analyzer.cue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd.Context(), cfg, version, log.Logger, nil, packs)
			if err != nil {
				return err
			}

			statuses := engine.Policies()
			if !all {
				enabled := statuses[:0]
				for _, st := range statuses {
					if st.Enabled {
						enabled = append(enabled, st)
					}
				}
				statuses = enabled
			}

			return printPolicies(cmd, statuses)
		},
	}

	cmd.Flags().StringSliceVar(&packs, "packs", nil, "policy pack directories, in addition to the configured ones")
	cmd.Flags().BoolVar(&all, "all", false, "include disabled policies")

	return cmd
}

func printPolicies(cmd *cobra.Command, statuses []policy.Status) error {
	w := cmd.OutOrStdout()
	if jsonOutput {
		if statuses == nil {
			statuses = []policy.Status{}
		}
		return writeJSON(w, statuses)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tPACK\tVERSION\tLANGUAGE\tKIND\tLEVEL\tENABLED\tTAGS")
	for _, st := range statuses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
			st.Policy.Name,
			st.Pack,
			st.PackVersion,
			st.Policy.Language,
			st.Policy.Kind,
			st.EnforcementLevel,
			st.Enabled,
			strings.Join(st.Policy.Tags, ","),
		)
	}
	return tw.Flush()
}
