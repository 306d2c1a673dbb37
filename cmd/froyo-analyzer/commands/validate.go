package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openfroyo/froyo-analyzer/pkg/policy"
)

func newValidateCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <pack dir>...",
		Short: "Validate policy packs and configuration",
		Long: `Validate policy packs without serving them.

This command checks:
  - the configuration given with --config
  - pack manifest syntax and policy metadata
  - Rego compilation and Starlark syntax
  - policy name uniqueness across the packs`,
		Example: `  # Validate one pack
  froyo-analyzer validate ./policies/aws

  # Validate the configuration and every pack it names
  froyo-analyzer validate --config analyzer.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dirs := packDirs(cfg, args)
			if len(dirs) == 0 {
				return fmt.Errorf("no policy packs to validate")
			}

			engine, err := policy.NewEngine(log.Logger, cfg.EngineConfig(version))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			var results []validationResult
			var failed []error
			for _, dir := range dirs {
				res := validationResult{Dir: dir}
				// Installing each pack catches names that clash across packs.
				pack, err := engine.LoadPack(cmd.Context(), dir)
				if err != nil {
					res.Error = err.Error()
					failed = append(failed, fmt.Errorf("%s: %w", dir, err))
				} else {
					res.Pack = pack.Name
					res.Version = pack.Version
					res.Policies = len(pack.Policies)
				}
				results = append(results, res)
			}

			if jsonOutput {
				if err := writeJSON(w, results); err != nil {
					return err
				}
			} else {
				for _, res := range results {
					if res.Error != "" {
						fmt.Fprintf(w, "✗ %s: %s\n", res.Dir, res.Error)
						continue
					}
					fmt.Fprintf(w, "✓ %s: %s %s (%d policies)\n", res.Dir, res.Pack, res.Version, res.Policies)
				}
			}

			return errors.Join(failed...)
		},
	}

	return cmd
}

type validationResult struct {
	Dir      string `json:"dir"`
	Pack     string `json:"pack,omitempty"`
	Version  string `json:"version,omitempty"`
	Policies int    `json:"policies,omitempty"`
	Error    string `json:"error,omitempty"`
}
