package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

func newInfoCommand(version string) *cobra.Command {
	var (
		addr  string
		packs []string
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show analyzer metadata and policy catalog",
		Long: `Show the analyzer metadata returned by GetAnalyzerInfo.

With --addr the catalog and plugin version are fetched from a running
analyzer; otherwise they are built from the local configuration.`,
		Example: `  # Local catalog including an extra pack
  froyo-analyzer info --packs ./policies

  # Catalog of a running analyzer
  froyo-analyzer info --addr 127.0.0.1:50051 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if addr != "" {
				client, err := analyzer.Dial(addr)
				if err != nil {
					return err
				}
				defer client.Close()

				info, err := client.Info(ctx)
				if err != nil {
					return err
				}
				plugin, err := client.PluginInfo(ctx)
				if err != nil {
					return err
				}
				return printInfo(cmd.OutOrStdout(), info, plugin)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			engine, err := newEngine(ctx, cfg, version, log.Logger, nil, packs)
			if err != nil {
				return err
			}

			info := engine.Info()
			return printInfo(cmd.OutOrStdout(), &info, &analyzer.PluginInfo{Version: info.Version})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address of a running analyzer (host:port)")
	cmd.Flags().StringSliceVar(&packs, "packs", nil, "policy pack directories, in addition to the configured ones")

	return cmd
}
