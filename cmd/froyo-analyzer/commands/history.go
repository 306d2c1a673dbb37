package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openfroyo/froyo-analyzer/pkg/stores"
)

func newHistoryCommand() *cobra.Command {
	var (
		dbPath    string
		limit     int
		method    string
		mandatory bool
		since     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded analyses",
		Long: `Show analyses recorded by 'serve' in the history store, newest first.

The store comes from the configuration, or from --db for a SQLite file.`,
		Example: `  # Last 20 analyses
  froyo-analyzer history --db history.db

  # Stack analyses with mandatory findings in the last day
  froyo-analyzer history --db history.db --method AnalyzeStack --mandatory --since 24h

  # Findings of one analysis
  froyo-analyzer history show 3f1c7a52-9d7e-4a43-8f57-2a5a3c0e4b11 --db history.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := stores.ListOptions{
				Method:        method,
				MandatoryOnly: mandatory,
				Limit:         limit,
			}
			if since > 0 {
				opts.Since = time.Now().Add(-since)
			}

			analyses, err := store.ListAnalyses(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printAnalyses(cmd.OutOrStdout(), analyses)
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite history database (overrides the configured store)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of analyses")
	cmd.Flags().StringVar(&method, "method", "", "only Analyze or AnalyzeStack calls")
	cmd.Flags().BoolVar(&mandatory, "mandatory", false, "only analyses with mandatory findings")
	cmd.Flags().DurationVar(&since, "since", 0, "only analyses within this duration")

	cmd.AddCommand(newHistoryShowCommand(&dbPath))
	cmd.AddCommand(newHistoryStatsCommand(&dbPath))
	cmd.AddCommand(newHistoryPruneCommand(&dbPath))

	return cmd
}

func newHistoryShowCommand(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <analysis id>",
		Short: "Show the diagnostics of one analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			analysis, err := store.GetAnalysis(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			diags, err := store.ListDiagnostics(cmd.Context(), analysis.ID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(w, struct {
					*stores.Analysis
					Findings []*stores.Diagnostic `json:"findings"`
				}{analysis, diags})
			}

			fmt.Fprintf(w, "Analysis: %s\n", analysis.ID)
			fmt.Fprintf(w, "Method:   %s\n", analysis.Method)
			fmt.Fprintf(w, "Started:  %s (%s)\n", analysis.StartedAt.Local().Format(time.RFC3339), analysis.Duration)
			fmt.Fprintf(w, "Resources: %d\n\n", analysis.Resources)

			if len(diags) == 0 {
				_, err := fmt.Fprintln(w, "No policy violations.")
				return err
			}
			tw := newTable(w)
			fmt.Fprintln(tw, "LEVEL\tPOLICY\tPACK\tURN\tMESSAGE")
			for _, d := range diags {
				urn := d.URN
				if urn == "" {
					urn = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.EnforcementLevel, d.PolicyName, d.PackName, urn, oneLine(d.Message))
			}
			return tw.Flush()
		},
	}
}

func newHistoryStatsCommand(dbPath *string) *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count recorded findings per policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			var from time.Time
			if since > 0 {
				from = time.Now().Add(-since)
			}
			stats, err := store.PolicyStats(cmd.Context(), from)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(w, stats)
			}

			tw := newTable(w)
			fmt.Fprintln(tw, "POLICY\tPACK\tLEVEL\tCOUNT\tLAST SEEN")
			for _, st := range stats {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", st.PolicyName, st.PackName, st.EnforcementLevel, st.Count, st.LastSeen.Local().Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().DurationVar(&since, "since", 0, "only findings within this duration")

	return cmd
}

func newHistoryPruneCommand(dbPath *string) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}

			store, err := historyStore(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}

			log.Info().Int64("deleted", n).Dur("older_than", olderThan).Msg("Pruned analysis history")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d analyses\n", n)
			return err
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "delete analyses older than this")

	return cmd
}

func historyStore(ctx context.Context, dbPath string) (*stores.SQLStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		useSQLite(cfg, dbPath)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("no history store configured: pass --db or set store.driver")
	}
	return store, nil
}

func printAnalyses(w io.Writer, analyses []*stores.Analysis) error {
	if jsonOutput {
		return writeJSON(w, analyses)
	}
	if len(analyses) == 0 {
		_, err := fmt.Fprintln(w, "No analyses recorded.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTARTED\tMETHOD\tRESOURCES\tFINDINGS\tMANDATORY\tDURATION")
	for _, a := range analyses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			a.ID,
			a.StartedAt.Local().Format(time.RFC3339),
			a.Method,
			a.Resources,
			a.Diagnostics,
			a.Mandatory,
			a.Duration,
		)
	}
	return tw.Flush()
}
