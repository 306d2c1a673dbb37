package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printDiagnostics(w io.Writer, diags []analyzer.Diagnostic) error {
	if jsonOutput {
		if diags == nil {
			diags = []analyzer.Diagnostic{}
		}
		return writeJSON(w, diags)
	}

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
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.EnforcementLevel, d.PolicyName, d.PolicyPackName, urn, oneLine(d.Message))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	mandatory := analyzer.MandatoryCount(diags)
	_, err := fmt.Fprintf(w, "\n%d violation(s): %d mandatory, %d advisory\n", len(diags), mandatory, len(diags)-mandatory)
	return err
}

func printInfo(w io.Writer, info *analyzer.AnalyzerInfo, plugin *analyzer.PluginInfo) error {
	if jsonOutput {
		return writeJSON(w, struct {
			Analyzer *analyzer.AnalyzerInfo `json:"analyzer"`
			Plugin   *analyzer.PluginInfo   `json:"plugin,omitempty"`
		}{info, plugin})
	}

	fmt.Fprintf(w, "Analyzer: %s", info.Name)
	if info.DisplayName != "" {
		fmt.Fprintf(w, " (%s)", info.DisplayName)
	}
	fmt.Fprintln(w)
	if info.Version != "" {
		fmt.Fprintf(w, "Version:  %s\n", info.Version)
	}
	if plugin != nil {
		fmt.Fprintf(w, "Plugin:   %s\n", plugin.Version)
	}
	fmt.Fprintf(w, "Policies: %d\n\n", len(info.Policies))

	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tLEVEL\tDESCRIPTION")
	for _, p := range info.Policies {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.EnforcementLevel, oneLine(p.Description))
	}
	return tw.Flush()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
