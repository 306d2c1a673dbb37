package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

func newAnalyzeCommand(version string) *cobra.Command {
	var (
		stack bool
		addr  string
		packs []string
	)

	cmd := &cobra.Command{
		Use:   "analyze <resources.json>",
		Short: "Evaluate resources against policies",
		Long: `Evaluate resources from a JSON file against the loaded policy packs.

The file holds one resource, an array of resources, or an object with a
"resources" array. Use "-" to read from stdin. Without --stack every resource
is analyzed on its own; with --stack they are analyzed together as one stack.

Evaluation runs in-process unless --addr names a running analyzer. The
command exits with status 1 when any mandatory diagnostic is reported.`,
		Example: `  # Analyze resources with a local pack
  froyo-analyzer analyze resources.json --packs ./policies

  # Analyze a whole stack against a running analyzer
  froyo-analyzer analyze stack.json --stack --addr 127.0.0.1:50051

  # Machine-readable output
  froyo-analyzer analyze resources.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := readResources(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			log.Debug().
				Int("resources", len(resources)).
				Bool("stack", stack).
				Str("addr", addr).
				Msg("Analyzing resources")

			var diags []analyzer.Diagnostic
			if addr != "" {
				diags, err = analyzeRemote(cmd.Context(), addr, resources, stack)
			} else {
				diags, err = analyzeLocal(cmd.Context(), version, packs, resources, stack)
			}
			if err != nil {
				return err
			}

			if err := printDiagnostics(cmd.OutOrStdout(), diags); err != nil {
				return err
			}
			if analyzer.MandatoryCount(diags) > 0 {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stack, "stack", false, "analyze all resources together as a stack")
	cmd.Flags().StringVar(&addr, "addr", "", "address of a running analyzer (host:port)")
	cmd.Flags().StringSliceVar(&packs, "packs", nil, "policy pack directories, in addition to the configured ones")

	return cmd
}

// readResources decodes a resource, a resource array or {"resources": [...]}.
func readResources(stdin io.Reader, path string) ([]analyzer.Resource, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no resources in %s", path)
	}

	switch data[0] {
	case '[':
		var resources []analyzer.Resource
		if err := json.Unmarshal(data, &resources); err != nil {
			return nil, fmt.Errorf("failed to parse resources: %w", err)
		}
		return resources, nil
	case '{':
		var doc struct {
			Resources []analyzer.Resource `json:"resources"`
		}
		if err := json.Unmarshal(data, &doc); err == nil && doc.Resources != nil {
			return doc.Resources, nil
		}
		var r analyzer.Resource
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse resource: %w", err)
		}
		return []analyzer.Resource{r}, nil
	default:
		return nil, fmt.Errorf("%s: expected a JSON object or array", path)
	}
}

func analyzeLocal(ctx context.Context, version string, packs []string, resources []analyzer.Resource, stack bool) ([]analyzer.Diagnostic, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	engine, err := newEngine(ctx, cfg, version, log.Logger, nil, packs)
	if err != nil {
		return nil, err
	}

	if stack {
		if err := analyzer.ValidateStack(resources); err != nil {
			return nil, err
		}
		return engine.AnalyzeStack(ctx, resources)
	}

	var diags []analyzer.Diagnostic
	for i := range resources {
		if err := analyzer.Validate(&resources[i]); err != nil {
			return nil, fmt.Errorf("resources[%d]: %w", i, err)
		}
		d, err := engine.Analyze(ctx, resources[i])
		if err != nil {
			return nil, err
		}
		diags = append(diags, d...)
	}
	return diags, nil
}

func analyzeRemote(ctx context.Context, addr string, resources []analyzer.Resource, stack bool) ([]analyzer.Diagnostic, error) {
	client, err := analyzer.Dial(addr)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if stack {
		return client.AnalyzeStack(ctx, resources)
	}

	var diags []analyzer.Diagnostic
	for _, r := range resources {
		d, err := client.Analyze(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.URN, err)
		}
		diags = append(diags, d...)
	}
	return diags, nil
}
