package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"
	"github.com/open-policy-agent/opa/storage/inmem"
)

// regoEvaluator runs a prepared data.<package>.deny query.
type regoEvaluator struct {
	query rego.PreparedEvalQuery
}

// compileRego parses a module and prepares its deny query. Pack metadata is
// available to the policy as data.froyo_analyzer.pack.
func compileRego(ctx context.Context, pack *Pack, p *Policy) (*regoEvaluator, error) {
	module, err := ast.ParseModule(moduleName(p), p.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	if module == nil {
		return nil, fmt.Errorf("policy source is empty")
	}
	if !definesRule(module, "deny") {
		return nil, fmt.Errorf("policy package %s defines no deny rule", module.Package.Path)
	}

	store := inmem.NewFromObject(map[string]interface{}{
		"froyo_analyzer": map[string]interface{}{
			"pack": map[string]interface{}{
				"name":    pack.Name,
				"version": pack.Version,
			},
		},
	})

	r := rego.New(
		rego.ParsedModule(module),
		rego.Store(store),
		rego.Query(module.Package.Path.String()+".deny"),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query: %w", err)
	}

	return &regoEvaluator{query: query}, nil
}

// Eval returns the members of the deny set.
func (r *regoEvaluator) Eval(ctx context.Context, input interface{}) ([]interface{}, error) {
	results, err := r.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("policy evaluation error: %w", err)
	}

	var entries []interface{}
	for _, result := range results {
		if len(result.Expressions) == 0 {
			continue
		}
		switch v := result.Expressions[0].Value.(type) {
		case []interface{}:
			entries = append(entries, v...)
		case nil:
		default:
			return nil, fmt.Errorf("deny must be a set, got %T", v)
		}
	}

	return entries, nil
}

func moduleName(p *Policy) string {
	if p.Path != "" {
		return p.Path
	}
	return p.Name + ".rego"
}

func definesRule(module *ast.Module, name string) bool {
	for _, rule := range module.Rules {
		ref := rule.Head.Ref()
		if len(ref) > 0 && ref[0].Value.Compare(ast.Var(name)) == 0 {
			return true
		}
	}
	return false
}
