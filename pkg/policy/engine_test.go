package policy

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

func newTestEngine(t *testing.T, cfg EngineConfig) *Engine {
	t.Helper()
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	eng, err := NewEngine(logger, cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng
}

func diagnosticsFor(diags []analyzer.Diagnostic, policy string) []analyzer.Diagnostic {
	var out []analyzer.Diagnostic
	for _, d := range diags {
		if d.PolicyName == policy {
			out = append(out, d)
		}
	}
	return out
}

func TestNewEngine(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})

	info := eng.Info()
	if info.Name != "froyo-analyzer" {
		t.Errorf("Expected default name froyo-analyzer, got %s", info.Name)
	}
	if info.Version != "dev" {
		t.Errorf("Expected default version dev, got %s", info.Version)
	}

	expectedPolicies := []string{
		"resource-naming",
		"required-tags",
		"protect-delete-before-replace",
		"secret-outputs",
		"custom-timeouts",
		"dangling-references",
	}
	if len(info.Policies) != len(expectedPolicies) {
		t.Fatalf("Expected %d built-in policies, got %d", len(expectedPolicies), len(info.Policies))
	}
	for i, expected := range expectedPolicies {
		if info.Policies[i].Name != expected {
			t.Errorf("Policy %d: expected %s, got %s", i, expected, info.Policies[i].Name)
		}
	}
}

func TestNewEngine_DisableBuiltin(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{DisableBuiltin: true})

	info := eng.Info()
	if info.Policies == nil || len(info.Policies) != 0 {
		t.Errorf("Expected empty non-nil policy list, got %v", info.Policies)
	}

	diags, err := eng.Analyze(context.Background(), analyzer.Resource{Type: "test:index:Thing", URN: "urn:a", Name: "!!"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics, got %v", diags)
	}
}

func TestAnalyze_ResourceNaming(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})

	tests := []struct {
		name        string
		resource    string
		expectCount int
	}{
		{name: "valid name", resource: "web-server_1", expectCount: 0},
		{name: "leading digit", resource: "1web", expectCount: 1},
		{name: "invalid character", resource: "web.server", expectCount: 1},
		{name: "too long", resource: "a" + strings.Repeat("b", 63), expectCount: 1},
		{name: "empty name", resource: "", expectCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, err := eng.Analyze(context.Background(), analyzer.Resource{
				Type: "aws:s3/bucket:Bucket",
				URN:  "urn:pulumi:dev::proj::aws:s3/bucket:Bucket::" + tt.resource,
				Name: tt.resource,
			})
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}

			got := diagnosticsFor(diags, "resource-naming")
			if len(got) != tt.expectCount {
				t.Fatalf("Expected %d naming diagnostics, got %d: %v", tt.expectCount, len(got), got)
			}
			for _, d := range got {
				if d.PolicyPackName != BuiltinPackName || d.PolicyPackVersion != BuiltinPackVersion {
					t.Errorf("Unexpected pack %s@%s", d.PolicyPackName, d.PolicyPackVersion)
				}
				if d.EnforcementLevel != analyzer.EnforcementAdvisory {
					t.Errorf("Expected advisory, got %s", d.EnforcementLevel)
				}
				if !strings.HasPrefix(d.URN, "urn:pulumi:") {
					t.Errorf("Expected resource URN on diagnostic, got %q", d.URN)
				}
			}
		})
	}
}

func TestAnalyze_RequiredTags(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})

	tests := []struct {
		name        string
		properties  map[string]interface{}
		expectCount int
	}{
		{name: "no tags property", properties: map[string]interface{}{"acl": "private"}, expectCount: 0},
		{name: "owner present", properties: map[string]interface{}{"tags": map[string]interface{}{"owner": "team"}}, expectCount: 0},
		{name: "owner missing", properties: map[string]interface{}{"tags": map[string]interface{}{"env": "dev"}}, expectCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, err := eng.Analyze(context.Background(), analyzer.Resource{
				Type:       "aws:s3/bucket:Bucket",
				URN:        "urn:bucket",
				Name:       "bucket",
				Properties: tt.properties,
			})
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if got := diagnosticsFor(diags, "required-tags"); len(got) != tt.expectCount {
				t.Errorf("Expected %d diagnostics, got %v", tt.expectCount, got)
			}
		})
	}
}

func TestAnalyze_ProtectDeleteBeforeReplace(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})
	dbr := true

	diags, err := eng.Analyze(context.Background(), analyzer.Resource{
		Type:    "aws:rds/instance:Instance",
		URN:     "urn:db",
		Name:    "db",
		Options: &analyzer.ResourceOptions{Protect: true, DeleteBeforeReplace: &dbr},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	got := diagnosticsFor(diags, "protect-delete-before-replace")
	if len(got) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %v", got)
	}
	if got[0].EnforcementLevel != analyzer.EnforcementMandatory {
		t.Errorf("Expected mandatory, got %s", got[0].EnforcementLevel)
	}
	if got[0].Message != "protected resource sets deleteBeforeReplace" {
		t.Errorf("Unexpected message %q", got[0].Message)
	}
}

func TestAnalyze_SecretOutputsAndTimeouts(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})

	diags, err := eng.Analyze(context.Background(), analyzer.Resource{
		Type: "aws:rds/instance:Instance",
		URN:  "urn:db",
		Name: "db",
		Properties: map[string]interface{}{
			"masterPassword": "hunter2",
			"apiToken":       "abc",
		},
		Options: &analyzer.ResourceOptions{
			AdditionalSecretOutputs: []string{"apiToken"},
			CustomTimeouts:          &analyzer.CustomTimeouts{Create: 7200, Delete: -1},
		},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	secrets := diagnosticsFor(diags, "secret-outputs")
	if len(secrets) != 1 || !strings.Contains(secrets[0].Message, "masterPassword") {
		t.Errorf("Expected one secret-outputs diagnostic for masterPassword, got %v", secrets)
	}
	if timeouts := diagnosticsFor(diags, "custom-timeouts"); len(timeouts) != 2 {
		t.Errorf("Expected 2 custom-timeouts diagnostics, got %v", timeouts)
	}
}

func TestAnalyze_NonFiniteNumbers(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})
	err := eng.AddPack(context.Background(), &Pack{
		Name:    "weights",
		Version: "1.0.0",
		Policies: []Policy{{
			Name:     "weight",
			Language: LanguageStarlark,
			Source:   "def deny(resource):\n    return [\"weight \" + str(resource[\"properties\"][\"weight\"])]\n",
		}},
	})
	if err != nil {
		t.Fatalf("AddPack failed: %v", err)
	}

	tests := []struct {
		name   string
		weight float64
		want   string
	}{
		{name: "nan", weight: math.NaN(), want: "weight NaN"},
		{name: "positive infinity", weight: math.Inf(1), want: "weight +Inf"},
		{name: "negative infinity", weight: math.Inf(-1), want: "weight -Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := analyzer.Resource{
				Type:       "test:index:Thing",
				URN:        "urn:a",
				Name:       "a",
				Properties: map[string]interface{}{"weight": tt.weight, "nested": []interface{}{map[string]interface{}{"w": tt.weight}}},
				Provider:   &analyzer.ProviderResource{Type: "pulumi:providers:test", URN: "urn:p", Name: "p", Properties: map[string]interface{}{"w": tt.weight}},
				Options: &analyzer.ResourceOptions{
					CustomTimeouts: &analyzer.CustomTimeouts{Create: tt.weight, Update: 60},
				},
			}

			diags, err := eng.Analyze(context.Background(), res)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			weights := diagnosticsFor(diags, "weight")
			if len(weights) != 1 || weights[0].Message != tt.want {
				t.Errorf("Expected one diagnostic %q, got %v", tt.want, weights)
			}
			timeouts := diagnosticsFor(diags, "custom-timeouts")
			if len(timeouts) != 1 || !strings.Contains(timeouts[0].Message, "finite number") {
				t.Errorf("Expected one finite-number timeout diagnostic, got %v", timeouts)
			}

			if _, err := eng.AnalyzeStack(context.Background(), []analyzer.Resource{res}); err != nil {
				t.Errorf("AnalyzeStack failed: %v", err)
			}
			if !math.IsNaN(tt.weight) && res.Properties["weight"] != tt.weight {
				t.Errorf("Analyze modified the caller's properties: %v", res.Properties)
			}
		})
	}
}

func TestAnalyzeStack_DanglingReferences(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})

	resources := []analyzer.Resource{
		{Type: "test:index:A", URN: "urn:a", Name: "a"},
		{Type: "test:index:B", URN: "urn:b", Name: "b", Dependencies: []string{"urn:a", "urn:missing"}},
		{Type: "test:index:C", URN: "urn:c", Name: "c", Parent: "urn:gone"},
	}

	diags, err := eng.AnalyzeStack(context.Background(), resources)
	if err != nil {
		t.Fatalf("AnalyzeStack failed: %v", err)
	}

	got := diagnosticsFor(diags, "dangling-references")
	if len(got) != 2 {
		t.Fatalf("Expected 2 dangling diagnostics, got %v", got)
	}
	urns := map[string]bool{}
	for _, d := range got {
		urns[d.URN] = true
		if d.EnforcementLevel != analyzer.EnforcementMandatory {
			t.Errorf("Expected mandatory, got %s", d.EnforcementLevel)
		}
	}
	if !urns["urn:b"] || !urns["urn:c"] {
		t.Errorf("Expected diagnostics for urn:b and urn:c, got %v", got)
	}

	eng.ApplyOverrides(map[string]Override{
		"dangling-references": {Config: map[string]interface{}{"ignoreKinds": []interface{}{"parent"}}},
	})
	diags, err = eng.AnalyzeStack(context.Background(), resources)
	if err != nil {
		t.Fatalf("AnalyzeStack failed: %v", err)
	}
	if got := diagnosticsFor(diags, "dangling-references"); len(got) != 1 || got[0].URN != "urn:b" {
		t.Errorf("Expected only urn:b after ignoring parents, got %v", got)
	}
}

func TestAnalyzeStack_DuplicateURN(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})

	_, err := eng.AnalyzeStack(context.Background(), []analyzer.Resource{
		{Type: "test:index:A", URN: "urn:a", Name: "a"},
		{Type: "test:index:A", URN: "urn:a", Name: "a"},
	})
	if err == nil {
		t.Fatal("Expected error for duplicate URN")
	}
}

func TestAnalyzeStack_Empty(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})

	diags, err := eng.AnalyzeStack(context.Background(), nil)
	if err != nil {
		t.Fatalf("AnalyzeStack failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics for an empty stack, got %v", diags)
	}
}

func TestEnableDisablePolicy(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})
	ctx := context.Background()
	resource := analyzer.Resource{Type: "test:index:Thing", URN: "urn:x", Name: "1bad"}

	if err := eng.DisablePolicy("resource-naming"); err != nil {
		t.Fatalf("DisablePolicy failed: %v", err)
	}

	diags, err := eng.Analyze(ctx, resource)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got := diagnosticsFor(diags, "resource-naming"); len(got) != 0 {
		t.Errorf("Expected no diagnostics from a disabled policy, got %v", got)
	}

	found := false
	for _, p := range eng.Info().Policies {
		if p.Name == "resource-naming" {
			found = true
		}
	}
	if !found {
		t.Error("Disabled policy should still be listed")
	}

	for _, s := range eng.Policies() {
		if s.Policy.Name == "resource-naming" && s.Enabled {
			t.Error("Expected status to report policy disabled")
		}
	}

	if err := eng.EnablePolicy("resource-naming"); err != nil {
		t.Fatalf("EnablePolicy failed: %v", err)
	}
	diags, err = eng.Analyze(ctx, resource)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got := diagnosticsFor(diags, "resource-naming"); len(got) != 1 {
		t.Errorf("Expected 1 diagnostic after enabling, got %v", got)
	}

	if err := eng.DisablePolicy("no-such-policy"); !analyzer.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestSetEnforcementLevel(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})

	if err := eng.SetEnforcementLevel("resource-naming", analyzer.EnforcementMandatory); err != nil {
		t.Fatalf("SetEnforcementLevel failed: %v", err)
	}

	diags, err := eng.Analyze(context.Background(), analyzer.Resource{Type: "test:index:Thing", URN: "urn:x", Name: "1bad"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	got := diagnosticsFor(diags, "resource-naming")
	if len(got) != 1 || got[0].EnforcementLevel != analyzer.EnforcementMandatory {
		t.Errorf("Expected one mandatory diagnostic, got %v", got)
	}

	for _, p := range eng.Info().Policies {
		if p.Name == "resource-naming" && p.EnforcementLevel != analyzer.EnforcementMandatory {
			t.Errorf("Expected info to report mandatory, got %s", p.EnforcementLevel)
		}
	}

	if err := eng.SetEnforcementLevel("resource-naming", "fatal"); !analyzer.IsInvalid(err) {
		t.Errorf("Expected invalid error, got %v", err)
	}
}

func TestAddPack_Rego(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{DisableBuiltin: true})

	pack := &Pack{
		Name:    "custom",
		Version: "0.1.0",
		Policies: []Policy{
			{
				Name:     "no-public-acl",
				Language: LanguageRego,
				Message:  "Buckets must be private.",
				Source: `package custom.acl

import rego.v1

deny contains "public-read acl" if input.resource.properties.acl == "public-read"

deny contains {"message": "escalated", "enforcementLevel": "mandatory"} if {
	input.resource.properties.acl == "public-read-write"
}

deny contains {"urn": "urn:other"} if input.resource.properties.acl == "authenticated-read"
`,
			},
		},
	}
	if err := eng.AddPack(context.Background(), pack); err != nil {
		t.Fatalf("AddPack failed: %v", err)
	}

	tests := []struct {
		name          string
		acl           string
		expectMessage string
		expectLevel   analyzer.EnforcementLevel
		expectURN     string
	}{
		{name: "plain message", acl: "public-read", expectMessage: "public-read acl", expectLevel: analyzer.EnforcementAdvisory, expectURN: "urn:bucket"},
		{name: "entry level", acl: "public-read-write", expectMessage: "escalated", expectLevel: analyzer.EnforcementMandatory, expectURN: "urn:bucket"},
		{name: "fallback message", acl: "authenticated-read", expectMessage: "Buckets must be private.", expectLevel: analyzer.EnforcementAdvisory, expectURN: "urn:other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, err := eng.Analyze(context.Background(), analyzer.Resource{
				Type:       "aws:s3/bucket:Bucket",
				URN:        "urn:bucket",
				Name:       "bucket",
				Properties: map[string]interface{}{"acl": tt.acl},
			})
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if len(diags) != 1 {
				t.Fatalf("Expected 1 diagnostic, got %v", diags)
			}
			d := diags[0]
			if d.Message != tt.expectMessage {
				t.Errorf("Expected message %q, got %q", tt.expectMessage, d.Message)
			}
			if d.EnforcementLevel != tt.expectLevel {
				t.Errorf("Expected level %s, got %s", tt.expectLevel, d.EnforcementLevel)
			}
			if d.URN != tt.expectURN {
				t.Errorf("Expected URN %s, got %s", tt.expectURN, d.URN)
			}
		})
	}

	// An override level beats the level carried by a deny entry.
	if err := eng.SetEnforcementLevel("no-public-acl", analyzer.EnforcementAdvisory); err != nil {
		t.Fatalf("SetEnforcementLevel failed: %v", err)
	}
	diags, err := eng.Analyze(context.Background(), analyzer.Resource{
		Type:       "aws:s3/bucket:Bucket",
		URN:        "urn:bucket",
		Name:       "bucket",
		Properties: map[string]interface{}{"acl": "public-read-write"},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(diags) != 1 || diags[0].EnforcementLevel != analyzer.EnforcementAdvisory {
		t.Errorf("Expected override level advisory, got %v", diags)
	}
}

func TestAddPack_Starlark(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{DisableBuiltin: true})

	pack := &Pack{
		Name:             "starlark-pack",
		Version:          "1.0.0",
		EnforcementLevel: analyzer.EnforcementMandatory,
		Policies: []Policy{
			{
				Name:     "instance-size",
				Language: LanguageStarlark,
				Config:   map[string]interface{}{"allowed": []interface{}{"t3.micro"}},
				Source: `
def deny(resource):
    size = resource["properties"].get("instanceType", "")
    if size and size not in config("allowed", []):
        return ["instance type %s is not allowed" % size]
    return []
`,
			},
			{
				Name:     "max-resources",
				Language: LanguageStarlark,
				Source: `
def deny_stack(resources, graph):
    out = []
    if len(resources) > config("max", 1):
        out.append({"message": "too many resources: %d" % len(resources)})
    if graph["hasCycle"]:
        out.append("cycle")
    return out
`,
			},
		},
	}
	if err := eng.AddPack(context.Background(), pack); err != nil {
		t.Fatalf("AddPack failed: %v", err)
	}

	statuses := eng.Policies()
	if len(statuses) != 2 {
		t.Fatalf("Expected 2 policies, got %d", len(statuses))
	}
	if statuses[0].Policy.Kind != KindResource || statuses[1].Policy.Kind != KindStack {
		t.Errorf("Unexpected kinds %s, %s", statuses[0].Policy.Kind, statuses[1].Policy.Kind)
	}

	diags, err := eng.Analyze(context.Background(), analyzer.Resource{
		Type:       "aws:ec2/instance:Instance",
		URN:        "urn:vm",
		Name:       "vm",
		Properties: map[string]interface{}{"instanceType": "m5.large"},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(diags) != 1 || diags[0].Message != "instance type m5.large is not allowed" {
		t.Fatalf("Unexpected diagnostics %v", diags)
	}
	if diags[0].EnforcementLevel != analyzer.EnforcementMandatory {
		t.Errorf("Expected pack level mandatory, got %s", diags[0].EnforcementLevel)
	}

	diags, err = eng.AnalyzeStack(context.Background(), []analyzer.Resource{
		{Type: "t:i:A", URN: "urn:a", Name: "a"},
		{Type: "t:i:B", URN: "urn:b", Name: "b"},
	})
	if err != nil {
		t.Fatalf("AnalyzeStack failed: %v", err)
	}
	if len(diags) != 1 || diags[0].Message != "too many resources: 2" || diags[0].URN != "" {
		t.Errorf("Unexpected stack diagnostics %v", diags)
	}
}

func TestAddPack_Errors(t *testing.T) {
	tests := []struct {
		name string
		pack *Pack
	}{
		{
			name: "no name",
			pack: &Pack{Policies: []Policy{{Name: "p", Language: LanguageRego, Source: "package p\ndeny[\"x\"] { true }"}}},
		},
		{
			name: "duplicate policy",
			pack: &Pack{Name: "dup", Policies: []Policy{
				{Name: "p", Language: LanguageRego, Source: "package p\nimport rego.v1\ndeny contains \"x\" if true"},
				{Name: "p", Language: LanguageRego, Source: "package q\nimport rego.v1\ndeny contains \"x\" if true"},
			}},
		},
		{
			name: "rego syntax error",
			pack: &Pack{Name: "bad", Policies: []Policy{{Name: "p", Language: LanguageRego, Source: "package p\ndeny contains {"}}},
		},
		{
			name: "rego without deny",
			pack: &Pack{Name: "nodeny", Policies: []Policy{{Name: "p", Language: LanguageRego, Source: "package p\nimport rego.v1\nallow := true"}}},
		},
		{
			name: "starlark without entry point",
			pack: &Pack{Name: "star", Policies: []Policy{{Name: "p", Language: LanguageStarlark, Source: "def check(r):\n    return []\n"}}},
		},
		{
			name: "unknown language",
			pack: &Pack{Name: "lang", Policies: []Policy{{Name: "p", Language: "python", Source: "x"}}},
		},
		{
			name: "name collides with built-in",
			pack: &Pack{Name: "collide", Policies: []Policy{{Name: "resource-naming", Language: LanguageRego, Source: "package p\nimport rego.v1\ndeny contains \"x\" if false"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(t, EngineConfig{})
			before := len(eng.Info().Policies)

			if err := eng.AddPack(context.Background(), tt.pack); err == nil {
				t.Fatal("Expected AddPack to fail")
			}
			if after := len(eng.Info().Policies); after != before {
				t.Errorf("Engine changed after failed AddPack: %d -> %d policies", before, after)
			}
		})
	}
}

func TestAddPack_ReplaceByName(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{DisableBuiltin: true})
	ctx := context.Background()

	v1 := &Pack{Name: "p", Version: "1", Policies: []Policy{{Name: "a", Language: LanguageRego, Source: "package a\nimport rego.v1\ndeny contains \"v1\" if true"}}}
	v2 := &Pack{Name: "p", Version: "2", Policies: []Policy{{Name: "a", Language: LanguageRego, Source: "package a\nimport rego.v1\ndeny contains \"v2\" if true"}}}

	if err := eng.AddPack(ctx, v1); err != nil {
		t.Fatalf("AddPack v1 failed: %v", err)
	}
	if err := eng.AddPack(ctx, v2); err != nil {
		t.Fatalf("AddPack v2 failed: %v", err)
	}

	packs := eng.Packs()
	if len(packs) != 1 || packs[0].Version != "2" {
		t.Fatalf("Expected pack replaced by version 2, got %v", packs)
	}

	diags, err := eng.Analyze(ctx, analyzer.Resource{Type: "t:i:A", URN: "urn:a", Name: "a"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(diags) != 1 || diags[0].Message != "v2" || diags[0].PolicyPackVersion != "2" {
		t.Errorf("Unexpected diagnostics %v", diags)
	}
}

func TestAnalyze_EvaluationFailure(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{DisableBuiltin: true})

	pack := &Pack{
		Name: "failing",
		Policies: []Policy{{
			Name:             "boom",
			Language:         LanguageStarlark,
			EnforcementLevel: analyzer.EnforcementMandatory,
			Source:           "def deny(resource):\n    return resource[\"missing\"]\n",
		}},
	}
	if err := eng.AddPack(context.Background(), pack); err != nil {
		t.Fatalf("AddPack failed: %v", err)
	}

	diags, err := eng.Analyze(context.Background(), analyzer.Resource{Type: "t:i:A", URN: "urn:a", Name: "a"})
	if err != nil {
		t.Fatalf("Analyze should not fail on policy errors: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %v", diags)
	}
	if !strings.HasPrefix(diags[0].Message, "policy evaluation failed:") {
		t.Errorf("Unexpected message %q", diags[0].Message)
	}
	if diags[0].EnforcementLevel != analyzer.EnforcementMandatory || diags[0].URN != "urn:a" {
		t.Errorf("Unexpected diagnostic %+v", diags[0])
	}
}

func TestAnalyze_StarlarkStepLimit(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{DisableBuiltin: true, MaxSteps: 1000})

	pack := &Pack{
		Name: "loop",
		Policies: []Policy{{
			Name:     "spin",
			Language: LanguageStarlark,
			Source:   "def deny(resource):\n    n = 0\n    for i in range(1000000):\n        n += i\n    return []\n",
		}},
	}
	if err := eng.AddPack(context.Background(), pack); err != nil {
		t.Fatalf("AddPack failed: %v", err)
	}

	diags, err := eng.Analyze(context.Background(), analyzer.Resource{Type: "t:i:A", URN: "urn:a", Name: "a"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(diags) != 1 || !strings.HasPrefix(diags[0].Message, "policy evaluation failed:") {
		t.Errorf("Expected a failure diagnostic, got %v", diags)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{})
	resource := analyzer.Resource{
		Type:       "aws:s3/bucket:Bucket",
		URN:        "urn:bucket",
		Name:       "1bucket",
		Properties: map[string]interface{}{"password": "x", "secretKey": "y", "tags": map[string]interface{}{}},
	}

	first, err := eng.Analyze(context.Background(), resource)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := eng.Analyze(context.Background(), resource)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("Run %d: expected %d diagnostics, got %d", i, len(first), len(again))
		}
		for j := range first {
			if first[j].PolicyName != again[j].PolicyName || first[j].Message != again[j].Message {
				t.Errorf("Run %d: diagnostic %d differs: %v vs %v", i, j, first[j], again[j])
			}
		}
	}
}

func TestAnalyze_ParallelKeepsPolicyOrder(t *testing.T) {
	var policies []Policy
	for i := 0; i < 12; i++ {
		policies = append(policies, Policy{
			Name:     fmt.Sprintf("p%02d", i),
			Language: LanguageStarlark,
			Source:   fmt.Sprintf("def deny(resource):\n    return [\"violation %d on \" + resource[\"name\"]]\n", i),
		})
	}

	for _, workers := range []int{1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			eng := newTestEngine(t, EngineConfig{DisableBuiltin: true, Parallelism: workers})
			if err := eng.AddPack(context.Background(), &Pack{Name: "many", Version: "1.0.0", Policies: policies}); err != nil {
				t.Fatalf("AddPack failed: %v", err)
			}

			diags, err := eng.Analyze(context.Background(), analyzer.Resource{Type: "t:i:A", URN: "urn:a", Name: "a"})
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if len(diags) != len(policies) {
				t.Fatalf("Expected %d diagnostics, got %d", len(policies), len(diags))
			}
			for i, d := range diags {
				if d.PolicyName != policies[i].Name {
					t.Errorf("Diagnostic %d: expected policy %s, got %s", i, policies[i].Name, d.PolicyName)
				}
				if want := fmt.Sprintf("violation %d on a", i); d.Message != want {
					t.Errorf("Diagnostic %d: expected %q, got %q", i, want, d.Message)
				}
			}
		})
	}
}

func TestRegoPackMetadata(t *testing.T) {
	eng := newTestEngine(t, EngineConfig{DisableBuiltin: true})

	pack := &Pack{
		Name:    "meta",
		Version: "3.1.4",
		Policies: []Policy{{
			Name:     "version-echo",
			Language: LanguageRego,
			Source: `package meta

import rego.v1

deny contains msg if {
	msg := sprintf("%s %s %s", [data.froyo_analyzer.pack.version, input.context.method, input.context.policy])
}
`,
		}},
	}
	if err := eng.AddPack(context.Background(), pack); err != nil {
		t.Fatalf("AddPack failed: %v", err)
	}

	diags, err := eng.Analyze(context.Background(), analyzer.Resource{Type: "t:i:A", URN: "urn:a", Name: "a"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(diags) != 1 || diags[0].Message != "3.1.4 Analyze version-echo" {
		t.Errorf("Unexpected diagnostics %v", diags)
	}
}
