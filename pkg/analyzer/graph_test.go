package analyzer

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewResourceGraph(t *testing.T) {
	resources := []Resource{
		{Type: "t:i:App", URN: "urn:app", Name: "app", Dependencies: []string{"urn:db", "urn:net"}},
		{Type: "t:i:Db", URN: "urn:db", Name: "db", Dependencies: []string{"urn:net"}},
		{Type: "t:i:Net", URN: "urn:net", Name: "net"},
	}

	g, err := NewResourceGraph(resources)
	if err != nil {
		t.Fatalf("NewResourceGraph failed: %v", err)
	}

	if g.Len() != 3 {
		t.Errorf("Expected 3 resources, got %d", g.Len())
	}
	if r, ok := g.Lookup("urn:db"); !ok || r.Name != "db" {
		t.Errorf("Lookup failed: %v %v", r, ok)
	}
	if deps := g.DependenciesOf("urn:app"); !reflect.DeepEqual(deps, []string{"urn:db", "urn:net"}) {
		t.Errorf("Unexpected dependencies %v", deps)
	}
	if deps := g.DependentsOf("urn:net"); !reflect.DeepEqual(deps, []string{"urn:app", "urn:db"}) {
		t.Errorf("Unexpected dependents %v", deps)
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder failed: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"urn:net", "urn:db", "urn:app"}) {
		t.Errorf("Unexpected order %v", order)
	}
	if g.HasCycle() {
		t.Error("Expected no cycle")
	}
}

func TestNewResourceGraph_Errors(t *testing.T) {
	tests := []struct {
		name      string
		resources []Resource
		code      string
	}{
		{
			name:      "empty urn",
			resources: []Resource{{Type: "t:i:A"}},
			code:      ErrCodeMissingURN,
		},
		{
			name:      "duplicate urn",
			resources: []Resource{{Type: "t:i:A", URN: "urn:a"}, {Type: "t:i:A", URN: "urn:a"}},
			code:      ErrCodeDuplicateURN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResourceGraph(tt.resources)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Expected *Error, got %v", err)
			}
			if e.Class != ErrorClassInvalid || e.Code != tt.code {
				t.Errorf("Expected invalid %s, got %s %s", tt.code, e.Class, e.Code)
			}
		})
	}
}

func TestResourceGraph_Dangling(t *testing.T) {
	resources := []Resource{
		{
			Type:                 "t:i:A",
			URN:                  "urn:a",
			Parent:               "urn:missing-parent",
			Dependencies:         []string{"urn:b", "urn:missing-dep"},
			PropertyDependencies: map[string][]string{"subnet": {"urn:missing-subnet"}},
			Provider:             &ProviderResource{URN: "urn:missing-provider"},
		},
		{Type: "t:i:B", URN: "urn:b"},
	}

	g, err := NewResourceGraph(resources)
	if err != nil {
		t.Fatalf("NewResourceGraph failed: %v", err)
	}

	expected := []DanglingReference{
		{URN: "urn:a", Target: "urn:missing-parent", Kind: RefParent},
		{URN: "urn:a", Target: "urn:missing-dep", Kind: RefDependency},
		{URN: "urn:a", Target: "urn:missing-subnet", Kind: RefPropertyDependency, Property: "subnet"},
		{URN: "urn:a", Target: "urn:missing-provider", Kind: RefProvider},
	}
	if got := g.Dangling(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Unexpected dangling references:\n got %v\nwant %v", got, expected)
	}

	summary := g.Summary()
	if len(summary.Dangling) != 4 || summary.HasCycle {
		t.Errorf("Unexpected summary %+v", summary)
	}
	if !reflect.DeepEqual(summary.Order, []string{"urn:b", "urn:a"}) {
		t.Errorf("Unexpected order %v", summary.Order)
	}
}

func TestResourceGraph_Cycle(t *testing.T) {
	resources := []Resource{
		{Type: "t:i:A", URN: "urn:a", Dependencies: []string{"urn:b"}},
		{Type: "t:i:B", URN: "urn:b", Dependencies: []string{"urn:a"}},
		{Type: "t:i:C", URN: "urn:c"},
	}

	g, err := NewResourceGraph(resources)
	if err != nil {
		t.Fatalf("NewResourceGraph failed: %v", err)
	}

	if !g.HasCycle() {
		t.Fatal("Expected a cycle")
	}

	_, err = g.TopologicalOrder()
	var e *Error
	if !errors.As(err, &e) || e.Code != ErrCodeDependencyCycle {
		t.Errorf("Expected cycle error, got %v", err)
	}

	summary := g.Summary()
	if !summary.HasCycle {
		t.Error("Expected summary to report the cycle")
	}
	if !reflect.DeepEqual(summary.Order, []string{"urn:a", "urn:b", "urn:c"}) {
		t.Errorf("Expected input order on cycle, got %v", summary.Order)
	}
}

func TestResourceGraph_Empty(t *testing.T) {
	g, err := NewResourceGraph(nil)
	if err != nil {
		t.Fatalf("NewResourceGraph failed: %v", err)
	}

	summary := g.Summary()
	if summary.Order == nil || summary.Dangling == nil || summary.Dependents == nil {
		t.Errorf("Expected non-nil summary collections, got %+v", summary)
	}
}
