package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// Reference kinds reported for dangling references.
const (
	RefDependency         = "dependency"
	RefPropertyDependency = "propertyDependency"
	RefParent             = "parent"
	RefProvider           = "provider"
)

// DanglingReference is a reference to a URN that is not part of the graph.
type DanglingReference struct {
	// URN is the resource holding the reference.
	URN string `json:"urn"`

	// Target is the URN that could not be resolved.
	Target string `json:"target"`

	// Kind is one of the Ref* constants.
	Kind string `json:"kind"`

	// Property is set for property dependencies.
	Property string `json:"property,omitempty"`
}

// ResourceGraph indexes a stack by URN so cross-resource policies can follow
// dependency, parent and provider references.
type ResourceGraph struct {
	// order preserves the input order of URNs.
	order []string

	// nodes maps URNs to their resources.
	nodes map[string]*Resource

	// edges maps a URN to the URNs it depends on, within the graph.
	edges map[string][]string

	// dependents maps a URN to the URNs that depend on it.
	dependents map[string][]string

	dangling []DanglingReference
}

// NewResourceGraph builds a graph from an ordered stack. Duplicate URNs are
// rejected; references that leave the graph are recorded as dangling.
func NewResourceGraph(resources []Resource) (*ResourceGraph, error) {
	g := &ResourceGraph{
		order:      make([]string, 0, len(resources)),
		nodes:      make(map[string]*Resource, len(resources)),
		edges:      make(map[string][]string, len(resources)),
		dependents: make(map[string][]string, len(resources)),
	}

	// First pass: index all resources
	for i := range resources {
		r := &resources[i]
		if r.URN == "" {
			return nil, NewInvalidError(fmt.Sprintf("resources[%d] has an empty urn", i), nil).
				WithCode(ErrCodeMissingURN)
		}
		if _, exists := g.nodes[r.URN]; exists {
			return nil, NewInvalidError("duplicate urn in stack", nil).
				WithCode(ErrCodeDuplicateURN).
				WithURN(r.URN)
		}
		g.nodes[r.URN] = r
		g.order = append(g.order, r.URN)
	}

	// Second pass: resolve references
	for _, urn := range g.order {
		r := g.nodes[urn]
		seen := make(map[string]bool)
		link := func(target, kind, property string) {
			if target == "" {
				return
			}
			if _, ok := g.nodes[target]; !ok {
				g.dangling = append(g.dangling, DanglingReference{URN: urn, Target: target, Kind: kind, Property: property})
				return
			}
			if seen[target] || target == urn {
				return
			}
			seen[target] = true
			g.edges[urn] = append(g.edges[urn], target)
			g.dependents[target] = append(g.dependents[target], urn)
		}

		link(r.Parent, RefParent, "")
		for _, dep := range r.Dependencies {
			link(dep, RefDependency, "")
		}
		for _, key := range sortedKeys(r.PropertyDependencies) {
			for _, dep := range r.PropertyDependencies[key] {
				link(dep, RefPropertyDependency, key)
			}
		}
		if r.Provider != nil {
			link(r.Provider.URN, RefProvider, "")
		}
	}

	return g, nil
}

// Len returns the number of resources in the graph.
func (g *ResourceGraph) Len() int {
	return len(g.order)
}

// Lookup returns the resource with the given URN.
func (g *ResourceGraph) Lookup(urn string) (*Resource, bool) {
	r, ok := g.nodes[urn]
	return r, ok
}

// DependenciesOf returns the in-graph URNs that urn depends on, in first-reference order.
func (g *ResourceGraph) DependenciesOf(urn string) []string {
	return copyStrings(g.edges[urn])
}

// DependentsOf returns the URNs that depend on urn, in input order.
func (g *ResourceGraph) DependentsOf(urn string) []string {
	return copyStrings(g.dependents[urn])
}

// Dangling returns references to URNs outside the graph, in input order.
func (g *ResourceGraph) Dangling() []DanglingReference {
	out := make([]DanglingReference, len(g.dangling))
	copy(out, g.dangling)
	return out
}

// TopologicalOrder returns the URNs ordered so that every resource follows
// the resources it depends on. Ties keep input order. It fails if the
// references form a cycle.
func (g *ResourceGraph) TopologicalOrder() ([]string, error) {
	// Kahn's algorithm with input order as the tie-breaker
	inDegree := make(map[string]int, len(g.order))
	position := make(map[string]int, len(g.order))
	for i, urn := range g.order {
		inDegree[urn] = len(g.edges[urn])
		position[urn] = i
	}

	ready := make([]string, 0)
	for _, urn := range g.order {
		if inDegree[urn] == 0 {
			ready = append(ready, urn)
		}
	}

	result := make([]string, 0, len(g.order))
	for len(ready) > 0 {
		urn := ready[0]
		ready = ready[1:]
		result = append(result, urn)

		released := make([]string, 0)
		for _, dependent := range g.dependents[urn] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				released = append(released, dependent)
			}
		}
		ready = append(ready, released...)
		sort.SliceStable(ready, func(i, j int) bool {
			return position[ready[i]] < position[ready[j]]
		})
	}

	if len(result) != len(g.order) {
		return nil, NewInvalidError(fmt.Sprintf("dependency cycle detected: %s", formatCycle(g.findCycle())), nil).
			WithCode(ErrCodeDependencyCycle)
	}

	return result, nil
}

// HasCycle reports whether the references form a cycle.
func (g *ResourceGraph) HasCycle() bool {
	return g.findCycle() != nil
}

// findCycle returns one cycle as a path of URNs, or nil.
func (g *ResourceGraph) findCycle() []string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string
	var cycle []string

	var visit func(urn string) bool
	visit = func(urn string) bool {
		visited[urn] = true
		onStack[urn] = true
		path = append(path, urn)

		for _, dep := range g.edges[urn] {
			if !visited[dep] {
				if visit(dep) {
					return true
				}
			} else if onStack[dep] {
				for i, id := range path {
					if id == dep {
						cycle = append(append([]string{}, path[i:]...), dep)
						return true
					}
				}
			}
		}

		onStack[urn] = false
		path = path[:len(path)-1]
		return false
	}

	for _, urn := range g.order {
		if !visited[urn] && visit(urn) {
			return cycle
		}
	}
	return nil
}

// Summary is a JSON-friendly view of the graph handed to stack policies.
type Summary struct {
	Order      []string            `json:"order"`
	Dependents map[string][]string `json:"dependents"`
	Dangling   []DanglingReference `json:"dangling"`
	HasCycle   bool                `json:"hasCycle"`
}

// Summary returns the graph view exposed to stack policies. Order is the
// topological order, or the input order when the graph has a cycle.
func (g *ResourceGraph) Summary() Summary {
	order, err := g.TopologicalOrder()
	if err != nil {
		order = copyStrings(g.order)
	}
	if order == nil {
		order = []string{}
	}

	dependents := make(map[string][]string, len(g.dependents))
	for urn, deps := range g.dependents {
		dependents[urn] = copyStrings(deps)
	}

	return Summary{
		Order:      order,
		Dependents: dependents,
		Dangling:   g.Dangling(),
		HasCycle:   err != nil,
	}
}

func formatCycle(cycle []string) string {
	if len(cycle) == 0 {
		return "<unknown>"
	}
	return strings.Join(cycle, " -> ")
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
