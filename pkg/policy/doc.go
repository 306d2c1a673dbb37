// Package policy evaluates Pulumi resources against policy packs written in
// Rego or Starlark.
//
// An Engine holds an ordered list of packs. The built-in pack is loaded first
// unless disabled; packs loaded from directories follow in load order.
// Diagnostics are reported in pack order, then policy order, so the output of
// a given input is deterministic.
//
// # Policy kinds
//
// Resource policies see one resource at a time:
//
//	input.resource   the resource, with options, provider and dependencies
//	input.context    method, pack, packVersion and policy names
//	input.config     the policy config with overrides applied
//
// Stack policies see every resource of the stack and the resource graph:
//
//	input.resources  all resources in request order
//	input.graph      order, dependents, dangling references and hasCycle
//
// A Rego policy defines a deny set in its package. A Starlark policy defines
// deny(resource) or deny_stack(resources[, graph]) and reads its config with
// config(key, default). A deny entry is either a message or an object with
// message, urn and enforcementLevel.
//
// # Pack directories
//
// A pack directory holds .rego, .star and .json policy files and an optional
// policypack.yaml manifest:
//
//	name: aws-baseline
//	version: 1.2.0
//	enforcementLevel: advisory
//	policies:
//	  - name: s3-no-public-read
//	    file: s3.rego
//	    enforcementLevel: mandatory
//	    config:
//	      allowedAcls: [private]
//
// Usage:
//
//	engine, err := policy.NewEngine(logger, policy.EngineConfig{Version: version})
//	if err != nil {
//	    return err
//	}
//	if _, err := engine.LoadPack(ctx, "./policies"); err != nil {
//	    return err
//	}
//	diags, err := engine.Analyze(ctx, resource)
//
// Watch reloads pack directories on change. A pack that fails to compile
// keeps serving its previous version.
package policy
