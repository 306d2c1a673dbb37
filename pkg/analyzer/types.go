package analyzer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EnforcementLevel indicates how a policy violation is handled.
type EnforcementLevel string

const (
	// EnforcementAdvisory violations are reported but do not block a deployment.
	EnforcementAdvisory EnforcementLevel = "advisory"

	// EnforcementMandatory violations stop the deployment.
	EnforcementMandatory EnforcementLevel = "mandatory"
)

// ParseEnforcementLevel parses a case-insensitive enforcement level. The empty
// string parses as advisory, matching the wire default.
func ParseEnforcementLevel(s string) (EnforcementLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "advisory":
		return EnforcementAdvisory, nil
	case "mandatory":
		return EnforcementMandatory, nil
	default:
		return "", fmt.Errorf("unknown enforcement level %q", s)
	}
}

// Resource is a resource node under evaluation, with its graph context.
type Resource struct {
	// Type is the resource type token, e.g. "aws:s3/bucket:Bucket".
	Type string `json:"type" validate:"required"`

	// Properties are the full resource properties.
	Properties map[string]interface{} `json:"properties,omitempty"`

	// URN uniquely identifies the resource within one evaluated graph.
	URN string `json:"urn" validate:"required"`

	// Name is the name component of the URN.
	Name string `json:"name"`

	// Options are the policy-relevant resource options.
	Options *ResourceOptions `json:"options,omitempty"`

	// Provider is the provider resource managing this resource.
	Provider *ProviderResource `json:"provider,omitempty"`

	// Parent is the URN of the parent resource, if any.
	Parent string `json:"parent,omitempty"`

	// Dependencies lists the URNs this resource depends on.
	Dependencies []string `json:"dependencies,omitempty" validate:"dive,required"`

	// PropertyDependencies maps property keys to the URNs that property depends on.
	PropertyDependencies map[string][]string `json:"propertyDependencies,omitempty" validate:"dive,dive,required"`
}

// ResourceOptions are the resource-level settings policies may inspect.
type ResourceOptions struct {
	Protect       bool     `json:"protect,omitempty"`
	IgnoreChanges []string `json:"ignoreChanges,omitempty"`

	// DeleteBeforeReplace is nil when the option was never set.
	DeleteBeforeReplace *bool `json:"deleteBeforeReplace,omitempty"`

	AdditionalSecretOutputs []string        `json:"additionalSecretOutputs,omitempty"`
	Aliases                 []string        `json:"aliases,omitempty"`
	CustomTimeouts          *CustomTimeouts `json:"customTimeouts,omitempty"`
}

// CustomTimeouts are per-operation timeouts in seconds.
type CustomTimeouts struct {
	Create float64 `json:"create,omitempty"`
	Update float64 `json:"update,omitempty"`
	Delete float64 `json:"delete,omitempty"`
}

// MarshalJSON omits unset timeouts and writes non-finite ones as strings.
func (t CustomTimeouts) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, 3)
	for _, f := range []struct {
		key     string
		seconds float64
	}{{"create", t.Create}, {"update", t.Update}, {"delete", t.Delete}} {
		if f.seconds != 0 {
			out[f.key] = JSONSafe(f.seconds)
		}
	}
	return json.Marshal(out)
}

// ProviderResource describes the provider that manages a resource.
type ProviderResource struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	URN        string                 `json:"urn"`
	Name       string                 `json:"name"`
}

// Diagnostic is one policy finding.
type Diagnostic struct {
	PolicyName        string           `json:"policyName"`
	PolicyPackName    string           `json:"policyPackName"`
	PolicyPackVersion string           `json:"policyPackVersion"`
	Description       string           `json:"description,omitempty"`
	Message           string           `json:"message"`
	Tags              []string         `json:"tags,omitempty"`
	EnforcementLevel  EnforcementLevel `json:"enforcementLevel"`

	// URN is the offending resource. It may be empty for stack-wide findings.
	URN string `json:"urn,omitempty"`
}

// PolicyInfo is static metadata for a single policy.
type PolicyInfo struct {
	Name             string           `json:"name"`
	DisplayName      string           `json:"displayName,omitempty"`
	Description      string           `json:"description,omitempty"`
	Message          string           `json:"message,omitempty"`
	EnforcementLevel EnforcementLevel `json:"enforcementLevel"`
}

// AnalyzerInfo describes an analyzer and, in report order, the policies it enforces.
type AnalyzerInfo struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName,omitempty"`
	Version     string       `json:"version,omitempty"`
	Policies    []PolicyInfo `json:"policies"`
}

// PluginInfo is plugin version metadata.
type PluginInfo struct {
	Version string `json:"version"`
}

// Method names used for logging, metrics and history records.
const (
	MethodAnalyze         = "Analyze"
	MethodAnalyzeStack    = "AnalyzeStack"
	MethodGetAnalyzerInfo = "GetAnalyzerInfo"
	MethodGetPluginInfo   = "GetPluginInfo"
)

// AnalysisRecord summarizes one completed Analyze or AnalyzeStack call.
type AnalysisRecord struct {
	ID          string
	Method      string
	Resources   int
	Diagnostics []Diagnostic
	StartedAt   time.Time
	Duration    time.Duration
}

// MandatoryCount returns the number of mandatory diagnostics in diags.
func MandatoryCount(diags []Diagnostic) int {
	n := 0
	for i := range diags {
		if diags[i].EnforcementLevel == EnforcementMandatory {
			n++
		}
	}
	return n
}

// JSONSafe returns a copy of v in which every NaN or infinite number is
// replaced by its string form ("NaN", "+Inf" or "-Inf"). Property values
// decoded from the wire may hold such numbers; JSON cannot.
func JSONSafe(v interface{}) interface{} {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return strconv.FormatFloat(t, 'g', -1, 64)
		}
		return t
	case float32:
		return JSONSafe(float64(t))
	case map[string]interface{}:
		if t == nil {
			return t
		}
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = JSONSafe(e)
		}
		return out
	case []interface{}:
		if t == nil {
			return t
		}
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = JSONSafe(e)
		}
		return out
	default:
		return v
	}
}
