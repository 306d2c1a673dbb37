package policy

import (
	"time"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

// Kind selects the input a policy receives.
type Kind string

const (
	// KindResource policies see one resource per evaluation.
	KindResource Kind = "resource"

	// KindStack policies see every resource of a stack plus its graph.
	KindStack Kind = "stack"
)

// Language is the policy source language.
type Language string

const (
	LanguageRego     Language = "rego"
	LanguageStarlark Language = "starlark"
)

// Policy is a single rule of a pack.
type Policy struct {
	// Name is unique across all loaded packs.
	Name string `json:"name"`

	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`

	// Message is used for violations that carry no message of their own.
	Message string `json:"message,omitempty"`

	// EnforcementLevel is the configured level before overrides.
	EnforcementLevel analyzer.EnforcementLevel `json:"enforcementLevel"`

	Tags []string `json:"tags,omitempty"`

	// Kind is resolved at compile time when left empty.
	Kind     Kind     `json:"kind,omitempty"`
	Language Language `json:"language"`

	// Source is the policy code.
	Source string `json:"-"`

	// Path is the file the policy was loaded from, empty for built-ins.
	Path string `json:"path,omitempty"`

	// Config is passed to the policy as input.config.
	Config map[string]interface{} `json:"config,omitempty"`
}

// Info returns the catalog entry for the policy at the given level.
func (p *Policy) Info(level analyzer.EnforcementLevel) analyzer.PolicyInfo {
	return analyzer.PolicyInfo{
		Name:             p.Name,
		DisplayName:      p.DisplayName,
		Description:      p.Description,
		Message:          p.Message,
		EnforcementLevel: level,
	}
}

// Pack is an ordered, versioned collection of policies.
type Pack struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version"`

	// EnforcementLevel is the default for policies that do not set one.
	EnforcementLevel analyzer.EnforcementLevel `json:"enforcementLevel,omitempty"`

	Policies []Policy `json:"policies"`

	// Dir is the directory the pack was loaded from, empty for built-ins.
	Dir string `json:"dir,omitempty"`
}

// Override changes a policy's behavior without editing its pack. Overrides
// are keyed by policy name and survive pack reloads.
type Override struct {
	Disabled bool `json:"disabled,omitempty"`

	// EnforcementLevel replaces the configured level when set.
	EnforcementLevel analyzer.EnforcementLevel `json:"enforcementLevel,omitempty"`

	// Config keys are merged over the policy's own config.
	Config map[string]interface{} `json:"config,omitempty"`
}

// Status describes a loaded policy with its effective settings.
type Status struct {
	Pack             string                    `json:"pack"`
	PackVersion      string                    `json:"packVersion"`
	Policy           Policy                    `json:"policy"`
	Enabled          bool                      `json:"enabled"`
	EnforcementLevel analyzer.EnforcementLevel `json:"enforcementLevel"`
	CompiledAt       time.Time                 `json:"compiledAt"`
}

// violation is one parsed deny entry.
type violation struct {
	Message          string
	URN              string
	EnforcementLevel analyzer.EnforcementLevel
}
