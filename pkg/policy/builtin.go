package policy

import (
	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

const (
	// BuiltinPackName is the name of the pack compiled into the binary.
	BuiltinPackName = "froyo-builtin"

	// BuiltinPackVersion is bumped whenever a built-in policy changes.
	BuiltinPackVersion = "1.0.0"
)

// BuiltinPack returns the built-in policy pack.
func BuiltinPack() *Pack {
	return &Pack{
		Name:             BuiltinPackName,
		DisplayName:      "Froyo built-in policies",
		Version:          BuiltinPackVersion,
		EnforcementLevel: analyzer.EnforcementAdvisory,
		Policies: []Policy{
			resourceNamingPolicy(),
			requiredTagsPolicy(),
			protectDeleteBeforeReplacePolicy(),
			secretOutputsPolicy(),
			customTimeoutsPolicy(),
			danglingReferencesPolicy(),
		},
	}
}

// resourceNamingPolicy checks logical resource names against a pattern and a
// length limit.
func resourceNamingPolicy() Policy {
	return Policy{
		Name:             "resource-naming",
		DisplayName:      "Resource naming",
		Description:      "Resource names start with a letter and contain only letters, digits, hyphens and underscores.",
		EnforcementLevel: analyzer.EnforcementAdvisory,
		Tags:             []string{"naming", "conventions"},
		Kind:             KindResource,
		Language:         LanguageRego,
		Config: map[string]interface{}{
			"pattern":   "^[a-zA-Z][a-zA-Z0-9-_]*$",
			"maxLength": 63,
		},
		Source: `package froyo.builtin.resource_naming

import rego.v1

pattern := object.get(input.config, "pattern", "^[a-zA-Z][a-zA-Z0-9-_]*$")

max_length := object.get(input.config, "maxLength", 63)

deny contains msg if {
	name := input.resource.name
	name != ""
	not regex.match(pattern, name)
	msg := sprintf("resource name '%s' does not match %s", [name, pattern])
}

deny contains msg if {
	name := input.resource.name
	count(name) > max_length
	msg := sprintf("resource name '%s' is longer than %v characters", [name, max_length])
}
`,
	}
}

// requiredTagsPolicy only applies to resources that carry a tags property.
func requiredTagsPolicy() Policy {
	return Policy{
		Name:             "required-tags",
		DisplayName:      "Required tags",
		Description:      "Taggable resources carry every required tag.",
		Message:          "Add the missing tags to the resource.",
		EnforcementLevel: analyzer.EnforcementAdvisory,
		Tags:             []string{"tagging", "governance"},
		Kind:             KindResource,
		Language:         LanguageRego,
		Config: map[string]interface{}{
			"tags": []interface{}{"owner"},
		},
		Source: `package froyo.builtin.required_tags

import rego.v1

required := object.get(input.config, "tags", ["owner"])

deny contains msg if {
	tags := input.resource.properties.tags
	is_object(tags)
	some key in required
	not tags[key]
	msg := sprintf("resource is missing required tag '%s'", [key])
}
`,
	}
}

func protectDeleteBeforeReplacePolicy() Policy {
	return Policy{
		Name:             "protect-delete-before-replace",
		DisplayName:      "Protected resources are never deleted before replacement",
		Description:      "A protected resource must not set deleteBeforeReplace, which would delete it during a replacement.",
		EnforcementLevel: analyzer.EnforcementMandatory,
		Tags:             []string{"safety"},
		Kind:             KindResource,
		Language:         LanguageRego,
		Source: `package froyo.builtin.protect_delete_before_replace

import rego.v1

deny contains "protected resource sets deleteBeforeReplace" if {
	input.resource.options.protect == true
	input.resource.options.deleteBeforeReplace == true
}
`,
	}
}

// secretOutputsPolicy flags properties whose names look sensitive unless
// they are declared as additional secret outputs.
func secretOutputsPolicy() Policy {
	return Policy{
		Name:             "secret-outputs",
		DisplayName:      "Sensitive outputs are secret",
		Description:      "Properties that look like credentials are listed in additionalSecretOutputs.",
		EnforcementLevel: analyzer.EnforcementAdvisory,
		Tags:             []string{"security", "secrets"},
		Kind:             KindResource,
		Language:         LanguageRego,
		Config: map[string]interface{}{
			"patterns": []interface{}{"password", "secret", "token", "private_key", "privatekey"},
		},
		Source: `package froyo.builtin.secret_outputs

import rego.v1

patterns := object.get(input.config, "patterns", ["password", "secret", "token", "private_key", "privatekey"])

secret_outputs contains name if {
	some name in input.resource.options.additionalSecretOutputs
}

deny contains msg if {
	some key, _ in input.resource.properties
	some pattern in patterns
	contains(lower(key), pattern)
	not secret_outputs[key]
	msg := sprintf("property '%s' looks sensitive but is not in additionalSecretOutputs", [key])
}
`,
	}
}

func customTimeoutsPolicy() Policy {
	return Policy{
		Name:             "custom-timeouts",
		DisplayName:      "Custom timeouts are bounded",
		Description:      "Custom create, update and delete timeouts are finite, non-negative and below the configured limit.",
		EnforcementLevel: analyzer.EnforcementAdvisory,
		Tags:             []string{"reliability"},
		Kind:             KindResource,
		Language:         LanguageRego,
		Config: map[string]interface{}{
			"maxSeconds": 3600,
		},
		Source: `package froyo.builtin.custom_timeouts

import rego.v1

max_seconds := object.get(input.config, "maxSeconds", 3600)

deny contains msg if {
	some op, seconds in input.resource.options.customTimeouts
	not is_number(seconds)
	msg := sprintf("custom %s timeout must be a finite number, got %v", [op, seconds])
}

deny contains msg if {
	some op, seconds in input.resource.options.customTimeouts
	is_number(seconds)
	seconds < 0
	msg := sprintf("custom %s timeout must not be negative, got %v", [op, seconds])
}

deny contains msg if {
	some op, seconds in input.resource.options.customTimeouts
	is_number(seconds)
	seconds > max_seconds
	msg := sprintf("custom %s timeout of %vs exceeds the limit of %vs", [op, seconds, max_seconds])
}
`,
	}
}

// danglingReferencesPolicy reports references that leave the stack. The
// ignoreKinds config skips reference kinds such as "parent".
func danglingReferencesPolicy() Policy {
	return Policy{
		Name:             "dangling-references",
		DisplayName:      "References resolve within the stack",
		Description:      "Dependencies, property dependencies, parents and providers name resources of the same stack.",
		EnforcementLevel: analyzer.EnforcementMandatory,
		Tags:             []string{"graph"},
		Kind:             KindStack,
		Language:         LanguageRego,
		Config: map[string]interface{}{
			"ignoreKinds": []interface{}{},
		},
		Source: `package froyo.builtin.dangling_references

import rego.v1

ignored := object.get(input.config, "ignoreKinds", [])

deny contains violation if {
	some ref in input.graph.dangling
	not ref.kind in ignored
	violation := {
		"message": sprintf("%s reference to %s does not resolve to a resource in the stack", [ref.kind, ref.target]),
		"urn": ref.urn,
	}
}
`,
	}
}
