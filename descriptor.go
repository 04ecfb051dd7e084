package validation

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// RuleDescriptor is the static description of one configured rule component.
type RuleDescriptor struct {
	Name      string         `json:"name" yaml:"name"`
	Property  string         `json:"property,omitempty" yaml:"property,omitempty"`
	RuleSets  []string       `json:"rule_sets,omitempty" yaml:"rule_sets,omitempty"`
	Severity  Severity       `json:"severity" yaml:"severity"`
	ErrorCode string         `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Cascade   CascadeMode    `json:"cascade" yaml:"cascade"`
	Async     bool           `json:"async,omitempty" yaml:"async,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Descriptor describes the rules of a validator without running them.
type Descriptor struct {
	Name  string           `json:"name,omitempty" yaml:"name,omitempty"`
	Rules []RuleDescriptor `json:"rules" yaml:"rules"`
}

// Properties returns the distinct described properties in declaration order.
func (d Descriptor) Properties() []string {
	var props []string
	for _, r := range d.Rules {
		if !slices.Contains(props, r.Property) {
			props = append(props, r.Property)
		}
	}
	return props
}

// RulesFor returns the rules declared for property.
func (d Descriptor) RulesFor(property string) []RuleDescriptor {
	var out []RuleDescriptor
	for _, r := range d.Rules {
		if r.Property == property {
			out = append(out, r)
		}
	}
	return out
}

// HasAsyncRules reports whether any rule can only run through ValidateAsync.
func (d Descriptor) HasAsyncRules() bool {
	return slices.ContainsFunc(d.Rules, func(r RuleDescriptor) bool { return r.Async })
}

// YAML renders the descriptor for tooling.
func (d Descriptor) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
