package validation

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

const (
	// DefaultRuleSet holds every rule not assigned to a named rule set.
	DefaultRuleSet = "default"
	// RuleSetWildcard selects all rule sets.
	RuleSetWildcard = "*"
)

// Context is the non-generic input of a validation run: the instance plus
// ambient state such as the selected rule sets.
type Context struct {
	instance any
	ruleSets []string
	runID    uuid.UUID
	items    *itemBag
}

type itemBag struct {
	mu     sync.RWMutex
	values map[string]any
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithRuleSets selects the rule sets to run. No selection means DefaultRuleSet.
func WithRuleSets(names ...string) ContextOption {
	return func(c *Context) {
		c.ruleSets = appendDistinct(c.ruleSets, names...)
	}
}

// WithItem stores an ambient value that rules can read through Item.
func WithItem(key string, value any) ContextOption {
	return func(c *Context) {
		c.items.values[key] = value
	}
}

// WithRunID overrides the generated run id. uuid.Nil is ignored.
func WithRunID(id uuid.UUID) ContextOption {
	return func(c *Context) {
		if id != uuid.Nil {
			c.runID = id
		}
	}
}

// NewContext wraps instance for a validation run.
func NewContext(instance any, opts ...ContextOption) *Context {
	c := &Context{
		instance: instance,
		runID:    uuid.New(),
		items:    &itemBag{values: make(map[string]any)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) Instance() any {
	return c.instance
}

// RunID identifies the run in logs. Child contexts share it.
func (c *Context) RunID() uuid.UUID {
	return c.runID
}

// RuleSets returns the explicit selection, or nil for the default set.
func (c *Context) RuleSets() []string {
	return slices.Clone(c.ruleSets)
}

// IncludesRuleSet reports whether a rule belonging to name should run.
func (c *Context) IncludesRuleSet(name string) bool {
	if len(c.ruleSets) == 0 {
		return name == DefaultRuleSet
	}
	return slices.Contains(c.ruleSets, RuleSetWildcard) || slices.Contains(c.ruleSets, name)
}

func (c *Context) Item(key string) (any, bool) {
	c.items.mu.RLock()
	defer c.items.mu.RUnlock()
	v, ok := c.items.values[key]
	return v, ok
}

func (c *Context) SetItem(key string, value any) {
	c.items.mu.Lock()
	defer c.items.mu.Unlock()
	c.items.values[key] = value
}

// ForChild returns a context for a nested instance. The rule-set selection,
// run id and item bag are shared with the parent.
func (c *Context) ForChild(instance any) *Context {
	return &Context{
		instance: instance,
		ruleSets: c.ruleSets,
		runID:    c.runID,
		items:    c.items,
	}
}
