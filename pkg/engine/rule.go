package engine

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	validation "github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/rules"
)

// RuleBuilder configures the chain of components of one property rule.
// Modifiers such as WithMessage and When act on the most recently added
// component and panic when the chain is still empty.
type RuleBuilder[T, P any] struct {
	rule *propertyRule[T, P]
}

// RuleFor starts a rule for the property returned by get.
func RuleFor[T, P any](v *Validator[T], property string, get func(T) P) *RuleBuilder[T, P] {
	r := &propertyRule[T, P]{
		property: property,
		cascade:  v.ruleCascade,
		ruleSets: slices.Clone(v.activeSets),
		items: func(instance T) []item[P] {
			return []item[P]{{path: property, value: get(instance)}}
		},
	}
	v.rules = append(v.rules, r)
	return &RuleBuilder[T, P]{rule: r}
}

// RuleForEach starts a rule applied to every element of the slice returned
// by get. Failures are reported under "property[index]".
func RuleForEach[T, E any](v *Validator[T], property string, get func(T) []E) *RuleBuilder[T, E] {
	r := &propertyRule[T, E]{
		property: property,
		cascade:  v.ruleCascade,
		ruleSets: slices.Clone(v.activeSets),
		items: func(instance T) []item[E] {
			elems := get(instance)
			out := make([]item[E], len(elems))
			for i, e := range elems {
				out[i] = item[E]{path: property + "[" + strconv.Itoa(i) + "]", value: e}
			}
			return out
		},
	}
	v.rules = append(v.rules, r)
	return &RuleBuilder[T, E]{rule: r}
}

// Must appends a synchronous check.
func (b *RuleBuilder[T, P]) Must(c rules.Check[P]) *RuleBuilder[T, P] {
	test := c.Test
	b.rule.components = append(b.rule.components, &component[T, P]{
		name:     c.Name,
		code:     c.Code,
		message:  c.Message,
		params:   maps.Clone(c.Params),
		severity: validation.SeverityError,
		test: func(_ context.Context, v P) (bool, error) {
			return test(v), nil
		},
	})
	return b
}

// MustAsync appends a check that can only run through ValidateAsync.
func (b *RuleBuilder[T, P]) MustAsync(c rules.AsyncCheck[P]) *RuleBuilder[T, P] {
	b.rule.components = append(b.rule.components, &component[T, P]{
		name:     c.Name,
		code:     c.Code,
		message:  c.Message,
		params:   maps.Clone(c.Params),
		severity: validation.SeverityError,
		async:    true,
		test:     c.Test,
	})
	return b
}

// SetValidator validates the property with another validator. Its failures
// are reported with property names prefixed by the property path.
func (b *RuleBuilder[T, P]) SetValidator(child validation.Validator[P]) *RuleBuilder[T, P] {
	b.rule.components = append(b.rule.components, &component[T, P]{
		name:     "child_validator",
		severity: validation.SeverityError,
		child:    child,
	})
	return b
}

// WithMessage overrides the message of the last component.
func (b *RuleBuilder[T, P]) WithMessage(message string) *RuleBuilder[T, P] {
	b.last("WithMessage").message = message
	return b
}

func (b *RuleBuilder[T, P]) WithErrorCode(code string) *RuleBuilder[T, P] {
	b.last("WithErrorCode").code = code
	return b
}

func (b *RuleBuilder[T, P]) WithSeverity(s validation.Severity) *RuleBuilder[T, P] {
	b.last("WithSeverity").severity = s
	return b
}

// WithState attaches custom state computed from the instance to failures of
// the last component.
func (b *RuleBuilder[T, P]) WithState(state func(T) any) *RuleBuilder[T, P] {
	b.last("WithState").state = state
	return b
}

// Cascade sets the rule-level cascade. With CascadeStop the chain stops at
// the first failing component.
func (b *RuleBuilder[T, P]) Cascade(mode validation.CascadeMode) *RuleBuilder[T, P] {
	b.rule.cascade = mode
	return b
}

// When runs the components declared so far only when pred holds.
// With ApplyToCurrentValidator only the last component is gated.
func (b *RuleBuilder[T, P]) When(pred func(T) bool, applyTo ...validation.ApplyConditionTo) *RuleBuilder[T, P] {
	mode := validation.ApplyToAllValidators
	if len(applyTo) > 0 {
		mode = applyTo[0]
	}
	if mode == validation.ApplyToCurrentValidator {
		c := b.last("When")
		c.conditions = append(c.conditions, pred)
		return b
	}
	if len(b.rule.components) == 0 {
		panic("engine: When called before any component was added to " + b.rule.property)
	}
	for _, c := range b.rule.components {
		c.conditions = append(c.conditions, pred)
	}
	return b
}

// Unless is When with the predicate negated.
func (b *RuleBuilder[T, P]) Unless(pred func(T) bool, applyTo ...validation.ApplyConditionTo) *RuleBuilder[T, P] {
	return b.When(func(instance T) bool { return !pred(instance) }, applyTo...)
}

// InRuleSet moves the whole rule to the named rule sets.
func (b *RuleBuilder[T, P]) InRuleSet(names ...string) *RuleBuilder[T, P] {
	b.rule.ruleSets = appendDistinct(nil, names...)
	return b
}

func (b *RuleBuilder[T, P]) last(modifier string) *component[T, P] {
	if len(b.rule.components) == 0 {
		panic("engine: " + modifier + " called before any component was added to " + b.rule.property)
	}
	return b.rule.components[len(b.rule.components)-1]
}

type item[P any] struct {
	path  string
	value P
}

type propertyRule[T, P any] struct {
	property   string
	items      func(T) []item[P]
	components []*component[T, P]
	cascade    validation.CascadeMode
	ruleSets   []string
}

type component[T, P any] struct {
	name       string
	code       string
	message    string
	params     map[string]any
	severity   validation.Severity
	state      func(T) any
	conditions []func(T) bool
	async      bool
	test       func(context.Context, P) (bool, error)
	child      validation.Validator[P]
}

func (r *propertyRule[T, P]) sets() []string {
	if len(r.ruleSets) == 0 {
		return []string{validation.DefaultRuleSet}
	}
	return r.ruleSets
}

func (r *propertyRule[T, P]) selected(vc *validation.Context) bool {
	return slices.ContainsFunc(r.sets(), vc.IncludesRuleSet)
}

func (r *propertyRule[T, P]) async() bool {
	return slices.ContainsFunc(r.components, func(c *component[T, P]) bool { return c.async })
}

func (r *propertyRule[T, P]) describe(seen map[any]bool) []validation.RuleDescriptor {
	out := make([]validation.RuleDescriptor, 0, len(r.components))
	for _, c := range r.components {
		if c.child != nil {
			childRules, ok := expand(c.child, seen)
			if !ok {
				out = append(out, validation.RuleDescriptor{
					Name:     "child_validator",
					Property: r.property,
					RuleSets: slices.Clone(r.sets()),
					Severity: c.severity,
					Cascade:  r.cascade,
				})
				continue
			}
			for _, nested := range childRules {
				nested.Property = joinPath(r.property, nested.Property)
				out = append(out, nested)
			}
			continue
		}
		d := validation.RuleDescriptor{
			Name:      c.name,
			Property:  r.property,
			RuleSets:  slices.Clone(r.sets()),
			Severity:  c.severity,
			ErrorCode: c.code,
			Cascade:   r.cascade,
			Async:     c.async,
		}
		if len(c.params) > 0 || len(c.conditions) > 0 {
			d.Metadata = maps.Clone(c.params)
			if d.Metadata == nil {
				d.Metadata = make(map[string]any)
			}
			if len(c.conditions) > 0 {
				d.Metadata["conditions"] = len(c.conditions)
			}
		}
		out = append(out, d)
	}
	return out
}

func (r *propertyRule[T, P]) run(ctx context.Context, rc *runContext[T]) (*validation.Result, error) {
	var (
		failures  []*validation.Failure
		childSets []string
	)
	for _, it := range r.items(rc.instance) {
		for _, c := range r.components {
			if rc.suspend {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			if !c.applies(rc.instance) {
				continue
			}

			found, sets, err := c.evaluate(ctx, rc, it)
			if err != nil {
				// Only the caller's context makes this a cancellation. A rule
				// that times out on its own deadline is a rule fault.
				if (rc.suspend && ctx.Err() != nil) || errors.Is(err, ErrCanceled) {
					return nil, err
				}
				return nil, fmt.Errorf("%w: %s: %s: %w", ErrRuleFailed, it.path, c.name, err)
			}
			failures = append(failures, found...)
			childSets = appendDistinct(childSets, sets...)

			if len(found) > 0 && r.cascade == validation.CascadeStop {
				break
			}
		}
	}

	res := validation.NewResult(failures...)
	res.SetRuleSetsExecuted(childSets...)
	return res, nil
}

func (c *component[T, P]) applies(instance T) bool {
	for _, cond := range c.conditions {
		if !cond(instance) {
			return false
		}
	}
	return true
}

// evaluate returns the failures of one component for one item plus the rule
// sets reported by a nested validator.
func (c *component[T, P]) evaluate(ctx context.Context, rc *runContext[T], it item[P]) ([]*validation.Failure, []string, error) {
	if c.child != nil {
		res, err := run(ctx, c.child, rc.vc.ForChild(it.value), rc.suspend)
		if err != nil {
			return nil, nil, err
		}
		nested := res.Errors()
		out := make([]*validation.Failure, len(nested))
		for i, f := range nested {
			f = f.Clone()
			f.PropertyName = joinPath(it.path, f.PropertyName)
			out[i] = f
		}
		return out, res.RuleSetsExecuted(), nil
	}

	ok, err := c.test(ctx, it.value)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		return nil, nil, nil
	}

	f := validation.NewFailure(it.path, c.message, it.value).
		WithSeverity(c.severity).
		WithErrorCode(c.code)
	for k, v := range c.params {
		f.WithPlaceholder(k, v)
	}
	f.WithPlaceholder("PropertyName", it.path).WithPlaceholder("PropertyValue", it.value)
	if c.state != nil {
		f.WithCustomState(c.state(rc.instance))
	}
	return []*validation.Failure{f}, nil, nil
}

// joinPath prefixes a nested property name with its parent path.
// Index suffixes attach without a dot: "Items" + "[0].Name".
func joinPath(parent, child string) string {
	switch {
	case child == "":
		return parent
	case parent == "":
		return child
	case strings.HasPrefix(child, "["):
		return parent + child
	default:
		return parent + "." + child
	}
}
