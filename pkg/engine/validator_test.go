package engine_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	validation "github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/engine"
	"github.com/dmitrymomot/validation/pkg/logger"
	"github.com/dmitrymomot/validation/pkg/lookup"
	"github.com/dmitrymomot/validation/pkg/rules"
)

type address struct {
	City string
	Zip  string
}

type user struct {
	Name     string
	Email    string
	Age      int
	Tags     []string
	Address  address
	Contacts []address
}

func validUser() user {
	return user{
		Name:    "Ada",
		Email:   "ada@example.com",
		Age:     36,
		Tags:    []string{"admin"},
		Address: address{City: "London", Zip: "N1"},
	}
}

func newUserValidator(opts ...engine.Option) *engine.Validator[user] {
	v := engine.New[user](opts...)
	engine.RuleFor(v, "Name", func(u user) string { return u.Name }).
		Must(rules.NotBlank())
	engine.RuleFor(v, "Email", func(u user) string { return u.Email }).
		Must(rules.NotBlank()).
		Must(rules.Email())
	engine.RuleFor(v, "Age", func(u user) int { return u.Age }).
		Must(rules.Between(0, 150))
	return v
}

func TestValidator_ValidInstance(t *testing.T) {
	t.Parallel()

	v := newUserValidator()

	res, err := v.Validate(validUser())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsValid())
	assert.Empty(t, res.Errors())
	assert.Equal(t, []string{validation.DefaultRuleSet}, res.RuleSetsExecuted())
}

func TestValidator_FailuresInDeclarationOrder(t *testing.T) {
	t.Parallel()

	v := newUserValidator()

	res, err := v.Validate(user{Email: "nope", Age: 200})
	require.NoError(t, err)
	require.False(t, res.IsValid())

	errs := res.Errors()
	require.Len(t, errs, 3)
	assert.Equal(t, "Name", errs[0].PropertyName)
	assert.Equal(t, "validation.required", errs[0].ErrorCode)
	assert.Equal(t, "Email", errs[1].PropertyName)
	assert.Equal(t, "validation.email", errs[1].ErrorCode)
	assert.Equal(t, "nope", errs[1].AttemptedValue)
	assert.Equal(t, "Age", errs[2].PropertyName)
	assert.Equal(t, 200, errs[2].AttemptedValue)
	assert.Equal(t, validation.SeverityError, errs[2].Severity)
	assert.Equal(t, 0, errs[2].FormattedMessagePlaceholderValues["min"])
	assert.Equal(t, 150, errs[2].FormattedMessagePlaceholderValues["max"])
	assert.Equal(t, "Age", errs[2].FormattedMessagePlaceholderValues["PropertyName"])
	assert.Equal(t, 200, errs[2].FormattedMessagePlaceholderValues["PropertyValue"])
}

func TestValidator_SyncAsyncParity(t *testing.T) {
	t.Parallel()

	v := newUserValidator()
	inputs := []user{validUser(), {}, {Name: "x", Email: "bad", Age: -1}}

	for _, in := range inputs {
		syncRes, err := v.Validate(in)
		require.NoError(t, err)
		asyncRes, err := v.ValidateAsync(context.Background(), in)
		require.NoError(t, err)

		require.Equal(t, syncRes.Len(), asyncRes.Len())
		for i, f := range syncRes.Errors() {
			assert.True(t, f.Equal(asyncRes.Errors()[i]), "failure %d differs", i)
		}
		assert.Equal(t, syncRes.RuleSetsExecuted(), asyncRes.RuleSetsExecuted())
	}
}

func TestValidator_AsyncRuleOnSyncPath(t *testing.T) {
	t.Parallel()

	called := false
	v := newUserValidator()
	engine.RuleFor(v, "Email", func(u user) string { return u.Email }).
		MustAsync(rules.AsyncPredicate("remote", "rejected", func(context.Context, string) (bool, error) {
			called = true
			return true, nil
		}))

	res, err := v.Validate(validUser())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, validation.ErrAsyncRuleInSyncPath)
	assert.False(t, called)

	res, err = v.ValidateAsync(context.Background(), validUser())
	require.NoError(t, err)
	assert.True(t, res.IsValid())
	assert.True(t, called)
}

func TestValidator_AsyncRuleOutsideSelectionDoesNotBlockSync(t *testing.T) {
	t.Parallel()

	v := newUserValidator()
	engine.RuleFor(v, "Email", func(u user) string { return u.Email }).
		MustAsync(rules.AsyncPredicate("remote", "rejected", func(context.Context, string) (bool, error) {
			return false, nil
		})).
		InRuleSet("remote")

	res, err := v.Validate(validUser())
	require.NoError(t, err)
	assert.True(t, res.IsValid())
}

func TestValidator_Cancellation(t *testing.T) {
	t.Parallel()

	t.Run("context done before start", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := newUserValidator().ValidateAsync(ctx, user{})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, engine.ErrCanceled)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("context canceled between components", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reached := false
		v := engine.New[user]()
		engine.RuleFor(v, "Name", func(u user) string { return u.Name }).
			MustAsync(rules.AsyncPredicate("cancel", "", func(context.Context, string) (bool, error) {
				cancel()
				return false, nil
			})).
			Must(rules.Predicate("after", "", func(string) bool {
				reached = true
				return true
			}))

		res, err := v.ValidateAsync(ctx, user{})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, reached)
	})

	t.Run("async timeout", func(t *testing.T) {
		t.Parallel()

		v := engine.New[user](engine.WithAsyncTimeout(10 * time.Millisecond))
		engine.RuleFor(v, "Name", func(u user) string { return u.Name }).
			MustAsync(rules.AsyncPredicate("slow", "", func(ctx context.Context, _ string) (bool, error) {
				<-ctx.Done()
				return false, ctx.Err()
			}))

		res, err := v.ValidateAsync(context.Background(), user{})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, engine.ErrCanceled)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestValidator_RuleBodyError(t *testing.T) {
	t.Parallel()

	boom := errors.New("store unavailable")
	v := engine.New[user]()
	engine.RuleFor(v, "Email", func(u user) string { return u.Email }).
		MustAsync(rules.AsyncPredicate("remote", "", func(context.Context, string) (bool, error) {
			return false, boom
		}))

	res, err := v.ValidateAsync(context.Background(), validUser())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, engine.ErrRuleFailed)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "remote")
}

func TestValidator_RuleDeadlineIsRuleFault(t *testing.T) {
	t.Parallel()

	t.Run("rule times out on its own deadline", func(t *testing.T) {
		t.Parallel()

		v := engine.New[user]()
		engine.RuleFor(v, "Email", func(u user) string { return u.Email }).
			MustAsync(rules.AsyncPredicate("remote", "", func(ctx context.Context, _ string) (bool, error) {
				ctx, cancel := context.WithTimeout(ctx, time.Millisecond)
				defer cancel()
				<-ctx.Done()
				return false, ctx.Err()
			}))

		res, err := v.ValidateAsync(context.Background(), validUser())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, engine.ErrRuleFailed)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.NotErrorIs(t, err, engine.ErrCanceled)
	})

	t.Run("nested rule error wrapping a deadline", func(t *testing.T) {
		t.Parallel()

		child := engine.New[address]()
		engine.RuleFor(child, "City", func(a address) string { return a.City }).
			MustAsync(rules.AsyncPredicate("remote", "", func(context.Context, string) (bool, error) {
				return false, fmt.Errorf("query: %w", context.DeadlineExceeded)
			}))

		v := engine.New[user]()
		engine.RuleFor(v, "Address", func(u user) address { return u.Address }).
			SetValidator(child)

		_, err := v.ValidateAsync(context.Background(), validUser())
		assert.ErrorIs(t, err, engine.ErrRuleFailed)
		assert.NotErrorIs(t, err, engine.ErrCanceled)
	})

	t.Run("nested validator hits its own timeout", func(t *testing.T) {
		t.Parallel()

		child := engine.New[address](engine.WithAsyncTimeout(5 * time.Millisecond))
		engine.RuleFor(child, "City", func(a address) string { return a.City }).
			MustAsync(rules.AsyncPredicate("slow", "", func(ctx context.Context, _ string) (bool, error) {
				<-ctx.Done()
				return false, ctx.Err()
			}))

		v := engine.New[user]()
		engine.RuleFor(v, "Address", func(u user) address { return u.Address }).
			SetValidator(child)

		res, err := v.ValidateAsync(context.Background(), validUser())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, engine.ErrCanceled)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.NotErrorIs(t, err, engine.ErrRuleFailed)
	})
}

func TestValidator_ValidatorCascade(t *testing.T) {
	t.Parallel()

	v := newUserValidator(engine.WithCascade(validation.CascadeStop))

	res, err := v.Validate(user{Age: -5})
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "Name", res.Errors()[0].PropertyName)
}

func TestValidator_ContextEntryPoints(t *testing.T) {
	t.Parallel()

	v := newUserValidator()

	t.Run("nil context", func(t *testing.T) {
		res, err := v.ValidateContext(nil)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, validation.ErrNilContext)
		assert.ErrorIs(t, err, validation.ErrInvalidArgument)
	})

	t.Run("wrong instance type", func(t *testing.T) {
		res, err := v.ValidateContextAsync(context.Background(), validation.NewContext("not a user"))
		assert.Nil(t, res)
		assert.ErrorIs(t, err, validation.ErrInstanceType)
	})

	t.Run("matching instance", func(t *testing.T) {
		res, err := v.ValidateContext(validation.NewContext(user{}))
		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Email"}, res.Properties())
	})
}

func TestValidator_RuleSets(t *testing.T) {
	t.Parallel()

	v := engine.New[user]()
	engine.RuleFor(v, "Name", func(u user) string { return u.Name }).
		Must(rules.NotBlank())
	v.RuleSet(func() {
		engine.RuleFor(v, "Age", func(u user) int { return u.Age }).
			Must(rules.Positive[int]())
	}, "profile")
	engine.RuleFor(v, "Email", func(u user) string { return u.Email }).
		Must(rules.NotBlank()).
		InRuleSet("contact", "profile")

	tests := []struct {
		name     string
		sets     []string
		props    []string
		executed []string
	}{
		{"default only", nil, []string{"Name"}, []string{"default"}},
		{"named set", []string{"profile"}, []string{"Age", "Email"}, []string{"profile", "contact"}},
		{"named and default", []string{"contact", "default"}, []string{"Name", "Email"}, []string{"default", "contact", "profile"}},
		{"wildcard", []string{validation.RuleSetWildcard}, []string{"Name", "Age", "Email"}, []string{"default", "profile", "contact"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.ValidateContext(validation.NewContext(user{}, validation.WithRuleSets(tt.sets...)))
			require.NoError(t, err)
			assert.Equal(t, tt.props, res.Properties())
			assert.Equal(t, tt.executed, res.RuleSetsExecuted())
		})
	}
}

func TestValidator_Include(t *testing.T) {
	t.Parallel()

	base := engine.New[user]()
	engine.RuleFor(base, "Name", func(u user) string { return u.Name }).
		Must(rules.NotBlank())

	v := engine.New[user]()
	v.Include(base)
	engine.RuleFor(v, "Age", func(u user) int { return u.Age }).
		Must(rules.Positive[int]())

	res, err := v.Validate(user{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age"}, res.Properties())
	assert.Equal(t, []string{"default"}, res.RuleSetsExecuted())

	d := v.Describe()
	require.Len(t, d.Rules, 2)
	assert.Equal(t, "Name", d.Rules[0].Property)
}

func TestValidator_Describe(t *testing.T) {
	t.Parallel()

	v := newUserValidator(engine.WithName("users"))
	engine.RuleFor(v, "Email", func(u user) string { return u.Email }).
		MustAsync(rules.AsyncPredicate("remote", "taken", func(context.Context, string) (bool, error) {
			return true, nil
		})).
		WithErrorCode("users.email_taken").
		InRuleSet("remote")

	d := v.Describe()
	assert.Equal(t, "users", d.Name)
	assert.Equal(t, "users", v.Name())
	require.Len(t, d.Rules, 5)
	assert.Equal(t, []string{"Name", "Email", "Age"}, d.Properties())
	assert.True(t, d.HasAsyncRules())

	age := d.RulesFor("Age")
	require.Len(t, age, 1)
	assert.Equal(t, "between", age[0].Name)
	assert.Equal(t, []string{"default"}, age[0].RuleSets)
	assert.Equal(t, 0, age[0].Metadata["min"])

	remote := d.Rules[4]
	assert.True(t, remote.Async)
	assert.Equal(t, "users.email_taken", remote.ErrorCode)
	assert.Equal(t, []string{"remote"}, remote.RuleSets)

	out, err := d.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: users")
}

func TestValidator_DefaultName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "engine_test.user", engine.New[user]().Name())
}

func TestValidator_Go(t *testing.T) {
	t.Parallel()

	fut := validation.Go[user](context.Background(), newUserValidator(), user{})
	res, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, 3, res.Len())
}

func TestValidator_UniqueAgainstLookup(t *testing.T) {
	t.Parallel()

	taken, err := lookup.Cached(lookup.Static("ada@example.com"), 16, time.Minute)
	require.NoError(t, err)

	v := engine.New[user]()
	engine.RuleFor(v, "Email", func(u user) string { return u.Email }).
		Cascade(validation.CascadeStop).
		Must(rules.Email()).
		MustAsync(rules.Unique(taken))

	res, err := v.ValidateAsync(context.Background(), validUser())
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "validation.unique", res.Errors()[0].ErrorCode)

	res, err = v.ValidateAsync(context.Background(), user{Email: "bob@example.com"})
	require.NoError(t, err)
	assert.True(t, res.IsValid())
}

func TestValidator_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(slog.LevelDebug),
		logger.WithJSONFormatter(),
	)
	runID := uuid.New()

	v := newUserValidator(engine.WithLogger(log), engine.WithName("users"))
	_, err := v.ValidateContext(validation.NewContext(user{}, validation.WithRunID(runID)))
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "validation completed", rec["msg"])
	assert.Equal(t, "users", rec["validator"])
	assert.Equal(t, runID.String(), rec["run_id"])
	assert.Equal(t, float64(3), rec["failures"])
	assert.Equal(t, false, rec["valid"])
}
