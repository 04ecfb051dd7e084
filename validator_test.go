package validation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	validation "github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/async"
)

// nameValidator is a hand-written Validator used to exercise the contract
// without the engine.
type nameValidator struct {
	delay time.Duration
}

func (v nameValidator) check(name string) *validation.Result {
	if name == "" {
		return validation.NewResult(validation.NewFailure("Name", "required", name))
	}
	return validation.NewResult()
}

func (v nameValidator) Validate(name string) (*validation.Result, error) {
	return v.check(name), nil
}

func (v nameValidator) ValidateAsync(ctx context.Context, name string) (*validation.Result, error) {
	select {
	case <-time.After(v.delay):
		return v.check(name), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (v nameValidator) ValidateContext(vc *validation.Context) (*validation.Result, error) {
	name, ok := vc.Instance().(string)
	if !ok {
		return nil, validation.ErrInstanceType
	}
	return v.Validate(name)
}

func (v nameValidator) ValidateContextAsync(ctx context.Context, vc *validation.Context) (*validation.Result, error) {
	name, ok := vc.Instance().(string)
	if !ok {
		return nil, validation.ErrInstanceType
	}
	return v.ValidateAsync(ctx, name)
}

func (v nameValidator) Describe() validation.Descriptor {
	return validation.Descriptor{Rules: []validation.RuleDescriptor{{Name: "required", Property: "Name"}}}
}

var _ validation.Validator[string] = nameValidator{}

func TestGo(t *testing.T) {
	t.Parallel()

	fut := validation.Go[string](context.Background(), nameValidator{delay: time.Millisecond}, "")
	res, err := fut.AwaitWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, res.Properties())
	assert.True(t, fut.IsComplete())
}

func TestGo_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	fut := validation.Go[string](ctx, nameValidator{delay: time.Minute}, "ada")
	cancel()

	res, err := fut.Await()
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGo_Timeout(t *testing.T) {
	t.Parallel()

	fut := validation.Go[string](context.Background(), nameValidator{delay: time.Minute}, "ada")
	_, err := fut.AwaitWithTimeout(5 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
}

func TestContractThroughContextEntryPoints(t *testing.T) {
	t.Parallel()

	var v validation.ContextValidator = nameValidator{}

	res, err := v.ValidateContext(validation.NewContext(""))
	require.NoError(t, err)
	assert.False(t, res.IsValid())

	res, err = v.ValidateContextAsync(context.Background(), validation.NewContext("ada"))
	require.NoError(t, err)
	assert.True(t, res.IsValid())

	_, err = v.ValidateContext(validation.NewContext(42))
	assert.True(t, errors.Is(err, validation.ErrInstanceType))
	assert.ErrorIs(t, err, validation.ErrInvalidArgument)

	assert.Equal(t, []string{"Name"}, v.Describe().Properties())
}
