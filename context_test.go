package validation_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	validation "github.com/dmitrymomot/validation"
)

func TestContext_RuleSets(t *testing.T) {
	t.Parallel()

	t.Run("no selection runs the default set", func(t *testing.T) {
		vc := validation.NewContext(1)
		assert.Nil(t, vc.RuleSets())
		assert.True(t, vc.IncludesRuleSet(validation.DefaultRuleSet))
		assert.False(t, vc.IncludesRuleSet("profile"))
	})

	t.Run("explicit selection", func(t *testing.T) {
		vc := validation.NewContext(1, validation.WithRuleSets("profile", "profile", "remote"))
		assert.Equal(t, []string{"profile", "remote"}, vc.RuleSets())
		assert.True(t, vc.IncludesRuleSet("remote"))
		assert.False(t, vc.IncludesRuleSet(validation.DefaultRuleSet))
	})

	t.Run("wildcard", func(t *testing.T) {
		vc := validation.NewContext(1, validation.WithRuleSets(validation.RuleSetWildcard))
		assert.True(t, vc.IncludesRuleSet(validation.DefaultRuleSet))
		assert.True(t, vc.IncludesRuleSet("anything"))
	})
}

func TestContext_RunID(t *testing.T) {
	t.Parallel()

	a := validation.NewContext(1)
	b := validation.NewContext(1)
	assert.NotEqual(t, uuid.Nil, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())

	id := uuid.New()
	assert.Equal(t, id, validation.NewContext(1, validation.WithRunID(id)).RunID())
	assert.NotEqual(t, uuid.Nil, validation.NewContext(1, validation.WithRunID(uuid.Nil)).RunID())
}

func TestContext_Items(t *testing.T) {
	t.Parallel()

	vc := validation.NewContext("parent", validation.WithItem("tenant", "acme"))

	v, ok := vc.Item("tenant")
	assert.True(t, ok)
	assert.Equal(t, "acme", v)

	_, ok = vc.Item("missing")
	assert.False(t, ok)

	child := vc.ForChild("child")
	assert.Equal(t, "child", child.Instance())
	assert.Equal(t, vc.RunID(), child.RunID())

	child.SetItem("seen", true)
	v, ok = vc.Item("seen")
	assert.True(t, ok, "items are shared with the parent")
	assert.Equal(t, true, v)
}

func TestContext_ForChildKeepsSelection(t *testing.T) {
	t.Parallel()

	vc := validation.NewContext(1, validation.WithRuleSets("strict"))
	child := vc.ForChild(2)
	assert.True(t, child.IncludesRuleSet("strict"))
	assert.False(t, child.IncludesRuleSet(validation.DefaultRuleSet))
}

func TestContext_ConcurrentItems(t *testing.T) {
	t.Parallel()

	vc := validation.NewContext(0)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := vc.ForChild(i)
			child.SetItem("last", i)
			_, _ = vc.Item("last")
		}()
	}
	wg.Wait()

	_, ok := vc.Item("last")
	assert.True(t, ok)
}
