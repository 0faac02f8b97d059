package planner

import (
	"testing"

	"github.com/planforge/planforge/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// CompensationPlan Tests
// =============================================================================

func TestCompensationPlan_UnpinsSourceWithExtendedTimeout(t *testing.T) {
	p := newTestPlanner(Capabilities{})
	ancestry := []domain.ActionRecord{createAncestor("deploy-1", validSourceOutputs())}

	plan := p.CompensationPlan(ancestry, "parent-1")

	require.Len(t, plan.Stages, 1)
	assert.Equal(t, domain.PlanKindRollback, plan.Kind)

	unpin := plan.Stages[0]
	assert.Equal(t, "pin-server-group", unpin.Kind)
	assert.Equal(t, "Unpin orca-main-v042", unpin.Name)
	assert.Equal(t, "orca-main-v042", unpin.Context["serverGroupName"])
	assert.Equal(t, true, unpin.Context["unpinMinimumCapacity"])
	assert.Equal(t, int64(20*60*1000), unpin.Context["stageTimeoutMs"])
	assert.Equal(t, "parent-1", unpin.ParentID)
}

func TestCompensationPlan_ResolvesSourceIndependently(t *testing.T) {
	// The compensation planner must not trust forward-plan state: it finds
	// the same source from ancestry on its own.
	p := newTestPlanner(Capabilities{})
	ancestry := []domain.ActionRecord{createAncestor("deploy-1", validSourceOutputs())}

	forwardSource, err := p.ResolveSource(ancestry)
	require.NoError(t, err)
	require.NotNil(t, forwardSource)

	plan := p.CompensationPlan(ancestry, "parent-1")

	require.Len(t, plan.Stages, 1)
	assert.Equal(t, forwardSource.Name, plan.Stages[0].Context["serverGroupName"])
}

func TestCompensationPlan_NoSourceNothingToCompensate(t *testing.T) {
	p := newTestPlanner(Capabilities{})

	plan := p.CompensationPlan(nil, "parent-1")

	assert.Empty(t, plan.Stages)
}

func TestCompensationPlan_AncestorWithoutSource(t *testing.T) {
	p := newTestPlanner(Capabilities{})
	ancestry := []domain.ActionRecord{createAncestor("deploy-1", nil)}

	plan := p.CompensationPlan(ancestry, "parent-1")

	assert.Empty(t, plan.Stages)
}

func TestCompensationPlan_LookupFailureSwallowed(t *testing.T) {
	// A broken ancestry must not raise out of the compensation planner: an
	// empty plan is preferred over a second failure.
	p := newTestPlanner(Capabilities{})
	ancestry := []domain.ActionRecord{{
		ID:      "deploy-1",
		Kind:    domain.ActionKindCreateServerGroup,
		Outputs: map[string]any{"source": 42},
	}}

	plan := p.CompensationPlan(ancestry, "parent-1")

	assert.Empty(t, plan.Stages)
}
