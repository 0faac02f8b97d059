package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Capacity Tests
// =============================================================================

func TestZeroCapacity(t *testing.T) {
	c := ZeroCapacity()
	assert.True(t, c.IsZero())
	assert.Equal(t, map[string]any{"min": 0, "max": 0, "desired": 0}, c.Context())
}

func TestCapacity_IsZero(t *testing.T) {
	assert.False(t, Capacity{Min: 0, Max: 1, Desired: 0}.IsZero())
	assert.False(t, Capacity{Min: 1, Max: 3, Desired: 2}.IsZero())
}

// =============================================================================
// StageSpec Tests
// =============================================================================

func TestNewStageSpec(t *testing.T) {
	spec := NewStageSpec("wait", "Wait Before Scale Down",
		map[string]any{"waitTime": int64(30)}, "parent-1", PositionAfterParent)

	assert.True(t, strings.HasPrefix(spec.ID, "stg_"))
	assert.Equal(t, "wait", spec.Kind)
	assert.Equal(t, "Wait Before Scale Down", spec.Name)
	assert.Equal(t, "parent-1", spec.ParentID)
	assert.Equal(t, PositionAfterParent, spec.Position)
}

func TestNewStageSpec_NilContext(t *testing.T) {
	spec := NewStageSpec("wait", "Wait", nil, "", PositionBeforeParent)
	require.NotNil(t, spec.Context)
	assert.Empty(t, spec.Context)
}

func TestNewStageSpec_UniqueIDs(t *testing.T) {
	a := NewStageSpec("wait", "Wait", nil, "", PositionAfterParent)
	b := NewStageSpec("wait", "Wait", nil, "", PositionAfterParent)
	assert.NotEqual(t, a.ID, b.ID)
}

// =============================================================================
// Plan Tests
// =============================================================================

func TestNewPlan(t *testing.T) {
	plan := NewPlan(PlanKindForward)

	assert.True(t, strings.HasPrefix(plan.ID, "plan_"))
	assert.Equal(t, PlanKindForward, plan.Kind)
	assert.Empty(t, plan.Stages)
	assert.False(t, plan.CreatedAt.IsZero())
}

func TestPlan_StagesOfKind(t *testing.T) {
	plan := NewPlan(PlanKindForward)
	plan.Stages = append(plan.Stages,
		NewStageSpec("wait", "a", nil, "", PositionAfterParent),
		NewStageSpec("resize-server-group", "b", nil, "", PositionAfterParent),
		NewStageSpec("wait", "c", nil, "", PositionAfterParent),
	)

	waits := plan.StagesOfKind("wait")
	require.Len(t, waits, 2)
	assert.Equal(t, "a", waits[0].Name)
	assert.Equal(t, "c", waits[1].Name)
	assert.Empty(t, plan.StagesOfKind("run-pipeline"))
}

// =============================================================================
// Expression Tests
// =============================================================================

func TestStageOutput(t *testing.T) {
	expr := StageOutput("stg_abc123", "serverGroupName")
	assert.Equal(t, "${#stage('stg_abc123')['outputs']['serverGroupName']}", expr.String())
}

func TestDeployedServerGroupName(t *testing.T) {
	expr := DeployedServerGroupName("stg_abc123")
	assert.Contains(t, expr.String(), "stg_abc123")
	assert.Contains(t, expr.String(), "serverGroupName")
}

// =============================================================================
// ValidationPipeline Tests
// =============================================================================

func TestValidationPipeline_IsConfigured(t *testing.T) {
	var nilRef *ValidationPipeline
	assert.False(t, nilRef.IsConfigured())
	assert.False(t, (&ValidationPipeline{Application: "orca"}).IsConfigured())
	assert.False(t, (&ValidationPipeline{PipelineID: "smoke"}).IsConfigured())
	assert.True(t, (&ValidationPipeline{Application: "orca", PipelineID: "smoke"}).IsConfigured())
}

// =============================================================================
// ActionRecord Tests
// =============================================================================

func TestActionRecord_IsServerGroupProvisioner(t *testing.T) {
	assert.True(t, ActionRecord{Kind: ActionKindCreateServerGroup}.IsServerGroupProvisioner())
	assert.True(t, ActionRecord{Kind: ActionKindCloneServerGroup}.IsServerGroupProvisioner())
	assert.False(t, ActionRecord{Kind: "wait"}.IsServerGroupProvisioner())
}
