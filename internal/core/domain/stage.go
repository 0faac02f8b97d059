package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Stage Spec
// =============================================================================

// StagePosition places a synthetic stage relative to its parent.
type StagePosition string

const (
	PositionAfterParent  StagePosition = "after"
	PositionBeforeParent StagePosition = "before"
)

// StageSpec is one planned deployment action. Specs are immutable once
// emitted: plan builders only append newly constructed specs, never rewrite
// earlier ones, and the execution engine owns every spec it receives.
type StageSpec struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Name     string         `json:"name"`
	Context  map[string]any `json:"context"`
	ParentID string         `json:"parent_id,omitempty"`
	Position StagePosition  `json:"position"`
}

// NewStageSpec constructs a synthetic child stage. The context map is used
// as-is; callers build a fresh map per spec and hand over ownership.
func NewStageSpec(kind, name string, ctx map[string]any, parentID string, position StagePosition) StageSpec {
	if ctx == nil {
		ctx = map[string]any{}
	}
	return StageSpec{
		ID:       GenerateStageID(),
		Kind:     kind,
		Name:     name,
		Context:  ctx,
		ParentID: parentID,
		Position: position,
	}
}

// GenerateStageID generates a new stage spec ID.
func GenerateStageID() string {
	return "stg_" + uuid.New().String()[:8]
}

// =============================================================================
// Plan
// =============================================================================

// PlanKind identifies which planner produced a plan.
type PlanKind string

const (
	PlanKindForward  PlanKind = "forward"
	PlanKindRollback PlanKind = "rollback"
)

// Plan is an ordered sequence of stage specs produced by a single planner
// invocation. Ordering is significant: the execution engine runs stages in
// sequence.
type Plan struct {
	ID     string      `json:"id"`
	Kind   PlanKind    `json:"kind"`
	Stages []StageSpec `json:"stages"`

	// Degraded marks a forward plan built without a source server group:
	// exact fallback capacity scaling, no disable or scale-down phase.
	Degraded bool `json:"degraded,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// GeneratePlanID generates a new plan ID.
func GeneratePlanID() string {
	return "plan_" + uuid.New().String()[:8]
}

// NewPlan creates an empty plan of the given kind.
func NewPlan(kind PlanKind) Plan {
	return Plan{
		ID:        GeneratePlanID(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
}

// StagesOfKind returns the stages whose kind matches, preserving order.
func (p Plan) StagesOfKind(kind string) []StageSpec {
	var out []StageSpec
	for _, s := range p.Stages {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
