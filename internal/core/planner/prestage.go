package planner

import "github.com/planforge/planforge/internal/core/domain"

// =============================================================================
// Capacity Pre-stage Planner
// =============================================================================

// CapacityDirective is the provisioning-time capacity mutation the pre-stage
// planner hands back to the caller to merge into the create/clone request. It
// emits no stages of its own.
type CapacityDirective struct {
	// Capacity pins the new group's initial provisioning to zero instances.
	Capacity domain.Capacity `json:"capacity"`

	// SavedCapacity preserves the originally requested or existing capacity
	// for the percentage-scaling math performed later by the forward plan.
	SavedCapacity domain.Capacity `json:"saved_capacity"`

	// UseSourceCapacity is always false: copy-from-source provisioning is
	// superseded by explicit zero-capacity provisioning.
	UseSourceCapacity bool `json:"use_source_capacity"`
}

// PrepareCapacity produces the zero-capacity provisioning directive for a
// normalized request. Idempotent: a request that already went through the
// pre-stage planner yields the same directive again.
func (p *Planner) PrepareCapacity(req domain.DeploymentRequest) CapacityDirective {
	return CapacityDirective{
		Capacity:          domain.ZeroCapacity(),
		SavedCapacity:     req.SavedCapacity,
		UseSourceCapacity: false,
	}
}
