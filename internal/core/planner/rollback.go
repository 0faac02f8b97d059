package planner

import (
	"time"

	"github.com/planforge/planforge/internal/core/domain"
)

// =============================================================================
// Failure Compensation Planner
// =============================================================================

// compensationTimeout extends the unpin stage's deadline: a system already
// under failure-induced load may be slow to honor the resize.
const compensationTimeout = 20 * time.Minute

// CompensationPlan produces the corrective plan run when a forward plan is
// reported failed or aborted after having started. It re-resolves the source
// group from ancestry rather than trusting state cached by the forward
// planner, and emits exactly one unpin stage for it with an extended timeout.
//
// An empty plan means nothing to compensate. Resolution failures are logged
// and swallowed: compensation must not itself introduce a second failure.
func (p *Planner) CompensationPlan(ancestry []domain.ActionRecord, parentID string) domain.Plan {
	plan := domain.NewPlan(domain.PlanKindRollback)

	source, err := p.ResolveSource(ancestry)
	if err != nil {
		p.logger.Error("source resolution failed during compensation, nothing to unpin",
			"error", err,
		)
		return plan
	}
	if source == nil {
		return plan
	}

	plan.Stages = append(plan.Stages, p.unpinStage(nil, source, parentID, compensationTimeout))
	return plan
}
