package api

import (
	"time"

	"github.com/planforge/planforge/internal/core/domain"
	"github.com/planforge/planforge/internal/core/planner"
)

// =============================================================================
// Request Types
// =============================================================================

// CompilePlanRequest is the request body for the forward and prestage
// compilation endpoints.
type CompilePlanRequest struct {
	Request       *domain.RolloutRequest `json:"request"`
	Ancestry      []domain.ActionRecord  `json:"ancestry,omitempty"`
	ParentStageID string                 `json:"parentStageId,omitempty"`
}

// RollbackPlanRequest is the request body for compiling a compensation plan.
// The rollout request is not needed: compensation only looks at what the
// failed execution already provisioned.
type RollbackPlanRequest struct {
	Ancestry      []domain.ActionRecord `json:"ancestry,omitempty"`
	ParentStageID string                `json:"parentStageId,omitempty"`
}

// =============================================================================
// Response Types
// =============================================================================

// PlanResponse is the response for plan compilation endpoints.
type PlanResponse struct {
	Plan              domain.Plan         `json:"plan"`
	SourceServerGroup *domain.ServerGroup `json:"sourceServerGroup,omitempty"`
}

// PrestageResponse carries the capacity directive computed before provisioning.
type PrestageResponse struct {
	Directive planner.CapacityDirective `json:"directive"`
}

// PlanSummaryResponse is one archived plan in a list response.
type PlanSummaryResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Application string    `json:"application"`
	Cluster     string    `json:"cluster"`
	Region      string    `json:"region"`
	Account     string    `json:"account"`
	StageCount  int       `json:"stage_count"`
	Degraded    bool      `json:"degraded"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListPlansResponse is the response for listing archived plans.
type ListPlansResponse struct {
	Plans  []PlanSummaryResponse `json:"plans"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse is the response for health checks.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the response for readiness checks.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
