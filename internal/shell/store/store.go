// Package store provides persistence for compiled plans.
//
// The archive is write-once: the planners are pure and never revisit a plan,
// so the store only inserts, fetches, and lists.
package store

import (
	"context"
	"time"

	"github.com/planforge/planforge/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for the plan archive.
type Store interface {
	// SavePlan archives a compiled plan together with the request it was
	// compiled from.
	SavePlan(ctx context.Context, record *PlanRecord) error

	// GetPlan fetches an archived plan by ID.
	GetPlan(ctx context.Context, id string) (*PlanRecord, error)

	// ListPlans returns archived plans, newest first.
	ListPlans(ctx context.Context, opts ListOptions) ([]PlanRecord, error)

	// Close releases the underlying connection.
	Close() error
}

// ListOptions controls pagination for list operations.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListOptions returns sensible pagination defaults.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20, Offset: 0}
}

// =============================================================================
// Plan Record
// =============================================================================

// PlanRecord is one archived plan compilation: the plan itself plus the
// request identifiers operators search by.
type PlanRecord struct {
	ID          string                 `json:"id"`
	Kind        domain.PlanKind        `json:"kind"`
	Application string                 `json:"application"`
	Cluster     string                 `json:"cluster"`
	Region      string                 `json:"region"`
	Account     string                 `json:"account"`
	StageCount  int                    `json:"stage_count"`
	Degraded    bool                   `json:"degraded"`
	Request     *domain.RolloutRequest `json:"request,omitempty"`
	Plan        domain.Plan            `json:"plan"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NewPlanRecord builds an archive record for a compiled plan.
func NewPlanRecord(plan domain.Plan, raw *domain.RolloutRequest) *PlanRecord {
	rec := &PlanRecord{
		ID:         plan.ID,
		Kind:       plan.Kind,
		StageCount: len(plan.Stages),
		Degraded:   plan.Degraded,
		Request:    raw,
		Plan:       plan,
		CreatedAt:  plan.CreatedAt,
	}
	if raw != nil {
		rec.Application = raw.Moniker.App
		rec.Cluster = raw.Cluster
		rec.Region = raw.Region
		rec.Account = raw.Account
	}
	return rec
}
