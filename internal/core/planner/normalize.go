package planner

import (
	"fmt"
	"time"

	"github.com/planforge/planforge/internal/core/domain"
)

// =============================================================================
// Request Normalizer
// =============================================================================

// Normalize parses a raw rollout request into a normalized DeploymentRequest.
//
// Side effect (intentional): when the raw request specifies a fixed total
// capacity, any stray target-size override on the raw request is cleared, so
// it cannot interfere with the zero-capacity provisioning performed by the
// pre-stage planner.
//
// Returns domain.ErrPipelineUnavailable when the request references a
// validation pipeline but pipeline orchestration is not wired into this
// deployment.
func (p *Planner) Normalize(raw *domain.RolloutRequest) (domain.DeploymentRequest, error) {
	if raw.Pipeline.IsConfigured() && !p.caps.ValidationPipelines {
		return domain.DeploymentRequest{}, fmt.Errorf(
			"%w: request references pipeline %q in application %q",
			domain.ErrPipelineUnavailable, raw.Pipeline.PipelineID, raw.Pipeline.Application)
	}

	if raw.Region == "" {
		return domain.DeploymentRequest{}, domain.ErrRegionRequired
	}
	if raw.Cluster == "" {
		return domain.DeploymentRequest{}, domain.ErrClusterRequired
	}
	if raw.Account == "" {
		return domain.DeploymentRequest{}, domain.ErrAccountRequired
	}

	if raw.Capacity != nil {
		raw.TargetSize = nil
	}

	saved := domain.ZeroCapacity()
	switch {
	case raw.SavedCapacity != nil:
		saved = *raw.SavedCapacity
	case raw.Capacity != nil:
		saved = *raw.Capacity
	}

	return domain.DeploymentRequest{
		TargetPercentages:    NormalizePercentages(raw.TargetPercentages),
		ScaleDown:            raw.ScaleDown,
		DelayBeforeScaleDown: time.Duration(raw.DelayBeforeScaleDownSeconds) * time.Second,
		DelayBeforeCleanup:   time.Duration(raw.DelayBeforeCleanupSeconds) * time.Second,
		Pipeline:             raw.Pipeline,
		SavedCapacity:        saved,
		Region:               raw.Region,
		Cluster:              raw.Cluster,
		Account:              raw.Account,
		CloudProvider:        raw.CloudProvider,
		Moniker:              raw.Moniker,
		HealthPercentage:     raw.TargetHealthyPercentage,
	}, nil
}

// NormalizePercentages produces the rollout percentage sequence: values
// outside 1-100 are dropped, duplicates collapse to their first occurrence,
// insertion order is preserved, and the sequence ends with exactly one 100.
// A mid-sequence 100 is moved to the end rather than duplicated.
//
// Example:
//
//	NormalizePercentages([]int{25, 50, 25})
//	// Result: [25, 50, 100]
//
//	NormalizePercentages(nil)
//	// Result: [100]
func NormalizePercentages(in []int) []int {
	out := make([]int, 0, len(in)+1)
	seen := make(map[int]bool, len(in))
	for _, pct := range in {
		if pct < 1 || pct >= 100 {
			continue
		}
		if seen[pct] {
			continue
		}
		seen[pct] = true
		out = append(out, pct)
	}
	return append(out, 100)
}
