package planner

import (
	"fmt"
	"time"

	"github.com/planforge/planforge/internal/core/domain"
)

// =============================================================================
// Resize Actions
// =============================================================================

const (
	// ActionScaleToServerGroup resizes relative to another group's current
	// size. Used whenever a source group exists.
	ActionScaleToServerGroup = "scale_to_server_group"

	// ActionScaleExact resizes to an explicit capacity. Used in degraded mode
	// against the saved fallback capacity.
	ActionScaleExact = "scale_exact"
)

// =============================================================================
// Forward Plan Builder
// =============================================================================

// ForwardPlan compiles the rollout plan for a normalized request and its
// resolved source group (nil when no source exists). All emitted stages are
// synthetic children of parentID, positioned after it.
//
// The plan shape is:
//
//	determine deployed group
//	pin source                                  (source only)
//	for each target percentage p:
//	    grow to p% of desired size
//	    wait / validation pipeline              (when configured)
//	    disable p% of source                    (source only)
//	scale down source cluster, or unpin source  (source only)
func (p *Planner) ForwardPlan(req domain.DeploymentRequest, source *domain.ServerGroup, parentID string) domain.Plan {
	plan := domain.NewPlan(domain.PlanKindForward)
	base := baseContext(req)

	determine := domain.NewStageSpec(
		p.registry.DetermineTargetGroup,
		"Determine Deployed Server Group",
		mergeContext(base, map[string]any{
			"target":         "current_asg_dynamic",
			"targetLocation": req.Region,
		}),
		parentID,
		domain.PositionAfterParent,
	)
	plan.Stages = append(plan.Stages, determine)

	if source == nil {
		plan.Degraded = true
		p.logger.Warn("no source server group, scaling to exact fallback capacity with no disable or scale-down phase",
			"cluster", req.Cluster,
			"region", req.Region,
			"capacity", req.SavedCapacity,
		)
	} else {
		// Freeze the old group's minimum so unrelated automation cannot
		// scale it down mid-rollout.
		plan.Stages = append(plan.Stages, domain.NewStageSpec(
			p.registry.PinServerGroup,
			fmt.Sprintf("Pin %s", source.Name),
			mergeContext(base, map[string]any{
				"serverGroupName":    source.Name,
				"action":             ActionScaleToServerGroup,
				"source":             source.Context(),
				"pinMinimumCapacity": true,
			}),
			parentID,
			domain.PositionAfterParent,
		))
	}

	// The concrete deployed group only exists at execution time.
	deployed := domain.DeployedServerGroupName(determine.ID)

	for _, pct := range req.TargetPercentages {
		resizeCtx := mergeContext(base, map[string]any{
			"scalePct":             pct,
			"pinCapacity":          pct < 100,
			"unpinMinimumCapacity": pct == 100,
			"pinMinimumCapacity":   pct < 100,
		})
		if source != nil {
			resizeCtx["action"] = ActionScaleToServerGroup
			resizeCtx["source"] = source.Context()
		} else {
			resizeCtx["action"] = ActionScaleExact
			resizeCtx["capacity"] = req.SavedCapacity.Context()
		}
		if req.HealthPercentage > 0 {
			resizeCtx["targetHealthyDeployPercentage"] = req.HealthPercentage
		}
		plan.Stages = append(plan.Stages, domain.NewStageSpec(
			p.registry.ResizeServerGroup,
			fmt.Sprintf("Grow to %d%% of Desired Size", pct),
			resizeCtx,
			parentID,
			domain.PositionAfterParent,
		))

		plan.Stages = append(plan.Stages, p.cleanupStages(req, source, deployed, pct, parentID)...)

		if source != nil {
			plan.Stages = append(plan.Stages, domain.NewStageSpec(
				p.registry.DisableServerGroup,
				fmt.Sprintf("Disable %d%% of Desired Size", pct),
				mergeContext(base, map[string]any{
					"serverGroupName":   source.Name,
					"desiredPercentage": pct,
				}),
				parentID,
				domain.PositionAfterParent,
			))
		}
	}

	if source != nil {
		if req.ScaleDown {
			if req.DelayBeforeScaleDown > 0 {
				plan.Stages = append(plan.Stages,
					p.waitStage(req.DelayBeforeScaleDown, "Wait Before Scale Down", parentID))
			}
			plan.Stages = append(plan.Stages, domain.NewStageSpec(
				p.registry.ScaleDownCluster,
				fmt.Sprintf("Scale Down %s", req.Cluster),
				mergeContext(base, map[string]any{
					"allowScaleDownActive":          false,
					"remainingFullSizeServerGroups": 1,
					"preferLargerOverNewer":         false,
				}),
				parentID,
				domain.PositionAfterParent,
			))
		} else {
			plan.Stages = append(plan.Stages, p.unpinStage(base, source, parentID, 0))
		}
	}

	return plan
}

// =============================================================================
// Cleanup / Validation Sub-builder
// =============================================================================

// cleanupStages emits the optional wait and validation-pipeline stages that
// follow one percentage step. The two are independent: absence of one does
// not suppress the other.
func (p *Planner) cleanupStages(req domain.DeploymentRequest, source *domain.ServerGroup, deployed domain.Expression, pct int, parentID string) []domain.StageSpec {
	var stages []domain.StageSpec

	if req.DelayBeforeCleanup > 0 {
		stages = append(stages,
			p.waitStage(req.DelayBeforeCleanup, fmt.Sprintf("Wait Before Cleanup at %d%%", pct), parentID))
	}

	if req.Pipeline.IsConfigured() {
		params := make(map[string]any, len(req.Pipeline.Parameters)+5)
		for k, v := range req.Pipeline.Parameters {
			params[k] = v
		}
		params["percentageComplete"] = pct
		params["deployedServerGroup"] = deployed.String()
		params["region"] = req.Region
		params["account"] = req.Account
		if source != nil {
			params["sourceServerGroup"] = source.Name
		}

		stages = append(stages, domain.NewStageSpec(
			p.registry.RunPipeline,
			fmt.Sprintf("Validate Deployment at %d%%", pct),
			map[string]any{
				"application":        req.Pipeline.Application,
				"pipeline":           req.Pipeline.PipelineID,
				"pipelineParameters": params,
			},
			parentID,
			domain.PositionAfterParent,
		))
	}

	return stages
}

// =============================================================================
// Shared Stage Builders
// =============================================================================

// waitStage emits a wait stage. waitTime is whole seconds on the wire.
func (p *Planner) waitStage(d time.Duration, name, parentID string) domain.StageSpec {
	return domain.NewStageSpec(
		p.registry.Wait,
		name,
		map[string]any{"waitTime": int64(d / time.Second)},
		parentID,
		domain.PositionAfterParent,
	)
}

// unpinStage emits the stage that restores a source group's original minimum
// capacity. The base context may be nil when no request is in scope; the
// source group's own coordinates always win. A non-zero timeout becomes a
// stage timeout override.
func (p *Planner) unpinStage(base map[string]any, source *domain.ServerGroup, parentID string, timeout time.Duration) domain.StageSpec {
	ctx := mergeContext(base, map[string]any{
		"serverGroupName":      source.Name,
		"action":               ActionScaleToServerGroup,
		"source":               source.Context(),
		"unpinMinimumCapacity": true,
		"region":               source.Region,
		"credentials":          source.Account,
	})
	if source.CloudProvider != "" {
		ctx["cloudProvider"] = source.CloudProvider
	}
	if timeout > 0 {
		ctx["stageTimeoutMs"] = timeout.Milliseconds()
	}
	return domain.NewStageSpec(
		p.registry.PinServerGroup,
		fmt.Sprintf("Unpin %s", source.Name),
		ctx,
		parentID,
		domain.PositionAfterParent,
	)
}

// =============================================================================
// Context Construction
// =============================================================================

// baseContext holds the identifiers shared by every stage that addresses a
// server group. Wait and run-pipeline stages carry only their own keys: the
// drivers behind them take no location. Each stage gets a fresh merged copy;
// the base itself is never handed out.
func baseContext(req domain.DeploymentRequest) map[string]any {
	return map[string]any{
		"region":        req.Region,
		"cluster":       req.Cluster,
		"moniker":       req.Moniker.Context(),
		"credentials":   req.Account,
		"cloudProvider": req.CloudProvider,
	}
}

// mergeContext builds a fresh context map from base plus per-stage overrides.
func mergeContext(base, extra map[string]any) map[string]any {
	ctx := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		ctx[k] = v
	}
	for k, v := range extra {
		ctx[k] = v
	}
	return ctx
}
