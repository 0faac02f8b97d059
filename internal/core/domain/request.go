package domain

import "time"

// =============================================================================
// Validation Pipeline Reference
// =============================================================================

// ValidationPipeline references a pipeline the execution engine runs after
// each percentage step, as a rollout validation gate. The reference is only
// considered configured when both Application and PipelineID are present.
type ValidationPipeline struct {
	Application string            `json:"application" yaml:"application"`
	PipelineID  string            `json:"pipeline_id" yaml:"pipeline_id"`
	Parameters  map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// IsConfigured reports whether the reference names a runnable pipeline.
func (p *ValidationPipeline) IsConfigured() bool {
	return p != nil && p.Application != "" && p.PipelineID != ""
}

// =============================================================================
// Raw Rollout Request
// =============================================================================

// RolloutRequest is the wire-shaped deployment request as submitted by the
// caller, before normalization. Delays are expressed in whole seconds on the
// wire; the normalizer converts them to durations.
type RolloutRequest struct {
	// TargetPercentages is the requested rollout sequence. Values outside
	// 1-100 are dropped and duplicates collapse to their first occurrence.
	TargetPercentages []int `json:"target_percentages,omitempty" yaml:"target_percentages,omitempty"`

	// ScaleDown requests that the source cluster be scaled down once the new
	// group carries full traffic, instead of merely unpinned.
	ScaleDown bool `json:"scale_down,omitempty" yaml:"scale_down,omitempty"`

	DelayBeforeScaleDownSeconds int64 `json:"delay_before_scale_down_seconds,omitempty" yaml:"delay_before_scale_down_seconds,omitempty"`
	DelayBeforeCleanupSeconds   int64 `json:"delay_before_cleanup_seconds,omitempty" yaml:"delay_before_cleanup_seconds,omitempty"`

	// Pipeline optionally gates each percentage step on a validation pipeline.
	Pipeline *ValidationPipeline `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`

	// Capacity is the fixed total capacity requested for the new group, when
	// the caller specifies one. When set it supersedes TargetSize.
	Capacity *Capacity `json:"capacity,omitempty" yaml:"capacity,omitempty"`

	// SavedCapacity carries a previously recorded capacity when the request
	// has already been through the pre-stage planner.
	SavedCapacity *Capacity `json:"saved_capacity,omitempty" yaml:"saved_capacity,omitempty"`

	// TargetSize is a stray instance-count override some callers attach. It
	// is cleared during normalization when a fixed Capacity is present, so it
	// cannot interfere with zero-capacity provisioning.
	TargetSize *int `json:"target_size,omitempty" yaml:"target_size,omitempty"`

	// UseSourceCapacity asks the provisioner to copy the source group's
	// current capacity. The pre-stage planner disables this mode in favor of
	// explicit zero-capacity provisioning.
	UseSourceCapacity bool `json:"use_source_capacity,omitempty" yaml:"use_source_capacity,omitempty"`

	Region        string  `json:"region" yaml:"region"`
	Cluster       string  `json:"cluster" yaml:"cluster"`
	Account       string  `json:"account" yaml:"account"`
	CloudProvider string  `json:"cloud_provider" yaml:"cloud_provider"`
	Moniker       Moniker `json:"moniker" yaml:"moniker"`

	// TargetHealthyPercentage is the health threshold the driver applies when
	// judging a resize complete. Zero means driver default.
	TargetHealthyPercentage int `json:"target_healthy_percentage,omitempty" yaml:"target_healthy_percentage,omitempty"`
}

// =============================================================================
// Normalized Deployment Request
// =============================================================================

// DeploymentRequest is the normalized, immutable form of a rollout request.
// Planners read it; none of them mutate it.
type DeploymentRequest struct {
	// TargetPercentages is deduplicated, order-preserving, and always ends
	// with exactly one 100.
	TargetPercentages []int

	ScaleDown            bool
	DelayBeforeScaleDown time.Duration
	DelayBeforeCleanup   time.Duration

	Pipeline *ValidationPipeline

	// SavedCapacity is the fallback capacity used for exact scaling when no
	// source group exists, and restored at the 100% step.
	SavedCapacity Capacity

	Region        string
	Cluster       string
	Account       string
	CloudProvider string
	Moniker       Moniker

	HealthPercentage int
}
