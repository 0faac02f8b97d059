package planner

import "log/slog"

// =============================================================================
// Stage Registry
// =============================================================================

// StageRegistry maps logical stage kinds to the type identifiers the cloud
// orchestration driver understands. It replaces runtime container lookup of
// stage builders with an explicit value passed in at construction.
type StageRegistry struct {
	DetermineTargetGroup string
	PinServerGroup       string
	ResizeServerGroup    string
	DisableServerGroup   string
	ScaleDownCluster     string
	Wait                 string
	RunPipeline          string
}

// DefaultStageRegistry returns the driver's standard type identifiers.
func DefaultStageRegistry() StageRegistry {
	return StageRegistry{
		DetermineTargetGroup: "determine-target-group",
		PinServerGroup:       "pin-server-group",
		ResizeServerGroup:    "resize-server-group",
		DisableServerGroup:   "disable-server-group",
		ScaleDownCluster:     "scale-down-cluster",
		Wait:                 "wait",
		RunPipeline:          "run-pipeline",
	}
}

// WithDefaults fills any unset identifiers from the default registry,
// so a partial override from configuration stays usable.
func (r StageRegistry) WithDefaults() StageRegistry {
	def := DefaultStageRegistry()
	if r.DetermineTargetGroup == "" {
		r.DetermineTargetGroup = def.DetermineTargetGroup
	}
	if r.PinServerGroup == "" {
		r.PinServerGroup = def.PinServerGroup
	}
	if r.ResizeServerGroup == "" {
		r.ResizeServerGroup = def.ResizeServerGroup
	}
	if r.DisableServerGroup == "" {
		r.DisableServerGroup = def.DisableServerGroup
	}
	if r.ScaleDownCluster == "" {
		r.ScaleDownCluster = def.ScaleDownCluster
	}
	if r.Wait == "" {
		r.Wait = def.Wait
	}
	if r.RunPipeline == "" {
		r.RunPipeline = def.RunPipeline
	}
	return r
}

// =============================================================================
// Capabilities
// =============================================================================

// Capabilities declares which optional collaborators are wired into this
// deployment. Checked once at planning entry; a request that needs an absent
// capability fails fast with a configuration error.
type Capabilities struct {
	// ValidationPipelines is true when pipeline orchestration is available
	// for post-resize validation gates.
	ValidationPipelines bool
}

// =============================================================================
// Planner
// =============================================================================

// Planner compiles deployment requests into stage plans. A Planner holds only
// read-only configuration after construction and is safe for concurrent use
// across unrelated requests.
type Planner struct {
	registry StageRegistry
	caps     Capabilities
	logger   *slog.Logger
}

// NewPlanner creates a planner with the given stage registry and capability
// set.
func NewPlanner(registry StageRegistry, caps Capabilities, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		registry: registry.WithDefaults(),
		caps:     caps,
		logger:   logger,
	}
}

// Registry returns the stage registry in effect.
func (p *Planner) Registry() StageRegistry {
	return p.registry
}
