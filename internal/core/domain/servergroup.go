package domain

// =============================================================================
// Server Group Identity
// =============================================================================

// ServerGroup identifies a concrete server group in a cloud account.
//
// During a rolling red/black deployment this names the source group being
// replaced. Absence of a source group (a nil *ServerGroup) is a valid,
// first-class state: the very first deployment of a cluster has nothing to
// replace, and planning proceeds in degraded mode without pin, disable, or
// scale-down stages.
type ServerGroup struct {
	Region        string `json:"region" yaml:"region"`
	Name          string `json:"name" yaml:"name"`
	Account       string `json:"account" yaml:"account"`
	CloudProvider string `json:"cloud_provider,omitempty" yaml:"cloud_provider,omitempty"`
}

// Context returns the server group as stage context values for directives
// that operate relative to an existing group.
func (g *ServerGroup) Context() map[string]any {
	return map[string]any{
		"region":          g.Region,
		"serverGroupName": g.Name,
		"credentials":     g.Account,
	}
}

// =============================================================================
// Moniker
// =============================================================================

// Moniker is the naming breakdown of a cluster, carried through every emitted
// stage so the execution engine can resolve concrete group names.
type Moniker struct {
	App     string `json:"app" yaml:"app"`
	Cluster string `json:"cluster,omitempty" yaml:"cluster,omitempty"`
	Stack   string `json:"stack,omitempty" yaml:"stack,omitempty"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Context returns the moniker as stage context values.
func (m Moniker) Context() map[string]any {
	ctx := map[string]any{
		"app": m.App,
	}
	if m.Cluster != "" {
		ctx["cluster"] = m.Cluster
	}
	if m.Stack != "" {
		ctx["stack"] = m.Stack
	}
	if m.Detail != "" {
		ctx["detail"] = m.Detail
	}
	return ctx
}
