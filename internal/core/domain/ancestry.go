package domain

// =============================================================================
// Ancestry Records
// =============================================================================

// Ancestor action kinds recognized by the source resolver.
const (
	ActionKindCreateServerGroup = "createServerGroup"
	ActionKindCloneServerGroup  = "cloneServerGroup"
)

// ActionRecord is one materialized entry of a deployment's ancestry: a stage
// the execution engine already ran, with its reported outputs. The caller
// provides ancestry ordered nearest-first; resolvers perform a pure
// first-match search over it and never mutate it.
type ActionRecord struct {
	ID      string         `json:"id" yaml:"id"`
	Kind    string         `json:"kind" yaml:"kind"`
	Outputs map[string]any `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// IsServerGroupProvisioner reports whether the record is a create or clone
// server group action.
func (r ActionRecord) IsServerGroupProvisioner() bool {
	return r.Kind == ActionKindCreateServerGroup || r.Kind == ActionKindCloneServerGroup
}
