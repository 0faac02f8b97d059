package domain

import "errors"

// =============================================================================
// Planning Errors
// =============================================================================

var (
	// ErrPipelineUnavailable is returned when a request references a
	// validation pipeline but pipeline orchestration is not available in this
	// deployment. This is a fatal, user-visible misconfiguration.
	ErrPipelineUnavailable = errors.New("validation pipeline orchestration is not available")

	// ErrAncestryLookup is returned when the ancestry itself cannot be
	// searched: a broken ancestry link when a create/clone stage must have
	// preceded this one. Structurally this should never happen.
	ErrAncestryLookup = errors.New("ancestry lookup failed")

	// ErrRegionRequired is returned when a request carries no region.
	ErrRegionRequired = errors.New("region is required")

	// ErrClusterRequired is returned when a request carries no cluster.
	ErrClusterRequired = errors.New("cluster is required")

	// ErrAccountRequired is returned when a request carries no account.
	ErrAccountRequired = errors.New("account is required")
)
