// Package domain contains the core domain types for rollout planning.
// This is part of the Functional Core - all functions are pure with no I/O.
package domain

// =============================================================================
// Capacity
// =============================================================================

// Capacity describes a server group's scaling bounds.
//
// The planner treats min <= desired <= max as expected but does not enforce
// it; range validation is owned by the cloud driver that performs the actual
// resize.
type Capacity struct {
	Min     int `json:"min" yaml:"min"`
	Max     int `json:"max" yaml:"max"`
	Desired int `json:"desired" yaml:"desired"`
}

// ZeroCapacity returns the pinned zero capacity used to provision a new
// server group before the rollout starts scaling it up.
func ZeroCapacity() Capacity {
	return Capacity{Min: 0, Max: 0, Desired: 0}
}

// IsZero reports whether all three bounds are zero.
func (c Capacity) IsZero() bool {
	return c.Min == 0 && c.Max == 0 && c.Desired == 0
}

// Context returns the capacity as stage context values, keyed the way the
// cloud driver expects them.
func (c Capacity) Context() map[string]any {
	return map[string]any{
		"min":     c.Min,
		"max":     c.Max,
		"desired": c.Desired,
	}
}
