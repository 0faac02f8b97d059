package planner

import (
	"testing"

	"github.com/planforge/planforge/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// PrepareCapacity Tests
// =============================================================================

func TestPrepareCapacity_ZeroesProvisioningCapacity(t *testing.T) {
	p := newTestPlanner(Capabilities{})
	raw := validRawRequest()
	raw.Capacity = &domain.Capacity{Min: 2, Max: 8, Desired: 4}
	req, err := p.Normalize(&raw)
	require.NoError(t, err)

	directive := p.PrepareCapacity(req)

	assert.True(t, directive.Capacity.IsZero())
	assert.Equal(t, domain.Capacity{Min: 2, Max: 8, Desired: 4}, directive.SavedCapacity)
	assert.False(t, directive.UseSourceCapacity)
}

func TestPrepareCapacity_DisablesCopyFromSource(t *testing.T) {
	p := newTestPlanner(Capabilities{})
	raw := validRawRequest()
	raw.UseSourceCapacity = true
	req, err := p.Normalize(&raw)
	require.NoError(t, err)

	directive := p.PrepareCapacity(req)

	assert.False(t, directive.UseSourceCapacity)
}

func TestPrepareCapacity_Idempotent(t *testing.T) {
	// A request that already went through the pre-stage planner carries the
	// saved capacity; running it again changes nothing.
	p := newTestPlanner(Capabilities{})
	raw := validRawRequest()
	raw.SavedCapacity = &domain.Capacity{Min: 1, Max: 3, Desired: 2}
	req, err := p.Normalize(&raw)
	require.NoError(t, err)

	first := p.PrepareCapacity(req)
	second := p.PrepareCapacity(req)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.Capacity{Min: 1, Max: 3, Desired: 2}, second.SavedCapacity)
}
