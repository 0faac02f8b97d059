package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/planforge/planforge/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "planforge.db")
	s, err := NewSQLiteStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord() *PlanRecord {
	plan := domain.NewPlan(domain.PlanKindForward)
	plan.Stages = append(plan.Stages, domain.NewStageSpec(
		"resize-server-group",
		"Grow to 100% of Desired Size",
		map[string]any{"scalePct": 100},
		"parent-1",
		domain.PositionAfterParent,
	))

	raw := &domain.RolloutRequest{
		TargetPercentages: []int{50},
		Region:            "us-east-1",
		Cluster:           "orca-main",
		Account:           "prod",
		CloudProvider:     "aws",
		Moniker:           domain.Moniker{App: "orca"},
	}

	return NewPlanRecord(plan, raw)
}

// =============================================================================
// SavePlan / GetPlan Tests
// =============================================================================

func TestSQLiteStore_SaveAndGetPlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	record := testRecord()

	require.NoError(t, s.SavePlan(ctx, record))

	got, err := s.GetPlan(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, domain.PlanKindForward, got.Kind)
	assert.Equal(t, "orca", got.Application)
	assert.Equal(t, "orca-main", got.Cluster)
	assert.Equal(t, "us-east-1", got.Region)
	assert.Equal(t, 1, got.StageCount)
	require.Len(t, got.Plan.Stages, 1)
	assert.Equal(t, "Grow to 100% of Desired Size", got.Plan.Stages[0].Name)
	require.NotNil(t, got.Request)
	assert.Equal(t, []int{50}, got.Request.TargetPercentages)
}

func TestSQLiteStore_GetPlan_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPlan(context.Background(), "plan_missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_SavePlan_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	record := testRecord()

	require.NoError(t, s.SavePlan(ctx, record))
	err := s.SavePlan(ctx, record)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestSQLiteStore_SavePlan_NoRequest(t *testing.T) {
	// Rollback plans are compiled from ancestry alone, with no rollout
	// request attached.
	s := newTestStore(t)
	ctx := context.Background()
	record := NewPlanRecord(domain.NewPlan(domain.PlanKindRollback), nil)

	require.NoError(t, s.SavePlan(ctx, record))

	got, err := s.GetPlan(ctx, record.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Request)
	assert.Equal(t, domain.PlanKindRollback, got.Kind)
}

// =============================================================================
// ListPlans Tests
// =============================================================================

func TestSQLiteStore_ListPlans_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testRecord()
	require.NoError(t, s.SavePlan(ctx, first))

	second := testRecord()
	second.CreatedAt = second.CreatedAt.Add(time.Second)
	require.NoError(t, s.SavePlan(ctx, second))

	records, err := s.ListPlans(ctx, DefaultListOptions())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestSQLiteStore_ListPlans_Pagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := testRecord()
		rec.CreatedAt = rec.CreatedAt.Add(time.Duration(i) * time.Second)
		require.NoError(t, s.SavePlan(ctx, rec))
	}

	page, err := s.ListPlans(ctx, ListOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestSQLiteStore_ListPlans_ZeroLimitKeepsOffset(t *testing.T) {
	// An unset limit falls back to the default; a caller-supplied offset
	// still applies.
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := testRecord()
		rec.CreatedAt = rec.CreatedAt.Add(time.Duration(i) * time.Second)
		require.NoError(t, s.SavePlan(ctx, rec))
	}

	records, err := s.ListPlans(ctx, ListOptions{Limit: 0, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteStore_ListPlans_Empty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.ListPlans(context.Background(), DefaultListOptions())

	require.NoError(t, err)
	assert.Empty(t, records)
}
