package datalayer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrafts_KeyedByProjectAndDate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.svc.SaveDraft(ctx, "p1", "2026-08-29", map[string]any{"workPerformed": "excavation"}))
	require.NoError(t, e.svc.SaveDraft(ctx, "p1", "2026-08-30", map[string]any{"workPerformed": "footings"}))
	require.NoError(t, e.svc.SaveDraft(ctx, "p2", "2026-08-30", map[string]any{"workPerformed": "paving"}))

	d, err := e.svc.GetCurrentDraft(ctx, "p1", "2026-08-30")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "footings", d.Content["workPerformed"])
	assert.Equal(t, "p1", d.ProjectID)
	assert.False(t, d.UpdatedAt.IsZero())

	all, err := e.svc.GetAllDrafts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetCurrentDraft_Absent(t *testing.T) {
	e := newEnv(t)

	d, err := e.svc.GetCurrentDraft(context.Background(), "p1", "2026-08-30")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestDeleteDraft(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.svc.SaveDraft(ctx, "p1", "2026-08-30", map[string]any{"x": 1}))
	require.NoError(t, e.svc.DeleteDraft(ctx, "p1", "2026-08-30"))

	d, err := e.svc.GetCurrentDraft(ctx, "p1", "2026-08-30")
	require.NoError(t, err)
	assert.Nil(t, d)

	// absent draft is a no-op
	require.NoError(t, e.svc.DeleteDraft(ctx, "p1", "2026-08-30"))
}

func TestGetAllDrafts_NewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ts := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	e.svc.WithClock(func() time.Time { return ts })
	require.NoError(t, e.svc.SaveDraft(ctx, "p1", "2026-08-29", map[string]any{}))

	e.svc.WithClock(func() time.Time { return ts.Add(time.Hour) })
	require.NoError(t, e.svc.SaveDraft(ctx, "p1", "2026-08-30", map[string]any{}))

	all, err := e.svc.GetAllDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2026-08-30", all[0].Date)
}

func TestAICache_RoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, ok := e.svc.GetCachedAIResponse(ctx, "r1")
	assert.False(t, ok)

	require.NoError(t, e.svc.CacheAIResponse(ctx, "r1", "Concrete was poured on the north levee."))
	got, ok := e.svc.GetCachedAIResponse(ctx, "r1")
	require.True(t, ok)
	assert.Equal(t, "Concrete was poured on the north levee.", got)

	require.NoError(t, e.svc.ClearAIResponseCache(ctx, "r1"))
	_, ok = e.svc.GetCachedAIResponse(ctx, "r1")
	assert.False(t, ok)

	// clearing an absent entry is a no-op
	require.NoError(t, e.svc.ClearAIResponseCache(ctx, "r1"))
}
