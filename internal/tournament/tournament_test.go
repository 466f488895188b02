package tournament

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sweeperleader/internal/common"
	"sweeperleader/internal/store"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	kv, err := store.OpenJSON(t.TempDir())
	require.NoError(t, err)
	return NewRegistry(kv)
}

func TestCreate(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()
	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	created, err := registry.Create(ctx, "Winterfest", now)
	require.NoError(t, err)
	require.Equal(t, "Winterfest", created.Name)
	require.True(t, created.Open)
	require.NotEmpty(t, created.ID)

	// Open names are unique, case-insensitively
	_, err = registry.Create(ctx, "winterfest", now)
	require.Error(t, err)

	_, err = registry.Create(ctx, "  ", now)
	require.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestJoin(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()
	now := time.Now()

	_, err := registry.Create(ctx, "BritBowl", now)
	require.NoError(t, err)

	joined, err := registry.Join(ctx, "BritBowl", "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, joined.Participants)

	// Double registration is rejected
	_, err = registry.Join(ctx, "BritBowl", "u1")
	require.Error(t, err)

	// Unknown tournament
	_, err = registry.Join(ctx, "Crew Up", "u1")
	require.Error(t, err)
}

func TestCloseStopsSignups(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()
	now := time.Now()

	_, err := registry.Create(ctx, "Crew Up", now)
	require.NoError(t, err)
	_, err = registry.Join(ctx, "Crew Up", "u1")
	require.NoError(t, err)

	closed, err := registry.Close(ctx, "Crew Up")
	require.NoError(t, err)
	require.False(t, closed.Open)

	_, err = registry.Join(ctx, "Crew Up", "u2")
	require.Error(t, err)

	// A new edition with the same name can open again
	_, err = registry.Create(ctx, "Crew Up", now.Add(time.Hour))
	require.NoError(t, err)
}

func TestListNewestFirst(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()
	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	_, err := registry.Create(ctx, "BritBowl", now)
	require.NoError(t, err)
	_, err = registry.Create(ctx, "Winterfest", now.Add(time.Hour))
	require.NoError(t, err)

	tournaments, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, tournaments, 2)
	require.Equal(t, "Winterfest", tournaments[0].Name)
	require.Equal(t, "BritBowl", tournaments[1].Name)
}
