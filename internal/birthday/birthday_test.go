package birthday

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

func TestSet(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "valid", date: "1999-04-01"},
		{name: "wrong order", date: "01-04-1999", wantErr: true},
		{name: "not a date", date: "tomorrow", wantErr: true},
		{name: "empty", date: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Set(ctx, "u1", tt.date)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			date, ok, err := registry.Get(ctx, "u1")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, tt.date, date)
		})
	}
}

func TestToday(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, registry.Set(ctx, "april", "1999-04-01"))
	require.NoError(t, registry.Set(ctx, "april2", "2001-04-01"))
	require.NoError(t, registry.Set(ctx, "december", "1999-12-24"))

	// The year does not matter, only month and day
	celebrating, err := registry.Today(ctx, time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, []string{"april", "april2"}, celebrating)

	celebrating, err = registry.Today(ctx, time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Empty(t, celebrating)
}

func TestIsBirthday(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, registry.Set(ctx, "u1", "1999-04-01"))

	celebrating, err := registry.IsBirthday(ctx, "u1", time.Date(2025, 4, 1, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, celebrating)

	celebrating, err = registry.IsBirthday(ctx, "u1", time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.False(t, celebrating)

	// No birthday on file
	celebrating, err = registry.IsBirthday(ctx, "stranger", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.False(t, celebrating)
}
