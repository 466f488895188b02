package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJSONStoreGetDefault(t *testing.T) {
	kv, err := OpenJSON(t.TempDir())
	require.NoError(t, err)

	_, ok, err := kv.Get(context.Background(), BucketExperience, "nobody")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	kv, err := OpenJSON(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, BucketEpicLinks, "u1", "SweeperMain"))
	require.NoError(t, kv.Put(ctx, BucketEpicLinks, "u2", "NinjaFan99"))
	require.NoError(t, kv.Delete(ctx, BucketEpicLinks, "u2"))

	// A fresh store over the same directory sees the durable state
	reopened, err := OpenJSON(dir)
	require.NoError(t, err)

	value, ok, err := reopened.Get(ctx, BucketEpicLinks, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "SweeperMain", value)

	all, err := reopened.List(ctx, BucketEpicLinks)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"u1": "SweeperMain"}, all)
}

func TestJSONStoreNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenJSON(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Put(context.Background(), BucketBirthdays, "u1", "1999-04-01"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		require.NotEqual(t, ".tmp", filepath.Ext(entry.Name()))
	}
}

func TestJSONStoreBackup(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	kv, err := OpenJSON(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, BucketExperience, "u1", "120"))
	require.NoError(t, kv.Put(ctx, BucketBirthdays, "u1", "1999-04-01"))

	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	path, err := kv.Backup(ctx, now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "backup-2025-07-01.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "\"120\"")
	require.Contains(t, string(raw), "1999-04-01")
}

func TestIntBucket(t *testing.T) {
	kv, err := OpenJSON(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	bucket := NewIntBucket(kv, BucketExperience)

	// Unknown users read as zero
	total, err := bucket.Get(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, total)

	require.NoError(t, bucket.Put(ctx, "u1", 42))
	total, err = bucket.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 42, total)

	all, err := bucket.All(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"u1": 42}, all)
}
