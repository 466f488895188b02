// Package store holds the persistence adapters of the bot. Everything
// the bot remembers across restarts (experience totals, epic account
// links, birthdays, tournaments, podcast cursor, Cleaner state) lives
// in one of these key-value buckets
package store

import (
	"context"
	"strconv"
)

// Bucket names used across the bot
const (
	BucketExperience  = "experience"
	BucketEpicLinks   = "epic_links"
	BucketBirthdays   = "birthdays"
	BucketTournaments = "tournaments"
	BucketPodcast     = "podcast"
	BucketCleaner     = "cleaner"
)

// KV is a bucketed string key-value store. Implementations must make
// Put durable before returning
type KV interface {
	Get(ctx context.Context, bucket, key string) (string, bool, error)
	Put(ctx context.Context, bucket, key, value string) error
	Delete(ctx context.Context, bucket, key string) error
	List(ctx context.Context, bucket string) (map[string]string, error)
	Close() error
}

// IntBucket narrows a KV bucket to integer values, with 0 for keys
// never written. The ledger persists experience totals through it
type IntBucket struct {
	kv     KV
	bucket string
}

func NewIntBucket(kv KV, bucket string) *IntBucket {
	return &IntBucket{kv: kv, bucket: bucket}
}

func (b *IntBucket) Get(ctx context.Context, key string) (int, error) {
	raw, ok, err := b.kv.Get(ctx, b.bucket, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (b *IntBucket) Put(ctx context.Context, key string, value int) error {
	return b.kv.Put(ctx, b.bucket, key, strconv.Itoa(value))
}

func (b *IntBucket) All(ctx context.Context) (map[string]int, error) {
	raw, err := b.kv.List(ctx, b.bucket)
	if err != nil {
		return nil, err
	}
	values := make(map[string]int, len(raw))
	for key, value := range raw {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		values[key] = n
	}
	return values, nil
}
