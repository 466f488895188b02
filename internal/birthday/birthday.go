// Package birthday keeps the birthday registry: who celebrates when,
// who celebrates today. The daily sweep announces matches and the
// award path doubles experience for them
package birthday

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sweeperleader/internal/common"
	"sweeperleader/internal/store"
)

const dateLayout = "2006-01-02"

// Registry persists birthdays as YYYY-MM-DD strings keyed by user id
type Registry struct {
	kv store.KV
}

func NewRegistry(kv store.KV) *Registry {
	return &Registry{kv: kv}
}

// Set records a user's birthday. The date must parse as YYYY-MM-DD
func (r *Registry) Set(ctx context.Context, userID string, date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", common.ErrInvalidArgument, date)
	}
	return r.kv.Put(ctx, store.BucketBirthdays, userID, date)
}

// Get returns a user's birthday, or false if none is set
func (r *Registry) Get(ctx context.Context, userID string) (string, bool, error) {
	return r.kv.Get(ctx, store.BucketBirthdays, userID)
}

// IsBirthday reports whether the user celebrates on the given day (UTC)
func (r *Registry) IsBirthday(ctx context.Context, userID string, now time.Time) (bool, error) {
	date, ok, err := r.kv.Get(ctx, store.BucketBirthdays, userID)
	if err != nil || !ok {
		return false, err
	}
	return matchesDay(date, now), nil
}

// Today returns the user ids celebrating on the given day (UTC),
// sorted for stable announcements
func (r *Registry) Today(ctx context.Context, now time.Time) ([]string, error) {
	all, err := r.kv.List(ctx, store.BucketBirthdays)
	if err != nil {
		return nil, err
	}
	var userids []string
	for userid, date := range all {
		if matchesDay(date, now) {
			userids = append(userids, userid)
		}
	}
	sort.Strings(userids)
	return userids, nil
}

func matchesDay(date string, now time.Time) bool {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	_, m1, d1 := parsed.Date()
	_, m2, d2 := now.UTC().Date()
	return m1 == m2 && d1 == d2
}
