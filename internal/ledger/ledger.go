package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"sweeperleader/internal/common"
	"sweeperleader/internal/rank"
)

// ErrPersistence marks a backing-store write that did not confirm.
// The award is not committed; the caller may retry the whole call
var ErrPersistence = errors.New("persistence failure")

// Store is the narrow view of the backing store the ledger needs:
// per-user experience totals, with 0 for users never seen before
type Store interface {
	Get(ctx context.Context, userID string) (int, error)
	Put(ctx context.Context, userID string, total int) error
}

// AwardResult reports the outcome of a single award or adjustment
type AwardResult struct {
	NewTotal    int
	OldTier     string
	NewTier     string
	TierChanged bool
}

// Ledger owns per-user cumulative experience. Every mutation is written
// through to the backing store before the call returns, so a crash
// after a call returns never loses the update. Operations on the same
// user are serialized; different users proceed concurrently
type Ledger struct {
	store Store
	tiers *rank.Table

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(store Store, tiers *rank.Table) *Ledger {
	return &Ledger{store: store, tiers: tiers, locks: map[string]*sync.Mutex{}}
}

// Award adds delta (scaled by multiplier, floored to an integer) to the
// user's experience. Delta must be positive; the multiplier must not be
// negative. The multiplier is decided by the caller at the moment of
// the award, so a birthday or Cleaner bonus never mixes into half an
// award
func (l *Ledger) Award(ctx context.Context, userID string, delta int, multiplier float64) (AwardResult, error) {
	if delta <= 0 {
		return AwardResult{}, fmt.Errorf("%w: award delta must be positive, got %d", common.ErrInvalidArgument, delta)
	}
	if multiplier < 0 {
		return AwardResult{}, fmt.Errorf("%w: multiplier must not be negative, got %g", common.ErrInvalidArgument, multiplier)
	}
	effective := int(math.Floor(float64(delta) * multiplier))
	return l.apply(ctx, userID, effective)
}

// Adjust applies a signed administrative correction, flooring the
// resulting total at zero
func (l *Ledger) Adjust(ctx context.Context, userID string, delta int) (AwardResult, error) {
	return l.apply(ctx, userID, delta)
}

// Total returns the user's current experience, 0 for unknown users
func (l *Ledger) Total(ctx context.Context, userID string) (int, error) {
	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return l.store.Get(ctx, userID)
}

func (l *Ledger) apply(ctx context.Context, userID string, delta int) (AwardResult, error) {
	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	total, err := l.store.Get(ctx, userID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("%w: reading total for user %s: %v", ErrPersistence, userID, err)
	}

	newTotal := total + delta
	if newTotal < 0 {
		newTotal = 0
	}

	oldTier, err := l.tiers.TierFor(total)
	if err != nil {
		return AwardResult{}, err
	}
	newTier, err := l.tiers.TierFor(newTotal)
	if err != nil {
		return AwardResult{}, err
	}

	// Write through before claiming success
	if err := l.store.Put(ctx, userID, newTotal); err != nil {
		return AwardResult{}, fmt.Errorf("%w: writing total for user %s: %v", ErrPersistence, userID, err)
	}

	return AwardResult{
		NewTotal:    newTotal,
		OldTier:     oldTier,
		NewTier:     newTier,
		TierChanged: oldTier != newTier,
	}, nil
}

func (l *Ledger) userLock(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}
