package leaderboard

import (
	"fmt"
	"sort"

	"sweeperleader/internal/common"
)

// Entry is one measured player on the leaderboard. Entries are
// transient: they are rebuilt from a live stats query on every
// leaderboard build and never persisted
type Entry struct {
	UserID string
	Handle string
	KD     float64
	Wins   int
}

// Rank orders the entries by kill/death ratio descending, breaking
// ties by wins descending, and truncates to the top limit entries.
// The sort is stable: ties beyond both metrics keep their input order.
// Players whose stats lookup failed must be excluded by the caller
// before ranking, not zero-filled
func Rank(entries []Entry, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", common.ErrInvalidArgument, limit)
	}

	// Rank a copy; the input batch is a fixed snapshot
	ranked := append([]Entry(nil), entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].KD != ranked[j].KD {
			return ranked[i].KD > ranked[j].KD
		}
		return ranked[i].Wins > ranked[j].Wins
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Leader returns the identity at the top of a ranked board,
// or false if the board is empty
func Leader(ranked []Entry) (string, bool) {
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].UserID, true
}
