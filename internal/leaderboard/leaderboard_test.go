package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sweeperleader/internal/common"
)

func TestRank(t *testing.T) {
	entries := []Entry{
		{UserID: "A", KD: 2.0, Wins: 5},
		{UserID: "B", KD: 2.0, Wins: 9},
		{UserID: "C", KD: 3.0, Wins: 0},
	}

	ranked, err := Rank(entries, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.Equal(t, "C", ranked[0].UserID)
	require.Equal(t, "B", ranked[1].UserID)

	// The input snapshot is untouched
	require.Equal(t, "A", entries[0].UserID)
}

func TestRankEmpty(t *testing.T) {
	ranked, err := Rank(nil, 10)
	require.NoError(t, err)
	require.Empty(t, ranked)
}

func TestRankInvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		_, err := Rank([]Entry{{UserID: "A"}}, limit)
		require.ErrorIs(t, err, common.ErrInvalidArgument)
	}
}

func TestRankLimitLargerThanInput(t *testing.T) {
	ranked, err := Rank([]Entry{{UserID: "A", KD: 1.0}, {UserID: "C", KD: 0.5}}, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.Equal(t, "A", ranked[0].UserID)
	require.Equal(t, "C", ranked[1].UserID)
}

// Ties beyond both metrics keep their input order
func TestRankStable(t *testing.T) {
	entries := []Entry{
		{UserID: "first", KD: 1.0, Wins: 3},
		{UserID: "second", KD: 1.0, Wins: 3},
		{UserID: "third", KD: 1.0, Wins: 3},
	}
	ranked, err := Rank(entries, 10)
	require.NoError(t, err)
	require.Equal(t, "first", ranked[0].UserID)
	require.Equal(t, "second", ranked[1].UserID)
	require.Equal(t, "third", ranked[2].UserID)
}

func TestLeader(t *testing.T) {
	_, ok := Leader(nil)
	require.False(t, ok)

	ranked, err := Rank([]Entry{{UserID: "A", KD: 1}, {UserID: "B", KD: 2}}, 10)
	require.NoError(t, err)
	leader, ok := Leader(ranked)
	require.True(t, ok)
	require.Equal(t, "B", leader)
}
