package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return t0.Add(time.Duration(n) * 24 * time.Hour)
}

func TestTrackerAssign(t *testing.T) {
	tracker := NewTracker()

	// Empty board keeps the tracker empty
	require.Nil(t, tracker.Update("", t0))
	_, held := tracker.Leader()
	require.False(t, held)

	event := tracker.Update("A", t0)
	require.NotNil(t, event)
	require.Equal(t, EventAssigned, event.Kind)
	require.Equal(t, "A", event.To)
	require.Empty(t, event.From)
	require.Zero(t, event.HeldFor)

	leader, held := tracker.Leader()
	require.True(t, held)
	require.Equal(t, "A", leader)
}

func TestTrackerUnchangedLeaderIsSilent(t *testing.T) {
	tracker := NewTracker()
	require.NotNil(t, tracker.Update("A", t0))

	// Same leader on the next build: no event, timer keeps running
	require.Nil(t, tracker.Update("A", day(1)))
	since, held := tracker.HeldSince()
	require.True(t, held)
	require.Equal(t, t0, since)
}

func TestTrackerRotation(t *testing.T) {
	tracker := NewTracker()
	require.NotNil(t, tracker.Update("A", t0))
	require.Nil(t, tracker.Update("A", day(1)))

	event := tracker.Update("B", day(2))
	require.NotNil(t, event)
	require.Equal(t, EventRotated, event.Kind)
	require.Equal(t, "A", event.From)
	require.Equal(t, "B", event.To)
	require.Equal(t, 48*time.Hour, event.HeldFor)

	// The new hold starts counting from the rotation
	since, _ := tracker.HeldSince()
	require.Equal(t, day(2), since)
}

func TestTrackerVacated(t *testing.T) {
	tracker := NewTracker()
	require.NotNil(t, tracker.Update("A", t0))

	event := tracker.Update("", day(3))
	require.NotNil(t, event)
	require.Equal(t, EventVacated, event.Kind)
	require.Equal(t, "A", event.From)
	require.Empty(t, event.To)
	require.Equal(t, 72*time.Hour, event.HeldFor)

	_, held := tracker.Leader()
	require.False(t, held)

	// Vacating twice does not fire twice
	require.Nil(t, tracker.Update("", day(4)))
}

func TestBonusEligible(t *testing.T) {
	tracker := NewTracker()
	require.False(t, tracker.BonusEligible(t0))

	tracker.Update("A", t0)
	require.False(t, tracker.BonusEligible(day(6)))
	require.True(t, tracker.BonusEligible(day(7)))
	require.True(t, tracker.BonusEligible(day(30)))

	// Rotation resets the bonus timer
	tracker.Update("B", day(30))
	require.False(t, tracker.BonusEligible(day(31)))
}

func TestRestoreTracker(t *testing.T) {
	tracker := RestoreTracker("A", t0)
	leader, held := tracker.Leader()
	require.True(t, held)
	require.Equal(t, "A", leader)
	require.True(t, tracker.BonusEligible(day(7)))

	// Restoring without a leader gives an empty tracker
	empty := RestoreTracker("", time.Time{})
	_, held = empty.Leader()
	require.False(t, held)
}
