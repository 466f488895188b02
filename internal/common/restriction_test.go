package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRestrictionAnalyse(t *testing.T) {
	restriction := Restriction{Requests: 2, Duration: time.Minute}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Empty history always allows
	analysis := restriction.Analyse(nil, now)
	require.True(t, analysis.Allowed)

	// One recent request still below the budget
	analysis = restriction.Analyse([]time.Time{now.Add(-10 * time.Second)}, now)
	require.True(t, analysis.Allowed)

	// Budget exhausted: wait until the oldest counted request expires
	history := []time.Time{now.Add(-40 * time.Second), now.Add(-10 * time.Second)}
	analysis = restriction.Analyse(history, now)
	require.False(t, analysis.Allowed)
	require.Equal(t, 20*time.Second, analysis.Wait)

	// Old requests fall out of the window
	history = []time.Time{now.Add(-2 * time.Minute), now.Add(-10 * time.Second)}
	analysis = restriction.Analyse(history, now)
	require.True(t, analysis.Allowed)
}
