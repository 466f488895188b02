package fortnite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalStats(t *testing.T) {
	payload := `{
		"status": 200,
		"data": {
			"account": {"id": "abc", "name": "SweeperMain"},
			"stats": {
				"all": {
					"overall": {
						"wins": 42,
						"kills": 1234,
						"matches": 800,
						"kd": 1.63
					}
				}
			}
		}
	}`

	stats, err := unmarshalStats([]byte(payload))
	require.NoError(t, err)
	require.Equal(t, 1.63, stats.KD)
	require.Equal(t, 42, stats.Wins)
	require.Equal(t, 1234, stats.Kills)
	require.Equal(t, 800, stats.Matches)
}

func TestUnmarshalStatsGarbage(t *testing.T) {
	_, err := unmarshalStats([]byte("not json"))
	require.Error(t, err)
}

func TestUnmarshalStatsMissingSections(t *testing.T) {
	// A well-formed response without stats decodes to zero values;
	// such players simply rank at the bottom if they got this far
	stats, err := unmarshalStats([]byte(`{"status": 200, "data": {}}`))
	require.NoError(t, err)
	require.Zero(t, stats.KD)
	require.Zero(t, stats.Wins)
}
