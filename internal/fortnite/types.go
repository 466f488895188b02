package fortnite

// EpicHandle is the display name used to query the stats provider
type EpicHandle string

// Stats is the slice of a player's lifetime battle-royale stats the
// bot cares about. KD ranks the leaderboard, Wins breaks ties
type Stats struct {
	Handle  EpicHandle
	KD      float64
	Wins    int
	Kills   int
	Matches int
}
