package fortnite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"sweeperleader/internal/common"
	"sweeperleader/internal/leaderboard"
)

const STATS_SCHEMA = "https://fortnite-api.com"

const ROUTE_BR_STATS = "/v2/stats/br/v2?name=%s"

// How many stats lookups run at the same time during a leaderboard build
const BATCH_CONCURRENCY = 4

// ErrUnavailable marks a player whose stats could not be measured.
// The leaderboard build excludes such players instead of zero-filling
// them; a single unreachable player never aborts the whole build
var ErrUnavailable = errors.New("stats unavailable")

// Client talks to the fortnite-api.com battle-royale stats endpoint
type Client struct {
	proxy common.Proxy
}

func NewClient(apiKey string, restrictions []common.Restriction) *Client {
	return &Client{proxy: common.NewProxy(map[string]string{"Authorization": apiKey}, restrictions)}
}

// Lookup fetches the lifetime stats for one epic handle.
// A missing account or a failed request comes back as ErrUnavailable
func (c *Client) Lookup(ctx context.Context, handle EpicHandle) (Stats, error) {

	endpoint := STATS_SCHEMA + fmt.Sprintf(ROUTE_BR_STATS, url.QueryEscape(string(handle)))
	data, err := c.proxy.Request(ctx, endpoint)
	if err != nil {
		log.Warn().Err(err).Str("handle", string(handle)).Msg("Stats lookup failed")
		return Stats{}, fmt.Errorf("%w: %s", ErrUnavailable, handle)
	}

	stats, err := unmarshalStats(data)
	if err != nil {
		log.Warn().Err(err).Str("handle", string(handle)).Msg("Stats response not understood")
		return Stats{}, fmt.Errorf("%w: %s", ErrUnavailable, handle)
	}
	stats.Handle = handle
	return stats, nil
}

// BatchStats looks up every linked player concurrently and returns a
// leaderboard entry for each one that could be measured. Lookups that
// fail are skipped; the batch is handed to the ranker as a fixed
// snapshot
func (c *Client) BatchStats(ctx context.Context, links map[string]EpicHandle) []leaderboard.Entry {

	var mu sync.Mutex
	entries := make([]leaderboard.Entry, 0, len(links))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(BATCH_CONCURRENCY)
	for userid, handle := range links {
		userid, handle := userid, handle
		group.Go(func() error {
			stats, err := c.Lookup(ctx, handle)
			if err != nil {
				// Unavailable players are excluded, not zero-filled
				return nil
			}
			mu.Lock()
			entries = append(entries, leaderboard.Entry{
				UserID: userid,
				Handle: string(handle),
				KD:     stats.KD,
				Wins:   stats.Wins,
			})
			mu.Unlock()
			return nil
		})
	}
	group.Wait()

	log.Info().Int("linked", len(links)).Int("measured", len(entries)).Msg("Stats batch complete")
	return entries
}

// DefaultRestrictions is the rate budget we allow ourselves against
// the stats provider
func DefaultRestrictions() []common.Restriction {
	return []common.Restriction{
		{Requests: 30, Duration: time.Minute},
	}
}

func unmarshalStats(data []byte) (Stats, error) {
	var raw struct {
		Data struct {
			Stats struct {
				All struct {
					Overall struct {
						Kd      float64
						Wins    int
						Kills   int
						Matches int
					}
				}
			}
		}
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Stats{}, err
	}
	overall := raw.Data.Stats.All.Overall
	return Stats{KD: overall.Kd, Wins: overall.Wins, Kills: overall.Kills, Matches: overall.Matches}, nil
}
