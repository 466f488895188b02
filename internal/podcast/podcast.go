// Package podcast polls the community podcast's RSS feed and reports
// episodes that have not been announced yet
package podcast

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"

	"sweeperleader/internal/store"
)

const lastPostedKey = "last_posted_guid"

// Episode is one podcast entry worth announcing
type Episode struct {
	GUID      string
	Title     string
	Link      string
	Published time.Time
}

// Poller remembers the last announced episode in the backing store so
// every episode is announced exactly once, across restarts too
type Poller struct {
	feedURL string
	parser  *gofeed.Parser
	kv      store.KV
}

func NewPoller(feedURL string, kv store.KV) *Poller {
	return &Poller{feedURL: feedURL, parser: gofeed.NewParser(), kv: kv}
}

// Poll fetches the feed and returns the newest episode if it has not
// been announced before, nil otherwise. The cursor is only advanced
// after the episode is handed out
func (p *Poller) Poll(ctx context.Context) (*Episode, error) {
	feed, err := p.parser.ParseURLWithContext(p.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch podcast feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, nil
	}

	episode := newestEpisode(feed)

	lastPosted, _, err := p.kv.Get(ctx, store.BucketPodcast, lastPostedKey)
	if err != nil {
		return nil, err
	}
	if episode.GUID == lastPosted {
		return nil, nil
	}

	if err := p.kv.Put(ctx, store.BucketPodcast, lastPostedKey, episode.GUID); err != nil {
		return nil, err
	}
	log.Info().Str("title", episode.Title).Msg("New podcast episode found")
	return &episode, nil
}

func newestEpisode(feed *gofeed.Feed) Episode {
	newest := feed.Items[0]
	for _, item := range feed.Items[1:] {
		if item.PublishedParsed != nil && newest.PublishedParsed != nil &&
			item.PublishedParsed.After(*newest.PublishedParsed) {
			newest = item
		}
	}
	episode := Episode{GUID: newest.GUID, Title: newest.Title, Link: newest.Link}
	if episode.GUID == "" {
		episode.GUID = newest.Link
	}
	if newest.PublishedParsed != nil {
		episode.Published = *newest.PublishedParsed
	}
	return episode
}
