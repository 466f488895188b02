package podcast

import (
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Sweeper Sessions</title>
    <item>
      <title>Episode 12</title>
      <link>https://example.com/12</link>
      <guid>ep-12</guid>
      <pubDate>Mon, 18 Aug 2025 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Episode 13</title>
      <link>https://example.com/13</link>
      <guid>ep-13</guid>
      <pubDate>Mon, 25 Aug 2025 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Episode 11</title>
      <link>https://example.com/11</link>
      <guid>ep-11</guid>
      <pubDate>Mon, 11 Aug 2025 10:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func TestNewestEpisode(t *testing.T) {
	feed, err := gofeed.NewParser().ParseString(feedXML)
	require.NoError(t, err)

	// The newest item wins regardless of feed order
	episode := newestEpisode(feed)
	require.Equal(t, "ep-13", episode.GUID)
	require.Equal(t, "Episode 13", episode.Title)
	require.Equal(t, "https://example.com/13", episode.Link)
	require.False(t, episode.Published.IsZero())
}

func TestNewestEpisodeFallsBackToLink(t *testing.T) {
	feed, err := gofeed.NewParser().ParseString(`<?xml version="1.0"?>
<rss version="2.0"><channel><title>x</title>
<item><title>Only</title><link>https://example.com/only</link></item>
</channel></rss>`)
	require.NoError(t, err)

	episode := newestEpisode(feed)
	require.Equal(t, "https://example.com/only", episode.GUID)
}
