package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"castmind/backend/internal/model"
	"castmind/backend/internal/opml"
	"castmind/backend/internal/service"
)

const subscriptionsYAML = `feeds:
  - name: Hacker News
    address: https://news.ycombinator.com/rss
    category: tech
  - name: Trending
    address: rsshub://github/trending/daily
    interval: 1800
  - name: Parked
    address: https://parked.example/feed
    enabled: false
  - name: Broken
    address: ftp://nope.example/feed
`

func newSubscriptionService(t *testing.T) (service.SubscriptionService, service.FeedService) {
	t.Helper()
	p := newPipeline(t)
	feeds, _ := newFeedService(t, p)
	return service.NewSubscriptionService(feeds), feeds
}

func TestSubscription_SeedFromFile(t *testing.T) {
	subs, feeds := newSubscriptionService(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "subscriptions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(subscriptionsYAML), 0o600))

	entries, err := subs.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	require.Equal(t, 1800, entries[1].Interval)
	require.False(t, *entries[2].Enabled)

	result, err := subs.Seed(ctx, entries)
	require.NoError(t, err)
	require.Equal(t, 3, result.Created)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "ftp://nope.example/feed")

	paused := model.FeedStatusPaused
	parked, err := feeds.List(ctx, &paused)
	require.NoError(t, err)
	require.Len(t, parked, 1)
	require.Equal(t, "Parked", parked[0].Name)

	// Seeding again leaves existing feeds alone.
	result, err = subs.Seed(ctx, entries)
	require.NoError(t, err)
	require.Equal(t, 3, result.Skipped)
	require.Zero(t, result.Created)
}

func TestSubscription_LoadFileErrors(t *testing.T) {
	subs, _ := newSubscriptionService(t)

	_, err := subs.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feeds: [unclosed"), 0o600))
	_, err = subs.LoadFile(path)
	require.Error(t, err)
}

func TestSubscription_OPMLRoundTrip(t *testing.T) {
	subs, feeds := newSubscriptionService(t)
	ctx := context.Background()

	doc := `<?xml version="1.0"?>
<opml version="2.0">
  <head><title>export</title></head>
  <body>
    <outline text="News">
      <outline type="rss" text="HN" title="Hacker News" xmlUrl="https://news.ycombinator.com/rss"/>
    </outline>
    <outline type="rss" text="Loose" xmlUrl="https://loose.example/feed"/>
  </body>
</opml>`

	result, err := subs.ImportOPML(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 2, result.Created)

	all, err := feeds.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	out, err := subs.ExportOPML(ctx)
	require.NoError(t, err)
	parsed, err := opml.Parse(strings.NewReader(string(out)))
	require.NoError(t, err)

	exported := parsed.Subscriptions()
	require.Len(t, exported, 2)
	byAddress := map[string]opml.Subscription{}
	for _, s := range exported {
		byAddress[s.Address] = s
	}
	require.Equal(t, "Hacker News", byAddress["https://news.ycombinator.com/rss"].Name)
	require.Equal(t, "News", byAddress["https://news.ycombinator.com/rss"].Category)

	_, err = subs.ImportOPML(ctx, strings.NewReader("<opml><body>"))
	require.ErrorIs(t, err, service.ErrInvalid)
}
