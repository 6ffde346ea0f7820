package fetcher_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"castmind/backend/internal/fetcher"
	"castmind/backend/internal/model"
	"castmind/backend/internal/resolver"
	"castmind/backend/pkg/network"
)

const htmlErrorPage = `<!DOCTYPE html><html><head><title>Error</title></head><body>Route not found</body></html>`

func rssDocument(items int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Test Feed</title><link>https://example.org</link><description>desc</description>`)
	for i := 0; i < items; i++ {
		fmt.Fprintf(&b, `<item><title>Item %d</title><link>https://example.org/items/%d</link></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

const podcastDocument = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
  <title>Show</title>
  <itunes:author>Host</itunes:author>
  <item>
    <title>Episode</title>
    <link>https://example.org/ep1</link>
    <enclosure url="https://cdn.example.org/ep1.mp3" type="audio/mpeg" length="1048576"/>
  </item>
</channel>
</rss>`

const atomDocument = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <updated>2024-01-02T03:04:05Z</updated>
  <entry><title>Entry</title><link href="https://example.org/a1"/><id>urn:a1</id><updated>2024-01-02T03:04:05Z</updated></entry>
</feed>`

func newFetcher(opts fetcher.Options) *fetcher.Fetcher {
	return fetcher.New(network.NewClientFactory(nil), nil, opts)
}

func TestFetch_MirrorFallback(t *testing.T) {
	var m1Hits, m2Hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/m1/"):
			m1Hits.Add(1)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(htmlErrorPage))
		case strings.HasPrefix(r.URL.Path, "/m2/"):
			m2Hits.Add(1)
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(rssDocument(2)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	r := resolver.New([]string{server.URL + "/m1", server.URL + "/m2"})
	candidates := r.Resolve("rsshub://twitter/user/x")
	require.Len(t, candidates, 3)

	parsed, err := newFetcher(fetcher.Options{}).Fetch(context.Background(), candidates)
	require.NoError(t, err)
	require.Equal(t, server.URL+"/m2/twitter/user/x", parsed.SourceURL)
	require.Equal(t, "Test Feed", parsed.Title)
	require.Len(t, parsed.Items, 2)
	require.Equal(t, int32(2), m1Hits.Load())
	require.Equal(t, int32(1), m2Hits.Load())
}

func TestFetch_ZeroEntriesIsNonMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			_, _ = w.Write([]byte(rssDocument(0)))
			return
		}
		_, _ = w.Write([]byte(rssDocument(1)))
	}))
	defer server.Close()

	parsed, err := newFetcher(fetcher.Options{}).Fetch(context.Background(), []string{server.URL + "/empty", server.URL + "/full"})
	require.NoError(t, err)
	require.Equal(t, server.URL+"/full", parsed.SourceURL)
	require.Len(t, parsed.Items, 1)
}

func TestFetch_TruncatesEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssDocument(60)))
	}))
	defer server.Close()

	parsed, err := newFetcher(fetcher.Options{}).Fetch(context.Background(), []string{server.URL})
	require.NoError(t, err)
	require.Len(t, parsed.Items, 50)
	require.Equal(t, "Item 0", parsed.Items[0].Title)
	require.Equal(t, "Item 49", parsed.Items[49].Title)

	parsed, err = newFetcher(fetcher.Options{MaxEntries: 5}).Fetch(context.Background(), []string{server.URL})
	require.NoError(t, err)
	require.Len(t, parsed.Items, 5)
}

func TestFetch_AllCandidatesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/garbage" {
			_, _ = w.Write([]byte("this is not xml"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newFetcher(fetcher.Options{}).Fetch(context.Background(), []string{server.URL + "/garbage", server.URL + "/down"})
	require.Error(t, err)

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 2, fetchErr.Attempts)
	require.Equal(t, server.URL+"/down", fetchErr.Candidate)

	var statusErr *fetcher.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadGateway, statusErr.Code)
}

func TestFetch_DetectsKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/podcast":
			_, _ = w.Write([]byte(podcastDocument))
		case "/atom":
			w.Header().Set("Content-Type", "application/atom+xml")
			_, _ = w.Write([]byte(atomDocument))
		default:
			_, _ = w.Write([]byte(rssDocument(1)))
		}
	}))
	defer server.Close()

	f := newFetcher(fetcher.Options{})
	tests := []struct {
		path string
		want model.FeedKind
	}{
		{"/podcast", model.FeedKindPodcast},
		{"/atom", model.FeedKindAtom},
		{"/rss", model.FeedKindRSS},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			parsed, err := f.Fetch(context.Background(), []string{server.URL + tt.path})
			require.NoError(t, err)
			require.Equal(t, tt.want, parsed.Kind)
		})
	}

	parsed, err := f.Fetch(context.Background(), []string{server.URL + "/atom"})
	require.NoError(t, err)
	require.NotNil(t, parsed.UpdatedAt)
	require.Equal(t, model.FeedMetadata{Title: "Atom Feed", Kind: model.FeedKindAtom}, parsed.Metadata())
}

func TestFetch_XMLServedAsHTMLIsAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(rssDocument(1)))
	}))
	defer server.Close()

	parsed, err := newFetcher(fetcher.Options{}).Fetch(context.Background(), []string{server.URL})
	require.NoError(t, err)
	require.Len(t, parsed.Items, 1)
}

func TestFetch_AttemptTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			select {
			case <-release:
			case <-r.Context().Done():
			}
			return
		}
		_, _ = w.Write([]byte(rssDocument(1)))
	}))
	defer server.Close()
	defer close(release)

	f := newFetcher(fetcher.Options{AttemptTimeout: 100 * time.Millisecond, TotalTimeout: 5 * time.Second})
	start := time.Now()
	parsed, err := f.Fetch(context.Background(), []string{server.URL + "/slow", server.URL + "/fast"})
	require.NoError(t, err)
	require.Equal(t, server.URL+"/fast", parsed.SourceURL)
	require.Less(t, time.Since(start), 3*time.Second)
}

type fixedIntervals time.Duration

func (f fixedIntervals) GetIntervalDuration(ctx context.Context, host string) time.Duration {
	return time.Duration(f)
}

func TestFetch_HostIntervalSpacesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssDocument(1)))
	}))
	defer server.Close()

	f := fetcher.New(network.NewClientFactory(nil), fixedIntervals(150*time.Millisecond), fetcher.Options{})
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := f.Fetch(context.Background(), []string{server.URL})
		require.NoError(t, err)
	}
	require.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
}

func TestFetch_NoCandidates(t *testing.T) {
	_, err := newFetcher(fetcher.Options{}).Fetch(context.Background(), nil)
	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Zero(t, fetchErr.Attempts)
}

func TestTryInOrder(t *testing.T) {
	t.Run("first success short-circuits", func(t *testing.T) {
		var calls []string
		got, err := fetcher.TryInOrder(context.Background(), []string{"a", "b", "c"}, func(ctx context.Context, c string) (string, error) {
			calls = append(calls, c)
			if c == "b" {
				return "ok:" + c, nil
			}
			return "", errors.New("bad " + c)
		})
		require.NoError(t, err)
		require.Equal(t, "ok:b", got)
		require.Equal(t, []string{"a", "b"}, calls)
	})

	t.Run("keeps last diagnostic", func(t *testing.T) {
		_, err := fetcher.TryInOrder(context.Background(), []string{"a", "b"}, func(ctx context.Context, c string) (int, error) {
			return 0, errors.New("bad " + c)
		})
		var fetchErr *fetcher.FetchError
		require.ErrorAs(t, err, &fetchErr)
		require.Equal(t, 2, fetchErr.Attempts)
		require.EqualError(t, fetchErr.Err, "bad b")
	})

	t.Run("stops when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := fetcher.TryInOrder(ctx, []string{"a", "b", "c"}, func(ctx context.Context, c string) (int, error) {
			calls++
			cancel()
			return 0, errors.New("bad " + c)
		})
		require.Error(t, err)
		require.Equal(t, 1, calls)
		require.ErrorContains(t, err, "bad a")
	})
}
