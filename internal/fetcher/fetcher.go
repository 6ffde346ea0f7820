package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Noooste/azuretls-client"
	"github.com/mmcdole/gofeed"

	"castmind/backend/internal/config"
	"castmind/backend/internal/model"
	"castmind/backend/pkg/logger"
	"castmind/backend/pkg/network"
)

const (
	defaultAttemptTimeout = 20 * time.Second
	defaultTotalTimeout   = 60 * time.Second
	defaultMaxEntries     = 50
	maxBodySize           = 10 << 20
	feedAccept            = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.9, */*;q=0.8"
)

var (
	errHTMLPage  = errors.New("response is an html page, not a feed")
	errNoEntries = errors.New("feed document has no entries")
)

// StatusError is an HTTP error answer from a candidate.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

type Options struct {
	UserAgent       string
	AttemptTimeout  time.Duration
	TotalTimeout    time.Duration
	MaxEntries      int
	HostRate        float64
	BrowserFallback bool
}

// ParsedFeed is a fetched document: feed-level metadata plus at most MaxEntries items in source order.
type ParsedFeed struct {
	SourceURL   string
	Title       string
	Description string
	Link        string
	UpdatedAt   *time.Time
	Kind        model.FeedKind
	Items       []*gofeed.Item
}

// Metadata returns the document fields stored on the feed after a successful fetch.
func (p *ParsedFeed) Metadata() model.FeedMetadata {
	return model.FeedMetadata{
		Title:       p.Title,
		Description: p.Description,
		SiteURL:     p.Link,
		Kind:        p.Kind,
	}
}

type Fetcher struct {
	clients *network.ClientFactory
	limiter *hostLimiter
	opts    Options
}

func New(clients *network.ClientFactory, intervals HostIntervals, opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = defaultAttemptTimeout
	}
	if opts.TotalTimeout <= 0 {
		opts.TotalTimeout = defaultTotalTimeout
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = defaultMaxEntries
	}
	return &Fetcher{
		clients: clients,
		limiter: newHostLimiter(opts.HostRate, intervals),
		opts:    opts,
	}
}

// Fetch tries candidates in order and returns the first usable document.
// The error, when not nil, is a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, candidates []string) (*ParsedFeed, error) {
	ctx, cancel := context.WithTimeout(ctx, f.opts.TotalTimeout)
	defer cancel()

	return TryInOrder(ctx, candidates, f.attempt)
}

func (f *Fetcher) attempt(ctx context.Context, candidate string) (*ParsedFeed, error) {
	host := network.ExtractHost(candidate)
	if err := f.limiter.wait(ctx, host); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.opts.AttemptTimeout)
	defer cancel()

	body, contentType, status, err := f.get(ctx, candidate)
	if err == nil && f.opts.BrowserFallback && blocked(status) {
		logger.Debug("retrying with browser session", "module", "fetcher", "action", "fetch", "resource", "feed", "result", "failed", "host", host, "status_code", status)
		body, contentType, status, err = f.getWithBrowser(ctx, candidate)
	}
	if err != nil {
		logger.Debug("candidate request failed", "module", "fetcher", "action", "fetch", "resource", "feed", "result", "failed", "host", host, "error", err)
		return nil, err
	}
	if status >= http.StatusBadRequest {
		logger.Debug("candidate http error", "module", "fetcher", "action", "fetch", "resource", "feed", "result", "failed", "host", host, "status_code", status)
		return nil, &StatusError{Code: status}
	}

	parsed, err := f.parse(body, contentType)
	if err != nil {
		logger.Debug("candidate rejected", "module", "fetcher", "action", "parse", "resource", "feed", "result", "failed", "host", host, "error", err)
		return nil, err
	}
	parsed.SourceURL = candidate
	return parsed, nil
}

func (f *Fetcher) get(ctx context.Context, target string) ([]byte, string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", 0, err
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", feedAccept)

	client := f.clients.NewHTTPClient(ctx, f.opts.AttemptTimeout)
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, "", resp.StatusCode, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), resp.StatusCode, nil
}

// getWithBrowser repeats a request with a Chrome TLS fingerprint for hosts that block plain clients.
func (f *Fetcher) getWithBrowser(ctx context.Context, target string) ([]byte, string, int, error) {
	session := f.clients.NewAzureSession(ctx, f.opts.AttemptTimeout)
	defer session.Close()

	resp, err := session.Do(&azuretls.Request{
		Method: http.MethodGet,
		Url:    target,
		OrderedHeaders: azuretls.OrderedHeaders{
			{"accept", feedAccept},
			{"accept-language", "en-US,en;q=0.9,zh-CN;q=0.8"},
			{"sec-ch-ua", config.ChromeSecChUa},
			{"sec-ch-ua-mobile", "?0"},
			{"sec-ch-ua-platform", `"Windows"`},
			{"user-agent", config.ChromeUserAgent},
		},
	})
	if err != nil {
		return nil, "", 0, fmt.Errorf("browser request: %w", err)
	}
	return resp.Body, resp.Header.Get("Content-Type"), resp.StatusCode, nil
}

func (f *Fetcher) parse(body []byte, contentType string) (*ParsedFeed, error) {
	if looksLikeHTML(body, contentType) {
		return nil, errHTMLPage
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, errNoEntries
	}

	items := feed.Items
	if len(items) > f.opts.MaxEntries {
		items = items[:f.opts.MaxEntries]
	}

	parsed := &ParsedFeed{
		Title:       strings.TrimSpace(feed.Title),
		Description: strings.TrimSpace(feed.Description),
		Link:        strings.TrimSpace(feed.Link),
		Kind:        detectKind(feed),
		Items:       items,
	}
	switch {
	case feed.UpdatedParsed != nil:
		parsed.UpdatedAt = feed.UpdatedParsed
	case feed.PublishedParsed != nil:
		parsed.UpdatedAt = feed.PublishedParsed
	}
	return parsed, nil
}

func blocked(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// looksLikeHTML reports whether body is a web page rather than a feed document.
func looksLikeHTML(body []byte, contentType string) bool {
	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = bytes.ToLower(bytes.TrimSpace(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))))

	if bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html")) {
		return true
	}
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return !bytes.HasPrefix(head, []byte("<?xml")) &&
			!bytes.Contains(head, []byte("<rss")) &&
			!bytes.Contains(head, []byte("<feed")) &&
			!bytes.HasPrefix(head, []byte("{"))
	}
	return false
}

func detectKind(feed *gofeed.Feed) model.FeedKind {
	if feed.ITunesExt != nil {
		return model.FeedKindPodcast
	}
	for _, item := range feed.Items {
		for _, enc := range item.Enclosures {
			if enc != nil && strings.HasPrefix(strings.ToLower(enc.Type), "audio/") {
				return model.FeedKindPodcast
			}
		}
	}
	if feed.FeedType == "atom" {
		return model.FeedKindAtom
	}
	return model.FeedKindRSS
}
