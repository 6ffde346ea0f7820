//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/Noooste/azuretls-client"
	"golang.org/x/net/html"

	"castmind/backend/internal/config"
	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
	"castmind/backend/pkg/logger"
	"castmind/backend/pkg/network"
)

const (
	readabilityTimeout = 30 * time.Second
	pageAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// PageFetcher downloads an article page.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) ([]byte, error)
}

// ReadabilityService extracts the main text of an article's web page and caches it
// on the article.
type ReadabilityService interface {
	Extract(ctx context.Context, article model.Article) (string, error)
}

type readabilityService struct {
	articles repository.ArticleRepository
	pages    PageFetcher
}

func NewReadabilityService(articles repository.ArticleRepository, pages PageFetcher) ReadabilityService {
	return &readabilityService{articles: articles, pages: pages}
}

func (s *readabilityService) Extract(ctx context.Context, article model.Article) (string, error) {
	if article.ReadableContent != nil && *article.ReadableContent != "" {
		logger.Debug("readability cache hit", "module", "service", "action", "fetch", "resource", "article", "result", "ok", "article_id", article.ID, "cache", "hit")
		return *article.ReadableContent, nil
	}

	pageURL, err := url.Parse(article.URL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return "", fmt.Errorf("%w: article %d has no web page", ErrInvalid, article.ID)
	}

	body, err := s.pages.FetchPage(ctx, article.URL)
	if err != nil {
		logger.Warn("readability fetch failed", "module", "service", "action", "fetch", "resource", "article", "result", "failed", "article_id", article.ID, "host", pageURL.Host, "error", err)
		return "", err
	}

	parser := readability.NewParser()
	parsed, err := parser.Parse(bytes.NewReader(body), pageURL)
	if err != nil {
		logger.Warn("readability parse failed", "module", "service", "action", "parse", "resource", "article", "result", "failed", "article_id", article.ID, "host", pageURL.Host, "error", err)
		return "", fmt.Errorf("parse page: %w", err)
	}

	var buf bytes.Buffer
	if err := parsed.RenderHTML(&buf); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	content := stripMetadata(buf.Bytes())
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: page of article %d has no readable text", ErrInvalid, article.ID)
	}

	if err := s.articles.UpdateReadableContent(ctx, article.ID, content); err != nil {
		logger.Error("readability cache save failed", "module", "service", "action", "save", "resource", "article", "result", "failed", "article_id", article.ID, "error", err)
		return "", notFound(err)
	}
	logger.Info("readability cached", "module", "service", "action", "save", "resource", "article", "result", "ok", "article_id", article.ID)
	return content, nil
}

// BrowserPageFetcher fetches pages with a Chrome TLS fingerprint and browser headers.
type BrowserPageFetcher struct {
	clients *network.ClientFactory
}

func NewBrowserPageFetcher(clients *network.ClientFactory) *BrowserPageFetcher {
	return &BrowserPageFetcher{clients: clients}
}

func (f *BrowserPageFetcher) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	session := f.clients.NewAzureSession(ctx, readabilityTimeout)
	defer session.Close()

	resp, err := session.Do(&azuretls.Request{
		Method: http.MethodGet,
		Url:    pageURL,
		OrderedHeaders: azuretls.OrderedHeaders{
			{"accept", pageAccept},
			{"accept-language", "zh-CN,zh;q=0.9,en;q=0.8"},
			{"sec-ch-ua", config.ChromeSecChUa},
			{"sec-ch-ua-mobile", "?0"},
			{"sec-ch-ua-platform", `"Windows"`},
			{"sec-fetch-dest", "document"},
			{"sec-fetch-mode", "navigate"},
			{"upgrade-insecure-requests", "1"},
			{"user-agent", config.ChromeUserAgent},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// stripMetadata drops publication-date elements readability leaves in place: <time>,
// anything with a class containing "date" and itemprop="datePublished".
func stripMetadata(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return string(content)
	}

	var remove []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isDateMetadata(n) {
			remove = append(remove, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, n := range remove {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}

	root := findElement(doc, "body")
	if root == nil {
		root = doc
	}
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return string(content)
		}
	}
	return strings.TrimSpace(buf.String())
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func isDateMetadata(n *html.Node) bool {
	if n.Data == "time" {
		return true
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "class":
			for _, class := range strings.Fields(attr.Val) {
				if strings.Contains(strings.ToLower(class), "date") {
					return true
				}
			}
		case "itemprop":
			if strings.Contains(attr.Val, "datePublished") {
				return true
			}
		}
	}
	return false
}
