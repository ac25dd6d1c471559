// Package scraper provides the RSS/Atom news provider.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spectrum-feed/internal/resilience/circuitbreaker"
	"spectrum-feed/internal/resilience/retry"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/sony/gobreaker"
)

// FeedItem is one parsed feed entry.
type FeedItem struct {
	Title       string
	URL         string
	ImageURL    string
	PublishedAt time.Time
}

// RSSFetcher fetches and parses RSS/Atom feeds.
// It includes circuit breaker and retry logic for improved reliability.
type RSSFetcher struct {
	client         *http.Client
	userAgent      string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	now            func() time.Time
}

// FetcherOption customises an RSSFetcher.
type FetcherOption func(*RSSFetcher)

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg retry.Config) FetcherOption {
	return func(f *RSSFetcher) { f.retryConfig = cfg }
}

// WithCircuitBreaker overrides the circuit breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) FetcherOption {
	return func(f *RSSFetcher) { f.circuitBreaker = cb }
}

// WithUserAgent sets the User-Agent header sent to feed hosts.
func WithUserAgent(ua string) FetcherOption {
	return func(f *RSSFetcher) { f.userAgent = ua }
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// It automatically configures circuit breaker and retry logic.
func NewRSSFetcher(client *http.Client, opts ...FetcherOption) *RSSFetcher {
	f := &RSSFetcher{
		client:         client,
		userAgent:      DefaultUserAgent,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]FeedItem, error) {
	var items []FeedItem

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}

		items = cbResult.([]FeedItem)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = f.userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		// ステータスコードをリトライ判定に渡す
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &retry.HTTPError{StatusCode: httpErr.StatusCode, Message: httpErr.Status}
		}
		return nil, err
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		link := strings.TrimSpace(it.Link)
		if link == "" {
			continue
		}

		pubAt := f.now()
		switch {
		case it.PublishedParsed != nil:
			pubAt = *it.PublishedParsed
		case it.UpdatedParsed != nil:
			pubAt = *it.UpdatedParsed
		}

		items = append(items, FeedItem{
			Title:       strings.TrimSpace(it.Title),
			URL:         link,
			ImageURL:    itemImage(it),
			PublishedAt: pubAt.UTC(),
		})
	}

	return items, nil
}

// itemImage picks the item image, then an image enclosure, then Media RSS.
func itemImage(it *gofeed.Item) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	for _, enc := range it.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return mediaImage(it.Extensions)
}

func mediaImage(exts ext.Extensions) string {
	media, ok := exts["media"]
	if !ok {
		return ""
	}
	for _, name := range []string{"content", "thumbnail"} {
		for _, e := range media[name] {
			if medium := e.Attrs["medium"]; medium != "" && medium != "image" {
				continue
			}
			if u := e.Attrs["url"]; u != "" {
				return u
			}
		}
	}
	// media:group 配下
	for _, g := range media["group"] {
		for _, name := range []string{"content", "thumbnail"} {
			for _, e := range g.Children[name] {
				if u := e.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}
	return ""
}
