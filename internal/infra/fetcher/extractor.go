package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"go.opentelemetry.io/otel/attribute"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/observability/tracing"
	"spectrum-feed/internal/resilience/circuitbreaker"
	"spectrum-feed/internal/resilience/retry"
)

// ReadabilityExtractor fetches article pages and extracts their readable
// content with go-shiori/go-readability. Page metadata missing from the
// readability result is filled from the raw HTML, and the extracted HTML is
// sanitised before it is returned.
//
// Features:
//   - SSRF prevention via URL validation (initial URL and every redirect)
//   - Retry with backoff for transient failures
//   - Circuit breaker for fault tolerance
//   - Size limiting and per-request timeout
//
// Thread safety: ReadabilityExtractor is safe for concurrent use.
type ReadabilityExtractor struct {
	client         *http.Client
	resolver       *net.Resolver
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	sanitizer      *Sanitizer
	config         ExtractConfig
}

// Option customises a ReadabilityExtractor.
type Option func(*ReadabilityExtractor)

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(e *ReadabilityExtractor) { e.retryConfig = cfg }
}

// WithCircuitBreaker overrides the circuit breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(e *ReadabilityExtractor) { e.circuitBreaker = cb }
}

// NewReadabilityExtractor creates a new ReadabilityExtractor with the given configuration.
//
// Example:
//
//	config := DefaultConfig()
//	extractor := NewReadabilityExtractor(config)
//	article, err := extractor.Extract(ctx, "https://example.com/article")
func NewReadabilityExtractor(config ExtractConfig, opts ...Option) *ReadabilityExtractor {
	e := &ReadabilityExtractor{
		resolver:       net.DefaultResolver,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ArticleFetchConfig()),
		retryConfig:    retry.ArticleFetchConfig(),
		sanitizer:      NewSanitizer(),
		config:         config,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > e.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			// リダイレクト先も SSRF チェック
			if err := validateURL(req.Context(), e.resolver, req.URL.String(), e.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return e
}

// page is a fetched HTML document.
type page struct {
	html     []byte
	finalURL *url.URL
}

// Extract fetches the page at urlStr and returns its readable content.
//
// Errors:
//   - ErrInvalidURL, ErrPrivateIP: the URL must not be fetched
//   - ErrTooManyRedirects, ErrBodyTooLarge, ErrTimeout, ErrNotHTML: fetch failed
//   - ErrReadabilityFailed: no readable content
//   - *retry.HTTPError: non-200 response
//   - gobreaker.ErrOpenState: circuit breaker is open
func (e *ReadabilityExtractor) Extract(ctx context.Context, urlStr string) (art *entity.ExtractedArticle, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.extract", attribute.String("url.full", urlStr))
	defer func() { tracing.EndSpan(span, err) }()

	if err := validateURL(ctx, e.resolver, urlStr, e.config.DenyPrivateIPs); err != nil {
		return nil, err
	}

	var pg *page
	err = retry.WithBackoff(ctx, e.retryConfig, func() error {
		result, err := e.circuitBreaker.Execute(func() (interface{}, error) {
			return e.fetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}
		pg = result.(*page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return e.extract(urlStr, pg)
}

// fetch performs the HTTP request with size limiting.
func (e *ReadabilityExtractor) fetch(ctx context.Context, urlStr string) (*page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", e.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.1")

	resp, err := e.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: request exceeded %v", ErrTimeout, e.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && (errors.Is(urlErr.Err, ErrTooManyRedirects) || errors.Is(urlErr.Err, entity.ErrInvalidInput)) {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, _ := mime.ParseMediaType(ct)
		if mediaType != "text/html" && mediaType != "application/xhtml+xml" {
			return nil, fmt.Errorf("%w: %s", ErrNotHTML, mediaType)
		}
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, e.config.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > e.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response exceeds limit %d bytes", ErrBodyTooLarge, e.config.MaxBodySize)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}
	return &page{html: htmlBytes, finalURL: finalURL}, nil
}

// extract runs readability over the page and merges in page metadata.
func (e *ReadabilityExtractor) extract(urlStr string, pg *page) (*entity.ExtractedArticle, error) {
	parsed, err := readability.FromReader(bytes.NewReader(pg.html), pg.finalURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadabilityFailed, err)
	}

	text := strings.TrimSpace(parsed.TextContent)
	if text == "" {
		return nil, fmt.Errorf("%w: no readable content found", ErrReadabilityFailed)
	}

	meta, err := parseMetadata(bytes.NewReader(pg.html), pg.finalURL)
	if err != nil {
		// メタデータは補助情報なので失敗しても続行
		slog.Debug("metadata parse failed", slog.String("url", urlStr), slog.Any("error", err))
	}

	art := &entity.ExtractedArticle{
		URL:          urlStr,
		CanonicalURL: meta.CanonicalURL,
		Title:        strings.TrimSpace(parsed.Title),
		Byline:       strings.TrimSpace(parsed.Byline),
		SiteName:     strings.TrimSpace(parsed.SiteName),
		Excerpt:      strings.TrimSpace(parsed.Excerpt),
		Content:      e.sanitizer.Sanitize(parsed.Content),
		TextContent:  text,
		ImageURL:     resolve(pg.finalURL, strings.TrimSpace(parsed.Image)),
		PublishedAt:  parsed.PublishedTime,
		Length:       len([]rune(text)),
	}

	if art.Title == "" {
		art.Title = meta.Title
	}
	if art.SiteName == "" {
		art.SiteName = meta.SiteName
	}
	if art.ImageURL == "" {
		art.ImageURL = meta.ImageURL
	}
	if art.PublishedAt == nil {
		art.PublishedAt = meta.PublishedAt
	}
	if art.PublishedAt != nil {
		t := art.PublishedAt.UTC()
		art.PublishedAt = &t
	}
	return art, nil
}
