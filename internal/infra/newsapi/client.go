// Package newsapi implements the feed news provider on top of the NewsAPI
// top-headlines endpoint (https://newsapi.org/docs/endpoints/top-headlines).
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/observability/logging"
	"spectrum-feed/internal/observability/metrics"
	"spectrum-feed/internal/observability/tracing"
	"spectrum-feed/internal/resilience/circuitbreaker"
	"spectrum-feed/internal/resilience/retry"
)

// ProviderName labels metrics and logs of this provider.
const ProviderName = "newsapi"

// maxSourcesPerRequest is the NewsAPI limit for the sources parameter.
const maxSourcesPerRequest = 20

// maxResponseSize caps the body read from NewsAPI.
const maxResponseSize = 4 << 20

// removedTitle marks articles NewsAPI has withdrawn.
const removedTitle = "[Removed]"

// APIError is a status:"error" payload or a non-200 response from NewsAPI.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("newsapi error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("newsapi error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap exposes the HTTP status so the retry policy can classify the error.
func (e *APIError) Unwrap() error {
	return &retry.HTTPError{StatusCode: e.StatusCode, Message: e.Message, RetryAfter: e.RetryAfter}
}

// response is the top-headlines payload.
type response struct {
	Status       string       `json:"status"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// Client fetches top headlines for catalog sources.
type Client struct {
	config         Config
	httpClient     *http.Client
	rateLimiter    *RateLimiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(cl *Client) { cl.retryConfig = cfg }
}

// WithCircuitBreaker overrides the circuit breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(cl *Client) { cl.circuitBreaker = cb }
}

// NewClient creates a NewsAPI client.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		config:         cfg,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		rateLimiter:    NewRateLimiter(cfg.RequestsPerMinute, cfg.Burst),
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsAPIConfig()),
		retryConfig:    retry.NewsAPIConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchArticles returns the current top headlines of the given sources.
// An empty id list performs no request. Ids are queried in batches of
// twenty, the NewsAPI maximum.
func (c *Client) FetchArticles(ctx context.Context, sourceIDs []string) (articles []entity.Article, err error) {
	if len(sourceIDs) == 0 {
		return []entity.Article{}, nil
	}

	ctx, span := tracing.StartSpan(ctx, "newsapi.top_headlines",
		attribute.StringSlice("newsapi.sources", sourceIDs))
	defer func() { tracing.EndSpan(span, err) }()

	start := time.Now()
	defer func() {
		metrics.RecordProviderRequest(ProviderName, time.Since(start), errorType(err))
	}()

	for batch := range slices.Chunk(sourceIDs, maxSourcesPerRequest) {
		got, err := c.fetchBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		articles = append(articles, got...)
	}

	counts := make(map[string]int, len(sourceIDs))
	for _, a := range articles {
		counts[a.SourceID]++
	}
	for _, id := range sourceIDs {
		metrics.RecordArticlesFetched(ProviderName, id, counts[id])
	}
	span.SetAttributes(attribute.Int("newsapi.articles", len(articles)))
	return articles, nil
}

func (c *Client) fetchBatch(ctx context.Context, ids []string) ([]entity.Article, error) {
	var resp *response
	err := retry.WithBackoff(ctx, c.retryConfig, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.do(ctx, ids)
		})
		if err != nil {
			return err
		}
		resp = result.(*response)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toArticles(ctx, resp.Articles), nil
}

func (c *Client) do(ctx context.Context, ids []string) (*response, error) {
	endpoint, err := url.JoinPath(c.config.BaseURL, "/v2/top-headlines")
	if err != nil {
		return nil, fmt.Errorf("build endpoint: %w", err)
	}
	q := url.Values{}
	q.Set("sources", strings.Join(ids, ","))
	q.Set("pageSize", strconv.Itoa(c.config.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var payload response
	decodeErr := json.Unmarshal(body, &payload)

	if res.StatusCode != http.StatusOK || payload.Status == "error" {
		apiErr := &APIError{
			StatusCode: res.StatusCode,
			Code:       payload.Code,
			Message:    payload.Message,
			RetryAfter: retry.ParseRetryAfter(res.Header.Get("Retry-After")),
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(res.StatusCode)
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return &payload, nil
}

// toArticles maps NewsAPI articles, dropping withdrawn or URL-less entries.
func toArticles(ctx context.Context, in []apiArticle) []entity.Article {
	out := make([]entity.Article, 0, len(in))
	for _, a := range in {
		if a.URL == "" || a.Title == removedTitle {
			continue
		}
		art := entity.Article{
			ID:       a.URL,
			Title:    strings.TrimSpace(a.Title),
			ImageURL: a.URLToImage,
		}
		if a.Source.ID != nil {
			art.SourceID = *a.Source.ID
		}
		if a.PublishedAt != "" {
			t, err := time.Parse(time.RFC3339, a.PublishedAt)
			if err != nil {
				logging.FromContext(ctx).Debug("unparsable publishedAt",
					slog.String("url", a.URL),
					slog.String("published_at", a.PublishedAt))
			} else {
				art.PublishedAt = t.UTC()
			}
		}
		out = append(out, art)
	}
	return out
}

// errorType classifies err for the provider error metric.
func errorType(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	switch {
	case circuitbreaker.IsOpenError(err):
		return "circuit_open"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests:
		return "rate_limited"
	case errors.As(err, &apiErr):
		return "api_error"
	default:
		return "transport"
	}
}
