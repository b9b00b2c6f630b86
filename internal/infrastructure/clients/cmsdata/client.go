package cmsdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/providers"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultCacheTTL    = 30 * time.Minute
	maxErrorBodyBytes  = 500

	// MinPageDelay and MaxPages bound every fetch; options can only tighten them.
	MinPageDelay = 100 * time.Millisecond
	MaxPages     = 50
)

// FetchResult is the outcome of one paginated fetch.
type FetchResult struct {
	Rows      []RawRow
	PageCount int
	HasMore   bool
}

// StatusError is returned when the dataset API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dataset API returned status %d: %s", e.StatusCode, e.Body)
}

// Fetcher is the paginated read interface consumed by the medicare adapter.
type Fetcher interface {
	FetchPaginated(ctx context.Context, baseURL string, filters []Filter, opts FetchOptions) (*FetchResult, error)
}

// Client drives paginated reads against the CMS data API.
type Client struct {
	httpClient *http.Client
	cache      providers.CacheProvider
	cacheTTL   time.Duration
	pageDelay  time.Duration
	maxPages   int
	metrics    *observability.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (used for tests).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithHTTPTimeout sets the per-request timeout of the default HTTP client.
func WithHTTPTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.httpClient.Timeout = d
		}
	}
}

// WithCache sets the response cache and its entry TTL.
func WithCache(cache providers.CacheProvider, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = cache
		if ttl > 0 {
			cl.cacheTTL = ttl
		}
	}
}

// WithPageDelay sets the spacing between page requests of one fetch. Values
// below MinPageDelay are raised to it.
func WithPageDelay(d time.Duration) Option {
	return func(cl *Client) {
		cl.pageDelay = max(d, MinPageDelay)
	}
}

// WithMaxPages lowers the per-fetch page cap. Values outside 1..MaxPages
// leave the cap at MaxPages.
func WithMaxPages(n int) Option {
	return func(cl *Client) {
		if n > 0 && n <= MaxPages {
			cl.maxPages = n
		}
	}
}

// WithMetrics attaches OpenTelemetry instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// NewClient creates a dataset client. Without WithCache every page is fetched
// from the network.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		cacheTTL:   defaultCacheTTL,
		pageDelay:  MinPageDelay,
		maxPages:   MaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPaginated reads pages from baseURL until the data is exhausted, a short
// page arrives, MaxTotalResults rows are accumulated, or the page cap is hit.
// Any transport or HTTP error aborts the whole fetch.
func (c *Client) FetchPaginated(ctx context.Context, baseURL string, filters []Filter, opts FetchOptions) (*FetchResult, error) {
	opts = opts.WithDefaults()
	dataset := datasetLabel(baseURL)

	ctx, span := observability.StartSpan(ctx, "cmsdata.FetchPaginated")
	defer span.End()
	logger := observability.LoggerFromContext(ctx)

	limiter := rate.NewLimiter(rate.Every(c.pageDelay), 1)

	offset := opts.Offset
	accumulated := make([]RawRow, 0, min(opts.MaxTotalResults, opts.PageSize))
	pageCount := 0
	hasMore := true

	for hasMore && len(accumulated) < opts.MaxTotalResults {
		if pageCount >= c.maxPages {
			logger.Warn().
				Str("dataset", dataset).
				Int("pages", pageCount).
				Int("rows", len(accumulated)).
				Msg("Page cap reached, stopping pagination")
			break
		}

		if err := limiter.Wait(ctx); err != nil {
			return nil, apperrors.NewExternalError("dataset fetch cancelled", err)
		}

		pageOpts := opts
		pageOpts.Offset = offset
		pageURL := BuildFilterURL(baseURL, filters, pageOpts)

		rows, ok, err := c.fetchPage(ctx, dataset, pageURL)
		if err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
		if !ok || len(rows) == 0 {
			hasMore = false
			break
		}

		accumulated = append(accumulated, rows...)
		pageCount++

		if opts.FetchAllPages && len(rows) == opts.PageSize {
			offset += len(rows)
		} else {
			hasMore = false
		}
	}

	if len(accumulated) > opts.MaxTotalResults {
		accumulated = accumulated[:opts.MaxTotalResults]
		hasMore = true
	}

	observability.SetSpanAttributes(span,
		attribute.String("cms.dataset", dataset),
		attribute.Int("cms.pages", pageCount),
		attribute.Int("cms.rows", len(accumulated)),
		attribute.Bool("cms.has_more", hasMore),
	)

	return &FetchResult{
		Rows:      accumulated,
		PageCount: pageCount,
		HasMore:   hasMore,
	}, nil
}

// fetchPage returns the rows of one page. ok is false when the body is not a
// JSON array, which callers treat as the end of the data.
func (c *Client) fetchPage(ctx context.Context, dataset, pageURL string) ([]RawRow, bool, error) {
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, pageURL); err == nil {
			if rows, ok := decodeRows(cached); ok {
				observability.RecordCacheHit(ctx, c.metrics, dataset)
				return rows, true, nil
			}
		} else if !errors.Is(err, providers.ErrCacheMiss) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Response cache read failed")
		}
		observability.RecordCacheMiss(ctx, c.metrics, dataset)
	}

	body, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, false, err
	}

	rows, ok := decodeRows(body)
	if !ok {
		observability.LoggerFromContext(ctx).Warn().
			Str("dataset", dataset).
			Msg("Dataset API returned a non-array body, treating as end of data")
		return nil, false, nil
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, pageURL, body, ttlSeconds(c.cacheTTL)); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Response cache write failed")
		}
	}
	return rows, true, nil
}

func (c *Client) get(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("building dataset request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordUpstreamMetric(ctx, c.metrics, 0, time.Since(start))
		return nil, apperrors.NewExternalError("querying dataset API", err)
	}
	defer resp.Body.Close()
	observability.RecordUpstreamMetric(ctx, c.metrics, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewExternalError("reading dataset response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBodyBytes {
			snippet = snippet[:maxErrorBodyBytes]
		}
		statusErr := &StatusError{StatusCode: resp.StatusCode, URL: pageURL, Body: snippet}
		return nil, apperrors.NewExternalError("dataset API request failed", statusErr)
	}

	return body, nil
}

// ttlSeconds rounds up so a sub-second TTL never becomes 0, which Redis
// treats as no expiry.
func ttlSeconds(d time.Duration) int {
	return max(int((d+time.Second-1)/time.Second), 1)
}

func decodeRows(body []byte) ([]RawRow, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var rows []RawRow
	if err := dec.Decode(&rows); err != nil {
		return nil, false
	}
	return rows, true
}

// datasetLabel extracts the dataset identifier from ".../dataset/{id}/data".
func datasetLabel(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "unknown"
	}
	p := strings.TrimSuffix(u.Path, "/")
	if path.Base(p) == "data" {
		p = path.Dir(p)
	}
	if label := path.Base(p); label != "." && label != "/" {
		return label
	}
	return "unknown"
}
