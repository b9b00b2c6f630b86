package cmsdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/physiciansearch/backend/internal/adapters/cache"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

// pageServer answers every request with rowsFor(offset, size) rows.
func pageServer(t *testing.T, rowsFor func(offset, size int) int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		n := rowsFor(offset, size)
		rows := make([]map[string]any, n)
		for i := range rows {
			rows[i] = map[string]any{"Rndrng_NPI": fmt.Sprintf("%010d", offset+i)}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rows)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

// withoutPageDelay removes page spacing so pagination tests run fast.
func withoutPageDelay() Option {
	return func(c *Client) {
		c.pageDelay = 0
	}
}

func newTestClient(srv *httptest.Server, opts ...Option) *Client {
	base := []Option{WithHTTPClient(srv.Client()), withoutPageDelay()}
	return NewClient(append(base, opts...)...)
}

func TestFetchPaginated_StopsAtPageCap(t *testing.T) {
	srv, calls := pageServer(t, func(offset, size int) int { return size })
	client := newTestClient(srv)

	result, err := client.FetchPaginated(context.Background(), srv.URL+"/dataset/x/data", nil, FetchOptions{
		PageSize:        2,
		FetchAllPages:   true,
		MaxTotalResults: 1000,
	})

	require.NoError(t, err)
	assert.Equal(t, 50, result.PageCount)
	assert.Equal(t, int32(50), atomic.LoadInt32(calls))
	assert.Len(t, result.Rows, 100)
	assert.True(t, result.HasMore)
}

func TestFetchPaginated_ShortPageEndsPagination(t *testing.T) {
	srv, calls := pageServer(t, func(offset, size int) int {
		if offset >= 20 {
			return 3
		}
		return size
	})
	client := newTestClient(srv)

	result, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{
		PageSize:        10,
		FetchAllPages:   true,
		MaxTotalResults: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.PageCount)
	assert.Len(t, result.Rows, 23)
	assert.False(t, result.HasMore)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	assert.Equal(t, "0000000020", result.Rows[20]["Rndrng_NPI"])
}

func TestFetchPaginated_SinglePageWithoutFetchAll(t *testing.T) {
	srv, calls := pageServer(t, func(offset, size int) int { return size })
	client := newTestClient(srv)

	result, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{PageSize: 5})

	require.NoError(t, err)
	assert.Equal(t, 1, result.PageCount)
	assert.Len(t, result.Rows, 5)
	assert.False(t, result.HasMore)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestFetchPaginated_RespectsMaxTotalResults(t *testing.T) {
	srv, calls := pageServer(t, func(offset, size int) int { return size })
	client := newTestClient(srv)

	result, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{
		PageSize:        10,
		FetchAllPages:   true,
		MaxTotalResults: 25,
	})

	require.NoError(t, err)
	assert.Len(t, result.Rows, 25)
	assert.Equal(t, 3, result.PageCount)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestFetchPaginated_EmptyPage(t *testing.T) {
	srv, _ := pageServer(t, func(offset, size int) int { return 0 })
	client := newTestClient(srv)

	result, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{FetchAllPages: true})

	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Zero(t, result.PageCount)
	assert.False(t, result.HasMore)
}

func TestFetchPaginated_MalformedBodyIsEndOfData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"not a list"}`))
	}))
	defer srv.Close()

	memCache := cache.NewMemoryAdapter()
	client := newTestClient(srv, WithCache(memCache, time.Minute))

	result, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{})

	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.False(t, result.HasMore)
	assert.Zero(t, memCache.Len())
}

func TestFetchPaginated_HTTPErrorPropagates(t *testing.T) {
	longBody := strings.Repeat("x", 2000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(longBody))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Len(t, statusErr.Body, 500)
}

func TestFetchPaginated_SendsAcceptHeader(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "application/json", accept)
}

func TestFetchPaginated_CacheHitAvoidsNetwork(t *testing.T) {
	srv, calls := pageServer(t, func(offset, size int) int { return 3 })
	client := newTestClient(srv, WithCache(cache.NewMemoryAdapter(), 30*time.Minute))
	filters := []Filter{{Field: "Rndrng_Prvdr_State_Abrvtn", Operator: OpEqual, Value: "CA"}}

	first, err := client.FetchPaginated(context.Background(), srv.URL, filters, FetchOptions{})
	require.NoError(t, err)
	second, err := client.FetchPaginated(context.Background(), srv.URL, filters, FetchOptions{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, first.Rows, second.Rows)
}

func TestFetchPaginated_CacheExpiryRefetches(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	srv, calls := pageServer(t, func(offset, size int) int { return 1 })
	client := newTestClient(srv, WithCache(cache.NewMemoryAdapterWithClock(clock), 30*time.Minute))

	_, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{})
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(29 * time.Minute)
	mu.Unlock()
	_, err = client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()
	_, err = client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestFetchPaginated_DefaultSpacingBetweenPages(t *testing.T) {
	srv, calls := pageServer(t, func(offset, size int) int {
		if offset >= 4 {
			return 0
		}
		return size
	})
	client := NewClient(WithHTTPClient(srv.Client()))

	start := time.Now()
	result, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{PageSize: 2, FetchAllPages: true})
	require.NoError(t, err)

	// Three requests, two gaps.
	assert.Equal(t, 2, result.PageCount)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	assert.GreaterOrEqual(t, time.Since(start), 2*MinPageDelay)
}

func TestNewClient_DefaultBounds(t *testing.T) {
	client := NewClient()
	assert.Equal(t, 100*time.Millisecond, client.pageDelay)
	assert.Equal(t, 50, client.maxPages)
	assert.Equal(t, 30*time.Minute, client.cacheTTL)
}

func TestNewClient_OptionsCannotLoosenBounds(t *testing.T) {
	client := NewClient(WithPageDelay(0), WithMaxPages(80))
	assert.Equal(t, MinPageDelay, client.pageDelay)
	assert.Equal(t, MaxPages, client.maxPages)

	client = NewClient(WithPageDelay(250*time.Millisecond), WithMaxPages(5))
	assert.Equal(t, 250*time.Millisecond, client.pageDelay)
	assert.Equal(t, 5, client.maxPages)
}

func TestFetchPaginated_ConfiguredPageCapStillStopsAtFifty(t *testing.T) {
	srv, calls := pageServer(t, func(offset, size int) int { return size })
	client := NewClient(WithHTTPClient(srv.Client()), WithMaxPages(80), withoutPageDelay())

	result, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{
		PageSize:        1,
		FetchAllPages:   true,
		MaxTotalResults: 1000,
	})

	require.NoError(t, err)
	assert.Equal(t, 50, result.PageCount)
	assert.Equal(t, int32(50), atomic.LoadInt32(calls))
	assert.True(t, result.HasMore)
}

func TestFetchPaginated_SubSecondTTLStillCaches(t *testing.T) {
	srv, calls := pageServer(t, func(offset, size int) int { return 1 })
	memCache := cache.NewMemoryAdapter()
	client := newTestClient(srv, WithCache(memCache, 500*time.Millisecond))

	_, err := client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{})
	require.NoError(t, err)
	_, err = client.FetchPaginated(context.Background(), srv.URL, nil, FetchOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, memCache.Len())
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestTTLSeconds(t *testing.T) {
	assert.Equal(t, 1, ttlSeconds(500*time.Millisecond))
	assert.Equal(t, 1, ttlSeconds(0))
	assert.Equal(t, 2, ttlSeconds(1500*time.Millisecond))
	assert.Equal(t, 1800, ttlSeconds(30*time.Minute))
}

func TestDatasetLabel(t *testing.T) {
	assert.Equal(t, "abc-123", datasetLabel("https://data.cms.gov/data-api/v1/dataset/abc-123/data"))
	assert.Equal(t, "abc-123", datasetLabel("https://data.cms.gov/data-api/v1/dataset/abc-123/data/"))
	assert.Equal(t, "unknown", datasetLabel("http://127.0.0.1:1234"))
}
