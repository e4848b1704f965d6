package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(allowedStatusCodes ...int) Fetcher {
	return NewFromConfig(Config{
		MaxRetries:         0,
		AllowedStatusCodes: allowedStatusCodes,
		DisableLogging:     true,
	})
}

func doGet(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return f.Do(req)
}

func TestFetchJSON(t *testing.T) {
	t.Run("decodes a JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"aluminum-bottle","count":3}`))
		}))
		defer server.Close()

		var out struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		err := FetchJSON(context.Background(), newTestFetcher(), http.MethodGet, server.URL, nil, nil, &out)

		require.NoError(t, err)
		assert.Equal(t, "aluminum-bottle", out.Name)
		assert.Equal(t, 3, out.Count)
	})

	t.Run("malformed body yields ParsingFailed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"broken":`))
		}))
		defer server.Close()

		var out map[string]any
		err := FetchJSON(context.Background(), newTestFetcher(), http.MethodGet, server.URL, nil, nil, &out)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})

	t.Run("sends custom headers", func(t *testing.T) {
		var gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.Header.Get("X-Storefront-Access-Token")
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		var out map[string]any
		err := FetchJSON(context.Background(), newTestFetcher(), http.MethodPost, server.URL,
			map[string]string{"X-Storefront-Access-Token": "token-123"}, strings.NewReader(`{}`), &out)

		require.NoError(t, err)
		assert.Equal(t, "token-123", gotToken)
	})
}

func TestStatusCodeFetcher(t *testing.T) {
	t.Run("401 classifies as Unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid token", http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := doGet(context.Background(), newTestFetcher(), server.URL)

		require.Error(t, err)
		var statusErr *HTTPStatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.Contains(t, statusErr.BodySnippet, "invalid token")
		assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
	})

	t.Run("500 classifies as Unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := doGet(context.Background(), newTestFetcher(), server.URL)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Unavailable))
	})

	t.Run("allowed status codes pass through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		resp, err := doGet(context.Background(), newTestFetcher(http.StatusOK, http.StatusCreated), server.URL)

		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestRetryFetcher(t *testing.T) {
	t.Run("retries a failing GET until it succeeds", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				http.Error(w, "temporary", http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		f := NewFromConfig(Config{
			MaxRetries:     1,
			MinRetryDelay:  time.Second,
			DisableLogging: true,
		})

		resp, err := doGet(context.Background(), f, server.URL)

		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("does not retry POST requests", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		f := NewFromConfig(Config{
			MaxRetries:     3,
			MinRetryDelay:  time.Second,
			DisableLogging: true,
		})

		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, server.URL, strings.NewReader(`{}`))
		require.NoError(t, err)

		_, err = f.Do(req)

		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "non-idempotent requests must not be retried")
	})

	t.Run("does not retry 4xx client errors", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "bad request", http.StatusBadRequest)
		}))
		defer server.Close()

		f := NewFromConfig(Config{
			MaxRetries:     3,
			MinRetryDelay:  time.Second,
			DisableLogging: true,
		})

		_, err := doGet(context.Background(), f, server.URL)

		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestMaxBytesFetcher(t *testing.T) {
	t.Run("oversized Content-Length is blocked early", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "2048")
			_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
		}))
		defer server.Close()

		f := NewFromConfig(Config{
			MaxBytes:       1024,
			DisableLogging: true,
		})

		_, err := doGet(context.Background(), f, server.URL)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
	})

	t.Run("streamed body is limited at read time", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Flush headers first so no Content-Length is advertised.
			w.WriteHeader(http.StatusOK)
			w.(http.Flusher).Flush()
			_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
		}))
		defer server.Close()

		f := NewFromConfig(Config{
			MaxBytes:       1024,
			DisableLogging: true,
		})

		resp, err := doGet(context.Background(), f, server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		buf := make([]byte, 4096)
		var readErr error
		for {
			_, err := resp.Body.Read(buf)
			if err != nil {
				readErr = err
				break
			}
		}

		require.Error(t, readErr)
		assert.True(t, apperrors.Is(readErr, apperrors.ExecutionFailed))
	})
}

func TestNormalizeRetryDelays(t *testing.T) {
	minDelay, maxDelay := normalizeRetryDelays(0, 0)
	assert.Equal(t, time.Second, minDelay, "delays below one second are raised to the floor")
	assert.Equal(t, 30*time.Second, maxDelay)

	minDelay, maxDelay = normalizeRetryDelays(5*time.Second, 2*time.Second)
	assert.Equal(t, 5*time.Second, minDelay)
	assert.Equal(t, 5*time.Second, maxDelay, "max delay may not undercut min delay")
}
