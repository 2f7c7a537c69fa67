package ratelimiter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/pkg/ratelimiter"
)

func newLimiter(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Limiter, *ratelimiter.MemoryStore) {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(0))
	t.Cleanup(store.Close)
	l, err := ratelimiter.New(store, cfg)
	require.NoError(t, err)
	return l, store
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(0))
	defer store.Close()

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1},
	} {
		_, err := ratelimiter.New(store, cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l, store := newLimiter(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: 30 * time.Millisecond})

	for want := 1; want >= 0; want-- {
		res, err := l.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, want, res.Remaining)
		assert.Equal(t, 2, res.Limit)
	}

	res, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	other, err := l.Allow(ctx, "other")
	require.NoError(t, err)
	assert.True(t, other.Allowed())
	assert.Equal(t, 2, store.Len())

	time.Sleep(40 * time.Millisecond)
	res, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed())

	require.NoError(t, l.Reset(ctx, "ip"))
	res, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)

	_, err = l.Allow(ctx, "")
	assert.ErrorIs(t, err, ratelimiter.ErrEmptyKey)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	l, _ := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})

	h := ratelimiter.Middleware(l, func(r *http.Request) string { return r.Header.Get("X-Key") },
		ratelimiter.WithLimitHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"slow down"}`))
		})),
	)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if key != "" {
			req.Header.Set("X-Key", key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := serve("a")
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := serve("a")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, `{"error":"slow down"}`, second.Body.String())
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, serve("b").Code)
	assert.Equal(t, http.StatusNoContent, serve("").Code)
	assert.Equal(t, http.StatusNoContent, serve("").Code)
}
