package authproxy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authbridge/pkg/authproxy"
)

func TestBreaker(t *testing.T) {
	t.Parallel()

	t.Run("opens after threshold", func(t *testing.T) {
		t.Parallel()
		b := authproxy.NewBreaker(3, time.Hour)
		for range 2 {
			assert.True(t, b.Allow())
			b.Failure()
		}
		assert.Equal(t, authproxy.BreakerClosed, b.State())
		b.Failure()
		assert.Equal(t, authproxy.BreakerOpen, b.State())
		assert.False(t, b.Allow())
	})

	t.Run("success resets failures", func(t *testing.T) {
		t.Parallel()
		b := authproxy.NewBreaker(2, time.Hour)
		b.Failure()
		b.Success()
		b.Failure()
		assert.Equal(t, authproxy.BreakerClosed, b.State())
	})

	t.Run("half open admits one probe", func(t *testing.T) {
		t.Parallel()
		b := authproxy.NewBreaker(1, 10*time.Millisecond)
		b.Failure()
		assert.False(t, b.Allow())

		time.Sleep(20 * time.Millisecond)
		assert.True(t, b.Allow())
		assert.Equal(t, authproxy.BreakerHalfOpen, b.State())
		assert.False(t, b.Allow())

		b.Success()
		assert.Equal(t, authproxy.BreakerClosed, b.State())
		assert.True(t, b.Allow())
	})

	t.Run("failed probe reopens", func(t *testing.T) {
		t.Parallel()
		b := authproxy.NewBreaker(1, 10*time.Millisecond)
		b.Failure()
		time.Sleep(20 * time.Millisecond)
		assert.True(t, b.Allow())
		b.Failure()
		assert.Equal(t, authproxy.BreakerOpen, b.State())
		assert.False(t, b.Allow())
	})

	t.Run("abandoned probe frees the slot", func(t *testing.T) {
		t.Parallel()
		b := authproxy.NewBreaker(1, 10*time.Millisecond)
		b.Failure()
		time.Sleep(20 * time.Millisecond)
		assert.True(t, b.Allow())
		b.Abandon()
		assert.True(t, b.Allow())
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		b := authproxy.NewBreaker(0, 0)
		for range 4 {
			b.Failure()
		}
		assert.Equal(t, authproxy.BreakerClosed, b.State())
		b.Failure()
		assert.Equal(t, authproxy.BreakerOpen, b.State())
	})
}

func TestBreakerState_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "closed", authproxy.BreakerClosed.String())
	assert.Equal(t, "open", authproxy.BreakerOpen.String())
	assert.Equal(t, "half-open", authproxy.BreakerHalfOpen.String())
	assert.Equal(t, "unknown", authproxy.BreakerState(9).String())
}
