package authapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiter(t *testing.T) {
	now := time.Now()

	t.Run("allows under the limit", func(t *testing.T) {
		l := newLoginRateLimiter(3, time.Minute)

		for i := 0; i < 2; i++ {
			l.recordFailure("a@b.com", now)
		}

		ok, _ := l.allow("a@b.com", now)
		assert.True(t, ok)
	})

	t.Run("blocks at the limit with a retry hint", func(t *testing.T) {
		l := newLoginRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			l.recordFailure("a@b.com", now)
		}

		ok, retryAfter := l.allow("a@b.com", now)
		assert.False(t, ok)
		assert.Greater(t, retryAfter, time.Duration(0))
		assert.LessOrEqual(t, retryAfter, time.Minute)
	})

	t.Run("window slides", func(t *testing.T) {
		l := newLoginRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			l.recordFailure("a@b.com", now)
		}

		ok, _ := l.allow("a@b.com", now.Add(61*time.Second))
		assert.True(t, ok)
	})

	t.Run("reset clears the identifier", func(t *testing.T) {
		l := newLoginRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			l.recordFailure("a@b.com", now)
		}
		l.reset("a@b.com")

		ok, _ := l.allow("a@b.com", now)
		assert.True(t, ok)
	})

	t.Run("identifiers are independent", func(t *testing.T) {
		l := newLoginRateLimiter(1, time.Minute)

		l.recordFailure("a@b.com", now)

		ok, _ := l.allow("a@b.com", now)
		assert.False(t, ok)
		ok, _ = l.allow("c@d.com", now)
		assert.True(t, ok)
	})

	t.Run("zero max disables throttling", func(t *testing.T) {
		l := newLoginRateLimiter(0, time.Minute)

		l.recordFailure("a@b.com", now)
		ok, _ := l.allow("a@b.com", now)
		assert.True(t, ok)
	})
}
