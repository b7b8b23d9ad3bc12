package webhook

import (
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultBaseDelay = time.Second
	DefaultMaxDelay  = 30 * time.Second
)

// Delay returns the pre-jitter wait before the retry that follows the given
// attempt: min(base * 2^(attempt-1), max).
func Delay(attempt int, base, max time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	d := base
	for i := 1; i < attempt && d < max; i++ {
		d *= 2
	}

	if d > max {
		return max
	}

	return d
}

// Jitter returns a random duration in [0, max].
func Jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}

	return time.Duration(rand.Int64N(int64(max) + 1))
}

// RetryBackOff is a backoff.BackOff yielding Delay plus up to 10% jitter.
type RetryBackOff struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Jitter    func(max time.Duration) time.Duration

	attempt int
}

var _ backoff.BackOff = (*RetryBackOff)(nil)

func (b *RetryBackOff) NextBackOff() time.Duration {
	b.attempt++

	d := Delay(b.attempt, b.BaseDelay, b.MaxDelay)
	if b.Jitter == nil {
		return d
	}

	return d + b.Jitter(d/10)
}

func (b *RetryBackOff) Reset() {
	b.attempt = 0
}
