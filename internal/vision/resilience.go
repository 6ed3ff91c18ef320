package vision

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// retryPolicy bounds transient-failure retries on a single annotate
// call. Retries apply to network errors, 429, and 5xx responses.
type retryPolicy struct {
	maxAttempts int
	backoff     time.Duration
}

var defaultRetryPolicy = retryPolicy{
	maxAttempts: 3,
	backoff:     500 * time.Millisecond,
}

// backoffFor returns the delay before the given attempt (1-based for
// the first retry), doubling per attempt.
func (p retryPolicy) backoffFor(attempt int) time.Duration {
	delay := p.backoff
	if delay <= 0 {
		delay = defaultRetryPolicy.backoff
	}
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

const (
	breakerMinRequests      = 5
	breakerFailureRatio     = 0.6
	breakerOpenTimeout      = 30 * time.Second
	breakerHalfOpenMaxCalls = 1
)

// breaker trips the annotate endpoint open when the service fails
// consistently, so a long batch degrades to manual review quickly
// instead of hammering a broken upstream.
type breaker struct {
	cb *gobreaker.CircuitBreaker[*annotateBatchResponse]
}

func newBreaker(name string) *breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerHalfOpenMaxCalls,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < breakerMinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= breakerFailureRatio
		},
	}
	return &breaker{cb: gobreaker.NewCircuitBreaker[*annotateBatchResponse](settings)}
}

func (b *breaker) Execute(fn func() (*annotateBatchResponse, error)) (*annotateBatchResponse, error) {
	return b.cb.Execute(fn)
}
