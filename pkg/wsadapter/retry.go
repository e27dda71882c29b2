package wsadapter

import (
	"math"
	"math/rand"
	"time"
)

// retryState tracks the leader-avoidance reconnect budget for the
// lifetime of one Client. It is only mutated from the run goroutine.
type retryState struct {
	count int
	max   int

	baseDelay time.Duration
	maxDelay  time.Duration
}

func newRetryState(maxRetries int, baseDelay, maxDelay time.Duration) *retryState {
	return &retryState{max: maxRetries, baseDelay: baseDelay, maxDelay: maxDelay}
}

func (r *retryState) reset() {
	r.count = 0
}

func (r *retryState) exhausted() bool {
	return r.count > r.max
}

// increment bumps the retry counter. It is called once per self-election,
// whether or not the budget is then exhausted.
func (r *retryState) increment() {
	r.count++
}

// delay returns D = min(maxDelay, baseDelay * 1.5^(count-1) + jitter),
// where jitter is uniform on [0, 1000ms). It assumes increment has already
// been called at least once for this attempt.
func (r *retryState) delay() time.Duration {
	growth := math.Pow(1.5, float64(r.count-1))
	delay := time.Duration(float64(r.baseDelay) * growth)
	jitter := time.Duration(rand.Int63n(int64(time.Second)))
	delay += jitter
	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	return delay
}
