package wsadapter

import "errors"

var (
	// ErrClosed is returned by Send once the Client has permanently
	// stopped (see Client.Done).
	ErrClosed = errors.New("wsadapter: socket closed")

	// ErrNotOpen is returned by Send when the connection is CLOSING or
	// CLOSED and not merely buffering during a connect/retry window.
	ErrNotOpen = errors.New("wsadapter: not open")

	// ErrRetriesExhausted names the condition of leader avoidance having
	// used its full retry budget without finding a non-leader slot. It is
	// not returned from any method or passed to any callback: exhaustion is
	// reported by OnLeaderDisconnect with the final retry count.
	ErrRetriesExhausted = errors.New("wsadapter: leader-avoidance retries exhausted")
)
