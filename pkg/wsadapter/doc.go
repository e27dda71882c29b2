// Package wsadapter implements a resilient client-side WebSocket connection
// to a Lamdera-style backend: session/cookie bootstrap, Wire3 message
// framing via pkg/wire3 and pkg/transport, and the leader-avoidance
// reconnect loop described in the host's multi-tab election protocol.
//
// A Client owns exactly one logical connection attempt at a time. All
// mutable state is owned by a single goroutine (run); public methods
// communicate with it over channels, mirroring the single-task scheduling
// model the protocol assumes. Callers never observe partial state: every
// externally visible field is read through an accessor that takes the
// Client's mutex.
package wsadapter
