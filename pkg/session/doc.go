// Package session implements the host's session identifier and cookie
// discipline: generating a SessionID, rendering it as a "sid=" cookie, and
// extracting one back out of a raw Cookie header value.
//
// A SessionID routes traffic to a persistent per-session actor on the
// host; it is a routing hint, not a secret, so generation here
// deliberately uses a weak, fast PRNG rather than a cryptographic one.
//
// This package also keeps a small bounded in-memory history of the
// session ids a process has used across leader-avoidance rotations, for
// operator diagnostics. Nothing here is persisted across process
// restarts.
package session
