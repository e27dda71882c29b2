package wsadapter

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/lamdera-ws/pkg/session"
	"github.com/vango-dev/lamdera-ws/pkg/transport"
)

// Client is a resilient connection to a Lamdera-style WebSocket host. All
// of its mutable state is owned by a single background goroutine started
// by New; exported methods communicate with that goroutine over cmdCh and
// never touch connection-attempt state directly.
type Client struct {
	cfg     Config
	metrics *metrics
	history *session.History

	cbMu      sync.RWMutex
	callbacks Callbacks

	mu           sync.Mutex
	state        ConnectionState
	sessionID    string
	clientID     string
	connectionID string
	leaderID     string
	retryCount   int

	cmdCh chan command
	done  chan struct{}
}

type command interface{}

type sendCmd struct {
	payload string
	result  chan error
}
type closeCmd struct {
	code   int
	reason string
}

// New creates a Client and starts its connection loop in the background.
// The first dial happens after a random jitter of up to cfg.InitialDelayMax,
// per the protocol's thundering-herd mitigation.
func New(opts ...Option) *Client {
	cfg := buildConfig(opts)

	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = session.GenerateID()
	}

	c := &Client{
		cfg:       cfg,
		metrics:   newMetrics(cfg.Registry),
		history:   session.NewHistory(cfg.MaxSessionHistory),
		callbacks: NoopCallbacks{},
		state:     StateConnecting,
		sessionID: sessionID,
		cmdCh:     make(chan command),
		done:      make(chan struct{}),
	}
	c.history.Record(sessionID, session.ReasonInitial, time.Now())

	go c.run()
	return c
}

// SetCallbacks installs the callback set used for future events. It may be
// called at any time, including before the first connection completes.
func (c *Client) SetCallbacks(cb Callbacks) {
	c.cbMu.Lock()
	c.callbacks = cb
	c.cbMu.Unlock()
}

func (c *Client) cb() Callbacks {
	c.cbMu.RLock()
	defer c.cbMu.RUnlock()
	return c.callbacks
}

// Send frames payload as an application message and delivers it according
// to the current state: queued while CONNECTING, sent immediately while
// OPEN, silently dropped during a leader-avoidance retry window (by
// design, to avoid perturbing the session about to be abandoned),
// rejected with ErrNotOpen while CLOSING, or rejected with ErrClosed once
// the Client has stopped.
func (c *Client) Send(payload string) error {
	result := make(chan error, 1)
	select {
	case c.cmdCh <- sendCmd{payload: payload, result: result}:
		select {
		case err := <-result:
			return err
		case <-c.done:
			return ErrClosed
		}
	case <-c.done:
		return ErrClosed
	}
}

// Close cancels any pending retry, transitions to CLOSING synchronously,
// and closes the underlying socket if one is connected.
func (c *Client) Close(code int, reason string) {
	select {
	case c.cmdCh <- closeCmd{code: code, reason: reason}:
		<-c.done
	case <-c.done:
	}
}

// Done is closed once the Client has permanently stopped: Close was
// called, leader-avoidance retries were exhausted, a dial failed, or the
// socket reported a read error.
func (c *Client) Done() <-chan struct{} { return c.done }

func (c *Client) snapshot() (ConnectionState, string, string, string, string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.sessionID, c.clientID, c.connectionID, c.leaderID, c.retryCount
}

// ReadyState returns the current ConnectionState.
func (c *Client) ReadyState() ConnectionState { s, _, _, _, _, _ := c.snapshot(); return s }

// SessionID returns the current session identifier, which changes across
// a leader-avoidance rotation.
func (c *Client) SessionID() string { _, s, _, _, _, _ := c.snapshot(); return s }

// ClientID returns the id assigned at handshake, mirroring ConnectionID.
func (c *Client) ClientID() string { _, _, s, _, _, _ := c.snapshot(); return s }

// ConnectionID returns the id assigned at handshake.
func (c *Client) ConnectionID() string { _, _, _, s, _, _ := c.snapshot(); return s }

// LeaderID returns the most recently announced leader, or "" if no
// election has happened yet.
func (c *Client) LeaderID() string { _, _, _, _, s, _ := c.snapshot(); return s }

// RetryCount returns the current leader-avoidance retry counter, reset to
// zero on every successful handshake.
func (c *Client) RetryCount() int { _, _, _, _, _, n := c.snapshot(); return n }

// SessionHistory returns the recent session ids this Client has used, most
// recent first, for operator diagnostics (e.g. the debug HTTP server).
func (c *Client) SessionHistory() []session.Entry { return c.history.Entries() }

func (c *Client) setState(s ConnectionState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.metrics.connectionState.Set(float64(s))
}

func (c *Client) setHandshake(connID string) {
	c.mu.Lock()
	c.clientID = connID
	c.connectionID = connID
	c.mu.Unlock()
}

func (c *Client) setLeaderID(id string) {
	c.mu.Lock()
	c.leaderID = id
	c.mu.Unlock()
}

func (c *Client) setRetryCount(n int) {
	c.mu.Lock()
	c.retryCount = n
	c.mu.Unlock()
}

func (c *Client) clearIdentity() {
	c.mu.Lock()
	c.clientID = ""
	c.connectionID = ""
	c.leaderID = ""
	c.mu.Unlock()
}

func (c *Client) rotateSession() {
	id := session.GenerateID()
	c.mu.Lock()
	c.sessionID = id
	c.mu.Unlock()
	c.history.Record(id, session.ReasonRotated, time.Now())
}

func (c *Client) dialHeader() http.Header {
	h := http.Header{}
	cookie := c.cfg.Cookie
	if cookie == "" {
		cookie = session.Cookie(c.SessionID())
	}
	h.Set("Cookie", cookie)
	return h
}

// inboundFrame tags a result from a connection attempt's read loop with
// the epoch it belongs to, so the run loop can discard stragglers from a
// socket it has already torn down.
type inboundFrame struct {
	epoch int
	data  []byte
	err   error
}

type dialOutcome struct {
	epoch int
	sock  Socket
	err   error
}

// readLoop forwards frames from sock onto inCh until ReadMessage returns an
// error (peer close, local close, or network failure), then reports that
// error once and exits.
func (c *Client) readLoop(sock Socket, epoch int, inCh chan<- inboundFrame) {
	for {
		data, err := sock.ReadMessage()
		if err != nil {
			inCh <- inboundFrame{epoch: epoch, err: err}
			return
		}
		inCh <- inboundFrame{epoch: epoch, data: data}
	}
}

// attempt holds the state scoped to the lifetime of the Client rather than
// to any single connection: the queue survives a CONNECTING window, the
// retry budget survives every attempt, and setupCalled is reset at each
// new attempt.
type attempt struct {
	queue       messageQueue
	retry       *retryState
	setupCalled bool
	sock        Socket
	epoch       int
	retryTimer  *time.Timer
	retryTimerC <-chan time.Time

	// closing and closeCode/closeReason record that Close was called so
	// the eventual read-loop error (caused by our own sock.Close) reports
	// the caller's requested code/reason instead of a generic one.
	closing     bool
	closeCode   int
	closeReason string
}

func (c *Client) run() {
	a := &attempt{retry: newRetryState(c.cfg.MaxRetries, c.cfg.RetryBaseDelay, c.cfg.RetryMaxDelay)}
	dialCh := make(chan dialOutcome, 1)
	inCh := make(chan inboundFrame)

	initialJitter := time.Duration(0)
	if c.cfg.InitialDelayMax > 0 {
		initialJitter = time.Duration(rand.Int63n(int64(c.cfg.InitialDelayMax)))
	}
	initialTimer := time.NewTimer(initialJitter)
	defer initialTimer.Stop()

	startDial := func() {
		a.epoch++
		epoch := a.epoch
		c.setState(StateConnecting)
		c.metrics.reconnectsTotal.Inc()
		c.cfg.Logger.Info("wsadapter: connecting", "session_id", c.SessionID(), "attempt", a.retry.count)
		ctx, span := startConnectSpan(context.Background(), c.cfg.Tracer, c.SessionID(), a.retry.count)
		go func() {
			sock, err := c.cfg.Dialer(ctx, c.cfg.URL, c.dialHeader())
			if err != nil {
				endSpanError(span, err)
			} else {
				endSpanOK(span)
			}
			dialCh <- dialOutcome{epoch: epoch, sock: sock, err: err}
		}()
	}

	terminate := func(code int, reason string) {
		if a.retryTimer != nil {
			a.retryTimer.Stop()
		}
		c.setState(StateClosed)
		c.cb().OnClose(code, reason)
		close(c.done)
	}

	for {
		select {
		case <-initialTimer.C:
			startDial()

		case res := <-dialCh:
			if res.epoch != a.epoch {
				continue
			}
			if res.err != nil {
				c.cfg.Logger.Error("wsadapter: dial failed", "error", res.err)
				c.cb().OnError(res.err)
				terminate(1006, res.err.Error())
				return
			}
			a.sock = res.sock
			c.setState(StateOpen)
			for _, payload := range a.queue.drain() {
				c.writeFramed(a.sock, payload)
			}
			go c.readLoop(a.sock, res.epoch, inCh)

		case cmd := <-c.cmdCh:
			switch m := cmd.(type) {
			case sendCmd:
				m.result <- c.handleSend(a, m.payload)
			case closeCmd:
				c.setState(StateClosing)
				if a.retryTimer != nil {
					a.retryTimer.Stop()
				}
				if a.sock != nil {
					a.closing, a.closeCode, a.closeReason = true, m.code, m.reason
					a.sock.Close()
				} else {
					terminate(m.code, m.reason)
					return
				}
			}

		case msg := <-inCh:
			if msg.epoch != a.epoch {
				continue
			}
			if msg.err != nil {
				var code int
				var reason string
				if a.closing {
					code, reason = a.closeCode, a.closeReason
				} else {
					c.cfg.Logger.Error("wsadapter: socket read failed", "error", msg.err)
					c.cb().OnError(msg.err)
					code, reason = closeInfoFromErr(msg.err)
				}
				terminate(code, reason)
				return
			}
			if done := c.handleFrame(a, msg.data); done {
				return
			}

		case <-a.retryTimerC:
			a.retryTimerC = nil
			startDial()
		}
	}
}

// handleSend implements send()'s dispatch rule: drop silently during a
// leader-avoidance retry window, queue while CONNECTING, send immediately
// while OPEN, otherwise fail.
func (c *Client) handleSend(a *attempt, payload string) error {
	if a.retry.count > 0 && !a.retry.exhausted() {
		return nil // mid leader-avoidance retry window: drop by design
	}
	switch c.ReadyState() {
	case StateConnecting:
		a.queue.push(payload)
		return nil
	case StateOpen:
		c.writeFramed(a.sock, payload)
		return nil
	default:
		return ErrNotOpen
	}
}

func (c *Client) writeFramed(sock Socket, payload string) {
	frame, err := transport.EncodeOutbound(c.SessionID(), c.connIDOrSession(), payload, c.cfg.MessageTag, c.cfg.DUVariant)
	if err != nil {
		c.cb().OnError(err)
		return
	}
	if c.cfg.Debug {
		c.cfg.Logger.Debug("wsadapter: frame out", "frame", string(frame))
	}
	if err := sock.WriteMessage(frame); err != nil {
		c.cb().OnError(err)
	}
}

func (c *Client) connIDOrSession() string {
	if id := c.ConnectionID(); id != "" {
		return id
	}
	return c.SessionID()
}

// handleFrame classifies and dispatches one inbound frame. It returns true
// if the run loop should terminate (leader-avoidance exhausted).
func (c *Client) handleFrame(a *attempt, raw []byte) bool {
	if c.cfg.Debug {
		c.cfg.Logger.Debug("wsadapter: frame in", "frame", string(raw))
	}
	classified := transport.Classify(raw, c.cfg.MessageTag)

	switch classified.Kind {
	case transport.KindParseError:
		c.cfg.Logger.Warn("wsadapter: parse error", "raw", classified.RawText)
		return false

	case transport.KindElection:
		return c.handleElection(a, classified.LeaderID)

	case transport.KindMessage:
		if !a.setupCalled {
			return false // onmessage never fires before onsetup
		}
		c.cb().OnMessage(classified.Data)
		return false

	case transport.KindProtocol:
		if !a.setupCalled && classified.ConnectionID != "" {
			c.handleHandshake(a, classified.ConnectionID)
		}
		return false

	default:
		return false
	}
}

func (c *Client) handleHandshake(a *attempt, connID string) {
	if a.retry.count > 0 {
		a.retry.reset()
		c.metrics.retryCount.Set(0)
		c.setRetryCount(0)
	}
	c.setHandshake(connID)
	a.setupCalled = true
	c.cfg.Logger.Info("wsadapter: handshake complete", "client_id", connID)

	cb := c.cb()
	cb.OnOpen()
	leaderID := c.LeaderID()
	cb.OnSetup(SetupInfo{
		ClientID: connID,
		LeaderID: leaderID,
		IsLeader: leaderID != "" && leaderID == connID,
	})
}

// handleElection implements the leader-avoidance evaluation. It returns
// true if the run loop should terminate because the retry budget is
// exhausted.
func (c *Client) handleElection(a *attempt, newLeader string) bool {
	c.metrics.electionsTotal.Inc()

	result := evaluateElection(c.ClientID(), c.LeaderID(), newLeader)
	c.setLeaderID(result.newLeader)
	c.cfg.Logger.Info("wsadapter: election observed", "leader_id", newLeader, "is_self", result.isSelf)

	if !result.isSelf {
		return false
	}

	c.metrics.selfElectionsTotal.Inc()

	if a.sock != nil {
		a.sock.Close()
		a.sock = nil
	}
	a.epoch++ // invalidate the torn-down socket's read loop immediately
	a.queue.drain()
	a.setupCalled = false
	c.clearIdentity()

	a.retry.increment()
	c.metrics.retryCount.Set(float64(a.retry.count))
	c.setRetryCount(a.retry.count)

	if a.retry.exhausted() {
		rc := a.retry.count
		c.cfg.Logger.Error("wsadapter: leader-avoidance retries exhausted", "retry_count", rc)
		c.setState(StateClosed)
		c.cb().OnLeaderDisconnect(rc)
		close(c.done)
		return true
	}

	c.rotateSession()
	c.metrics.sessionRotations.Inc()
	c.setState(StateConnecting)

	d := a.retry.delay()
	c.cfg.Logger.Warn("wsadapter: self-elected, reconnect scheduled", "retry_count", a.retry.count, "delay", d)
	a.retryTimer = time.NewTimer(d)
	a.retryTimerC = a.retryTimer.C
	return false
}

// closeInfoFromErr extracts a WebSocket close code and reason from err
// when it's a *websocket.CloseError, falling back to the generic abnormal
// closure code for anything else (local Close, network failure, etc).
func closeInfoFromErr(err error) (code int, reason string) {
	if ce, ok := err.(*websocket.CloseError); ok {
		return ce.Code, ce.Text
	}
	return 1006, err.Error()
}
