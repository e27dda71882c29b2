package wsadapter

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// fakeSocket is an in-memory Socket for tests: frames pushed onto toClient
// are delivered by ReadMessage, and frames written by the Client land on
// writes for assertions.
type fakeSocket struct {
	toClient chan []byte
	writes   chan []byte
	closed   chan struct{}
	once     sync.Once
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{
		toClient: make(chan []byte, 16),
		writes:   make(chan []byte, 16),
		closed:   make(chan struct{}),
	}
}

func (f *fakeSocket) ReadMessage() ([]byte, error) {
	select {
	case data, ok := <-f.toClient:
		if !ok {
			return nil, errors.New("fakeSocket: closed")
		}
		return data, nil
	case <-f.closed:
		return nil, errors.New("fakeSocket: closed")
	}
}

func (f *fakeSocket) WriteMessage(data []byte) error {
	select {
	case f.writes <- data:
		return nil
	case <-f.closed:
		return errors.New("fakeSocket: closed")
	}
}

func (f *fakeSocket) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

// deliver pushes a raw frame as if it had arrived over the wire.
func (f *fakeSocket) deliver(frame string) {
	f.toClient <- []byte(frame)
}

// dialerStub hands out a fixed sequence of sockets, one per dial call, in
// order. It errors if exhausted.
type dialerStub struct {
	mu      sync.Mutex
	sockets []*fakeSocket
	idx     int
}

func newDialerStub(sockets ...*fakeSocket) *dialerStub {
	return &dialerStub{sockets: sockets}
}

func (d *dialerStub) dial(_ context.Context, _ string, _ http.Header) (Socket, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.idx >= len(d.sockets) {
		return nil, errors.New("dialerStub: exhausted")
	}
	s := d.sockets[d.idx]
	d.idx++
	return s, nil
}

// recordingCallbacks captures every event fired, in order, for assertions.
type recordingCallbacks struct {
	mu     sync.Mutex
	events []string

	setups    []SetupInfo
	messages  []string
	errors    []error
	leaderDCs []int
}

func (r *recordingCallbacks) OnOpen() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "open")
}

func (r *recordingCallbacks) OnSetup(info SetupInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "setup")
	r.setups = append(r.setups, info)
}

func (r *recordingCallbacks) OnMessage(data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "message")
	r.messages = append(r.messages, data)
}

func (r *recordingCallbacks) OnClose(code int, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "close")
}

func (r *recordingCallbacks) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "error")
	r.errors = append(r.errors, err)
}

func (r *recordingCallbacks) OnLeaderDisconnect(retryCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "leaderdisconnect")
	r.leaderDCs = append(r.leaderDCs, retryCount)
}

func (r *recordingCallbacks) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}
