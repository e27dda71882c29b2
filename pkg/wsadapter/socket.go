package wsadapter

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

// Socket is the minimal transport a Client drives. It exists
// so tests can substitute an in-memory fake instead of dialing a real
// network connection; see fakesocket_test.go.
type Socket interface {
	// ReadMessage blocks until a text frame arrives, the peer closes the
	// connection, or an error occurs.
	ReadMessage() ([]byte, error)
	// WriteMessage sends one text frame.
	WriteMessage(data []byte) error
	// Close tears down the connection. It unblocks any in-flight
	// ReadMessage with an error.
	Close() error
}

// Dialer opens a new Socket to url, carrying header (used to attach the
// session cookie). It should respect ctx cancellation for the dial itself;
// once connected, the returned Socket's lifetime is independent of ctx.
type Dialer func(ctx context.Context, url string, header http.Header) (Socket, error)

// DialGorilla is the production Dialer, backed by gorilla/websocket.
func DialGorilla(ctx context.Context, url string, header http.Header) (Socket, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return &gorillaSocket{conn: conn}, nil
}

// gorillaSocket adapts *websocket.Conn to the Socket interface, fixing the
// message type to TextMessage since every frame in this protocol is JSON.
type gorillaSocket struct {
	conn *websocket.Conn
}

func (g *gorillaSocket) ReadMessage() ([]byte, error) {
	_, data, err := g.conn.ReadMessage()
	return data, err
}

func (g *gorillaSocket) WriteMessage(data []byte) error {
	return g.conn.WriteMessage(websocket.TextMessage, data)
}

func (g *gorillaSocket) Close() error {
	return g.conn.Close()
}
