// Package websocket implements the chat transport over a websocket
// connection, one per video session.
package websocket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/koscakluka/vidchat-core/core/transport"
)

var _ transport.Dialer = (*Dialer)(nil)

// Dialer opens chat-channel connections against one server.
type Dialer struct {
	host   string
	scheme string
	header http.Header
}

type DialerOption func(*Dialer)

// WithTLS switches the dialer to wss.
func WithTLS() DialerOption {
	return func(d *Dialer) { d.scheme = "wss" }
}

// WithHeader sets an extra header sent on the connection handshake.
func WithHeader(key, value string) DialerOption {
	return func(d *Dialer) {
		if d.header == nil {
			d.header = http.Header{}
		}
		d.header.Set(key, value)
	}
}

// NewDialer creates a dialer for the chat endpoint at host (host[:port]).
func NewDialer(host string, opts ...DialerOption) *Dialer {
	d := &Dialer{host: host, scheme: "ws"}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DialSession opens the session-scoped chat channel for the given video id.
func (d *Dialer) DialSession(ctx context.Context, sessionID string) (transport.Transport, error) {
	endpoint := (&url.URL{
		Scheme: d.scheme,
		Host:   d.host,
		Path:   "/chat/" + sessionID,
	}).String()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, d.header)
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to %s: %w", endpoint, err)
	}

	return &connection{ws: conn}, nil
}

// connection wraps one open websocket as a chat transport. Writes are
// serialized; gorilla websockets support one concurrent writer only.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

var _ transport.Transport = (*connection)(nil)

func (c *connection) SendText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("failed to write to websocket: %w", err)
	}
	return nil
}

func (c *connection) ReadMessage() ([]byte, error) {
	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			return nil, err
		}

		switch msgType {
		case websocket.TextMessage, websocket.BinaryMessage:
			return msg, nil
		default:
			// Control frames are handled by the library; skip anything else.
			continue
		}
	}
}

func (c *connection) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		// Best effort: the peer may already be gone.
		_ = c.ws.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		c.mu.Unlock()

		c.closeErr = c.ws.Close()
	})

	if c.closeErr != nil {
		return fmt.Errorf("failed to close websocket: %w", c.closeErr)
	}
	return nil
}
