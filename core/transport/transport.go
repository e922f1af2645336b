// Package transport defines the duplex message channel the dialogue core
// talks through. Implementations live in provider subpackages.
package transport

import "context"

// Transport is an ordered, duplex, message-oriented channel to one remote
// chat endpoint. It may close or error at any time; after an error from
// ReadMessage the transport is dead and must be closed.
//
// The dialogue core owns a transport exclusively for its lifetime.
type Transport interface {
	// SendText transmits one outbound text frame. Fire-and-forget: no
	// delivery acknowledgment is awaited.
	SendText(text string) error

	// ReadMessage blocks until the next inbound frame arrives, the channel
	// closes, or an error occurs.
	ReadMessage() ([]byte, error)

	// Close releases the underlying channel. Safe to call more than once.
	Close() error
}

// Dialer opens a transport bound to one video session.
type Dialer interface {
	DialSession(ctx context.Context, sessionID string) (Transport, error)
}
