package events

// KindConnectionStateChanged identifies chat-channel state transitions.
const KindConnectionStateChanged Kind = "connection.state_changed"

// ConnectionStateChanged reports a chat-channel state transition. Reason is
// set only for closed states.
type ConnectionStateChanged struct {
	Base
	State  string
	Reason string
}

// NewConnectionStateChanged creates a connection state change event.
func NewConnectionStateChanged(state, reason string) ConnectionStateChanged {
	return ConnectionStateChanged{Base: NewBase(KindConnectionStateChanged), State: state, Reason: reason}
}
