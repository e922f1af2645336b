package dialogue

// Role describes who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one finalized message in the conversation. Turns are immutable
// once appended to history.
type Turn struct {
	ID      string
	Role    Role
	Content string

	// Reasoning is the reasoning trace streamed alongside an assistant
	// answer. It is carried structurally on the turn, never inferred from
	// content. Empty for user turns.
	Reasoning string
}

// ActiveTurn is a point-in-time view of the in-flight assistant turn: the
// two text channels accumulated so far.
type ActiveTurn struct {
	Thinking string
	Response string
}

// ConnectionState is the chat-channel lifecycle state. It drives whether
// prompts may be sent.
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
	StateClosed       ConnectionState = "closed"
)

// ConnectionStatus pairs the state with the close reason, which is set only
// once the dialogue has been closed.
type ConnectionStatus struct {
	State  ConnectionState
	Reason string
}

// Conversation is a point-in-time view of dialogue state. History ordering:
// oldest -> newest.
type Conversation struct {
	History      []Turn
	ActiveTurn   *ActiveTurn
	Connection   ConnectionStatus
	SessionError string
}
