package events

const (
	// KindSessionErrorRaised identifies visible, non-fatal error notices.
	KindSessionErrorRaised Kind = "session_error.raised"
	// KindSessionErrorCleared identifies notice clearing on reconnect.
	KindSessionErrorCleared Kind = "session_error.cleared"
)

// SessionErrorRaised carries a visible, non-fatal session error notice.
type SessionErrorRaised struct {
	Base
	Message string
}

// NewSessionErrorRaised creates a session error raised event.
func NewSessionErrorRaised(message string) SessionErrorRaised {
	return SessionErrorRaised{Base: NewBase(KindSessionErrorRaised), Message: message}
}

// SessionErrorCleared marks the stale session error being cleared.
type SessionErrorCleared struct{ Base }

// NewSessionErrorCleared creates a session error cleared event.
func NewSessionErrorCleared() SessionErrorCleared {
	return SessionErrorCleared{Base: NewBase(KindSessionErrorCleared)}
}
