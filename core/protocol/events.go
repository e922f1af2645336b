package protocol

// Event is a decoded chat-channel event. The concrete type is decided once,
// at decode time; consumers switch on it and never inspect raw field
// presence again.
//
// The set of implementations is closed: [Delta], [Completed] and [Failed].
type Event interface {
	event()
}

// Delta carries incremental text for the in-flight assistant turn. Either
// channel may be empty, meaning no new text for that channel in this frame.
type Delta struct {
	// Thinking is an appended piece of the reasoning trace.
	Thinking string
	// Response is an appended piece of the final answer.
	Response string
}

// Completed terminates the in-flight assistant turn.
type Completed struct {
	// FullResponse, when present and non-empty, replaces the accumulated
	// response as the finalized turn content.
	FullResponse *string
}

// Failed reports a remote-side failure for the in-flight turn. No assistant
// turn is produced from it.
type Failed struct {
	Message string
}

func (Delta) event()     {}
func (Completed) event() {}
func (Failed) event()    {}
