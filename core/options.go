package dialogue

import (
	"time"

	"github.com/koscakluka/vidchat-core/core/events"
)

type DialogueOption func(*dialogueOptions)

type dialogueOptions struct {
	idleTimeout time.Duration

	handler func(events.Event)

	onPromptAccepted   func(string)
	onThinking         func(string)
	onResponse         func(string)
	onResponseEnd      func(content, reasoning string)
	onSessionError     func(string)
	onConnectionChange func(ConnectionState)
}

// WithIdleTimeout fails the in-flight turn locally when no event arrives
// within the given window of a prompt (or of the latest delta). Zero
// disables the timeout.
func WithIdleTimeout(timeout time.Duration) DialogueOption {
	return func(o *dialogueOptions) { o.idleTimeout = timeout }
}

// WithEventHandler receives every typed dialogue event. Handlers run on the
// dialogue's event-processing path and must not block.
func WithEventHandler(handler func(events.Event)) DialogueOption {
	return func(o *dialogueOptions) { o.handler = handler }
}

// WithPromptAcceptedCallback fires when a user prompt passed validation and
// was transmitted.
func WithPromptAcceptedCallback(callback func(prompt string)) DialogueOption {
	return func(o *dialogueOptions) { o.onPromptAccepted = callback }
}

// WithThinkingCallback fires for each streamed reasoning-trace segment.
func WithThinkingCallback(callback func(segment string)) DialogueOption {
	return func(o *dialogueOptions) { o.onThinking = callback }
}

// WithResponseCallback fires for each streamed answer segment.
func WithResponseCallback(callback func(segment string)) DialogueOption {
	return func(o *dialogueOptions) { o.onResponse = callback }
}

// WithResponseEndCallback fires once per finalized assistant turn with the
// final content and its reasoning trace.
func WithResponseEndCallback(callback func(content, reasoning string)) DialogueOption {
	return func(o *dialogueOptions) { o.onResponseEnd = callback }
}

// WithSessionErrorCallback fires when a visible session error is raised.
func WithSessionErrorCallback(callback func(message string)) DialogueOption {
	return func(o *dialogueOptions) { o.onSessionError = callback }
}

// WithConnectionCallback fires on every chat-channel state transition.
func WithConnectionCallback(callback func(state ConnectionState)) DialogueOption {
	return func(o *dialogueOptions) { o.onConnectionChange = callback }
}
