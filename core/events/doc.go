// Package events defines the typed dialogue event contract exposed to
// presentation layers.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - connection.*
//   - user_prompt.*
//   - assistant_thinking.*
//   - assistant_response.*
//   - session_error.*
//   - channel.*
//
// Semantics used across the package:
//
//   - Segment: append-only text piece emitted in stream order.
//   - Finalized: terminal immutable payload for the current turn.
//
// connection events
//
//   - ConnectionStateChanged (connection.state_changed): the chat channel
//     moved between disconnected, connecting, connected and closed.
//
// user_prompt events
//
//   - UserPromptAccepted (user_prompt.accepted): a user prompt passed
//     validation, was appended to history and transmitted.
//
// assistant_thinking events
//
//   - AssistantThinkingSegment (assistant_thinking.segment): streamed
//     reasoning-trace text segment.
//
// assistant_response events
//
//   - AssistantResponseSegment (assistant_response.segment): streamed answer
//     text segment.
//   - AssistantResponseFinalized (assistant_response.finalized): final
//     assembled answer with its reasoning trace; exactly one per completed
//     assistant turn.
//
// session_error events
//
//   - SessionErrorRaised (session_error.raised): a visible, non-fatal error
//     notice (remote failure, decode fault, disconnect).
//   - SessionErrorCleared (session_error.cleared): the notice was cleared by
//     a successful reconnect.
//
// channel events
//
//   - ChannelFrameRejected (channel.frame_rejected): an inbound frame failed
//     to decode and was dropped; the channel stays open.
package events
