package events

const (
	// KindAssistantThinkingSegment identifies streamed reasoning-trace text.
	KindAssistantThinkingSegment Kind = "assistant_thinking.segment"
	// KindAssistantResponseSegment identifies streamed assistant answer text.
	KindAssistantResponseSegment Kind = "assistant_response.segment"
	// KindAssistantResponseFinalized identifies the final assembled answer.
	KindAssistantResponseFinalized Kind = "assistant_response.finalized"
)

// AssistantThinkingSegment carries a streamed reasoning-trace text segment.
type AssistantThinkingSegment struct {
	Base
	Segment string
}

// NewAssistantThinkingSegment creates an assistant thinking segment event.
func NewAssistantThinkingSegment(segment string) AssistantThinkingSegment {
	return AssistantThinkingSegment{Base: NewBase(KindAssistantThinkingSegment), Segment: segment}
}

// AssistantResponseSegment carries a streamed assistant answer text segment.
type AssistantResponseSegment struct {
	Base
	Segment string
}

// NewAssistantResponseSegment creates an assistant response segment event.
func NewAssistantResponseSegment(segment string) AssistantResponseSegment {
	return AssistantResponseSegment{Base: NewBase(KindAssistantResponseSegment), Segment: segment}
}

// AssistantResponseFinalized carries the finalized answer and the reasoning
// trace that accompanied it.
type AssistantResponseFinalized struct {
	Base
	Content   string
	Reasoning string
}

// NewAssistantResponseFinalized creates an assistant response finalized event.
func NewAssistantResponseFinalized(content, reasoning string) AssistantResponseFinalized {
	return AssistantResponseFinalized{Base: NewBase(KindAssistantResponseFinalized), Content: content, Reasoning: reasoning}
}
