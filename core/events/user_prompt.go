package events

// KindUserPromptAccepted identifies accepted and transmitted user prompts.
const KindUserPromptAccepted Kind = "user_prompt.accepted"

// UserPromptAccepted carries a prompt that was appended to history and sent.
type UserPromptAccepted struct {
	Base
	Prompt string
}

// NewUserPromptAccepted creates a user prompt accepted event.
func NewUserPromptAccepted(prompt string) UserPromptAccepted {
	return UserPromptAccepted{Base: NewBase(KindUserPromptAccepted), Prompt: prompt}
}
