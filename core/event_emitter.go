package dialogue

import "github.com/koscakluka/vidchat-core/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(opts dialogueOptions) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.UserPromptAccepted:
			if opts.onPromptAccepted != nil {
				opts.onPromptAccepted(typedEvent.Prompt)
			}
		case events.AssistantThinkingSegment:
			if opts.onThinking != nil {
				opts.onThinking(typedEvent.Segment)
			}
		case events.AssistantResponseSegment:
			if opts.onResponse != nil {
				opts.onResponse(typedEvent.Segment)
			}
		case events.AssistantResponseFinalized:
			if opts.onResponseEnd != nil {
				opts.onResponseEnd(typedEvent.Content, typedEvent.Reasoning)
			}
		case events.SessionErrorRaised:
			if opts.onSessionError != nil {
				opts.onSessionError(typedEvent.Message)
			}
		case events.ConnectionStateChanged:
			if opts.onConnectionChange != nil {
				opts.onConnectionChange(ConnectionState(typedEvent.State))
			}
		}

		if opts.handler != nil {
			opts.handler(event)
		}
	}
}
