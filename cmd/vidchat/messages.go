package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/koscakluka/vidchat-core/core/events"
	"github.com/koscakluka/vidchat-core/core/media"
)

type uploadedMsg struct {
	videoID string
}

type uploadFailedMsg struct {
	err error
}

type connectedMsg struct{}

type connectFailedMsg struct {
	err error
}

type searchResultsMsg struct {
	results []media.SearchResult
}

type searchFailedMsg struct {
	err error
}

type dialogueEventMsg struct {
	event events.Event
}

// waitForDialogueEvent re-arms itself after every delivered event so the
// dialogue's event stream keeps flowing into the program loop.
func waitForDialogueEvent(eventCh <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-eventCh
		if !ok {
			return nil
		}
		return dialogueEventMsg{event: event}
	}
}
