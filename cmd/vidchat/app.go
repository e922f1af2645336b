package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	dialogue "github.com/koscakluka/vidchat-core/core"
	"github.com/koscakluka/vidchat-core/core/events"
	"github.com/koscakluka/vidchat-core/core/media"
	"github.com/koscakluka/vidchat-core/core/transport/websocket"
)

type appState int

const (
	stateUploading appState = iota
	stateConnecting
	stateChatting
)

type app struct {
	config    Config
	videoPath string

	mediaClient *media.Client
	dialogue    *dialogue.Dialogue
	eventCh     chan events.Event

	state   appState
	videoID string

	results  []media.SearchResult
	seekLine string

	input    textinput.Model
	view     viewport.Model
	spin     spinner.Model
	width    int
	height   int
	quitting bool
}

func newApp(config Config, videoPath string) *app {
	input := textinput.New()
	input.Placeholder = "Ask about the video, /search <query>, /seek <n>, /quit"
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &app{
		config:      config,
		videoPath:   videoPath,
		mediaClient: media.NewClient(config.BaseURL()),
		eventCh:     make(chan events.Event, 64),
		state:       stateUploading,
		input:       input,
		view:        viewport.New(80, 20),
		spin:        spin,
	}
}

func (a *app) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.uploadCmd())
}

func (a *app) uploadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		videoID, err := a.mediaClient.Upload(ctx, a.videoPath)
		if err != nil {
			return uploadFailedMsg{err: err}
		}
		return uploadedMsg{videoID: videoID}
	}
}

func (a *app) connectCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := a.dialogue.Connect(ctx); err != nil {
			return connectFailedMsg{err: err}
		}
		return connectedMsg{}
	}
}

func (a *app) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		results, err := a.mediaClient.Search(ctx, a.videoID, query)
		if err != nil {
			return searchFailedMsg{err: err}
		}
		return searchResultsMsg{results: results}
	}
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.view.Width = msg.Width
		a.view.Height = msg.Height - 6
		a.input.Width = msg.Width - 4
		a.refreshTranscript()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a.quit()
		case tea.KeyEnter:
			return a.submitInput()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case uploadedMsg:
		a.videoID = msg.videoID
		a.state = stateConnecting

		dialer := a.chatDialer()
		a.dialogue = dialogue.New(msg.videoID, dialer,
			dialogue.WithIdleTimeout(time.Duration(a.config.IdleTimeoutSeconds)*time.Second),
			dialogue.WithEventHandler(func(event events.Event) {
				select {
				case a.eventCh <- event:
				default:
				}
			}),
		)
		return a, tea.Batch(a.connectCmd(), waitForDialogueEvent(a.eventCh))

	case uploadFailedMsg:
		a.seekLine = errorStyle.Render(msg.err.Error())
		a.state = stateChatting // nothing to wait for; show the error
		a.refreshTranscript()
		return a, nil

	case connectedMsg:
		a.state = stateChatting
		a.refreshTranscript()
		return a, nil

	case connectFailedMsg:
		a.state = stateChatting
		a.seekLine = errorStyle.Render(msg.err.Error())
		a.refreshTranscript()
		return a, nil

	case dialogueEventMsg:
		a.refreshTranscript()
		return a, waitForDialogueEvent(a.eventCh)

	case searchResultsMsg:
		a.results = msg.results
		a.refreshTranscript()
		return a, nil

	case searchFailedMsg:
		a.results = nil
		a.seekLine = errorStyle.Render(msg.err.Error())
		a.refreshTranscript()
		return a, nil
	}

	var inputCmd, viewCmd tea.Cmd
	a.input, inputCmd = a.input.Update(msg)
	a.view, viewCmd = a.view.Update(msg)
	return a, tea.Batch(inputCmd, viewCmd)
}

func (a *app) chatDialer() *websocket.Dialer {
	if a.config.UseTLS {
		return websocket.NewDialer(a.config.ServerHost, websocket.WithTLS())
	}
	return websocket.NewDialer(a.config.ServerHost)
}

func (a *app) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	if a.dialogue != nil {
		_ = a.dialogue.Close()
	}
	return a, tea.Quit
}

func (a *app) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.input.Value())
	a.input.Reset()

	switch {
	case text == "":
		return a, nil

	case text == "/quit":
		return a.quit()

	case strings.HasPrefix(text, "/search "):
		if a.videoID == "" {
			return a, nil
		}
		return a, a.searchCmd(strings.TrimPrefix(text, "/search "))

	case strings.HasPrefix(text, "/seek "):
		// Seek projection: map a result's start offset onto a playback
		// position line. Playback itself lives outside this client.
		index := strings.TrimSpace(strings.TrimPrefix(text, "/seek "))
		a.seekLine = a.projectSeek(index)
		a.refreshTranscript()
		return a, nil

	default:
		if a.dialogue == nil {
			return a, nil
		}
		if err := a.dialogue.SendPrompt(text); err != nil {
			a.seekLine = errorStyle.Render(err.Error())
		} else {
			a.seekLine = ""
		}
		a.refreshTranscript()
		return a, nil
	}
}

func (a *app) projectSeek(index string) string {
	var n int
	if _, err := fmt.Sscanf(index, "%d", &n); err != nil || n < 1 || n > len(a.results) {
		return errorStyle.Render(fmt.Sprintf("no search result #%s to seek to", index))
	}

	result := a.results[n-1]
	return statusStyle.Render(fmt.Sprintf("▶ playback would seek to %.2fs (%s)", result.Start, strings.TrimSpace(result.Text)))
}

func (a *app) refreshTranscript() {
	if a.dialogue == nil {
		return
	}

	width := a.view.Width
	if width <= 0 {
		width = 80
	}

	snapshot := a.dialogue.Snapshot()
	var b strings.Builder

	for _, turn := range snapshot.History {
		switch turn.Role {
		case dialogue.RoleUser:
			b.WriteString(userStyle.Render("you: ") + wordwrap.String(turn.Content, width-6) + "\n")
		case dialogue.RoleAssistant:
			if a.config.ShowThinking && turn.Reasoning != "" {
				b.WriteString(thinkingStyle.Render(wordwrap.String("· "+turn.Reasoning, width-2)) + "\n")
			}
			b.WriteString(assistantStyle.Render(wordwrap.String(turn.Content, width-2)) + "\n")
		}
		b.WriteString("\n")
	}

	if live := snapshot.ActiveTurn; live != nil {
		if a.config.ShowThinking && live.Thinking != "" {
			b.WriteString(thinkingStyle.Render(wordwrap.String("· "+live.Thinking, width-2)) + "\n")
		}
		if live.Response != "" {
			b.WriteString(assistantStyle.Render(wordwrap.String(live.Response, width-2)) + "\n")
		} else if live.Thinking == "" {
			b.WriteString(statusStyle.Render(a.spin.View()+" waiting for a response") + "\n")
		}
	}

	if len(a.results) > 0 {
		b.WriteString("\n" + titleStyle.Render("search results") + "\n")
		for i, result := range a.results {
			line := fmt.Sprintf("%d. [%.2fs - %.2fs] %s", i+1, result.Start, result.End, strings.TrimSpace(result.Text))
			if result.VisualContext != "" {
				line += " (" + result.VisualContext + ")"
			}
			b.WriteString(resultStyle.Render(wordwrap.String(line, width-2)) + "\n")
		}
	}

	a.view.SetContent(b.String())
	a.view.GotoBottom()
}

func (a *app) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("vidchat") + " " + statusStyle.Render(a.videoPath) + "\n")

	switch a.state {
	case stateUploading:
		b.WriteString("\n" + a.spin.View() + " uploading and processing video...\n")
		return b.String()
	case stateConnecting:
		b.WriteString("\n" + a.spin.View() + " opening chat channel...\n")
		return b.String()
	}

	status := "disconnected"
	sessionError := ""
	if a.dialogue != nil {
		snapshot := a.dialogue.Snapshot()
		status = string(snapshot.Connection.State)
		sessionError = snapshot.SessionError
	}

	b.WriteString(a.view.View() + "\n")
	if sessionError != "" {
		b.WriteString(errorStyle.Render(sessionError) + "\n")
	}
	if a.seekLine != "" {
		b.WriteString(a.seekLine + "\n")
	}
	b.WriteString(statusStyle.Render("["+status+"] ") + a.input.View() + "\n")
	return b.String()
}
