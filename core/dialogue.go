// Package dialogue is the conversational core of the video chat client: it
// owns the chat channel for one uploaded video, reconstructs coherent
// assistant turns from streamed protocol events, and exposes read-only
// snapshots of the conversation to presentation layers.
package dialogue

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/koscakluka/vidchat-core/core/events"
	"github.com/koscakluka/vidchat-core/core/transport"
)

var (
	ErrEmptyPrompt      = errors.New("prompt rejected: empty text")
	ErrNotConnected     = errors.New("prompt rejected: chat channel not connected")
	ErrResponseInFlight = errors.New("prompt rejected: a response is still streaming")
	ErrDialogueClosed   = errors.New("dialogue closed")
)

// Dialogue is the streaming dialogue aggregator for one video session. All
// state mutation funnels through its mutex; presentation layers only read
// snapshots, never state.
type Dialogue struct {
	sessionID string
	dialer    transport.Dialer

	mu sync.Mutex

	turns  []Turn
	active *liveBuffer

	conn        transport.Transport
	generation  int
	state       ConnectionState
	closeReason string
	sessionErr  string

	idleTimeout time.Duration
	idleTimer   *time.Timer
	turnSeq     int

	closed    bool
	closeOnce sync.Once

	emit eventEmitter
}

// liveBuffer accumulates the turn currently being produced by the remote
// side: at most one is live at a time.
type liveBuffer struct {
	thinking string
	response string
}

// New creates a dialogue for the video session with the given id. The
// channel is not opened until Connect is called.
func New(sessionID string, dialer transport.Dialer, opts ...DialogueOption) *Dialogue {
	d := &Dialogue{
		sessionID: sessionID,
		dialer:    dialer,
		state:     StateDisconnected,
	}

	options := dialogueOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	d.idleTimeout = options.idleTimeout
	d.emit = newCallbackEventEmitter(options)

	return d
}

// SessionID returns the video session id this dialogue is bound to.
func (d *Dialogue) SessionID() string {
	return d.sessionID
}

// SendPrompt validates and transmits one user prompt. It requires an open
// channel and non-empty trimmed text, appends the user turn to history and
// opens the streaming buffer for the answer. Prompts are never queued across
// disconnects: when the channel is down the prompt is rejected outright.
func (d *Dialogue) SendPrompt(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyPrompt
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDialogueClosed
	}
	if d.state != StateConnected || d.conn == nil {
		d.mu.Unlock()
		return ErrNotConnected
	}
	if d.active != nil {
		d.mu.Unlock()
		return ErrResponseInFlight
	}

	if err := d.conn.SendText(trimmed); err != nil {
		d.mu.Unlock()
		return fmt.Errorf("failed to transmit prompt: %w", err)
	}

	d.turns = append(d.turns, Turn{ID: uuid.NewString(), Role: RoleUser, Content: trimmed})
	d.active = &liveBuffer{}
	d.armIdleTimerLocked()
	emit := d.emit
	d.mu.Unlock()

	emit(events.NewUserPromptAccepted(trimmed))
	return nil
}

// Snapshot returns an immutable point-in-time view of the conversation. It
// never blocks on the network.
func (d *Dialogue) Snapshot() Conversation {
	d.mu.Lock()
	defer d.mu.Unlock()

	var history []Turn
	if len(d.turns) > 0 {
		copier.Copy(&history, d.turns)
	}

	var active *ActiveTurn
	if d.active != nil {
		active = &ActiveTurn{Thinking: d.active.thinking, Response: d.active.response}
	}

	return Conversation{
		History:      history,
		ActiveTurn:   active,
		Connection:   ConnectionStatus{State: d.state, Reason: d.closeReason},
		SessionError: d.sessionErr,
	}
}

// History returns the finalized turns only. Ordering: oldest -> newest.
func (d *Dialogue) History() []Turn {
	d.mu.Lock()
	defer d.mu.Unlock()

	history := make([]Turn, len(d.turns))
	copy(history, d.turns)
	return history
}
