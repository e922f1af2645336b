package dialogue

import (
	"time"

	"github.com/google/uuid"

	"github.com/koscakluka/vidchat-core/core/events"
	"github.com/koscakluka/vidchat-core/core/protocol"
)

// apply routes one decoded event into the conversation state machine. Events
// read from a transport that has since been replaced are dropped; generation
// is the read loop's transport generation.
//
// Each event is applied to completion under the lock before the next one is
// accepted, so no transition is ever observable half-applied.
func (d *Dialogue) apply(generation int, event protocol.Event) {
	var emissions []events.Event

	d.mu.Lock()
	if d.closed || d.generation != generation {
		d.mu.Unlock()
		return
	}

	switch typedEvent := event.(type) {
	case protocol.Delta:
		if d.active == nil {
			// Protocol anomaly: a delta with no turn in flight. Dropped so a
			// finalized turn can never be extended or duplicated.
			logger.Warn("dropping delta with no turn in flight", "session_id", d.sessionID)
			d.mu.Unlock()
			return
		}

		d.active.thinking += typedEvent.Thinking
		d.active.response += typedEvent.Response
		d.resetIdleTimerLocked()

		if typedEvent.Thinking != "" {
			emissions = append(emissions, events.NewAssistantThinkingSegment(typedEvent.Thinking))
		}
		if typedEvent.Response != "" {
			emissions = append(emissions, events.NewAssistantResponseSegment(typedEvent.Response))
		}

	case protocol.Completed:
		if d.active == nil {
			logger.Warn("dropping completion with no turn in flight", "session_id", d.sessionID)
			d.mu.Unlock()
			return
		}

		// The remote's assembled answer wins over the accumulation when it
		// is present and non-empty. An entirely empty completion still
		// produces a turn; the gap stays visible in history.
		content := d.active.response
		if typedEvent.FullResponse != nil && *typedEvent.FullResponse != "" {
			content = *typedEvent.FullResponse
		}

		turn := Turn{
			ID:        uuid.NewString(),
			Role:      RoleAssistant,
			Content:   content,
			Reasoning: d.active.thinking,
		}
		d.turns = append(d.turns, turn)
		d.active = nil
		d.stopIdleTimerLocked()

		emissions = append(emissions, events.NewAssistantResponseFinalized(turn.Content, turn.Reasoning))

	case protocol.Failed:
		if d.active == nil {
			logger.Warn("dropping failure with no turn in flight", "session_id", d.sessionID)
			d.mu.Unlock()
			return
		}

		// No turn is appended: the user's prompt stays in history as a
		// visible gap, and the connection is left alone so they can retry.
		d.active = nil
		d.sessionErr = typedEvent.Message
		d.stopIdleTimerLocked()

		emissions = append(emissions, events.NewSessionErrorRaised(typedEvent.Message))
	}

	emit := d.emit
	d.mu.Unlock()

	for _, emission := range emissions {
		emit(emission)
	}
}

// armIdleTimerLocked starts the per-prompt idle window; when it elapses with
// no event having arrived, the in-flight turn is failed locally.
func (d *Dialogue) armIdleTimerLocked() {
	if d.idleTimeout <= 0 {
		return
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.turnSeq++
	seq := d.turnSeq
	d.idleTimer = time.AfterFunc(d.idleTimeout, func() { d.idleTimedOut(seq) })
}

func (d *Dialogue) resetIdleTimerLocked() {
	if d.idleTimer != nil {
		d.idleTimer.Reset(d.idleTimeout)
	}
}

func (d *Dialogue) stopIdleTimerLocked() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
}

func (d *Dialogue) idleTimedOut(seq int) {
	d.mu.Lock()
	if d.closed || d.turnSeq != seq || d.active == nil {
		d.mu.Unlock()
		return
	}

	logger.Warn("failing turn after idle timeout", "session_id", d.sessionID, "timeout", d.idleTimeout)

	d.active = nil
	d.sessionErr = "No response arrived in time"
	d.idleTimer = nil
	emit := d.emit
	d.mu.Unlock()

	emit(events.NewSessionErrorRaised("No response arrived in time"))
}
