package dialogue

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/koscakluka/vidchat-core/core/events"
	"github.com/koscakluka/vidchat-core/core/protocol"
	"github.com/koscakluka/vidchat-core/core/transport"
)

const disconnectedNotice = "Disconnected from the video session"

var errConnectionSuperseded = fmt.Errorf("connection superseded by a newer connect")

// Connect opens the chat channel for this session. Calling it while a
// channel is already open first closes the old one, so at most one live
// transport exists per session at any time. A successful connect clears any
// stale session error.
func (d *Dialogue) Connect(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "connect chat channel")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", d.sessionID))

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDialogueClosed
	}
	previous := d.conn
	d.conn = nil
	d.generation++
	generation := d.generation
	d.state = StateConnecting
	emit := d.emit
	d.mu.Unlock()

	emit(events.NewConnectionStateChanged(string(StateConnecting), ""))

	// Close-before-open: the stale read loop sees its generation replaced
	// and exits without touching state.
	if previous != nil {
		if err := previous.Close(); err != nil {
			span.RecordError(fmt.Errorf("failed to close previous chat channel: %w", err))
		}
		span.AddEvent("closed previous channel", trace.WithAttributes(attribute.Int("connection.generation", generation-1)))
	}

	conn, err := d.dialer.DialSession(ctx, d.sessionID)
	if err != nil {
		err = fmt.Errorf("failed to open chat channel: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		d.mu.Lock()
		if d.generation == generation && !d.closed {
			d.state = StateDisconnected
		}
		d.mu.Unlock()

		emit(events.NewConnectionStateChanged(string(StateDisconnected), ""))
		return err
	}

	d.mu.Lock()
	if d.closed || d.generation != generation {
		d.mu.Unlock()
		_ = conn.Close()
		if d.closed {
			return ErrDialogueClosed
		}
		return errConnectionSuperseded
	}
	d.conn = conn
	d.state = StateConnected
	cleared := d.sessionErr != ""
	d.sessionErr = ""
	// A fresh channel cannot continue the old in-flight turn: the buffer is
	// reset, unlike on a bare remote close where partial output stays
	// visible until the user reconnects.
	d.active = nil
	d.stopIdleTimerLocked()
	d.mu.Unlock()

	emit(events.NewConnectionStateChanged(string(StateConnected), ""))
	if cleared {
		emit(events.NewSessionErrorCleared())
	}

	go d.readLoop(conn, generation)
	return nil
}

// readLoop pumps one transport until it dies or is replaced. Decode faults
// are local: the frame is dropped, the channel stays open.
func (d *Dialogue) readLoop(conn transport.Transport, generation int) {
	for {
		msg, err := conn.ReadMessage()
		if err != nil {
			d.channelClosed(generation, err)
			return
		}

		event, err := protocol.Decode(msg)
		if err != nil {
			logger.Warn("dropping undecodable chat frame", "session_id", d.sessionID, "error", err)

			d.mu.Lock()
			if d.closed || d.generation != generation {
				d.mu.Unlock()
				return
			}
			d.sessionErr = "Received an unreadable message from the server"
			emit := d.emit
			d.mu.Unlock()

			emit(events.NewChannelFrameRejected(err.Error()))
			emit(events.NewSessionErrorRaised("Received an unreadable message from the server"))
			continue
		}

		d.apply(generation, event)
	}
}

// channelClosed reacts to the transport dying underneath the read loop. The
// live buffer is left as-is so any partial output stays visible; no prompt
// can be sent until a new connection is established.
func (d *Dialogue) channelClosed(generation int, err error) {
	d.mu.Lock()
	if d.closed || d.generation != generation {
		// Deliberate teardown or a replaced transport; nothing to report.
		d.mu.Unlock()
		return
	}

	logger.Warn("chat channel closed", "session_id", d.sessionID, "error", err)

	d.conn = nil
	d.state = StateDisconnected
	d.sessionErr = disconnectedNotice
	d.stopIdleTimerLocked()
	emit := d.emit
	d.mu.Unlock()

	emit(events.NewConnectionStateChanged(string(StateDisconnected), ""))
	emit(events.NewSessionErrorRaised(disconnectedNotice))
}

// Close tears the dialogue down, releasing the transport on every exit path.
// Safe to call more than once.
func (d *Dialogue) Close() error {
	var closeErr error
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.state = StateClosed
		d.closeReason = "closed by client"
		conn := d.conn
		d.conn = nil
		d.stopIdleTimerLocked()
		emit := d.emit
		d.mu.Unlock()

		if conn != nil {
			if err := conn.Close(); err != nil {
				closeErr = fmt.Errorf("failed to close chat channel: %w", err)
			}
		}

		emit(events.NewConnectionStateChanged(string(StateClosed), "closed by client"))
	})
	return closeErr
}
