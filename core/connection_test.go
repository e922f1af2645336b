package dialogue

import (
	"context"
	"testing"
	"time"
)

func TestConnectTransitionsToConnected(t *testing.T) {
	states := make(chan ConnectionState, 8)

	d, _ := connectedDialogue(t, WithConnectionCallback(func(state ConnectionState) { states <- state }))

	for _, want := range []ConnectionState{StateConnecting, StateConnected} {
		select {
		case got := <-states:
			if got != want {
				t.Fatalf("expected state %s, got %s", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for state %s", want)
		}
	}

	if got := d.Snapshot().Connection.State; got != StateConnected {
		t.Fatalf("expected snapshot state connected, got %s", got)
	}
}

func TestReconnectClosesPreviousTransportFirst(t *testing.T) {
	d, dialer := connectedDialogue(t)
	first := dialer.latest()

	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("expected reconnect to succeed, got %v", err)
	}

	if !first.closed.Load() {
		t.Fatal("expected the previous transport to be closed before opening a new one")
	}
	if got := dialer.dialCount(); got != 2 {
		t.Fatalf("expected two dials, got %d", got)
	}
}

func TestStaleTransportEventsAreDropped(t *testing.T) {
	d, dialer := connectedDialogue(t)

	if err := d.SendPrompt("hello"); err != nil {
		t.Fatalf("expected prompt to be accepted, got %v", err)
	}

	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("expected reconnect to succeed, got %v", err)
	}
	second := dialer.latest()

	time.Sleep(50 * time.Millisecond)

	snapshot := d.Snapshot()
	if snapshot.Connection.State != StateConnected {
		t.Fatalf("expected connected after reconnect, got %s", snapshot.Connection.State)
	}
	if snapshot.ActiveTurn != nil {
		t.Fatalf("expected the reconnect to reset the live buffer, got %+v", snapshot.ActiveTurn)
	}

	// The new channel works end to end.
	if err := d.SendPrompt("again"); err != nil {
		t.Fatalf("expected a prompt on the new channel to be accepted, got %v", err)
	}
	second.deliver(`{"done":true,"full_response":"recovered"}`)
	eventually(t, func() bool { return len(d.History()) == 3 }, "completion on the new channel never applied")
	if got := d.History()[2].Content; got != "recovered" {
		t.Fatalf("expected %q, got %q", "recovered", got)
	}
}

func TestRemoteCloseSurfacesDisconnectAndPreservesBuffer(t *testing.T) {
	d, dialer := connectedDialogue(t)
	conn := dialer.latest()

	if err := d.SendPrompt("hello"); err != nil {
		t.Fatalf("expected prompt to be accepted, got %v", err)
	}
	conn.deliver(`{"response":"partial","done":false}`)
	eventually(t, func() bool {
		snapshot := d.Snapshot()
		return snapshot.ActiveTurn != nil && snapshot.ActiveTurn.Response == "partial"
	}, "delta never applied")

	_ = conn.Close()

	eventually(t, func() bool {
		return d.Snapshot().Connection.State == StateDisconnected
	}, "remote close never surfaced")

	snapshot := d.Snapshot()
	if snapshot.ActiveTurn == nil || snapshot.ActiveTurn.Response != "partial" {
		t.Fatalf("expected partial output to stay visible after disconnect, got %+v", snapshot.ActiveTurn)
	}
	if snapshot.SessionError == "" {
		t.Fatal("expected a visible disconnect notice")
	}

	if err := d.SendPrompt("are you there?"); err != ErrNotConnected {
		t.Fatalf("expected ErrNotConnected after disconnect, got %v", err)
	}
}

func TestReconnectClearsStaleSessionError(t *testing.T) {
	d, dialer := connectedDialogue(t)
	conn := dialer.latest()

	if err := d.SendPrompt("hello"); err != nil {
		t.Fatalf("expected prompt to be accepted, got %v", err)
	}
	conn.deliver(`{"error":"model error"}`)
	eventually(t, func() bool { return d.Snapshot().SessionError == "model error" }, "failure never surfaced")

	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("expected reconnect to succeed, got %v", err)
	}

	if got := d.Snapshot().SessionError; got != "" {
		t.Fatalf("expected the stale session error to clear on connect, got %q", got)
	}
}

func TestIdleTimeoutFailsTheTurnLocally(t *testing.T) {
	d, _ := connectedDialogue(t, WithIdleTimeout(50*time.Millisecond))

	if err := d.SendPrompt("hello"); err != nil {
		t.Fatalf("expected prompt to be accepted, got %v", err)
	}

	eventually(t, func() bool { return d.Snapshot().SessionError != "" }, "idle timeout never fired")

	snapshot := d.Snapshot()
	if snapshot.ActiveTurn != nil {
		t.Fatalf("expected the buffer to reset on timeout, got %+v", snapshot.ActiveTurn)
	}
	if got := len(snapshot.History); got != 1 {
		t.Fatalf("expected only the user turn, got %d", got)
	}
	if snapshot.Connection.State != StateConnected {
		t.Fatalf("expected the connection to stay up, got %s", snapshot.Connection.State)
	}
}

func TestIdleTimeoutIsPushedBackByDeltas(t *testing.T) {
	d, dialer := connectedDialogue(t, WithIdleTimeout(150*time.Millisecond))
	conn := dialer.latest()

	if err := d.SendPrompt("hello"); err != nil {
		t.Fatalf("expected prompt to be accepted, got %v", err)
	}

	// Keep feeding deltas under the window, then complete; the timeout must
	// not have fired in between.
	for i := 0; i < 4; i++ {
		time.Sleep(75 * time.Millisecond)
		conn.deliver(`{"response":"x","done":false}`)
	}
	conn.deliver(`{"done":true}`)

	eventually(t, func() bool { return len(d.History()) == 2 }, "completion never finalized the turn")

	snapshot := d.Snapshot()
	if snapshot.SessionError != "" {
		t.Fatalf("expected no timeout error, got %q", snapshot.SessionError)
	}
	if got := snapshot.History[1].Content; got != "xxxx" {
		t.Fatalf("expected all deltas to accumulate, got %q", got)
	}
}

func TestCloseReleasesTransportAndIsIdempotent(t *testing.T) {
	d, dialer := connectedDialogue(t)
	conn := dialer.latest()

	if err := d.Close(); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}
	if !conn.closed.Load() {
		t.Fatal("expected the transport to be released on close")
	}
	if err := d.Close(); err != nil {
		t.Fatalf("expected repeated close to be a no-op, got %v", err)
	}

	if got := d.Snapshot().Connection.State; got != StateClosed {
		t.Fatalf("expected closed state, got %s", got)
	}
	if err := d.SendPrompt("hello"); err != ErrDialogueClosed {
		t.Fatalf("expected ErrDialogueClosed, got %v", err)
	}
	if err := d.Connect(context.Background()); err != ErrDialogueClosed {
		t.Fatalf("expected ErrDialogueClosed on connect after close, got %v", err)
	}
}

func TestSnapshotIsDetachedFromLiveState(t *testing.T) {
	d, dialer := connectedDialogue(t)
	conn := dialer.latest()

	if err := d.SendPrompt("hello"); err != nil {
		t.Fatalf("expected prompt to be accepted, got %v", err)
	}
	before := d.Snapshot()

	conn.deliver(`{"done":true,"full_response":"Final."}`)
	eventually(t, func() bool { return len(d.History()) == 2 }, "completion never finalized the turn")

	if got := len(before.History); got != 1 {
		t.Fatalf("expected the earlier snapshot to be unaffected, got %d turns", got)
	}

	// Mutating a snapshot must not leak into dialogue state.
	after := d.Snapshot()
	after.History[0].Content = "tampered"
	if got := d.History()[0].Content; got != "hello" {
		t.Fatalf("expected history to be isolated from snapshot mutation, got %q", got)
	}
}
