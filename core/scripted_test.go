package dialogue

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/koscakluka/vidchat-core/core/transport"
)

// scriptedTransport is an in-memory chat channel the test feeds frames into.
type scriptedTransport struct {
	inbound chan []byte
	sent    chan string

	closeOnce sync.Once
	closed    atomic.Bool
}

func newScriptedTransport() *scriptedTransport {
	return &scriptedTransport{
		inbound: make(chan []byte, 16),
		sent:    make(chan string, 16),
	}
}

func (t *scriptedTransport) SendText(text string) error {
	t.sent <- text
	return nil
}

func (t *scriptedTransport) ReadMessage() ([]byte, error) {
	msg, ok := <-t.inbound
	if !ok {
		return nil, io.EOF
	}
	return msg, nil
}

func (t *scriptedTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		close(t.inbound)
	})
	return nil
}

func (t *scriptedTransport) deliver(frame string) {
	t.inbound <- []byte(frame)
}

// scriptedDialer hands out a fresh scripted transport per dial.
type scriptedDialer struct {
	mu         sync.Mutex
	transports []*scriptedTransport
}

func (d *scriptedDialer) DialSession(_ context.Context, _ string) (transport.Transport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	conn := newScriptedTransport()
	d.transports = append(d.transports, conn)
	return conn, nil
}

func (d *scriptedDialer) latest() *scriptedTransport {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.transports) == 0 {
		return nil
	}
	return d.transports[len(d.transports)-1]
}

func (d *scriptedDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.transports)
}

// connectedDialogue wires a dialogue to a scripted dialer and connects it.
func connectedDialogue(t *testing.T, opts ...DialogueOption) (*Dialogue, *scriptedDialer) {
	t.Helper()

	dialer := &scriptedDialer{}
	d := New("video-123", dialer, opts...)
	t.Cleanup(func() { _ = d.Close() })

	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("expected connect to succeed, got %v", err)
	}
	return d, dialer
}

// eventually polls until the condition holds or the deadline passes.
func eventually(t *testing.T, condition func() bool, message string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(message)
}

func expectSent(t *testing.T, conn *scriptedTransport, want string) {
	t.Helper()

	select {
	case got := <-conn.sent:
		if got != want {
			t.Fatalf("expected outbound frame %q, got %q", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for outbound frame %q", want)
	}
}
