package protocol

import (
	"errors"
	"testing"
)

func TestDecodeDeltaCarriesBothChannels(t *testing.T) {
	event, err := Decode([]byte(`{"thinking":"hmm","response":"Hi","done":false}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	delta, ok := event.(Delta)
	if !ok {
		t.Fatalf("expected Delta, got %T", event)
	}
	if delta.Thinking != "hmm" {
		t.Fatalf("expected thinking chunk %q, got %q", "hmm", delta.Thinking)
	}
	if delta.Response != "Hi" {
		t.Fatalf("expected response chunk %q, got %q", "Hi", delta.Response)
	}
}

func TestDecodeDeltaAbsentFieldsAreEmptyChunks(t *testing.T) {
	for _, raw := range []string{`{}`, `{"done":false}`, `{"response":"x"}`} {
		event, err := Decode([]byte(raw))
		if err != nil {
			t.Fatalf("expected no error for %s, got %v", raw, err)
		}
		if _, ok := event.(Delta); !ok {
			t.Fatalf("expected Delta for %s, got %T", raw, event)
		}
	}

	event, _ := Decode([]byte(`{"thinking":"only"}`))
	delta := event.(Delta)
	if delta.Response != "" {
		t.Fatalf("expected absent response to decode as empty chunk, got %q", delta.Response)
	}
}

func TestDecodeDoneYieldsCompleted(t *testing.T) {
	event, err := Decode([]byte(`{"done":true,"full_response":"Final."}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	completed, ok := event.(Completed)
	if !ok {
		t.Fatalf("expected Completed, got %T", event)
	}
	if completed.FullResponse == nil || *completed.FullResponse != "Final." {
		t.Fatalf("expected full response %q, got %v", "Final.", completed.FullResponse)
	}
}

func TestDecodeDoneWithoutFullResponse(t *testing.T) {
	event, err := Decode([]byte(`{"done":true}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	completed, ok := event.(Completed)
	if !ok {
		t.Fatalf("expected Completed, got %T", event)
	}
	if completed.FullResponse != nil {
		t.Fatalf("expected absent full response, got %q", *completed.FullResponse)
	}
}

func TestDecodeErrorFieldWinsOverDone(t *testing.T) {
	event, err := Decode([]byte(`{"error":"model error","done":true}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	failed, ok := event.(Failed)
	if !ok {
		t.Fatalf("expected Failed, got %T", event)
	}
	if failed.Message != "model error" {
		t.Fatalf("expected failure message %q, got %q", "model error", failed.Message)
	}
}

func TestDecodeMalformedFrameIsDecodeError(t *testing.T) {
	_, err := Decode([]byte(`not json at all`))
	if err == nil {
		t.Fatal("expected an error for malformed input")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}
