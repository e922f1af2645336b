package protocol

import "testing"

func TestFrameSchemaPinsWireFields(t *testing.T) {
	schema := FrameSchema()

	expected := []string{"thinking", "response", "error", "done", "full_response"}
	for _, field := range expected {
		if _, ok := schema.Properties.Get(field); !ok {
			t.Fatalf("expected wire schema to declare field %q", field)
		}
	}

	if got := schema.Properties.Len(); got != len(expected) {
		t.Fatalf("expected %d wire fields, got %d", len(expected), got)
	}

	if len(schema.Required) != 0 {
		t.Fatalf("expected every wire field to be optional, got required: %v", schema.Required)
	}
}
