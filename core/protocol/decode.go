// Package protocol decodes raw chat-channel frames into typed events.
//
// Inbound frames are JSON objects with optional fields: thinking, response,
// error, done, full_response. Variant selection happens here, once: an error
// field yields [Failed], done yields [Completed], anything else is a [Delta].
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/koscakluka/vidchat-core/internal/utils"
)

// DecodeError wraps a structurally unparsable frame. It is a local fault:
// callers log it and keep the channel open.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode chat frame: %v", e.err)
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// frame is the wire shape of one inbound chat-channel message. Pointers
// distinguish absent fields from present-but-empty ones.
type frame struct {
	Thinking     *string `json:"thinking,omitempty"`
	Response     *string `json:"response,omitempty"`
	Error        *string `json:"error,omitempty"`
	Done         *bool   `json:"done,omitempty"`
	FullResponse *string `json:"full_response,omitempty"`
}

// Decode parses one raw frame into its event variant. It is a pure function
// of the frame and never terminates the channel: unparsable input comes back
// as a *DecodeError for the caller to report locally.
func Decode(raw []byte) (Event, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, &DecodeError{err: err}
	}

	if f.Error != nil {
		return Failed{Message: *f.Error}, nil
	}

	if f.Done != nil && *f.Done {
		completed := Completed{}
		if f.FullResponse != nil {
			completed.FullResponse = utils.Ptr(*f.FullResponse)
		}
		return completed, nil
	}

	delta := Delta{}
	if f.Thinking != nil {
		delta.Thinking = *f.Thinking
	}
	if f.Response != nil {
		delta.Response = *f.Response
	}
	return delta, nil
}
