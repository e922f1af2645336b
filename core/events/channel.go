package events

// KindChannelFrameRejected identifies dropped undecodable inbound frames.
const KindChannelFrameRejected Kind = "channel.frame_rejected"

// ChannelFrameRejected reports an inbound frame that failed to decode. The
// channel stays open; the frame is dropped.
type ChannelFrameRejected struct {
	Base
	Reason string
}

// NewChannelFrameRejected creates a frame rejected event.
func NewChannelFrameRejected(reason string) ChannelFrameRejected {
	return ChannelFrameRejected{Base: NewBase(KindChannelFrameRejected), Reason: reason}
}
