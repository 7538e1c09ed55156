package tui

import "github.com/mmcdole/pixa/internal/domain"

// ChannelSink adapts domain.NoticeSink to a channel for Bubble Tea.
type ChannelSink struct {
	ch chan<- domain.Notice
}

// NewChannelSink creates a new channel-based notice sink.
func NewChannelSink(ch chan<- domain.Notice) *ChannelSink {
	return &ChannelSink{ch: ch}
}

// Notify sends the notice to the channel (non-blocking if full).
func (s *ChannelSink) Notify(n domain.Notice) {
	select {
	case s.ch <- n:
	default: // Non-blocking if channel full
	}
}
