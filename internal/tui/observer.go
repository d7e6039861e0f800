package tui

import "github.com/mmcdole/examvault/internal/domain"

// ChannelObserver adapts domain.ListObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.ListState
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.ListState) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnListChange sends the snapshot to the channel (non-blocking if full).
// A dropped snapshot is recovered when the operation's ListOpDoneMsg
// re-reads the synchronizer.
func (o *ChannelObserver) OnListChange(state domain.ListState) {
	select {
	case o.ch <- state:
	default: // Non-blocking if channel full
	}
}

// SizeNotifier returns an enricher update callback that forwards resolved
// URLs to ch without blocking the probe.
func SizeNotifier(ch chan<- string) func(url string, entry domain.SizeEntry) {
	return func(url string, _ domain.SizeEntry) {
		select {
		case ch <- url:
		default:
		}
	}
}
