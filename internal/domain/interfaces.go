package domain

import "context"

// PageSource: paginated remote listing (implemented by source clients).
// A non-success payload and a transport failure both return an error
// wrapping ErrNetworkFailure.
type PageSource interface {
	FetchPage(ctx context.Context, page, limit int) (Page, error)
}

// SizeProber resolves the size of a remote document in bytes.
// Returns an error wrapping ErrProbeFailure when no usable size is available.
type SizeProber interface {
	ProbeSize(ctx context.Context, url string) (int64, error)
}

// ListObserver receives a snapshot after every committed state change.
type ListObserver interface {
	OnListChange(state ListState)
}

// ListObserverFunc adapts a function to ListObserver.
type ListObserverFunc func(state ListState)

func (f ListObserverFunc) OnListChange(state ListState) { f(state) }

// NoOpObserver discards updates (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnListChange(ListState) {}
