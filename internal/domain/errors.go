package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNetworkFailure indicates a transport error or a non-success payload
	ErrNetworkFailure = errors.New("network failure")

	// ErrServerOffline indicates the document server is unreachable
	ErrServerOffline = errors.New("document server is unreachable")

	// ErrCacheMiss indicates no persisted snapshot is available
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheCorrupt indicates the persisted snapshot could not be parsed
	ErrCacheCorrupt = errors.New("cache corrupted")

	// ErrProbeFailure indicates a size probe returned no usable size
	ErrProbeFailure = errors.New("size probe failed")

	// ErrBusy indicates the operation was dropped because a fetch is in flight
	ErrBusy = errors.New("fetch already in flight")

	// ErrEndOfList indicates pagination already saw a short page
	ErrEndOfList = errors.New("no more pages")

	// ErrInvalidState indicates the operation is not valid in the current phase
	ErrInvalidState = errors.New("operation not valid in current state")
)
