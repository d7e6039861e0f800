package domain

// SizeEntry is the result of a size probe for one URL.
// Known is false for the "Unknown" sentinel (probed and unavailable).
type SizeEntry struct {
	KB    float64
	Known bool
}

// SizeUnknown is the sentinel stored when a probe fails.
var SizeUnknown = SizeEntry{}
