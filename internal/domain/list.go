package domain

// Phase is the synchronizer's position in its state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoadingInitial
	PhaseReady
	PhaseLoadingMore
	PhaseRefreshing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoadingInitial:
		return "loading-initial"
	case PhaseReady:
		return "ready"
	case PhaseLoadingMore:
		return "loading-more"
	case PhaseRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// ListState is a read-only snapshot of the synchronized document list.
type ListState struct {
	Items        []Document
	Page         int  // Highest successfully requested page (starts at 1)
	HasMore      bool // Last fetched page was full
	IsLoading    bool // Page fetch in flight (initial or pagination)
	IsRefreshing bool // User-initiated refresh in flight
	Phase        Phase

	// Version changes whenever Items is replaced or appended to.
	Version uint64
	// FromCache is true while Items came from the local snapshot.
	FromCache bool
	// PageFailures counts consecutive failed LoadMore attempts.
	PageFailures int
}

// ShowPlaceholder reports whether the presentation layer should render the
// full-list skeleton instead of the list.
func (s ListState) ShowPlaceholder() bool {
	return s.IsLoading && s.Page == 1 && len(s.Items) == 0
}

// Page is one response from the remote page source.
type Page struct {
	Number int
	Items  []Document
}
