package tui

import (
	"github.com/mmcdole/examvault/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListOp identifies which synchronizer operation produced a result
type ListOp int

const (
	OpLoadInitial ListOp = iota
	OpLoadMore
	OpRefresh
)

func (o ListOp) String() string {
	switch o {
	case OpLoadInitial:
		return "loading files"
	case OpLoadMore:
		return "loading more files"
	case OpRefresh:
		return "refreshing"
	default:
		return "unknown"
	}
}

// ListChangedMsg carries a committed list snapshot from the synchronizer
type ListChangedMsg struct {
	State domain.ListState
}

// ListOpDoneMsg signals that a synchronizer operation returned
type ListOpDoneMsg struct {
	Op  ListOp
	Err error
}

// SizeResolvedMsg signals that a size probe finished for URL
type SizeResolvedMsg struct {
	URL string
}

// SharedMsg reports the outcome of sharing a document
type SharedMsg struct {
	Message string
	Copied  bool // false when the clipboard was unavailable
}

// OpenedMsg reports that a document was handed to the external viewer
type OpenedMsg struct {
	Document domain.Document
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
