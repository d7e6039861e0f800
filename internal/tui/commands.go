package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/examvault/internal/domain"
	"github.com/mmcdole/examvault/internal/library"
)

// Command factories for async operations

// opTimeout bounds one synchronizer call, including client retries
const opTimeout = 2 * time.Minute

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// LoadInitialCmd hydrates from the cache and fetches page 1
func LoadInitialCmd(sync *library.Synchronizer) tea.Cmd {
	return listOpCmd(OpLoadInitial, sync.LoadInitial)
}

// LoadMoreCmd fetches the next page
func LoadMoreCmd(sync *library.Synchronizer) tea.Cmd {
	return listOpCmd(OpLoadMore, sync.LoadMore)
}

// RefreshCmd re-fetches page 1 without consulting the cache
func RefreshCmd(sync *library.Synchronizer) tea.Cmd {
	return listOpCmd(OpRefresh, sync.Refresh)
}

func listOpCmd(op ListOp, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return ListOpDoneMsg{Op: op, Err: fn(ctx)}
	}
}

// WaitForListCmd blocks until the synchronizer publishes a snapshot
func WaitForListCmd(ch <-chan domain.ListState) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return ListChangedMsg{State: state}
	}
}

// WaitForSizeCmd blocks until a size probe resolves
func WaitForSizeCmd(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		url, ok := <-ch
		if !ok {
			return nil
		}
		return SizeResolvedMsg{URL: url}
	}
}

// opener abstracts the external viewer (consumer-defined interface)
type opener interface {
	Open(url string) error
}

// OpenCmd hands doc to the external viewer
func OpenCmd(o opener, doc domain.Document) tea.Cmd {
	return func() tea.Msg {
		if err := o.Open(doc.URL); err != nil {
			return ErrMsg{Err: err, Context: "opening file"}
		}
		return OpenedMsg{Document: doc}
	}
}

// ShareCmd copies the share message for doc to the system clipboard
func ShareCmd(doc domain.Document) tea.Cmd {
	return func() tea.Msg {
		msg := domain.ShareMessage(doc)
		err := writeClipboard(msg)
		return SharedMsg{Message: msg, Copied: err == nil}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
