package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/examvault/internal/tui/styles"
)

// FilterBar is the live search box above the document list
type FilterBar struct {
	active bool
	input  textinput.Model
}

// NewFilterBar creates an inactive filter bar
func NewFilterBar() FilterBar {
	ti := textinput.New()
	ti.Placeholder = "subject, branch or type"
	ti.CharLimit = 80
	ti.Width = 40
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return FilterBar{input: ti}
}

// Activate focuses the input, keeping any existing query
func (f *FilterBar) Activate() tea.Cmd {
	f.active = true
	return f.input.Focus()
}

// Deactivate stops accepting input. The query stays applied.
func (f *FilterBar) Deactivate() {
	f.active = false
	f.input.Blur()
}

// Clear empties the query and deactivates the bar
func (f *FilterBar) Clear() {
	f.input.SetValue("")
	f.Deactivate()
}

// IsActive returns whether the bar is accepting input
func (f FilterBar) IsActive() bool {
	return f.active
}

// Query returns the current query
func (f FilterBar) Query() string {
	return f.input.Value()
}

// SetWidth sizes the input to fit width columns
func (f *FilterBar) SetWidth(width int) {
	f.input.Width = max(width-4, 10)
}

// Update routes key input while active. Returns (bar, cmd, changed).
func (f FilterBar) Update(msg tea.Msg) (FilterBar, tea.Cmd, bool) {
	if !f.active {
		return f, nil, false
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd, f.input.Value() != before
}

// View renders the filter line. Empty when inactive with no query.
func (f FilterBar) View() string {
	if !f.active && f.input.Value() == "" {
		return ""
	}
	prompt := styles.FilterPromptStyle.Render("/ ")
	if !f.active {
		return prompt + styles.FilterStyle.Render(f.input.Value())
	}
	return prompt + f.input.View()
}
