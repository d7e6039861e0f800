package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/examvault/internal/search"
	"github.com/mmcdole/examvault/internal/tui/components"
	"github.com/mmcdole/examvault/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterLine())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("ExamVault")
	count := styles.DimBadgeStyle.Render(fmt.Sprintf("%d files", len(m.State.Items)))
	if q := m.Filter.Query(); q != "" {
		count = styles.DimBadgeStyle.Render(fmt.Sprintf("%d of %d", len(m.Visible), len(m.State.Items)))
	}

	var badges []string
	if m.State.FromCache {
		badges = append(badges, styles.BadgeStyle.Render("saved"))
	}
	if m.State.IsRefreshing {
		badges = append(badges, styles.Spinner(m.SpinnerFrame)+styles.DimStyle.Render(" refreshing"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", count, " ", strings.Join(badges, " "))
}

func (m Model) renderFilterLine() string {
	if line := m.Filter.View(); line != "" {
		return line
	}
	return styles.DimStyle.Render("press / to search")
}

func (m Model) renderList() string {
	height := m.listHeight()
	lines := make([]string, 0, height)

	switch {
	case m.State.ShowPlaceholder():
		// First launch with nothing saved
		lines = append(lines, styles.Spinner(m.SpinnerFrame)+styles.DimStyle.Render(" Loading files..."))
		for i := 1; i < min(height, 6); i++ {
			lines = append(lines, components.SkeletonRow(m.Width, i))
		}

	case len(m.Visible) == 0:
		lines = append(lines, m.renderEmpty())

	default:
		end := min(m.Offset+height, len(m.Visible))
		for i := m.Offset; i < end; i++ {
			doc := m.Visible[i]
			row := components.DocumentRow{
				Document: doc,
				Size:     m.sizeLabel(doc.URL),
				Selected: i == m.Cursor,
			}
			lines = append(lines, row.Render(m.Width))
		}
		if end == len(m.Visible) && len(lines) < height {
			if trailer := m.renderTrailer(); trailer != "" {
				lines = append(lines, trailer)
			}
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) renderEmpty() string {
	q := m.Filter.Query()
	if q == "" {
		if m.State.IsLoading {
			return styles.Spinner(m.SpinnerFrame) + styles.DimStyle.Render(" Loading files...")
		}
		return styles.DimStyle.Render(" No files found")
	}

	msg := styles.DimStyle.Render(fmt.Sprintf(" No files match %q", q))
	if ranked := search.Rank(m.State.Items, q); len(ranked) > 0 {
		msg += styles.DimStyle.Render(" · closest: ") + styles.AccentStyle.Render(ranked[0].Document.Subject)
	}
	if hints := search.Suggest(m.State.Items, q); len(hints) > 0 {
		msg += styles.DimStyle.Render(" · try ") + styles.AccentStyle.Render(strings.Join(hints, ", "))
	}
	return msg
}

// renderTrailer shows pagination progress below the last row
func (m Model) renderTrailer() string {
	switch {
	case m.State.IsLoading && !m.State.ShowPlaceholder():
		return " " + styles.Spinner(m.SpinnerFrame) + styles.DimStyle.Render(" Loading more...")
	case m.State.PageFailures > 0:
		return styles.WarningStyle.Render(" Could not load more files. Press m to retry.")
	case m.State.HasMore:
		return styles.DimStyle.Render(" ↓ more")
	default:
		return ""
	}
}

func (m Model) sizeLabel(url string) string {
	if m.Sizes == nil {
		return ""
	}
	if _, ok := m.Sizes.Lookup(url); !ok {
		return ""
	}
	return m.Sizes.Label(url)
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}

	hints := []string{"/ search", "o open", "r refresh", "s share", "? help", "q quit"}
	parts := make([]string, len(hints))
	for i, h := range hints {
		k, desc, _ := strings.Cut(h, " ")
		parts[i] = styles.HelpKeyStyle.Render(k) + " " + styles.HelpDescStyle.Render(desc)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, binding := range helpBindings() {
		h := binding.Help()
		b.WriteString(styles.HelpKeyStyle.Render(fmt.Sprintf("  %-8s", h.Key)))
		b.WriteString(styles.HelpDescStyle.Render(h.Desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("  press any key to close"))
	return b.String()
}
