package components

import (
	"fmt"

	"github.com/mmcdole/examvault/internal/domain"
	"github.com/mmcdole/examvault/internal/tui/styles"
)

// DocumentRow is one rendered line of the document list
type DocumentRow struct {
	Document domain.Document
	Size     string // Already formatted label, empty while the probe is pending
	Selected bool
}

// Render lays out subject, branch/type and size within width columns
func (r DocumentRow) Render(width int) string {
	size := r.Size
	if size == "" {
		size = "…"
	}
	meta := fmt.Sprintf("%s · %s", domain.BranchFullForm(r.Document.Branch), r.Document.Type)

	// Fixed columns: size (12) + meta (up to 36) + separators
	sizeWidth := 12
	metaWidth := min(36, max(width/3, 12))
	titleWidth := width - sizeWidth - metaWidth - 6
	if titleWidth < 8 {
		titleWidth = max(width-sizeWidth-4, 1)
		metaWidth = 0
	}

	parts := []styles.RowPart{
		{Text: padRight(styles.Truncate(r.Document.Subject, titleWidth), titleWidth)},
		{Text: "  "},
	}
	if metaWidth > 0 {
		parts = append(parts,
			styles.RowPart{Text: padRight(styles.Truncate(meta, metaWidth), metaWidth), Foreground: &styles.LightGray},
			styles.RowPart{Text: "  "},
		)
	}
	parts = append(parts, styles.RowPart{Text: padLeft(size, sizeWidth), Foreground: &styles.DimGray})

	return styles.RenderListRow(parts, r.Selected, width)
}

// SkeletonRow renders a placeholder line for the first-launch loading state
func SkeletonRow(width, seed int) string {
	n := max(width/2+(seed*7)%max(width/4, 1), 1)
	bar := make([]rune, 0, n)
	for range n {
		bar = append(bar, '░')
	}
	return " " + styles.SkeletonStyle.Render(string(bar))
}

func padRight(s string, width int) string {
	if gap := width - displayWidth(s); gap > 0 {
		return s + spaces(gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - displayWidth(s); gap > 0 {
		return spaces(gap) + s
	}
	return s
}
