package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func displayWidth(s string) int {
	return lipgloss.Width(s)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
