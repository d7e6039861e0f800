package search

import (
	"strings"

	"github.com/mmcdole/examvault/internal/domain"
)

// Filter returns the documents whose subject, branch or type contains query,
// ignoring case. Order is preserved. An empty query returns every document.
// Filter is pure: it keeps no state and never touches the network or cache.
func Filter(items []domain.Document, query string) []domain.Document {
	if query == "" {
		out := make([]domain.Document, len(items))
		copy(out, items)
		return out
	}

	q := strings.ToLower(query)
	out := make([]domain.Document, 0, len(items))
	for _, item := range items {
		if Matches(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether item matches an already lowercased query
func Matches(item domain.Document, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(item.Subject), lowerQuery) ||
		strings.Contains(strings.ToLower(item.Branch), lowerQuery) ||
		strings.Contains(strings.ToLower(item.Type), lowerQuery)
}
