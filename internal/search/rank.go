package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/examvault/internal/domain"
)

// RankResult is a fuzzy match with metadata for highlighting
type RankResult struct {
	Document       domain.Document
	MatchedIndexes []int // Positions in Document.Subject that matched
	Score          int   // Higher is better
}

// SubjectIndex implements fuzzy.Source over lowercase subjects
type SubjectIndex struct {
	items       []domain.Document
	lowerTitles []string
}

// NewSubjectIndex pre-computes lowercase subjects for items
func NewSubjectIndex(items []domain.Document) *SubjectIndex {
	lower := make([]string, len(items))
	for i, item := range items {
		lower[i] = strings.ToLower(item.Subject)
	}
	return &SubjectIndex{items: items, lowerTitles: lower}
}

// String returns the lowercase subject at index i (implements fuzzy.Source)
func (idx *SubjectIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *SubjectIndex) Len() int { return len(idx.items) }

// Rank fuzzy-matches query against subjects, best match first.
// An empty query yields no results.
func Rank(items []domain.Document, query string) []RankResult {
	query = strings.TrimSpace(query)
	if query == "" || len(items) == 0 {
		return nil
	}

	idx := NewSubjectIndex(items)
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	results := make([]RankResult, len(matches))
	for i, m := range matches {
		results[i] = RankResult{
			Document:       idx.items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
