package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/examvault/internal/domain"
)

const maxSuggestions = 3

// Suggest proposes alternative queries when query matches nothing. Candidates
// are the known branch codes and names plus every branch and type present in
// items, ranked by edit distance.
func Suggest(items []domain.Document, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	vocab := vocabulary(items)
	ranks := fuzzy.RankFindNormalizedFold(query, vocab)
	sort.Stable(ranks)

	out := make([]string, 0, maxSuggestions)
	for _, r := range ranks {
		if strings.EqualFold(r.Target, query) {
			continue
		}
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func vocabulary(items []domain.Document) []string {
	seen := make(map[string]bool)
	var vocab []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			return
		}
		seen[key] = true
		vocab = append(vocab, s)
	}

	codes := domain.BranchCodes()
	keys := make([]string, 0, len(codes))
	for code := range codes {
		keys = append(keys, code)
	}
	sort.Strings(keys)
	for _, code := range keys {
		add(code)
		add(codes[code])
	}
	for _, item := range items {
		add(item.Branch)
		add(item.Type)
	}
	return vocab
}
