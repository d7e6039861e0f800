package library

import (
	"github.com/mmcdole/examvault/internal/domain"
	"github.com/mmcdole/examvault/internal/search"
)

// Snapshot returns the current list state. Never blocks on network.
func (s *Synchronizer) Snapshot() domain.ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Filtered returns the current items matching query.
func (s *Synchronizer) Filtered(query string) []domain.Document {
	return search.Filter(s.Snapshot().Items, query)
}

// Generation returns the number of LoadInitial/Refresh calls accepted so far
func (s *Synchronizer) Generation() uint64 {
	return s.currentGeneration()
}
