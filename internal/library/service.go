package library

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/mmcdole/examvault/internal/domain"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 10

// Synchronizer owns the document list shown on the home screen. It serves the
// local snapshot first, reconciles it against the paginated remote source and
// publishes every committed ListState to its observers.
//
// All transitions go through LoadInitial, LoadMore and Refresh. Each
// LoadInitial/Refresh bumps a generation counter; results from an older
// generation are dropped.
type Synchronizer struct {
	source   domain.PageSource
	store    domain.DocumentStore
	logger   *slog.Logger
	pageSize int

	mu         sync.Mutex
	state      domain.ListState
	generation uint64
	observers  []domain.ListObserver

	// Serializes snapshot writes; older generations never overwrite newer
	persistMu    sync.Mutex
	persistedGen uint64
}

// NewSynchronizer creates a synchronizer in the Idle phase.
// store may be nil, in which case nothing is cached.
func NewSynchronizer(source domain.PageSource, store domain.DocumentStore, pageSize int, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Synchronizer{
		source:   source,
		store:    store,
		logger:   logger,
		pageSize: pageSize,
		state: domain.ListState{
			Page:    1,
			HasMore: true,
			Phase:   domain.PhaseIdle,
		},
	}
}

// PageSize returns the configured page size
func (s *Synchronizer) PageSize() int {
	return s.pageSize
}

// Subscribe registers an observer for committed state changes.
func (s *Synchronizer) Subscribe(o domain.ListObserver) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Notice is returned when a page-1 fetch failed. The list has already been
// recovered from the local snapshot (if any); the error is informational.
type Notice struct {
	Err       error
	FromCache bool // true if cached items are being shown
}

func (n *Notice) Error() string {
	if n.FromCache {
		return "showing saved files: " + n.Err.Error()
	}
	return "could not fetch files: " + n.Err.Error()
}

func (n *Notice) Unwrap() error { return n.Err }

// --- Private helpers ---

// publish notifies observers with state. Must be called without s.mu held.
func (s *Synchronizer) publish(state domain.ListState, observers []domain.ListObserver) {
	for _, o := range observers {
		o.OnListChange(state)
	}
}

// commitLocked snapshots the state and observers. Caller holds s.mu.
func (s *Synchronizer) commitLocked() (domain.ListState, []domain.ListObserver) {
	observers := make([]domain.ListObserver, len(s.observers))
	copy(observers, s.observers)
	return s.state, observers
}

func (s *Synchronizer) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// readCache returns the persisted first page. Misses and corrupt snapshots
// are never surfaced.
func (s *Synchronizer) readCache() ([]domain.Document, bool) {
	if s.store == nil {
		return nil, false
	}
	docs, err := s.store.LoadDocuments()
	switch {
	case err == nil:
		s.logger.Debug("cache hit", "count", len(docs))
		return mergePage(nil, docs), true
	case errors.Is(err, domain.ErrCacheMiss):
		s.logger.Debug("cache miss")
	case errors.Is(err, domain.ErrCacheCorrupt):
		s.logger.Warn("dropping corrupt cache", "error", err)
		s.store.InvalidateAll()
	default:
		s.logger.Warn("failed to read cache", "error", err)
	}
	return nil, false
}

// persist saves a committed page-1 result unless a newer generation has
// already been saved. Failures are logged and swallowed.
func (s *Synchronizer) persist(gen uint64, docs []domain.Document) {
	if s.store == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if gen < s.persistedGen {
		return
	}
	s.persistedGen = gen
	if err := s.store.SaveDocuments(docs); err != nil {
		s.logger.Error("failed to save documents", "error", err)
	}
}

// mergePage appends incoming to existing, dropping documents whose key is
// already present. Always returns a fresh slice so published snapshots are
// never mutated.
func mergePage(existing, incoming []domain.Document) []domain.Document {
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := make([]domain.Document, 0, len(existing)+len(incoming))
	for _, d := range existing {
		seen[d.Key()] = true
		out = append(out, d)
	}
	for _, d := range incoming {
		k := d.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, d)
	}
	return out
}
