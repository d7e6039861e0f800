package library

import (
	"context"
	"fmt"

	"github.com/mmcdole/examvault/internal/domain"
)

// LoadInitial hydrates the list from the local snapshot, then fetches page 1.
// Valid only from Idle. The returned error is nil on success, a *Notice when
// the fetch failed and the list fell back to the snapshot, or
// domain.ErrInvalidState.
func (s *Synchronizer) LoadInitial(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Phase != domain.PhaseIdle {
		s.mu.Unlock()
		return fmt.Errorf("load initial in %s: %w", s.state.Phase, domain.ErrInvalidState)
	}
	s.generation++
	gen := s.generation
	s.state.Phase = domain.PhaseLoadingInitial
	s.state.IsLoading = true
	s.state.Page = 1
	s.mu.Unlock()

	// Phase 1: hydrate from the snapshot before any network activity
	s.hydrate(gen)

	// Phase 2: reconcile against the server
	page, err := s.source.FetchPage(ctx, 1, s.pageSize)
	return s.commitFirstPage(gen, page, err)
}

func (s *Synchronizer) hydrate(gen uint64) {
	cached, ok := s.readCache()

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	if ok {
		s.state.Items = cached
		s.state.FromCache = true
		s.state.Version++
	}
	state, observers := s.commitLocked()
	s.mu.Unlock()

	s.publish(state, observers)
}

// LoadMore fetches the page after the highest one loaded and appends it.
// A call while any fetch is in flight is dropped with domain.ErrBusy; a call
// after a short page returns domain.ErrEndOfList. On failure the page
// counter stays put so the next call retries the same page.
func (s *Synchronizer) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	switch s.state.Phase {
	case domain.PhaseReady:
	case domain.PhaseIdle:
		s.mu.Unlock()
		return fmt.Errorf("load more before initial load: %w", domain.ErrInvalidState)
	default:
		phase := s.state.Phase
		s.mu.Unlock()
		s.logger.Debug("dropped load more", "phase", phase.String())
		return domain.ErrBusy
	}
	if !s.state.HasMore {
		s.mu.Unlock()
		return domain.ErrEndOfList
	}
	gen := s.generation
	next := s.state.Page + 1
	s.state.Phase = domain.PhaseLoadingMore
	s.state.IsLoading = true
	state, observers := s.commitLocked()
	s.mu.Unlock()
	s.publish(state, observers)

	page, err := s.source.FetchPage(ctx, next, s.pageSize)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("dropped stale page", "page", next)
		return nil
	}
	s.state.Phase = domain.PhaseReady
	s.state.IsLoading = false
	if err != nil {
		s.state.PageFailures++
		failures := s.state.PageFailures
		state, observers = s.commitLocked()
		s.mu.Unlock()

		s.logger.Warn("failed to fetch page", "page", next, "failures", failures, "error", err)
		s.publish(state, observers)
		return fmt.Errorf("fetching page %d: %w", next, err)
	}
	s.state.Items = mergePage(s.state.Items, page.Items)
	s.state.Page = next
	s.state.HasMore = len(page.Items) >= s.pageSize
	s.state.PageFailures = 0
	s.state.Version++
	state, observers = s.commitLocked()
	s.mu.Unlock()

	s.logger.Debug("fetched page", "page", next, "count", len(page.Items), "total", len(state.Items))
	s.publish(state, observers)
	return nil
}

// Refresh re-fetches page 1 without consulting the snapshot. The current
// list stays visible until the result commits. A refresh supersedes an
// in-flight page-1 fetch but is rejected with domain.ErrBusy while a
// LoadMore is in flight.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	switch s.state.Phase {
	case domain.PhaseIdle:
		s.mu.Unlock()
		return fmt.Errorf("refresh before initial load: %w", domain.ErrInvalidState)
	case domain.PhaseLoadingMore:
		s.mu.Unlock()
		s.logger.Debug("rejected refresh during pagination")
		return domain.ErrBusy
	}
	s.generation++
	gen := s.generation
	s.state.Phase = domain.PhaseRefreshing
	s.state.Page = 1
	s.state.IsRefreshing = true
	s.state.IsLoading = false
	state, observers := s.commitLocked()
	s.mu.Unlock()
	s.publish(state, observers)

	page, err := s.source.FetchPage(ctx, 1, s.pageSize)
	return s.commitFirstPage(gen, page, err)
}

// commitFirstPage applies a page-1 result for generation gen. Success
// replaces the list wholesale and overwrites the snapshot; failure falls back
// to the snapshot. Results from a superseded generation are dropped.
func (s *Synchronizer) commitFirstPage(gen uint64, page domain.Page, fetchErr error) error {
	if fetchErr == nil {
		s.mu.Lock()
		if gen != s.generation {
			s.mu.Unlock()
			s.logger.Debug("dropped stale first page", "generation", gen)
			return nil
		}
		s.state.Items = mergePage(nil, page.Items)
		s.state.Page = 1
		s.state.HasMore = len(page.Items) >= s.pageSize
		s.state.IsLoading = false
		s.state.IsRefreshing = false
		s.state.Phase = domain.PhaseReady
		s.state.FromCache = false
		s.state.PageFailures = 0
		s.state.Version++
		state, observers := s.commitLocked()
		s.mu.Unlock()

		s.persist(gen, state.Items)
		s.logger.Info("fetched documents", "count", len(state.Items), "hasMore", state.HasMore)
		s.publish(state, observers)
		return nil
	}

	if gen != s.currentGeneration() {
		s.logger.Debug("dropped stale first page failure", "generation", gen, "error", fetchErr)
		return nil
	}
	s.logger.Error("failed to fetch documents", "error", fetchErr)

	cached, ok := s.readCache()

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return nil
	}
	if ok {
		s.state.Items = cached
		s.state.FromCache = true
		s.state.Version++
	}
	s.state.IsLoading = false
	s.state.IsRefreshing = false
	s.state.Phase = domain.PhaseReady
	state, observers := s.commitLocked()
	s.mu.Unlock()

	s.publish(state, observers)
	return &Notice{Err: fetchErr, FromCache: ok}
}
