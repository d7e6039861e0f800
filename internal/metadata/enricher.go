package metadata

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/mmcdole/examvault/internal/domain"
)

// Enricher owns the size index and probes every listed URL independently.
// Probes never block the list and run without a concurrency cap.
type Enricher struct {
	prober domain.SizeProber
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup

	mu          sync.RWMutex
	sizes       map[string]domain.SizeEntry
	pending     map[string]bool
	lastVersion uint64
	closed      bool
	onUpdate    func(url string, entry domain.SizeEntry)
}

// NewEnricher creates an enricher backed by prober.
func NewEnricher(prober domain.SizeProber, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Enricher{
		prober:  prober,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		sizes:   make(map[string]domain.SizeEntry),
		pending: make(map[string]bool),
	}
}

// SetUpdateFunc registers a callback invoked after each probe resolves.
func (e *Enricher) SetUpdateFunc(fn func(url string, entry domain.SizeEntry)) {
	e.mu.Lock()
	e.onUpdate = fn
	e.mu.Unlock()
}

// OnListChange implements domain.ListObserver. Snapshots whose items did
// not change (same Version) are ignored.
func (e *Enricher) OnListChange(state domain.ListState) {
	e.mu.Lock()
	if state.Version == e.lastVersion {
		e.mu.Unlock()
		return
	}
	e.lastVersion = state.Version
	e.mu.Unlock()

	e.Enrich(state.Items)
}

// Enrich starts a probe for every URL in items that is neither sized nor
// already being probed. URLs that resolved to SizeUnknown are probed again.
// It returns immediately.
func (e *Enricher) Enrich(items []domain.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	for _, item := range items {
		url := item.URL
		if url == "" || e.pending[url] {
			continue
		}
		if entry, done := e.sizes[url]; done && entry.Known {
			continue
		}
		e.pending[url] = true
		e.wg.Go(func() { e.probe(url) })
	}
}

func (e *Enricher) probe(url string) {
	entry := domain.SizeUnknown
	size, err := e.prober.ProbeSize(e.ctx, url)
	switch {
	case err == nil:
		entry = domain.SizeEntry{KB: ToKB(size), Known: true}
	case errors.Is(err, context.Canceled):
		// Shutting down; leave the entry absent
		e.mu.Lock()
		delete(e.pending, url)
		e.mu.Unlock()
		return
	default:
		e.logger.Debug("size probe failed", "url", url, "error", err)
	}

	e.mu.Lock()
	delete(e.pending, url)
	e.sizes[url] = entry
	onUpdate := e.onUpdate
	e.mu.Unlock()

	if onUpdate != nil {
		onUpdate(url, entry)
	}
}

// Lookup returns the size entry for url. ok is false while the URL has not
// been probed yet, which is distinct from a resolved SizeUnknown.
func (e *Enricher) Lookup(url string) (domain.SizeEntry, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	entry, ok := e.sizes[url]
	return entry, ok
}

// Label renders the display string for url
func (e *Enricher) Label(url string) string {
	return Label(e.Lookup(url))
}

// Sizes returns a copy of the size index
func (e *Enricher) Sizes() map[string]domain.SizeEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]domain.SizeEntry, len(e.sizes))
	for k, v := range e.sizes {
		out[k] = v
	}
	return out
}

// Pending returns the number of probes in flight
func (e *Enricher) Pending() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.pending)
}

// Wait blocks until every started probe has resolved.
func (e *Enricher) Wait() {
	if r := e.wg.WaitAndRecover(); r != nil {
		e.logger.Error("size probe panicked", "panic", r.Value)
	}
}

// Close cancels outstanding probes and waits for them to return.
func (e *Enricher) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	e.Wait()
}
