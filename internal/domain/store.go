package domain

// DocumentStore handles the local snapshot of the first page (BoltDB + memory).
type DocumentStore interface {
	// LoadDocuments returns the last saved snapshot.
	// Returns ErrCacheMiss if none exists, ErrCacheCorrupt if it cannot be parsed.
	LoadDocuments() ([]Document, error)

	// SaveDocuments replaces the snapshot.
	SaveDocuments(docs []Document) error

	// InvalidateAll wipes the snapshot
	InvalidateAll()

	Close() error
}
