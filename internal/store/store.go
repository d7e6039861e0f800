package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/examvault/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// CacheKey is the fixed key holding the first-page snapshot.
const CacheKey = "cached_files"

var bucketDocuments = []byte("documents")

// DocumentStore implements domain.DocumentStore using BoltDB.
type DocumentStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewDocumentStore opens (or creates) the snapshot database under
// baseCacheDir. Snapshots are namespaced by server URL so switching servers
// never shows another server's list. An empty baseCacheDir gives a
// memory-only store.
func NewDocumentStore(baseCacheDir, serverURL string) (*DocumentStore, error) {
	if baseCacheDir == "" {
		return &DocumentStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "examvault.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DocumentStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *DocumentStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

// get returns the raw bytes for key, or nil when absent.
func (s *DocumentStore) get(bucket []byte, key string) []byte {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return data
}

func (s *DocumentStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.setRaw(bucket, key, data)
}

func (s *DocumentStore) setRaw(bucket []byte, key string, data []byte) error {
	cacheKey := string(bucket) + ":" + key

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			return b.Put([]byte(key), data)
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()
	return nil
}

// === Documents ===

func (s *DocumentStore) LoadDocuments() ([]domain.Document, error) {
	data := s.get(bucketDocuments, CacheKey)
	if data == nil {
		return nil, domain.ErrCacheMiss
	}
	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err)
	}
	if docs == nil {
		// A stored JSON null carries no snapshot
		return nil, domain.ErrCacheMiss
	}
	return docs, nil
}

func (s *DocumentStore) SaveDocuments(docs []domain.Document) error {
	if docs == nil {
		docs = []domain.Document{}
	}
	return s.set(bucketDocuments, CacheKey, docs)
}

func (s *DocumentStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketDocuments); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketDocuments)
		return err
	})
}
