package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/examvault/internal/domain"
)

func sampleDocs() []domain.Document {
	return []domain.Document{
		{ID: "a1", URL: "https://files.example.com/a.pdf", Subject: "Data Structures", Branch: "CSE", Type: "Mid Sem"},
		{URL: "https://files.example.com/b.pdf", Subject: "Thermodynamics", Branch: "ME", Type: "End Sem"},
	}
}

func TestLoadDocuments_Miss(t *testing.T) {
	s, err := NewDocumentStore(t.TempDir(), "https://server.example.com")
	require.NoError(t, err)
	defer s.Close()

	docs, err := s.LoadDocuments()
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.Nil(t, docs)
}

func TestSaveLoad_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewDocumentStore(dir, "https://server.example.com")
	require.NoError(t, err)
	require.NoError(t, s.SaveDocuments(sampleDocs()))
	require.NoError(t, s.Close())

	reopened, err := NewDocumentStore(dir, "https://server.example.com/")
	require.NoError(t, err)
	defer reopened.Close()

	docs, err := reopened.LoadDocuments()
	require.NoError(t, err)
	assert.Equal(t, sampleDocs(), docs)
}

func TestSaveDocuments_ReplacesPrior(t *testing.T) {
	s, err := NewDocumentStore(t.TempDir(), "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveDocuments(sampleDocs()))
	require.NoError(t, s.SaveDocuments(sampleDocs()[:1]))

	docs, err := s.LoadDocuments()
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLoadDocuments_Corrupt(t *testing.T) {
	s, err := NewDocumentStore(t.TempDir(), "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.setRaw(bucketDocuments, CacheKey, []byte("{not json")))

	docs, err := s.LoadDocuments()
	assert.ErrorIs(t, err, domain.ErrCacheCorrupt)
	assert.Nil(t, docs)
}

func TestSaveDocuments_EmptyIsNotMiss(t *testing.T) {
	s, err := NewDocumentStore("", "")
	require.NoError(t, err)

	require.NoError(t, s.SaveDocuments(nil))

	docs, err := s.LoadDocuments()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestServersAreIsolated(t *testing.T) {
	dir := t.TempDir()

	a, err := NewDocumentStore(dir, "https://a.example.com")
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.SaveDocuments(sampleDocs()))

	b, err := NewDocumentStore(dir, "https://b.example.com")
	require.NoError(t, err)
	defer b.Close()

	_, err = b.LoadDocuments()
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestInvalidateAll(t *testing.T) {
	s, err := NewDocumentStore(t.TempDir(), "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveDocuments(sampleDocs()))
	s.InvalidateAll()

	_, err = s.LoadDocuments()
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}
