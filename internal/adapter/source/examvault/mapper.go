package examvault

import (
	"net/url"
	"strings"

	"github.com/mmcdole/examvault/internal/domain"
)

// MapDocuments converts server files to domain documents.
// Entries with neither an ID nor a URL carry no usable key and are skipped.
func MapDocuments(files []FileDTO, serverURL string) []domain.Document {
	docs := make([]domain.Document, 0, len(files))
	for _, f := range files {
		doc := domain.Document{
			ID:      strings.TrimSpace(f.ID),
			URL:     resolveURL(serverURL, strings.TrimSpace(f.URL)),
			Subject: f.Subject,
			Branch:  f.Branch,
			Type:    f.Type,
		}
		if doc.Key() == "" {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// resolveURL makes a server-relative file path absolute
func resolveURL(serverURL, ref string) string {
	if ref == "" || serverURL == "" {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base, err := url.Parse(serverURL)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
