package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/examvault/internal/adapter"
	"github.com/mmcdole/examvault/internal/domain"
)

func TestProbeSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, defaultUserAgent, r.UserAgent())
		switch r.URL.Path {
		case "/ok.pdf":
			assert.Equal(t, http.MethodHead, r.Method)
			w.Header().Set("Content-Length", "2560")
		case "/zero.pdf":
			w.Header().Set("Content-Length", "0")
		case "/missing.pdf":
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewHTTPProber(time.Second, "", adapter.NullLogger())

	size, err := p.ProbeSize(context.Background(), srv.URL+"/ok.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(2560), size)

	_, err = p.ProbeSize(context.Background(), srv.URL+"/zero.pdf")
	assert.ErrorIs(t, err, domain.ErrProbeFailure)

	_, err = p.ProbeSize(context.Background(), srv.URL+"/missing.pdf")
	assert.ErrorIs(t, err, domain.ErrProbeFailure)

	_, err = p.ProbeSize(context.Background(), "http://127.0.0.1:0/unreachable.pdf")
	assert.ErrorIs(t, err, domain.ErrProbeFailure)
}

func TestProbeSize_CanceledKeepsCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPProber(time.Second, "", adapter.NullLogger()).ProbeSize(ctx, srv.URL+"/slow.pdf")
	assert.ErrorIs(t, err, domain.ErrProbeFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToKB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  float64
	}{
		{1024, 1},
		{2560, 2.5},
		{1000, 1},
		{1126, 1.1},
		{123456, 120.6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToKB(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "unavailable", Label(domain.SizeEntry{}, false))
	assert.Equal(t, "unavailable", Label(domain.SizeUnknown, true))
	assert.Equal(t, "2.5 KB", Label(domain.SizeEntry{KB: 2.5, Known: true}, true))
	assert.Equal(t, "12 KB", Label(domain.SizeEntry{KB: 12, Known: true}, true))
}
