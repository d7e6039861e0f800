package examvault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/examvault/internal/adapter"
	"github.com/mmcdole/examvault/internal/domain"
)

func newTestClient(url string, retryMax int) *Client {
	return NewClient(url, Options{
		Timeout:      2 * time.Second,
		RetryMax:     retryMax,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}, adapter.NullLogger())
}

func TestFetchPage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"files":[
			{"_id":"f1","url":"https://cdn.example.com/os.pdf","subject":"Operating Systems","branch":"CSE","type":"Mid Sem"},
			{"url":"/uploads/fluids.pdf","subject":"Fluid Mechanics","branch":"ME","type":"End Sem"},
			{"subject":"no key at all"}
		]}`))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL, 0).FetchPage(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Number)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "f1", page.Items[0].Key())
	assert.Equal(t, srv.URL+"/uploads/fluids.pdf", page.Items[1].URL)
	assert.Equal(t, page.Items[1].URL, page.Items[1].Key())
}

func TestFetchPage_SuccessFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"db down"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).FetchPage(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.Contains(t, err.Error(), "db down")
}

func TestFetchPage_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).FetchPage(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestFetchPage_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).FetchPage(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestFetchPage_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, 0).FetchPage(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestFetchPage_CanceledKeepsCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"files":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL, 0).FetchPage(ctx, 1, 10)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchPage_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"success":true,"files":[]}`))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL, 2).FetchPage(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchPage_GivesUpWithStatusError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1).FetchPage(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.NotErrorIs(t, err, domain.ErrServerOffline)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, int32(2), calls.Load())
}

func TestMapDocuments_ResolvesRelativeURLs(t *testing.T) {
	docs := MapDocuments([]FileDTO{
		{URL: " files/a.pdf ", Subject: "A"},
		{ID: "x", URL: "https://other.example.com/b.pdf"},
	}, "https://server.example.com")

	require.Len(t, docs, 2)
	assert.Equal(t, "https://server.example.com/files/a.pdf", docs[0].URL)
	assert.Equal(t, "https://other.example.com/b.pdf", docs[1].URL)
}
