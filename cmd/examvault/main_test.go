package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/examvault/internal/adapter"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		files := []map[string]string{
			{"_id": "1", "url": "/pdf/networks.pdf", "subject": "Computer Networks", "branch": "CSE", "type": "Mid Sem"},
			{"_id": "2", "url": "/pdf/thermo.pdf", "subject": "Thermodynamics", "branch": "ME", "type": "End Sem"},
		}
		if r.URL.Query().Get("page") != "1" {
			files = nil
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "files": files})
	})
	mux.HandleFunc("/pdf/networks.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "2048")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/pdf/thermo.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url string) *adapter.Config {
	cfg := adapter.DefaultConfig()
	cfg.Server.URL = url
	cfg.Server.Timeout = 5 * time.Second
	cfg.Server.RetryMax = 0
	cfg.Probe.Timeout = 5 * time.Second
	cfg.Cache.Dir = ""
	return cfg
}

func TestRunList(t *testing.T) {
	srv := newTestServer(t)
	a, err := newApp(testConfig(srv.URL), adapter.NullLogger())
	require.NoError(t, err)
	defer a.Close()

	var out bytes.Buffer
	require.NoError(t, runList(a, "", &out))

	got := out.String()
	assert.Contains(t, got, "Computer Networks")
	assert.Contains(t, got, "Computer Science")
	assert.Contains(t, got, "2 KB")
	assert.Contains(t, got, "Mechanical Engineering")
	assert.Contains(t, got, "unavailable")
	assert.Contains(t, got, srv.URL+"/pdf/networks.pdf")
}

func TestRunList_Query(t *testing.T) {
	srv := newTestServer(t)
	a, err := newApp(testConfig(srv.URL), adapter.NullLogger())
	require.NoError(t, err)
	defer a.Close()

	var out bytes.Buffer
	require.NoError(t, runList(a, "end sem", &out))

	assert.Contains(t, out.String(), "Thermodynamics")
	assert.NotContains(t, out.String(), "Computer Networks")
}

func TestRunList_ServerDown(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL
	srv.Close()

	a, err := newApp(testConfig(url), adapter.NullLogger())
	require.NoError(t, err)
	defer a.Close()

	var out bytes.Buffer
	require.NoError(t, runList(a, "", &out))
	assert.Contains(t, out.String(), "No files found")
}
