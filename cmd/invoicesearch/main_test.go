package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-dashboard-backend/pkg/logging"
)

func TestRunQueriesServer(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.URL.RequestURI())
		mu.Unlock()
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"invoices":[{"name":"Lee Robinson","email":"lee@robinson.com","amount":54246,"date":"2023-07-16","status":"pending"}],"totalPages":1,"page":1}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	in := strings.NewReader("l\nle\nlee\n")
	err := run([]string{"--server", srv.URL, "--token", "tok", "--delay", "1h"}, in, &out, logging.Discard())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/dashboard/invoices?page=1&query=lee"}, requests, "only the settled term is fetched")
	assert.Contains(t, out.String(), "Lee Robinson")
	assert.Contains(t, out.String(), "542.46")
}

func TestRunReportsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"authorization token required"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := run([]string{"--server", srv.URL, "--delay", "1h"}, strings.NewReader("paid\n"), &out, logging.Discard())
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := loadOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", opts.Server)
	assert.Equal(t, "/dashboard/invoices", opts.Start)
}
