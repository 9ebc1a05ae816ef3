package client

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

const (
	testAPIKey      = "test-key"
	testAPIUsername = "system"
)

// newTestClient starts a server for handler and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc, configure ...func(*discourse.Config)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return newClientFor(t, server.URL, configure...)
}

// newUnreachableClient returns a client whose every request fails in transport.
func newUnreachableClient(t *testing.T) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	serverURL := server.URL
	server.Close()

	return newClientFor(t, serverURL)
}

func newClientFor(t *testing.T, baseURL string, configure ...func(*discourse.Config)) *Client {
	t.Helper()

	config := &discourse.Config{APIKey: testAPIKey, APIUsername: testAPIUsername}
	for _, fn := range configure {
		fn(config)
	}

	client, err := New(baseURL, config)
	require.NoError(t, err)

	return client
}

// requestLog records "METHOD /path" for every request a test server sees.
type requestLog struct {
	mu       sync.Mutex
	requests []string
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests = append(l.requests, r.Method+" "+r.URL.Path)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.requests...)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

const notFoundBody = `{"errors":["The requested URL or resource could not be found."],"error_type":"not_found"}`
