package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/installmart/internal/api"
	"github.com/Veraticus/installmart/internal/service"
)

// Request is one request received by a Backend.
type Request struct {
	Header http.Header
	Method string
	Path   string
	Body   string
}

type route struct {
	handler http.HandlerFunc
	method  string
	path    string
}

// Backend is a scriptable stand-in for the remote API.
// Unregistered routes answer 404.
type Backend struct {
	server   *httptest.Server
	t        *testing.T
	routes   []route
	requests []Request
	mu       sync.Mutex
}

// NewBackend starts a fake backend that is shut down when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{t: t}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

// URL is the backend's base URL.
func (b *Backend) URL() string {
	return b.server.URL
}

// Respond registers a canned response for method and path.
func (b *Backend) Respond(method, path string, status int, body string) *Backend {
	return b.HandleFunc(method, path, func(w http.ResponseWriter, _ *http.Request) {
		if len(body) > 0 && (body[0] == '{' || body[0] == '[') {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// HandleFunc registers a handler for method and path.
// Later registrations for the same route win.
func (b *Backend) HandleFunc(method, path string, fn http.HandlerFunc) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes = append([]route{{method: method, path: path, handler: fn}}, b.routes...)
	return b
}

// Requests returns a copy of every request received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest returns the most recent request or fails the test.
func (b *Backend) LastRequest() Request {
	b.t.Helper()
	reqs := b.Requests()
	if len(reqs) == 0 {
		b.t.Fatalf("backend received no requests")
	}
	return reqs[len(reqs)-1]
}

// Client returns an api.Client pointed at the backend.
// A nil tokens sends unauthenticated requests.
func (b *Backend) Client(tokens service.TokenStore) *api.Client {
	b.t.Helper()
	client, err := api.NewClient(api.Options{
		BaseURL: b.server.URL,
		Timeout: 5 * time.Second,
		Tokens:  tokens,
	})
	if err != nil {
		b.t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	b.mu.Lock()
	b.requests = append(b.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	var handler http.HandlerFunc
	for _, rt := range b.routes {
		if rt.method == r.Method && rt.path == r.URL.Path {
			handler = rt.handler
			break
		}
	}
	b.mu.Unlock()

	if handler == nil {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}

