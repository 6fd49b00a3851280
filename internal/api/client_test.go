package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/installmart/internal/common"
)

type memTokens struct {
	token   string
	mu      sync.Mutex
	deletes int
}

func (m *memTokens) Token(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) SaveToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokens) DeleteToken(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.deletes++
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens *memTokens) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts := Options{BaseURL: server.URL + "/api/", Timeout: 5 * time.Second}
	if tokens != nil {
		opts.Tokens = tokens
	}
	client, err := NewClient(opts)
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestClient_BearerToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		opts     []RequestOption
		wantAuth string
	}{
		{name: "no token", wantAuth: ""},
		{name: "stored token", token: "abc", wantAuth: "Bearer abc"},
		{
			name:     "option cannot override token",
			token:    "abc",
			opts:     []RequestOption{WithHeader("Authorization", "Bearer other")},
			wantAuth: "Bearer abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth, gotPath string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"data":[]}`))
			}, &memTokens{token: tt.token})

			resp, err := client.Get(context.Background(), "/getAllProperties", tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantAuth, gotAuth)
			assert.Equal(t, "/api/getAllProperties", gotPath)
		})
	}
}

func TestClient_NilTokenStore(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	_, err := client.Delete(context.Background(), "deleteReview/1")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_UnauthorizedClearsToken(t *testing.T) {
	tokens := &memTokens{token: "expired"}
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"jwt expired"}`))
	}, tokens)

	resp, err := client.Get(context.Background(), "/getUserLoanApplications")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "jwt expired", statusErr.Message)

	token, _ := tokens.Token(context.Background())
	assert.Empty(t, token)
	assert.Equal(t, 1, tokens.deletes)
}

func TestClient_OtherStatusKeepsToken(t *testing.T) {
	tokens := &memTokens{token: "good"}
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("<html>blocked</html>"))
	}, tokens)

	resp, err := client.Get(context.Background(), "/getAllInstallments")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrUnauthorized))
	assert.Equal(t, "<html>blocked</html>", string(resp.Body))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Empty(t, statusErr.Message)
	assert.Equal(t, 0, tokens.deletes)
}

func TestClient_PostJSON(t *testing.T) {
	var gotBody, gotType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"success":true}`))
	}, nil)

	resp, err := client.Post(context.Background(), "/createReview", map[string]any{"rating": 5})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"rating":5}`, gotBody)

	var out struct {
		Success bool `json:"success"`
	}
	require.NoError(t, DecodeJSON(resp, &out))
	assert.True(t, out.Success)
}

func TestClient_PostMultipartStripsJSONType(t *testing.T) {
	var gotType, gotField, gotFile string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotField = r.FormValue("applicationId")
		f, _, err := r.FormFile("document")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		data, _ := io.ReadAll(f)
		gotFile = string(data)
		_, _ = w.Write([]byte(`{"success":true}`))
	}, &memTokens{token: "t"})

	_, err := client.PostMultipart(context.Background(), "/uploadDocument",
		map[string]string{"applicationId": "app-1"},
		[]File{{FieldName: "document", FileName: "cnic.pdf", Content: strings.NewReader("PDF")}},
		WithHeader("Content-Type", "application/json"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotType, "multipart/form-data; boundary="), gotType)
	assert.Equal(t, "app-1", gotField)
	assert.Equal(t, "PDF", gotFile)
}

func TestClient_MultipartRejectsNilContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, nil)

	_, err := client.PostMultipart(context.Background(), "/uploadDocument", nil,
		[]File{{FieldName: "document", FileName: "x"}})
	assert.ErrorIs(t, err, common.ErrInvalidPayload)
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Get(ctx, "/getAllLoans")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServerMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "message", body: `{"message":"Already applied"}`, want: "Already applied"},
		{name: "error string", body: `{"error":"bad rating"}`, want: "bad rating"},
		{name: "nested error", body: `{"error":{"message":"nested"}}`, want: "nested"},
		{name: "msg", body: `{"msg":" trimmed "}`, want: "trimmed"},
		{name: "html", body: `<!DOCTYPE html><html></html>`, want: ""},
		{name: "empty object", body: `{}`, want: ""},
		{name: "array", body: `[1,2]`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServerMessage([]byte(tt.body)))
		})
	}
}
