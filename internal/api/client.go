// Package api is the transport client for the installmart backend.
//
// It attaches the stored bearer token to every request, clears that token
// when the backend answers 401, and reports every non-2xx response as a
// *StatusError. It never retries; callers that need a fallback strategy
// (see package fetch) build it on top.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/service"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 30 * time.Second

const (
	contentTypeJSON = "application/json"
	maxBodyBytes    = 32 << 20
)

// Options configures a Client.
type Options struct {
	// Tokens supplies the bearer token. Nil means requests go out unauthenticated.
	Tokens service.TokenStore
	// HTTPClient overrides the underlying client. Its Timeout is left alone.
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
}

// Client issues requests against a fixed base endpoint.
type Client struct {
	httpClient *http.Client
	tokens     service.TokenStore
	baseURL    string
}

// NewClient creates a Client for the given options.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("%w: base URL is required", common.ErrMissingConfig)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		httpClient: httpClient,
		tokens:     opts.Tokens,
		baseURL:    base,
	}, nil
}

// BaseURL returns the endpoint every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is a fully read HTTP response.
type Response struct {
	Header     http.Header
	Body       []byte
	StatusCode int
}

// RequestOption adjusts an outgoing request before it is sent.
type RequestOption func(*http.Request)

// WithHeader sets a header on the request.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) RequestOption {
	return WithHeader("User-Agent", ua)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

// Post issues a POST request with body encoded as JSON. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	p, err := jsonPayload(body)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPost, path, p, opts...)
}

// Put issues a PUT request with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	p, err := jsonPayload(body)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPut, path, p, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, opts...)
}

// File is one file part of a multipart upload.
type File struct {
	Content   io.Reader
	FieldName string
	FileName  string
}

// PostMultipart uploads fields and files as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []File, opts ...RequestOption) (*Response, error) {
	p, err := multipartPayload(fields, files)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPost, path, p, opts...)
}

// Payload is a request body together with its content type.
type Payload struct {
	Reader      io.Reader
	ContentType string
	// Binary marks multipart or other non-JSON bodies.
	Binary bool
}

// Do sends a request and reads the whole response.
// Non-2xx responses are returned as *StatusError alongside the response.
func (c *Client) Do(ctx context.Context, method, path string, payload *Payload, opts ...RequestOption) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = payload.Reader
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Content-Type", contentTypeJSON)

	for _, opt := range opts {
		opt(req)
	}

	if payload == nil {
		req.Header.Del("Content-Type")
	} else if payload.Binary {
		// The multipart writer owns the boundary; a preset JSON type would hide it.
		req.Header.Del("Content-Type")
		req.Header.Set("Content-Type", payload.ContentType)
	} else if payload.ContentType != "" {
		req.Header.Set("Content-Type", payload.ContentType)
	}

	// Applied last so no option can drop it.
	c.authorize(ctx, req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: request failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	slog.Debug("API request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearToken(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       data,
			Message:    ServerMessage(data),
		}
	}

	return out, nil
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		slog.Warn("Failed to read auth token, sending request unauthenticated", "error", err)
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) clearToken(ctx context.Context) {
	if c.tokens == nil {
		return
	}
	// The request context may already be done; the logout must still happen.
	if err := c.tokens.DeleteToken(context.WithoutCancel(ctx)); err != nil {
		slog.Warn("Failed to clear auth token after 401", "error", err)
		return
	}
	slog.Info("Session expired, stored token cleared")
}

func jsonPayload(body any) (*Payload, error) {
	if body == nil {
		return nil, nil
	}
	if raw, ok := body.(json.RawMessage); ok {
		return &Payload{Reader: bytes.NewReader(raw), ContentType: contentTypeJSON}, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return &Payload{Reader: bytes.NewReader(data), ContentType: contentTypeJSON}, nil
}

func multipartPayload(fields map[string]string, files []File) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	for _, f := range files {
		if f.Content == nil {
			return nil, fmt.Errorf("%w: file %q has no content", common.ErrInvalidPayload, f.FileName)
		}
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("failed to copy file %s: %w", f.FileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return &Payload{
		Reader:      &buf,
		ContentType: w.FormDataContentType(),
		Binary:      true,
	}, nil
}

// DecodeJSON unmarshals the response body into v.
func DecodeJSON(resp *Response, v any) error {
	if resp == nil {
		return errors.New("nil response")
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
