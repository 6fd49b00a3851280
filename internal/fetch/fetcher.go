package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/installmart/internal/api"
	"github.com/Veraticus/installmart/internal/common"
)

// Method is the HTTP method that produced a result.
type Method string

const (
	MethodGET  Method = "GET"
	MethodPOST Method = "POST"
)

// Transport is the subset of *api.Client a Fetcher needs.
type Transport interface {
	Get(ctx context.Context, path string, opts ...api.RequestOption) (*api.Response, error)
	Post(ctx context.Context, path string, body any, opts ...api.RequestOption) (*api.Response, error)
}

// Result is the outcome of a list fetch.
// Items is never nil. Degraded is set when the fetch failed and Items is
// empty because of that failure rather than because the collection is empty.
type Result[T any] struct {
	Err      error
	Via      Method
	Items    []T
	Degraded bool
}

// Fetcher retrieves a whole collection from one endpoint.
type Fetcher[T any] struct {
	Client    Transport
	Normalize func(payload any) []T
	Path      string
	UserAgent string
}

var emptyBody = json.RawMessage(`{}`)

// FetchAll fetches and normalizes the collection. It never returns an error;
// failures yield an empty, degraded result.
func (f *Fetcher[T]) FetchAll(ctx context.Context) Result[T] {
	opts := f.requestOptions()

	resp, err := f.Client.Get(ctx, f.Path, opts...)
	if err != nil {
		if !isSoftFailure(resp, err) {
			return f.degraded(MethodGET, err)
		}
		slog.Debug("GET soft-blocked, retrying with POST", "path", f.Path, "error", err)
		return f.fallback(ctx, opts)
	}

	if LooksLikeChallengePage(resp.Body) {
		slog.Debug("GET returned challenge page, retrying with POST", "path", f.Path)
		return f.fallback(ctx, opts)
	}

	payload, err := parsePayload(resp.Body)
	if err != nil {
		return f.degraded(MethodGET, err)
	}
	return f.success(MethodGET, payload)
}

func (f *Fetcher[T]) fallback(ctx context.Context, opts []api.RequestOption) Result[T] {
	resp, err := f.Client.Post(ctx, f.Path, emptyBody, opts...)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && IsBlockedStatus(statusErr.StatusCode) {
			err = fmt.Errorf("%w: %w", common.ErrBlockedStatus, err)
		}
		return f.degraded(MethodPOST, err)
	}
	if LooksLikeChallengePage(resp.Body) {
		return f.degraded(MethodPOST, fmt.Errorf("POST %s: %w", f.Path, common.ErrChallengePage))
	}

	payload, err := parsePayload(resp.Body)
	if err != nil {
		return f.degraded(MethodPOST, err)
	}
	return f.success(MethodPOST, payload)
}

func (f *Fetcher[T]) requestOptions() []api.RequestOption {
	opts := []api.RequestOption{api.WithHeader("Accept", "application/json")}
	if f.UserAgent != "" {
		opts = append(opts, api.WithUserAgent(f.UserAgent))
	}
	return opts
}

func (f *Fetcher[T]) success(via Method, payload any) Result[T] {
	var items []T
	if f.Normalize != nil {
		items = f.Normalize(payload)
	}
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, Via: via}
}

func (f *Fetcher[T]) degraded(via Method, err error) Result[T] {
	slog.Warn("List fetch failed, returning empty result",
		"path", f.Path,
		"method", string(via),
		"error", err)
	return Result[T]{Items: []T{}, Via: via, Degraded: true, Err: err}
}

// isSoftFailure reports whether a failed GET should be retried with POST.
func isSoftFailure(resp *api.Response, err error) bool {
	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	if IsBlockedStatus(statusErr.StatusCode) {
		return true
	}
	return resp != nil && LooksLikeChallengePage(resp.Body)
}

func parsePayload(body []byte) (any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
	}
	return payload, nil
}
