// Package dashboard assembles the signed-in user's applications across all kinds.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/installmart/internal/api"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/normalize"
)

// Endpoints listing the user's applications, per kind.
var listPaths = map[model.ApplicationKind]string{
	model.KindInstallmentApplication: "/getUserInstallmentApplications",
	model.KindPropertyApplication:    "/getUserPropertyApplications",
	model.KindLoanApplication:        "/getUserLoanApplications",
}

// ListPath returns the endpoint listing the user's applications of kind.
func ListPath(kind model.ApplicationKind) string {
	return listPaths[kind]
}

// Transport is the subset of *api.Client the service needs.
type Transport interface {
	Get(ctx context.Context, path string, opts ...api.RequestOption) (*api.Response, error)
}

// Stats counts applications by status and kind.
type Stats struct {
	ByStatus map[model.Status]int
	ByKind   map[model.ApplicationKind]int
	Total    int
	// Active counts applications not yet in a final state.
	Active int
}

// Dashboard is the combined view of the user's applications.
type Dashboard struct {
	// Errors holds the failure for each kind that could not be loaded.
	Errors  map[model.ApplicationKind]error
	Stats   Stats
	Records []model.ApplicationRecord
}

// Service reads the user's applications. Status changes happen on the
// server only, so it never writes.
type Service struct {
	client Transport
}

// New creates a Service.
func New(client Transport) *Service {
	return &Service{client: client}
}

// Load fetches every kind of application concurrently. A kind that fails is
// reported in Dashboard.Errors and the rest are still returned, except for
// 401, which fails the whole call because the session is gone.
func (s *Service) Load(ctx context.Context) (*Dashboard, error) {
	var (
		mu      sync.Mutex
		records []model.ApplicationRecord
		errs    = make(map[model.ApplicationKind]error)
	)

	var g errgroup.Group
	for _, kind := range model.ApplicationKinds {
		g.Go(func() error {
			list, err := s.List(ctx, kind)
			if errors.Is(err, common.ErrUnauthorized) {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("Failed to load applications", "kind", kind, "error", err)
				errs[kind] = err
				return nil
			}
			records = append(records, list...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortNewestFirst(records)
	if records == nil {
		records = []model.ApplicationRecord{}
	}
	return &Dashboard{
		Records: records,
		Stats:   Summarize(records),
		Errors:  errs,
	}, nil
}

// List fetches the user's applications of one kind.
func (s *Service) List(ctx context.Context, kind model.ApplicationKind) ([]model.ApplicationRecord, error) {
	path, ok := listPaths[kind]
	if !ok {
		return nil, fmt.Errorf("unknown application kind %q", kind)
	}

	resp, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
	}

	raws := normalize.Objects(normalize.LocateItems(payload, "applications", string(kind)+"Applications"))
	out := make([]model.ApplicationRecord, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Record(kind, raw))
	}
	return out, nil
}

// referenceKeys name, per kind, the flat key and the nested object holding
// the applied-for listing.
var referenceKeys = map[model.ApplicationKind]struct {
	flat   []string
	nested []string
}{
	model.KindInstallmentApplication: {flat: []string{"planId", "installmentId"}, nested: []string{"plan", "installment"}},
	model.KindPropertyApplication:    {flat: []string{"propertyId"}, nested: []string{"property"}},
	model.KindLoanApplication:        {flat: []string{"loanId", "loanPlanId"}, nested: []string{"loan", "loanPlan"}},
}

var titleKeys = []string{"productName", "projectName", "title", "adTitle", "planName", "name"}

// Record converts one raw application item of kind into canonical form.
func Record(kind model.ApplicationKind, raw map[string]any) model.ApplicationRecord {
	var rec model.ApplicationRecord
	if err := normalize.Decode(raw, &rec); err != nil {
		slog.Debug("Partially decoded application", "kind", kind, "error", err)
	}

	rec.ID = normalize.String(raw, "_id", "id", "applicationId")
	if rec.ID == "" {
		rec.ID = normalize.StableID(raw)
	}
	rec.Kind = kind
	rec.RawStatus = normalize.String(raw, "status", "applicationStatus")
	rec.Status = model.ParseStatus(rec.RawStatus)

	keys := referenceKeys[kind]
	rec.ReferenceID = normalize.String(raw, keys.flat...)
	rec.ReferenceTitle = normalize.String(raw, titleKeys...)
	for _, key := range keys.nested {
		nested := normalize.Object(raw[key])
		if nested == nil {
			// The reference may be a bare ID instead of a populated object.
			if rec.ReferenceID == "" {
				rec.ReferenceID = normalize.String(raw, key)
			}
			continue
		}
		if rec.ReferenceID == "" {
			rec.ReferenceID = normalize.String(nested, "_id", "id", "planId")
		}
		if rec.ReferenceTitle == "" {
			rec.ReferenceTitle = normalize.String(nested, titleKeys...)
		}
	}

	rec.Answers = normalize.Object(raw["answers"])
	if rec.Answers == nil {
		rec.Answers = normalize.Object(raw["formData"])
	}
	if rec.Answers == nil {
		rec.Answers = map[string]any{}
	}
	return rec
}

// SortNewestFirst orders records by creation time, newest first, then by ID.
func SortNewestFirst(records []model.ApplicationRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
}

// Summarize counts records by status and kind.
func Summarize(records []model.ApplicationRecord) Stats {
	stats := Stats{
		ByStatus: make(map[model.Status]int),
		ByKind:   make(map[model.ApplicationKind]int),
	}
	for _, rec := range records {
		stats.Total++
		stats.ByStatus[rec.Status]++
		stats.ByKind[rec.Kind]++
		if !rec.Status.IsFinal() {
			stats.Active++
		}
	}
	return stats
}

// FilterByStatus returns the records in status, preserving order.
func FilterByStatus(records []model.ApplicationRecord, status model.Status) []model.ApplicationRecord {
	out := make([]model.ApplicationRecord, 0, len(records))
	for _, rec := range records {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out
}
