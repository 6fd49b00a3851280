// Package catalog fetches the public installment, property and loan listings.
package catalog

import (
	"context"
	"fmt"

	"github.com/Veraticus/installmart/internal/config"
	"github.com/Veraticus/installmart/internal/fetch"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/normalize"
)

// Listing endpoints.
const (
	PathProperties   = "/getAllProperties"
	PathInstallments = "/getAllInstallments"
	PathLoans        = "/getAllLoans"
)

// Service reads the three public collections. Every call fetches the full
// collection; nothing is cached between calls.
type Service struct {
	properties   *fetch.Fetcher[model.Property]
	installments *fetch.Fetcher[model.Installment]
	loans        *fetch.Fetcher[model.LoanPlan]
}

// New wires a fetcher per collection on top of client.
func New(client fetch.Transport, settings *config.Settings) *Service {
	origin := settings.MediaOrigin
	return &Service{
		properties: &fetch.Fetcher[model.Property]{
			Client:    client,
			Path:      PathProperties,
			UserAgent: settings.UserAgent,
			Normalize: func(payload any) []model.Property { return normalize.Properties(payload, origin) },
		},
		installments: &fetch.Fetcher[model.Installment]{
			Client:    client,
			Path:      PathInstallments,
			UserAgent: settings.UserAgent,
			Normalize: func(payload any) []model.Installment { return normalize.Installments(payload, origin) },
		},
		loans: &fetch.Fetcher[model.LoanPlan]{
			Client:    client,
			Path:      PathLoans,
			UserAgent: settings.UserAgent,
			Normalize: func(payload any) []model.LoanPlan { return normalize.Loans(payload, origin) },
		},
	}
}

// Properties returns every property listing.
func (s *Service) Properties(ctx context.Context) fetch.Result[model.Property] {
	return s.properties.FetchAll(ctx)
}

// Installments returns every installment plan.
func (s *Service) Installments(ctx context.Context) fetch.Result[model.Installment] {
	return s.installments.FetchAll(ctx)
}

// Loans returns every loan plan.
func (s *Service) Loans(ctx context.Context) fetch.Result[model.LoanPlan] {
	return s.loans.FetchAll(ctx)
}

// PropertyByID scans the full property list for id.
// It returns nil and no error when nothing matches. Unlike a plain lookup it
// also returns an error when the list fetch was degraded, so "not found" is
// never reported for a list that could not be retrieved.
func (s *Service) PropertyByID(ctx context.Context, id string) (*model.Property, error) {
	result := s.Properties(ctx)
	if result.Degraded {
		return nil, fmt.Errorf("failed to fetch properties: %w", result.Err)
	}
	for i := range result.Items {
		if matchesProperty(&result.Items[i], id) {
			return &result.Items[i], nil
		}
	}
	return nil, nil
}

// InstallmentByID scans the full installment list for id, matching the
// plan ID, database ID or canonical ID. A miss is nil and no error; a
// degraded list fetch is an error rather than nil.
func (s *Service) InstallmentByID(ctx context.Context, id string) (*model.Installment, error) {
	result := s.Installments(ctx)
	if result.Degraded {
		return nil, fmt.Errorf("failed to fetch installments: %w", result.Err)
	}
	for i := range result.Items {
		for _, candidate := range result.Items[i].Identifiers() {
			if candidate == id {
				return &result.Items[i], nil
			}
		}
	}
	return nil, nil
}

// LoanByID scans the full loan list for id. A miss is nil and no error; a
// degraded list fetch is an error rather than nil.
func (s *Service) LoanByID(ctx context.Context, id string) (*model.LoanPlan, error) {
	result := s.Loans(ctx)
	if result.Degraded {
		return nil, fmt.Errorf("failed to fetch loans: %w", result.Err)
	}
	for i := range result.Items {
		plan := &result.Items[i]
		if plan.ID == id || normalize.String(plan.Original, "id") == id {
			return plan, nil
		}
	}
	return nil, nil
}

func matchesProperty(p *model.Property, id string) bool {
	if id == "" {
		return false
	}
	return p.ID == id ||
		normalize.String(p.Original, "_id") == id ||
		normalize.String(p.Original, "id") == id
}
