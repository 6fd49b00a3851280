// Package review manages user reviews of installment plans.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"

	"github.com/Veraticus/installmart/internal/api"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/normalize"
)

// Transport is the subset of *api.Client the service needs.
type Transport interface {
	Get(ctx context.Context, path string, opts ...api.RequestOption) (*api.Response, error)
	Post(ctx context.Context, path string, body any, opts ...api.RequestOption) (*api.Response, error)
	Put(ctx context.Context, path string, body any, opts ...api.RequestOption) (*api.Response, error)
	Delete(ctx context.Context, path string, opts ...api.RequestOption) (*api.Response, error)
}

// Service reads and writes reviews.
type Service struct {
	client Transport
}

// New creates a Service.
func New(client Transport) *Service {
	return &Service{client: client}
}

// List returns the reviews for a plan in the order the backend sent them.
func (s *Service) List(ctx context.Context, planID string) ([]model.Review, error) {
	if err := requireID(planID, "plan ID"); err != nil {
		return nil, err
	}

	resp, err := s.client.Get(ctx, "/getReviews/"+url.PathEscape(planID))
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
	}

	raws := normalize.Objects(normalize.LocateItems(payload, "reviews"))
	out := make([]model.Review, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Record(raw))
	}
	return out, nil
}

// Create posts a new review.
func (s *Service) Create(ctx context.Context, input model.ReviewInput) (*model.SubmitResult, error) {
	if err := requireID(input.PlanID, "plan ID"); err != nil {
		return nil, err
	}
	if err := ValidateRating(input.Rating); err != nil {
		return nil, err
	}
	resp, err := s.client.Post(ctx, "/createReview", input)
	return api.Outcome(resp, err, "Failed to create review")
}

// Update replaces the rating and comment of an existing review.
func (s *Service) Update(ctx context.Context, id string, input model.ReviewInput) (*model.SubmitResult, error) {
	if err := requireID(id, "review ID"); err != nil {
		return nil, err
	}
	if err := ValidateRating(input.Rating); err != nil {
		return nil, err
	}
	resp, err := s.client.Put(ctx, "/updateReview/"+url.PathEscape(id), input)
	return api.Outcome(resp, err, "Failed to update review")
}

// Delete removes a review.
func (s *Service) Delete(ctx context.Context, id string) (*model.SubmitResult, error) {
	if err := requireID(id, "review ID"); err != nil {
		return nil, err
	}
	resp, err := s.client.Delete(ctx, "/deleteReview/"+url.PathEscape(id))
	return api.Outcome(resp, err, "Failed to delete review")
}

// ToggleHelpful marks a review helpful for the current user, or unmarks it
// if it already was.
func (s *Service) ToggleHelpful(ctx context.Context, id string) (*model.SubmitResult, error) {
	if err := requireID(id, "review ID"); err != nil {
		return nil, err
	}
	resp, err := s.client.Post(ctx, "/markReviewHelpful/"+url.PathEscape(id), nil)
	return api.Outcome(resp, err, "Failed to update review")
}

// ValidateRating rejects ratings outside 1 to 5.
func ValidateRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d, got %d",
			common.ErrInvalidPayload, model.MinRating, model.MaxRating, rating)
	}
	return nil
}

func requireID(id, what string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrInvalidPayload, what)
	}
	return nil
}

// Record converts one raw review into canonical form. The author may arrive
// as a populated user object or as flat userId/userName fields.
func Record(raw map[string]any) model.Review {
	var r model.Review
	if err := normalize.Decode(raw, &r); err != nil {
		slog.Debug("Partially decoded review", "error", err)
	}

	r.ID = normalize.String(raw, "_id", "id")
	if r.ID == "" {
		r.ID = normalize.StableID(raw)
	}
	r.PlanID = normalize.String(raw, "planId", "plan", "installmentId")
	r.Rating = normalize.Int(raw, "rating")
	r.Comment = normalize.String(raw, "comment", "text")

	if user := normalize.Object(raw["user"]); user != nil {
		r.UserID = normalize.String(user, "_id", "id")
		r.UserName = normalize.String(user, "name", "fullName", "username")
	} else {
		r.UserID = normalize.String(raw, "userId", "user")
	}
	if r.UserName == "" {
		r.UserName = normalize.String(raw, "userName", "name")
	}

	r.HelpfulUsers = helpfulUsers(raw["helpfulUsers"])
	return r
}

func helpfulUsers(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if obj := normalize.Object(item); obj != nil {
			if id := normalize.String(obj, "_id", "id"); id != "" {
				out = append(out, id)
			}
			continue
		}
		out = append(out, normalize.Strings([]any{item})...)
	}
	return out
}

// Summarize computes the average rating and per-star distribution.
// Ratings outside 1 to 5 are ignored.
func Summarize(reviews []model.Review) model.ReviewSummary {
	var s model.ReviewSummary
	total := 0
	for _, r := range reviews {
		if r.Rating < model.MinRating || r.Rating > model.MaxRating {
			continue
		}
		s.Distribution[r.Rating]++
		s.Count++
		total += r.Rating
	}
	if s.Count > 0 {
		s.Average = math.Round(float64(total)/float64(s.Count)*10) / 10
	}
	return s
}

// FindByUser returns the review written by userID, or nil.
func FindByUser(reviews []model.Review, userID string) *model.Review {
	if userID == "" {
		return nil
	}
	for i := range reviews {
		if reviews[i].UserID == userID {
			return &reviews[i]
		}
	}
	return nil
}
