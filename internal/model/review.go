package model

import "time"

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of an installment plan.
type Review struct {
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ID           string    `json:"id"`
	PlanID       string    `json:"planId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	Comment      string    `json:"comment"`
	Status       string    `json:"status"`
	HelpfulUsers []string  `json:"helpfulUsers"`
	Rating       int       `json:"rating"`
}

// IsHelpfulFor reports whether userID has marked the review helpful.
func (r *Review) IsHelpfulFor(userID string) bool {
	for _, u := range r.HelpfulUsers {
		if u == userID {
			return true
		}
	}
	return false
}

// HelpfulCount is the number of distinct users who found the review helpful.
func (r *Review) HelpfulCount() int {
	seen := make(map[string]struct{}, len(r.HelpfulUsers))
	for _, u := range r.HelpfulUsers {
		seen[u] = struct{}{}
	}
	return len(seen)
}

// ReviewInput is the body of a create or update request.
type ReviewInput struct {
	PlanID  string `json:"planId"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

// ReviewSummary aggregates the ratings of a plan.
type ReviewSummary struct {
	Distribution [MaxRating + 1]int `json:"distribution"`
	Average      float64            `json:"average"`
	Count        int                `json:"count"`
}
