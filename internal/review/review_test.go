package review

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/testutil"
	"github.com/Veraticus/installmart/internal/testutil/fixtures"
)

func TestList(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodGet, "/getReviews/P1", http.StatusOK, fixtures.Wrap("reviews",
		fixtures.Review("r1", "P1", 5).With("helpfulUsers", []any{"u1", map[string]any{"_id": "u2"}, "u1"}).Raw(),
		fixtures.Review("r2", "P1", 3).With("user", "u9").With("userName", "Guest").Raw(),
	))

	reviews, err := New(backend.Client(nil)).List(context.Background(), "P1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	first := reviews[0]
	assert.Equal(t, "r1", first.ID)
	assert.Equal(t, "P1", first.PlanID)
	assert.Equal(t, 5, first.Rating)
	assert.Equal(t, "user-r1", first.UserID)
	assert.Equal(t, "User r1", first.UserName)
	assert.Equal(t, []string{"u1", "u2", "u1"}, first.HelpfulUsers)
	assert.Equal(t, 2, first.HelpfulCount())
	assert.True(t, first.IsHelpfulFor("u2"))
	assert.Equal(t, 2024, first.CreatedAt.Year())

	second := reviews[1]
	assert.Equal(t, "u9", second.UserID)
	assert.Equal(t, "Guest", second.UserName)
}

func TestList_EscapesPlanID(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodGet, "/getReviews/a b", http.StatusOK, `[]`)

	reviews, err := New(backend.Client(nil)).List(context.Background(), "a b")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestCreate(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/createReview", http.StatusCreated, `{"success":true,"message":"Review added"}`)

	result, err := New(backend.Client(nil)).Create(context.Background(), model.ReviewInput{PlanID: "P1", Rating: 4, Comment: "Smooth process"})
	require.NoError(t, err)
	assert.Equal(t, "Review added", result.Message)

	var sent model.ReviewInput
	require.NoError(t, json.Unmarshal([]byte(backend.LastRequest().Body), &sent))
	assert.Equal(t, model.ReviewInput{PlanID: "P1", Rating: 4, Comment: "Smooth process"}, sent)
}

func TestCreate_RatingBounds(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc := New(backend.Client(nil))

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), model.ReviewInput{PlanID: "P1", Rating: rating})
		assert.ErrorIs(t, err, common.ErrInvalidPayload, "rating %d", rating)
	}
	assert.Empty(t, backend.Requests())
}

func TestUpdateDeleteHelpful(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPut, "/updateReview/r1", http.StatusOK, `{"success":true,"message":"Updated"}`)
	backend.Respond(http.MethodDelete, "/deleteReview/r1", http.StatusOK, `{"success":true,"message":"Deleted"}`)
	backend.Respond(http.MethodPost, "/markReviewHelpful/r1", http.StatusOK, `{"success":true,"message":"Marked"}`)
	svc := New(backend.Client(nil))
	ctx := context.Background()

	result, err := svc.Update(ctx, "r1", model.ReviewInput{PlanID: "P1", Rating: 2})
	require.NoError(t, err)
	assert.Equal(t, "Updated", result.Message)

	result, err = svc.Delete(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted", result.Message)

	result, err = svc.ToggleHelpful(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Marked", result.Message)
}

func TestMutations_ServerError(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodDelete, "/deleteReview/r1", http.StatusForbidden, `{"message":"Not your review"}`)

	_, err := New(backend.Client(nil)).Delete(context.Background(), "r1")
	var opErr *model.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "Not your review", opErr.Message)
}

func TestMutations_RequireID(t *testing.T) {
	svc := New(testutil.NewBackend(t).Client(nil))
	ctx := context.Background()

	_, err := svc.Delete(ctx, " ")
	assert.ErrorIs(t, err, common.ErrInvalidPayload)
	_, err = svc.ToggleHelpful(ctx, "")
	assert.ErrorIs(t, err, common.ErrInvalidPayload)
	_, err = svc.Update(ctx, "", model.ReviewInput{Rating: 3})
	assert.ErrorIs(t, err, common.ErrInvalidPayload)
	_, err = svc.List(ctx, "")
	assert.ErrorIs(t, err, common.ErrInvalidPayload)
}

func TestSummarize(t *testing.T) {
	reviews := []model.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}, {Rating: 1}, {Rating: 0}, {Rating: 9}}
	s := Summarize(reviews)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 3.5, s.Average)
	assert.Equal(t, [6]int{0, 1, 0, 0, 2, 1}, s.Distribution)

	empty := Summarize(nil)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Average)
}

func TestFindByUser(t *testing.T) {
	reviews := []model.Review{{ID: "a", UserID: "u1"}, {ID: "b", UserID: "u2"}}
	assert.Equal(t, "b", FindByUser(reviews, "u2").ID)
	assert.Nil(t, FindByUser(reviews, "u3"))
	assert.Nil(t, FindByUser(reviews, ""))
}
