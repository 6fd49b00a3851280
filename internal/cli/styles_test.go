package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/installmart/internal/model"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 1500000, want: "Rs 1,500,000"},
		{amount: 999, want: "Rs 999"},
		{amount: 88848.79, want: "Rs 88,848.79"},
		{amount: 0, want: "Rs 0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(tt.amount))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Contains(t, FormatPrice(250000), "Rs 250,000")
	assert.Contains(t, FormatPrice(0), "-")
}

func TestFormatStars(t *testing.T) {
	tests := []struct {
		rating      int
		wantFilled  int
		wantOutline int
	}{
		{rating: 4, wantFilled: 4, wantOutline: 1},
		{rating: 0, wantFilled: 0, wantOutline: 5},
		{rating: 9, wantFilled: 5, wantOutline: 0},
		{rating: -2, wantFilled: 0, wantOutline: 5},
	}
	for _, tt := range tests {
		out := FormatStars(tt.rating)
		assert.Equal(t, tt.wantFilled, strings.Count(out, StarIcon), "rating %d", tt.rating)
		assert.Equal(t, tt.wantOutline, strings.Count(out, EmptyStarIcon), "rating %d", tt.rating)
	}
}

func TestFormatStatus(t *testing.T) {
	assert.Contains(t, FormatStatus(model.StatusApproved, "Approved"), "approved")
	assert.Contains(t, FormatStatus(model.StatusUnknown, "On Hold"), "On Hold")
	assert.Contains(t, FormatStatus(model.StatusUnknown, ""), "unknown")
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	var out syncBuffer
	s := StartSpinner(&out, "Loading plans")
	s.Stop()
	s.Stop()
}
