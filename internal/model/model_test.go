package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = "https://media.example.com/"

func TestResolveImage(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "absolute https", path: "https://cdn.example.com/a.png", want: "https://cdn.example.com/a.png"},
		{name: "absolute http", path: "http://cdn.example.com/a.png", want: "http://cdn.example.com/a.png"},
		{name: "data uri", path: "data:image/png;base64,AAAA", want: "data:image/png;base64,AAAA"},
		{name: "leading slash", path: "/uploads/a.png", want: origin + "uploads/a.png"},
		{name: "many leading separators", path: `\\//uploads\a.png`, want: origin + `uploads\a.png`},
		{name: "bare relative", path: "uploads/a.png", want: origin + "uploads/a.png"},
		{name: "empty", path: "", want: ""},
		{name: "whitespace is not trimmed", path: " /a.png", want: origin + " /a.png"},
		{name: "scheme match is case sensitive", path: "HTTPS://cdn.example.com/a.png", want: origin + "HTTPS://cdn.example.com/a.png"},
		{name: "only a slash", path: "/", want: origin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveImage(origin, tt.path))
		})
	}
}

func TestResolveImages(t *testing.T) {
	got := ResolveImages(origin, []string{"/a.png", "", "https://x.test/b.png"})
	assert.Equal(t, []string{origin + "a.png", "https://x.test/b.png"}, got)

	empty := ResolveImages(origin, nil)
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"pending":     StatusPending,
		"PENDING":     StatusPending,
		" Approved ":  StatusApproved,
		"In Progress": StatusInProgress,
		"in-progress": StatusInProgress,
		"IN_PROGRESS": StatusInProgress,
		"Canceled":    StatusCancelled,
		"cancelled":   StatusCancelled,
		"completed":   StatusCompleted,
		"rejected":    StatusRejected,
		"archived":    StatusUnknown,
		"":            StatusUnknown,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseStatus(input), "input %q", input)
	}

	assert.True(t, StatusRejected.IsFinal())
	assert.False(t, StatusPending.IsFinal())
}

func TestParseApplicationKind(t *testing.T) {
	k, err := ParseApplicationKind(" Loan ")
	require.NoError(t, err)
	assert.Equal(t, KindLoanApplication, k)

	_, err = ParseApplicationKind("mortgage")
	assert.Error(t, err)
}

func TestPropertyKind(t *testing.T) {
	tests := []struct {
		name string
		prop Property
		want PropertyKind
	}{
		{name: "project", prop: Property{Type: PropertyTypeProject, Project: &ProjectDetails{}}, want: KindProject},
		{name: "individual", prop: Property{Type: PropertyTypeIndividual, IndividualProperty: &IndividualDetails{}}, want: KindIndividual},
		{name: "project without nested object", prop: Property{Type: PropertyTypeProject}, want: KindLegacy},
		{name: "individual with project object", prop: Property{Type: PropertyTypeIndividual, Project: &ProjectDetails{}}, want: KindLegacy},
		{name: "no discriminant", prop: Property{AdTitle: "House"}, want: KindLegacy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prop.Kind())
		})
	}
	assert.Equal(t, "project", KindProject.String())
	assert.Equal(t, "legacy", KindLegacy.String())
}

func TestInstallmentIdentifiers(t *testing.T) {
	i := Installment{ID: "PLAN-1", PlanID: "PLAN-1", DatabaseID: "64ab"}
	assert.Equal(t, []string{"PLAN-1", "PLAN-1", "64ab"}, i.Identifiers())

	empty := Installment{}
	assert.Empty(t, empty.Identifiers())
}

func TestReviewHelpers(t *testing.T) {
	r := Review{HelpfulUsers: []string{"u1", "u2", "u1"}}
	assert.True(t, r.IsHelpfulFor("u2"))
	assert.False(t, r.IsHelpfulFor("u3"))
	assert.Equal(t, 2, r.HelpfulCount())
}

func TestApplicationValidate(t *testing.T) {
	applicant := Applicant{FullName: "Ayesha Khan", CNIC: "35202-1234567-1", Phone: "+923001234567"}

	t.Run("installment", func(t *testing.T) {
		a := InstallmentApplication{Applicant: applicant, PlanID: "PLAN-1"}
		require.NoError(t, a.Validate())

		a.PlanID = ""
		assert.Error(t, a.Validate())
	})

	t.Run("property missing phone", func(t *testing.T) {
		a := PropertyApplication{Applicant: applicant, PropertyID: "p1"}
		a.Phone = ""
		assert.ErrorContains(t, a.Validate(), "phone")
	})

	t.Run("loan bounds", func(t *testing.T) {
		a := LoanApplication{Applicant: applicant, LoanID: "l1", RequestedAmount: 500000, TenureMonths: 24}
		require.NoError(t, a.Validate())

		a.TenureMonths = 0
		assert.ErrorContains(t, a.Validate(), "tenure")
	})
}

func TestOperationError(t *testing.T) {
	err := &OperationError{Message: "CNIC already used", Err: assert.AnError}
	assert.Equal(t, "CNIC already used: "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)

	same := &OperationError{Message: "boom", Err: errString("boom")}
	assert.Equal(t, "boom", same.Error())
}

type errString string

func (e errString) Error() string { return string(e) }
