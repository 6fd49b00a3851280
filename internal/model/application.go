package model

import (
	"fmt"
	"strings"
	"time"
)

// ApplicationKind identifies which catalog an application was made against.
type ApplicationKind string

const (
	KindInstallmentApplication ApplicationKind = "installment"
	KindPropertyApplication    ApplicationKind = "property"
	KindLoanApplication        ApplicationKind = "loan"
)

// ApplicationKinds lists every kind in display order.
var ApplicationKinds = []ApplicationKind{
	KindInstallmentApplication,
	KindPropertyApplication,
	KindLoanApplication,
}

// ParseApplicationKind maps user input onto a kind.
func ParseApplicationKind(s string) (ApplicationKind, error) {
	k := ApplicationKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ApplicationKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown application kind %q", s)
}

// Status is the server-side workflow state of an application.
type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusUnknown    Status = "unknown"
)

var knownStatuses = map[Status]bool{
	StatusPending:    true,
	StatusApproved:   true,
	StatusRejected:   true,
	StatusCancelled:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// ParseStatus normalizes a status string from the wire. The backend is not
// consistent about case or separators ("In Progress", "IN-PROGRESS").
func ParseStatus(s string) Status {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	if norm == "canceled" {
		norm = string(StatusCancelled)
	}
	if st := Status(norm); knownStatuses[st] {
		return st
	}
	return StatusUnknown
}

// IsFinal reports whether the server will not move the application further.
func (s Status) IsFinal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// Applicant holds the personal details shared by every application form.
type Applicant struct {
	FullName string `json:"fullName" yaml:"fullName"`
	CNIC     string `json:"cnic" yaml:"cnic"`
	Phone    string `json:"phone" yaml:"phone"`
	Email    string `json:"email,omitempty" yaml:"email"`
	City     string `json:"city,omitempty" yaml:"city"`
	Address  string `json:"address,omitempty" yaml:"address"`
}

func (a Applicant) validate() error {
	switch {
	case strings.TrimSpace(a.FullName) == "":
		return fmt.Errorf("full name is required")
	case strings.TrimSpace(a.Phone) == "":
		return fmt.Errorf("phone is required")
	case strings.TrimSpace(a.CNIC) == "":
		return fmt.Errorf("CNIC is required")
	}
	return nil
}

// InstallmentApplication is submitted against an installment product.
type InstallmentApplication struct {
	Applicant     `yaml:",inline"`
	PlanID        string  `json:"planId" yaml:"planId"`
	ProductName   string  `json:"productName,omitempty" yaml:"productName"`
	SelectedPlan  string  `json:"selectedPlan,omitempty" yaml:"selectedPlan"`
	Occupation    string  `json:"occupation,omitempty" yaml:"occupation"`
	Notes         string  `json:"notes,omitempty" yaml:"notes"`
	MonthlyIncome float64 `json:"monthlyIncome,omitempty" yaml:"monthlyIncome"`
}

// Kind identifies the application type.
func (a *InstallmentApplication) Kind() ApplicationKind { return KindInstallmentApplication }

// Validate checks the fields the form requires.
func (a *InstallmentApplication) Validate() error {
	if strings.TrimSpace(a.PlanID) == "" {
		return fmt.Errorf("plan ID is required")
	}
	return a.Applicant.validate()
}

// PropertyApplication expresses interest in buying or renting a property.
type PropertyApplication struct {
	Applicant          `yaml:",inline"`
	PropertyID         string  `json:"propertyId" yaml:"propertyId"`
	Purpose            string  `json:"purpose,omitempty" yaml:"purpose"`
	PreferredVisitDate string  `json:"preferredVisitDate,omitempty" yaml:"preferredVisitDate"`
	Message            string  `json:"message,omitempty" yaml:"message"`
	Budget             float64 `json:"budget,omitempty" yaml:"budget"`
}

// Kind identifies the application type.
func (a *PropertyApplication) Kind() ApplicationKind { return KindPropertyApplication }

// Validate checks the fields the form requires.
func (a *PropertyApplication) Validate() error {
	if strings.TrimSpace(a.PropertyID) == "" {
		return fmt.Errorf("property ID is required")
	}
	return a.Applicant.validate()
}

// LoanApplication requests financing under a bank's loan plan.
type LoanApplication struct {
	Applicant       `yaml:",inline"`
	LoanID          string  `json:"loanId" yaml:"loanId"`
	EmploymentType  string  `json:"employmentType,omitempty" yaml:"employmentType"`
	Purpose         string  `json:"purpose,omitempty" yaml:"purpose"`
	MonthlyIncome   float64 `json:"monthlyIncome,omitempty" yaml:"monthlyIncome"`
	RequestedAmount float64 `json:"requestedAmount" yaml:"requestedAmount"`
	TenureMonths    int     `json:"tenureMonths" yaml:"tenureMonths"`
}

// Kind identifies the application type.
func (a *LoanApplication) Kind() ApplicationKind { return KindLoanApplication }

// Validate checks the fields the form requires.
func (a *LoanApplication) Validate() error {
	if strings.TrimSpace(a.LoanID) == "" {
		return fmt.Errorf("loan ID is required")
	}
	if a.RequestedAmount <= 0 {
		return fmt.Errorf("requested amount must be positive")
	}
	if a.TenureMonths <= 0 {
		return fmt.Errorf("tenure must be positive")
	}
	return a.Applicant.validate()
}

// ApplicationRecord is an application as listed on the user's dashboard.
type ApplicationRecord struct {
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Answers        map[string]any  `json:"answers"`
	ID             string          `json:"id"`
	Kind           ApplicationKind `json:"kind"`
	ReferenceID    string          `json:"referenceId"`
	ReferenceTitle string          `json:"referenceTitle"`
	RawStatus      string          `json:"rawStatus"`
	Status         Status          `json:"status"`
}

// SubmitResult is the outcome of a successful mutation.
type SubmitResult struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// OperationError is the normalized failure of a mutation. Message carries the
// server's own message when it sent one.
type OperationError struct {
	Err     error  `json:"-"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func (e *OperationError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
