// Package loan computes equated monthly installments and checks loan plan limits.
package loan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/installmart/internal/model"
)

// Calculation errors.
var (
	ErrInvalidPrincipal = errors.New("principal must be positive")
	ErrInvalidRate      = errors.New("interest rate cannot be negative")
	ErrInvalidTenure    = errors.New("tenure must be at least one month")
)

// Eligibility errors.
var (
	ErrAmountOutOfRange = errors.New("amount outside plan limits")
	ErrTenureOutOfRange = errors.New("tenure outside plan limits")
	ErrAgeOutOfRange    = errors.New("age outside plan limits")
	ErrIncomeTooLow     = errors.New("income below plan minimum")
	ErrEmploymentType   = errors.New("employment type not accepted")
)

const workingPrecision = 20

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// Row is one month of an amortization schedule.
type Row struct {
	Payment   decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Balance   decimal.Decimal
	Month     int
}

// Schedule is a full amortization table with totals.
type Schedule struct {
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
	Rows           []Row
}

func validate(principal, annualRatePercent decimal.Decimal, months int) error {
	if !principal.IsPositive() {
		return ErrInvalidPrincipal
	}
	if annualRatePercent.IsNegative() {
		return ErrInvalidRate
	}
	if months < 1 {
		return ErrInvalidTenure
	}
	return nil
}

// MonthlyPayment returns the fixed monthly installment that repays principal
// over months at the given annual rate, rounded to 2 decimal places.
// A zero rate divides the principal evenly.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, months int) (decimal.Decimal, error) {
	if err := validate(principal, annualRatePercent, months); err != nil {
		return decimal.Zero, err
	}
	return monthlyPayment(principal, monthlyRate(annualRatePercent), months).Round(2), nil
}

func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.DivRound(hundred, workingPrecision).DivRound(twelve, workingPrecision)
}

func monthlyPayment(principal, rate decimal.Decimal, months int) decimal.Decimal {
	n := decimal.NewFromInt(int64(months))
	if rate.IsZero() {
		return principal.DivRound(n, workingPrecision)
	}
	// P * r * (1+r)^n / ((1+r)^n - 1)
	growth := compound(one.Add(rate), months)
	return principal.Mul(rate).Mul(growth).DivRound(growth.Sub(one), workingPrecision)
}

func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for i := 0; i < n; i++ {
		result = result.Mul(base).Round(workingPrecision)
	}
	return result
}

// NewSchedule builds the month-by-month amortization table. Amounts are
// rounded to 2 places each month and the final payment absorbs rounding so
// the balance ends at exactly zero.
func NewSchedule(principal, annualRatePercent decimal.Decimal, months int) (*Schedule, error) {
	payment, err := MonthlyPayment(principal, annualRatePercent, months)
	if err != nil {
		return nil, err
	}
	rate := monthlyRate(annualRatePercent)

	s := &Schedule{
		MonthlyPayment: payment,
		TotalPayment:   decimal.Zero,
		TotalInterest:  decimal.Zero,
		Rows:           make([]Row, 0, months),
	}

	balance := principal.Round(2)
	for month := 1; month <= months; month++ {
		interest := balance.Mul(rate).Round(2)
		principalPart := payment.Sub(interest)
		if month == months || principalPart.GreaterThan(balance) {
			principalPart = balance
		}
		monthPayment := principalPart.Add(interest)
		balance = balance.Sub(principalPart)

		s.Rows = append(s.Rows, Row{
			Month:     month,
			Payment:   monthPayment,
			Principal: principalPart,
			Interest:  interest,
			Balance:   balance,
		})
		s.TotalPayment = s.TotalPayment.Add(monthPayment)
		s.TotalInterest = s.TotalInterest.Add(interest)

		if balance.IsZero() {
			break
		}
	}

	return s, nil
}

// CheckEligibility reports why amount and tenure fall outside the plan's
// limits, or nil when they fit. Zero limits are treated as unbounded.
func CheckEligibility(plan *model.LoanPlan, amount float64, tenureMonths int) error {
	if plan.MinAmount > 0 && amount < plan.MinAmount ||
		plan.MaxAmount > 0 && amount > plan.MaxAmount {
		return fmt.Errorf("%w: %.0f not in [%.0f, %.0f]", ErrAmountOutOfRange, amount, plan.MinAmount, plan.MaxAmount)
	}
	if plan.MinTenureMonths > 0 && tenureMonths < plan.MinTenureMonths ||
		plan.MaxTenureMonths > 0 && tenureMonths > plan.MaxTenureMonths {
		return fmt.Errorf("%w: %d months not in [%d, %d]", ErrTenureOutOfRange, tenureMonths, plan.MinTenureMonths, plan.MaxTenureMonths)
	}
	return nil
}

// Eligible reports whether amount and tenure fit the plan.
func Eligible(plan *model.LoanPlan, amount float64, tenureMonths int) bool {
	return CheckEligibility(plan, amount, tenureMonths) == nil
}

// Applicant is the borrower profile checked against a plan's eligibility rules.
type Applicant struct {
	EmploymentType string
	Age            int
	MonthlyIncome  float64
}

// CheckApplicant reports the first eligibility rule the applicant fails.
// Unset rules and unset applicant fields are skipped.
func CheckApplicant(e model.Eligibility, a Applicant) error {
	if a.Age > 0 {
		if e.MinAge > 0 && a.Age < e.MinAge || e.MaxAge > 0 && a.Age > e.MaxAge {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrAgeOutOfRange, a.Age, e.MinAge, e.MaxAge)
		}
	}
	if a.MonthlyIncome > 0 && e.MinIncome > 0 && a.MonthlyIncome < e.MinIncome {
		return fmt.Errorf("%w: %.0f < %.0f", ErrIncomeTooLow, a.MonthlyIncome, e.MinIncome)
	}
	if a.EmploymentType != "" && len(e.EmploymentTypes) > 0 {
		for _, t := range e.EmploymentTypes {
			if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(a.EmploymentType)) {
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrEmploymentType, a.EmploymentType)
	}
	return nil
}
