package model

// FinancingType distinguishes interest-bearing from Shariah-compliant plans.
type FinancingType string

const (
	// FinancingConventional is an interest-bearing loan.
	FinancingConventional FinancingType = "Conventional"
	// FinancingIslamic is a markup-based Shariah-compliant plan.
	FinancingIslamic FinancingType = "Islamic"
)

// Eligibility captures the constraints a bank places on applicants.
type Eligibility struct {
	EmploymentTypes []string `json:"employmentTypes"`
	MinAge          int      `json:"minAge"`
	MaxAge          int      `json:"maxAge"`
	MinIncome       float64  `json:"minIncome"`
}

// LoanPlan is a financing product offered by a bank.
type LoanPlan struct {
	Original        map[string]any `json:"-"`
	ID              string         `json:"id"`
	BankName        string         `json:"bankName"`
	PlanName        string         `json:"planName"`
	FinancingType   FinancingType  `json:"financingType"`
	Description     string         `json:"description"`
	ImageURL        string         `json:"imageUrl"`
	Features        []string       `json:"features"`
	Eligibility     Eligibility    `json:"eligibility"`
	MinAmount       float64        `json:"minAmount"`
	MaxAmount       float64        `json:"maxAmount"`
	InterestRate    float64        `json:"interestRate"`
	ProcessingFee   float64        `json:"processingFee"`
	MinTenureMonths int            `json:"minTenureMonths"`
	MaxTenureMonths int            `json:"maxTenureMonths"`
}
