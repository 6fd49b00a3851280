package model

// PaymentPlan is one financing option offered for an installment product.
type PaymentPlan struct {
	PlanName           string  `json:"planName"`
	TotalAmount        float64 `json:"totalAmount"`
	DownPayment        float64 `json:"downPayment"`
	MonthlyInstallment float64 `json:"monthlyInstallment"`
	TenureMonths       int     `json:"tenureMonths"`
	InterestRate       float64 `json:"interestRate"`
}

// Installment is a financeable product in canonical form.
// Pricing fields mirror the first payment plan and are zero when none exists.
type Installment struct {
	Specifications map[string]any `json:"specifications"`
	Original       map[string]any `json:"-"`
	ID             string         `json:"id"`
	PlanID         string         `json:"planId"`
	DatabaseID     string         `json:"databaseId"`
	ProductName    string         `json:"productName"`
	Category       string         `json:"category"`
	Company        string         `json:"company"`
	City           string         `json:"city"`
	Description    string         `json:"description"`
	Status         string         `json:"status"`
	ImageURL       string         `json:"imageUrl"`
	ProductImages  []string       `json:"productImages"`
	PaymentPlans   []PaymentPlan  `json:"paymentPlans"`
	TotalAmount    float64        `json:"totalAmount"`
	DownPayment    float64        `json:"downPayment"`
	MonthlyPayment float64        `json:"monthlyPayment"`
	InterestRate   float64        `json:"interestRate"`
	Duration       int            `json:"duration"`
}

// Identifiers returns every identifier the record can be looked up by.
func (i *Installment) Identifiers() []string {
	ids := make([]string, 0, 3)
	for _, id := range []string{i.ID, i.PlanID, i.DatabaseID} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
