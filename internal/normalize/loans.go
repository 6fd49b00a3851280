package normalize

import (
	"strings"

	"github.com/Veraticus/installmart/internal/model"
)

// Loans normalizes a loan-plan list payload.
func Loans(payload any, origin string) []model.LoanPlan {
	raws := Objects(LocateItems(payload, "loans", "loanPlans", "plans"))
	out := make([]model.LoanPlan, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Loan(raw, origin))
	}
	return out
}

// Loan normalizes a single raw loan plan.
func Loan(raw map[string]any, origin string) model.LoanPlan {
	var plan model.LoanPlan
	decodeLogged("loan", raw, &plan)

	plan.ID = firstNonEmpty(String(raw, "_id"), String(raw, "id"), String(raw, "loanId"), StableID(raw))
	plan.BankName = String(raw, "bankName", "bank")
	plan.PlanName = String(raw, "planName", "name", "title")
	plan.Description = String(raw, "description")
	plan.FinancingType = financingType(String(raw, "financingType", "type"))

	plan.MinAmount = Number(raw, "minAmount", "minLoanAmount")
	plan.MaxAmount = Number(raw, "maxAmount", "maxLoanAmount")
	plan.MinTenureMonths = Int(raw, "minTenureMonths", "minTenure")
	plan.MaxTenureMonths = Int(raw, "maxTenureMonths", "maxTenure")
	plan.InterestRate = Number(raw, "interestRate", "markupRate", "rate")
	plan.ProcessingFee = Number(raw, "processingFee")

	plan.Features = Strings(raw["features"])
	plan.ImageURL = model.ResolveImage(origin, String(raw, "imageUrl", "bankLogo", "logo", "image"))

	if elig := Object(raw["eligibility"]); elig != nil {
		plan.Eligibility = model.Eligibility{
			EmploymentTypes: Strings(elig["employmentTypes"]),
			MinAge:          Int(elig, "minAge"),
			MaxAge:          Int(elig, "maxAge"),
			MinIncome:       Number(elig, "minIncome", "minimumIncome"),
		}
	}
	if plan.Eligibility.EmploymentTypes == nil {
		plan.Eligibility.EmploymentTypes = []string{}
	}

	plan.Original = raw
	return plan
}

func financingType(s string) model.FinancingType {
	switch {
	case s == "":
		return ""
	case strings.EqualFold(s, string(model.FinancingIslamic)), strings.Contains(strings.ToLower(s), "shariah"):
		return model.FinancingIslamic
	default:
		return model.FinancingConventional
	}
}
