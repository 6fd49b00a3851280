package catalog

import (
	"strings"

	"github.com/Veraticus/installmart/internal/loan"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/property"
)

// InstallmentFilter narrows an installment list. Zero fields match everything.
type InstallmentFilter struct {
	Query      string
	Category   string
	City       string
	MaxMonthly float64
}

// FilterInstallments returns the plans matching f, in their original order.
func FilterInstallments(items []model.Installment, f InstallmentFilter) []model.Installment {
	out := make([]model.Installment, 0, len(items))
	for _, item := range items {
		if !containsFold(f.Query, item.ProductName, item.Company, item.Category, item.Description) {
			continue
		}
		if !equalFoldOrEmpty(f.Category, item.Category) || !equalFoldOrEmpty(f.City, item.City) {
			continue
		}
		if f.MaxMonthly > 0 && item.MonthlyPayment > f.MaxMonthly {
			continue
		}
		out = append(out, item)
	}
	return out
}

// PropertyFilter narrows a property list. Zero fields match everything.
type PropertyFilter struct {
	Query           string
	City            string
	TransactionType model.TransactionType
	MinPrice        float64
	MaxPrice        float64
	MinBedrooms     int
}

// FilterProperties returns the listings matching f, in their original order.
func FilterProperties(items []model.Property, f PropertyFilter) []model.Property {
	out := make([]model.Property, 0, len(items))
	for i := range items {
		p := &items[i]
		if !containsFold(f.Query, property.Title(p), property.Location(p), property.Description(p)) {
			continue
		}
		if !equalFoldOrEmpty(f.City, property.City(p)) {
			continue
		}
		if f.TransactionType != "" && !strings.EqualFold(string(f.TransactionType), property.Purpose(p)) {
			continue
		}
		price := property.Price(p)
		if f.MinPrice > 0 && price < f.MinPrice || f.MaxPrice > 0 && price > f.MaxPrice {
			continue
		}
		if f.MinBedrooms > 0 && property.Bedrooms(p) < f.MinBedrooms {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// LoanFilter narrows a loan plan list. Zero fields match everything.
type LoanFilter struct {
	FinancingType model.FinancingType
	Amount        float64
	TenureMonths  int
}

// FilterLoans returns the plans matching f, in their original order.
func FilterLoans(items []model.LoanPlan, f LoanFilter) []model.LoanPlan {
	out := make([]model.LoanPlan, 0, len(items))
	for i := range items {
		plan := &items[i]
		if f.FinancingType != "" && !strings.EqualFold(string(f.FinancingType), string(plan.FinancingType)) {
			continue
		}
		if f.Amount > 0 || f.TenureMonths > 0 {
			amount, tenure := f.Amount, f.TenureMonths
			if amount <= 0 {
				amount = plan.MinAmount
			}
			if tenure <= 0 {
				tenure = plan.MinTenureMonths
			}
			if !loan.Eligible(plan, amount, tenure) {
				continue
			}
		}
		out = append(out, *plan)
	}
	return out
}

func containsFold(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func equalFoldOrEmpty(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, strings.TrimSpace(got))
}
