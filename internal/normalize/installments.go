package normalize

import "github.com/Veraticus/installmart/internal/model"

// Installments normalizes an installment-plan list payload.
// Media paths are resolved against origin.
func Installments(payload any, origin string) []model.Installment {
	raws := Objects(LocateItems(payload, "installments", "plans", "products"))
	out := make([]model.Installment, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Installment(raw, origin))
	}
	return out
}

// Installment normalizes a single raw installment item.
func Installment(raw map[string]any, origin string) model.Installment {
	var inst model.Installment
	decodeLogged("installment", raw, &inst)

	inst.PlanID = String(raw, "planId")
	inst.DatabaseID = String(raw, "_id")
	inst.ID = firstNonEmpty(inst.PlanID, inst.DatabaseID, String(raw, "id"), StableID(raw))

	inst.ProductName = String(raw, "productName", "name", "title")
	inst.Company = String(raw, "company", "companyName", "brand")
	inst.Category = String(raw, "category")
	inst.City = String(raw, "city")
	inst.Description = String(raw, "description")
	inst.Status = String(raw, "status")

	if inst.Specifications == nil {
		inst.Specifications = map[string]any{}
	}

	inst.ProductImages = model.ResolveImages(origin, ImagePaths(raw["productImages"]))
	if len(inst.ProductImages) > 0 {
		inst.ImageURL = inst.ProductImages[0]
	} else {
		inst.ImageURL = model.ResolveImage(origin, String(raw, "imageUrl", "image"))
	}

	inst.PaymentPlans = paymentPlans(raw["paymentPlans"])
	inst.TotalAmount, inst.DownPayment, inst.MonthlyPayment, inst.InterestRate, inst.Duration = 0, 0, 0, 0, 0
	if len(inst.PaymentPlans) > 0 {
		first := inst.PaymentPlans[0]
		inst.TotalAmount = first.TotalAmount
		inst.DownPayment = first.DownPayment
		inst.MonthlyPayment = first.MonthlyInstallment
		inst.InterestRate = first.InterestRate
		inst.Duration = first.TenureMonths
	}

	inst.Original = raw
	return inst
}

func paymentPlans(v any) []model.PaymentPlan {
	items, ok := v.([]any)
	if !ok {
		return []model.PaymentPlan{}
	}
	plans := make([]model.PaymentPlan, 0, len(items))
	for _, raw := range Objects(items) {
		plans = append(plans, model.PaymentPlan{
			PlanName:           String(raw, "planName", "name"),
			TotalAmount:        Number(raw, "totalAmount", "price"),
			DownPayment:        Number(raw, "downPayment", "advance"),
			MonthlyInstallment: Number(raw, "monthlyInstallment", "monthlyPayment"),
			TenureMonths:       Int(raw, "tenureMonths", "duration"),
			InterestRate:       Number(raw, "interestRate", "markup"),
		})
	}
	return plans
}
