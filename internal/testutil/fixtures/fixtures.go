// Package fixtures builds raw API payloads for tests.
//
// Example usage:
//
//	body := fixtures.Wrap("data",
//		fixtures.Installment("plan-1").WithPlan(15000, 12).Raw(),
//	)
//	backend.Respond(http.MethodGet, "/getAllInstallments", http.StatusOK, body)
package fixtures

import (
	"encoding/json"
	"fmt"
)

// Item is a raw JSON object under construction.
type Item map[string]any

// Raw returns the item as a plain map.
func (i Item) Raw() map[string]any {
	return i
}

// With sets an arbitrary key.
func (i Item) With(key string, value any) Item {
	i[key] = value
	return i
}

// Installment starts an installment plan item identified by planID.
func Installment(planID string) Item {
	return Item{
		"planId":        planID,
		"_id":           "db-" + planID,
		"productName":   "Product " + planID,
		"company":       "Acme",
		"category":      "Electronics",
		"city":          "Lahore",
		"productImages": []any{"/uploads/" + planID + ".png"},
	}
}

// WithPlan appends a payment plan.
func (i Item) WithPlan(monthly float64, tenureMonths int) Item {
	plans, _ := i["paymentPlans"].([]any)
	i["paymentPlans"] = append(plans, map[string]any{
		"planName":           fmt.Sprintf("%d months", tenureMonths),
		"monthlyInstallment": monthly,
		"tenureMonths":       tenureMonths,
		"totalAmount":        monthly * float64(tenureMonths),
	})
	return i
}

// LegacyProperty starts a flat, undiscriminated property item.
func LegacyProperty(id string) Item {
	return Item{
		"_id":       id,
		"adTitle":   "Listing " + id,
		"address":   "Street 1",
		"city":      "Islamabad",
		"bedRooms":  "3",
		"bathRooms": "2",
		"price":     5000000,
		"images":    []any{"uploads/" + id + ".jpg"},
	}
}

// ProjectProperty starts a Project property with a sale transaction.
func ProjectProperty(id, name string, price float64) Item {
	return Item{
		"_id":  id,
		"type": "Project",
		"project": map[string]any{
			"projectName": name,
			"city":        "Lahore",
			"developer":   "Builders Ltd",
			"transaction": map[string]any{"type": "Sale", "price": price},
		},
	}
}

// IndividualProperty starts an Individual property with the given transaction.
func IndividualProperty(id, title, txType string, amount float64, bedrooms int) Item {
	tx := map[string]any{"type": txType, "price": amount}
	if txType == "Rent" {
		tx = map[string]any{"type": txType, "monthlyRent": amount}
	}
	return Item{
		"_id":  id,
		"type": "Individual",
		"individualProperty": map[string]any{
			"title":       title,
			"city":        "Karachi",
			"bedrooms":    bedrooms,
			"transaction": tx,
		},
	}
}

// LoanPlan starts a loan plan item.
func LoanPlan(id, bank string, financing string) Item {
	return Item{
		"_id":             id,
		"bankName":        bank,
		"planName":        bank + " Plan",
		"financingType":   financing,
		"minAmount":       100000,
		"maxAmount":       5000000,
		"minTenureMonths": 12,
		"maxTenureMonths": 60,
		"interestRate":    15,
	}
}

// Application starts a dashboard application item.
func Application(id, status, createdAt string) Item {
	return Item{
		"_id":       id,
		"status":    status,
		"createdAt": createdAt,
	}
}

// Review starts a review item.
func Review(id, planID string, rating int) Item {
	return Item{
		"_id":          id,
		"planId":       planID,
		"rating":       rating,
		"comment":      "Review " + id,
		"user":         map[string]any{"_id": "user-" + id, "name": "User " + id},
		"helpfulUsers": []any{},
		"createdAt":    "2024-01-02T03:04:05Z",
	}
}

// Array encodes items as a bare JSON array.
func Array(items ...map[string]any) string {
	return encode(toAny(items))
}

// Wrap encodes items as an array under key.
func Wrap(key string, items ...map[string]any) string {
	return encode(map[string]any{"success": true, key: toAny(items)})
}

func toAny(items []map[string]any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func encode(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("fixtures: %v", err))
	}
	return string(data)
}

// ChallengePage is an interstitial page as served by the edge proxy.
const ChallengePage = `<!DOCTYPE html><html lang="en-US"><head><title>Just a moment...</title></head>` +
	`<body><div id="challenge-platform"></div><script>window._cf_chl_opt={cType:'managed'}</script></body></html>`
