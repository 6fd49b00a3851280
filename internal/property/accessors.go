// Package property derives display attributes from model.Property records.
//
// Each accessor switches on the record's variant. Project and Individual
// records read their nested object; legacy records read flat fields, and
// which flat fields differs per accessor. Accessors never modify the record.
package property

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Veraticus/installmart/internal/model"
)

// Title returns the listing headline.
// Legacy: adTitle, then name, then typeOfProperty.
func Title(p *model.Property) string {
	switch p.Kind() {
	case model.KindProject:
		return p.Project.ProjectName
	case model.KindIndividual:
		return p.IndividualProperty.Title
	default:
		return firstNonEmpty(p.AdTitle, p.Name, p.TypeOfProperty)
	}
}

// Location returns the street address, or area and city when no address is set.
// Legacy: address only.
func Location(p *model.Property) string {
	switch p.Kind() {
	case model.KindProject:
		d := p.Project
		return firstNonEmpty(d.Address, joinNonEmpty(", ", d.Area, d.District, d.City))
	case model.KindIndividual:
		d := p.IndividualProperty
		return firstNonEmpty(d.Address, joinNonEmpty(", ", d.Area, d.District, d.City))
	default:
		return p.Address
	}
}

// City returns the city the listing is in.
func City(p *model.Property) string {
	switch p.Kind() {
	case model.KindProject:
		return p.Project.City
	case model.KindIndividual:
		return p.IndividualProperty.City
	default:
		return p.City
	}
}

// Transaction returns the nested transaction terms. Legacy records have none.
func Transaction(p *model.Property) *model.Transaction {
	switch p.Kind() {
	case model.KindProject:
		return p.Project.Transaction
	case model.KindIndividual:
		return p.IndividualProperty.Transaction
	default:
		return nil
	}
}

// Price returns the headline price for the listing's transaction type:
// the sale price (a Project's price range minimum when one is advertised),
// the monthly rent for rentals, or the base price for installment deals.
// Legacy: price.
func Price(p *model.Property) float64 {
	if p.Kind() == model.KindLegacy {
		return p.Price
	}

	t := Transaction(p)
	if t == nil {
		return 0
	}
	switch t.Type {
	case model.TransactionRent:
		return t.MonthlyRent
	case model.TransactionSale:
		if r := PriceRange(p); r != nil && r.Min > 0 {
			return r.Min
		}
		return t.Price
	default:
		return t.Price
	}
}

// PriceRange returns the advertised band for Project sales, else nil.
func PriceRange(p *model.Property) *model.PriceRange {
	if p.Kind() != model.KindProject {
		return nil
	}
	t := p.Project.Transaction
	if t == nil || t.Type != model.TransactionSale {
		return nil
	}
	return t.PriceRange
}

// MonthlyRent returns the rent for rental listings.
// Legacy: monthlyRent.
func MonthlyRent(p *model.Property) float64 {
	if p.Kind() == model.KindLegacy {
		return p.MonthlyRent
	}
	if t := Transaction(p); t != nil && t.Type == model.TransactionRent {
		return t.MonthlyRent
	}
	return 0
}

// MonthlyInstallment returns the installment amount for installment deals.
func MonthlyInstallment(p *model.Property) float64 {
	if t := Transaction(p); t != nil && t.Type == model.TransactionInstallment {
		return t.MonthlyInstallment
	}
	return 0
}

// Purpose returns what the listing is offered for.
// Legacy: purpose.
func Purpose(p *model.Property) string {
	if p.Kind() == model.KindLegacy {
		return p.Purpose
	}
	if t := Transaction(p); t != nil {
		return string(t.Type)
	}
	return ""
}

// PropertyType returns the kind of building.
// Legacy: typeOfProperty.
func PropertyType(p *model.Property) string {
	switch p.Kind() {
	case model.KindProject:
		return model.PropertyTypeProject
	case model.KindIndividual:
		return p.IndividualProperty.PropertyType
	default:
		return p.TypeOfProperty
	}
}

// AreaSize returns the plot or covered area with its unit, e.g. "10 Marla".
// Legacy: areaSize, verbatim.
func AreaSize(p *model.Property) string {
	switch p.Kind() {
	case model.KindProject:
		return formatArea(p.Project.AreaSize, p.Project.AreaUnit)
	case model.KindIndividual:
		return formatArea(p.IndividualProperty.AreaSize, p.IndividualProperty.AreaUnit)
	default:
		return strings.TrimSpace(p.AreaSize)
	}
}

// Bedrooms returns the bedroom count. Projects report 0.
// Legacy: bedRooms, parsed as a leading integer.
func Bedrooms(p *model.Property) int {
	switch p.Kind() {
	case model.KindProject:
		return 0
	case model.KindIndividual:
		return p.IndividualProperty.Bedrooms
	default:
		return leadingInt(p.BedRooms)
	}
}

// Bathrooms returns the bathroom count. Projects report 0.
// Legacy: bathRooms, parsed as a leading integer.
func Bathrooms(p *model.Property) int {
	switch p.Kind() {
	case model.KindProject:
		return 0
	case model.KindIndividual:
		return p.IndividualProperty.Bathrooms
	default:
		return leadingInt(p.BathRooms)
	}
}

// Images returns a copy of the listing's resolved image URLs.
// Legacy: images.
func Images(p *model.Property) []string {
	switch p.Kind() {
	case model.KindProject:
		return clone(p.Project.Images)
	case model.KindIndividual:
		return clone(p.IndividualProperty.Images)
	default:
		return clone(p.Images)
	}
}

// Description returns the free-text description.
// Legacy: description.
func Description(p *model.Property) string {
	switch p.Kind() {
	case model.KindProject:
		return p.Project.Description
	case model.KindIndividual:
		return p.IndividualProperty.Description
	default:
		return p.Description
	}
}

// Highlights returns selling points. Legacy records have none.
func Highlights(p *model.Property) []string {
	switch p.Kind() {
	case model.KindProject:
		return clone(p.Project.Highlights)
	case model.KindIndividual:
		return clone(p.IndividualProperty.Highlights)
	default:
		return []string{}
	}
}

// NearbyLandmarks returns landmarks near the listing. Legacy records have none.
func NearbyLandmarks(p *model.Property) []string {
	switch p.Kind() {
	case model.KindProject:
		return clone(p.Project.NearbyLandmarks)
	case model.KindIndividual:
		return clone(p.IndividualProperty.NearbyLandmarks)
	default:
		return []string{}
	}
}

// Utilities returns the sorted names of available utilities. Legacy records have none.
func Utilities(p *model.Property) []string {
	switch p.Kind() {
	case model.KindProject:
		return enabled(p.Project.Utilities)
	case model.KindIndividual:
		return enabled(p.IndividualProperty.Utilities)
	default:
		return []string{}
	}
}

// Amenities returns the sorted names of available amenities.
// Legacy: the amenities list, in its original order.
func Amenities(p *model.Property) []string {
	switch p.Kind() {
	case model.KindProject:
		return enabled(p.Project.Amenities)
	case model.KindIndividual:
		return enabled(p.IndividualProperty.Amenities)
	default:
		return clone(p.Amenities)
	}
}

// Contact returns who to reach about the listing, or nil.
// Legacy: contactName and contactNumber.
func Contact(p *model.Property) *model.Contact {
	switch p.Kind() {
	case model.KindProject:
		return p.Project.Contact
	case model.KindIndividual:
		return p.IndividualProperty.Contact
	default:
		if p.ContactName == "" && p.ContactNumber == "" {
			return nil
		}
		return &model.Contact{Name: p.ContactName, Phone: p.ContactNumber}
	}
}

// ProjectName is set for Project records only.
func ProjectName(p *model.Property) string {
	if p.Kind() != model.KindProject {
		return ""
	}
	return p.Project.ProjectName
}

// Developer is set for Project records only.
func Developer(p *model.Property) string {
	if p.Kind() != model.KindProject {
		return ""
	}
	return p.Project.Developer
}

// CompletionStatus is set for Project records only.
func CompletionStatus(p *model.Property) string {
	if p.Kind() != model.KindProject {
		return ""
	}
	return p.Project.CompletionStatus
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, sep)
}

func formatArea(size float64, unit string) string {
	if size <= 0 {
		return ""
	}
	s := strconv.FormatFloat(size, 'f', -1, 64)
	if unit = strings.TrimSpace(unit); unit != "" {
		s += " " + unit
	}
	return s
}

// leadingInt parses the integer prefix of s, so "3", "3.5" and "3 beds" all yield 3.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func enabled(flags map[string]bool) []string {
	out := make([]string, 0, len(flags))
	for name, on := range flags {
		if on {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
