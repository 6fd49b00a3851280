package model

// Property type discriminants as sent by the backend.
const (
	PropertyTypeProject    = "Project"
	PropertyTypeIndividual = "Individual"
)

// PropertyKind is the resolved variant of a Property record.
type PropertyKind int

const (
	// KindLegacy is a record from the older flat schema, or a discriminated
	// record whose nested object is missing.
	KindLegacy PropertyKind = iota
	// KindProject is a multi-unit development with a populated Project object.
	KindProject
	// KindIndividual is a single listing with a populated IndividualProperty object.
	KindIndividual
)

func (k PropertyKind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindIndividual:
		return "individual"
	default:
		return "legacy"
	}
}

// TransactionType is the deal a property is offered under.
type TransactionType string

const (
	TransactionSale        TransactionType = "Sale"
	TransactionRent        TransactionType = "Rent"
	TransactionInstallment TransactionType = "Installment"
)

// PriceRange is the min/max price band a project advertises.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Transaction describes the commercial terms of a listing.
type Transaction struct {
	PriceRange          *PriceRange     `json:"priceRange,omitempty"`
	Type                TransactionType `json:"type"`
	Price               float64         `json:"price"`
	MonthlyRent         float64         `json:"monthlyRent"`
	SecurityDeposit     float64         `json:"securityDeposit"`
	AdvanceAmount       float64         `json:"advanceAmount"`
	DownPayment         float64         `json:"downPayment"`
	MonthlyInstallment  float64         `json:"monthlyInstallment"`
	InstallmentDuration int             `json:"installmentDuration"`
}

// Contact is the person or office responsible for a listing.
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

// ProjectDetails is the nested object of a Project property.
type ProjectDetails struct {
	Transaction      *Transaction    `json:"transaction,omitempty"`
	Contact          *Contact        `json:"contact,omitempty"`
	Amenities        map[string]bool `json:"amenities"`
	Utilities        map[string]bool `json:"utilities"`
	ProjectName      string          `json:"projectName"`
	Developer        string          `json:"developer"`
	City             string          `json:"city"`
	District         string          `json:"district"`
	Area             string          `json:"area"`
	Address          string          `json:"address"`
	Description      string          `json:"description"`
	CompletionStatus string          `json:"completionStatus"`
	AreaUnit         string          `json:"areaUnit"`
	Highlights       []string        `json:"highlights"`
	NearbyLandmarks  []string        `json:"nearbyLandmarks"`
	Images           []string        `json:"images"`
	AreaSize         float64         `json:"areaSize"`
	TotalUnits       int             `json:"totalUnits"`
}

// IndividualDetails is the nested object of an Individual property.
type IndividualDetails struct {
	Transaction     *Transaction    `json:"transaction,omitempty"`
	Contact         *Contact        `json:"contact,omitempty"`
	Amenities       map[string]bool `json:"amenities"`
	Utilities       map[string]bool `json:"utilities"`
	Title           string          `json:"title"`
	PropertyType    string          `json:"propertyType"`
	City            string          `json:"city"`
	District        string          `json:"district"`
	Area            string          `json:"area"`
	Address         string          `json:"address"`
	Description     string          `json:"description"`
	AreaUnit        string          `json:"areaUnit"`
	Highlights      []string        `json:"highlights"`
	NearbyLandmarks []string        `json:"nearbyLandmarks"`
	Images          []string        `json:"images"`
	AreaSize        float64         `json:"areaSize"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	Floor           int             `json:"floor"`
	Furnished       bool            `json:"furnished"`
}

// Property is a real-estate listing. Type selects between the Project and
// Individual variants; the flat fields below them belong to the older
// undiscriminated schema and are only read when Kind reports KindLegacy.
type Property struct {
	Project            *ProjectDetails    `json:"project,omitempty"`
	IndividualProperty *IndividualDetails `json:"individualProperty,omitempty"`
	Original           map[string]any     `json:"-"`

	ID        string `json:"_id"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`

	// Legacy flat schema.
	AdTitle        string   `json:"adTitle"`
	Name           string   `json:"name"`
	TypeOfProperty string   `json:"typeOfProperty"`
	Purpose        string   `json:"purpose"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	BedRooms       string   `json:"bedRooms"`
	BathRooms      string   `json:"bathRooms"`
	AreaSize       string   `json:"areaSize"`
	Description    string   `json:"description"`
	ContactName    string   `json:"contactName"`
	ContactNumber  string   `json:"contactNumber"`
	Images         []string `json:"images"`
	Amenities      []string `json:"amenities"`
	Price          float64  `json:"price"`
	MonthlyRent    float64  `json:"monthlyRent"`
}

// Kind resolves which variant of the record is usable.
func (p *Property) Kind() PropertyKind {
	switch {
	case p.Type == PropertyTypeProject && p.Project != nil:
		return KindProject
	case p.Type == PropertyTypeIndividual && p.IndividualProperty != nil:
		return KindIndividual
	default:
		return KindLegacy
	}
}
