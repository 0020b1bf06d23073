package domain

import "time"

type CarStatus string

const (
	CarStatusActive    CarStatus = "ACTIVE"
	CarStatusDefleeted CarStatus = "DEFLEETED"
)

type Car struct {
	ID                    int32      `json:"id"`
	Model                 string     `json:"model"`
	ModelYear             int32      `json:"model_year,omitempty"`
	LicencePlate          string     `json:"licence_plate"`
	Colour                string     `json:"colour,omitempty"`
	MileageAtPurchase     int32      `json:"mileage_at_purchase,omitempty"`
	PurchasePriceCents    int64      `json:"purchase_price_cents"`
	InitialInvestmentCents int64     `json:"initial_investment_cents"`
	SalikTag              string     `json:"salik_tag,omitempty"`
	RegistrationDate      *time.Time `json:"registration_date,omitempty"`
	TrackerInstalled      bool       `json:"tracker_installed"`
	PassingCostCents      int64      `json:"passing_cost_cents"`
	RegistrationCostCents int64      `json:"registration_cost_cents"`
	InsuranceCostCents    int64      `json:"insurance_cost_cents"`
	PlannedRentCents      int64      `json:"planned_rent_cents"`
	Status                CarStatus  `json:"status"`
	DefleetedOn           *time.Time `json:"defleeted_on,omitempty"`
	// FleetRank orders the fleet list. Ranks are kept consecutive (1..N)
	// across the active fleet; swaps renormalize after every move.
	FleetRank int32     `json:"fleet_rank"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// TotalValueCents is the acquisition cost of the car: purchase price plus
// the initial investment made to bring it into the fleet.
func (c *Car) TotalValueCents() int64 {
	return c.PurchasePriceCents + c.InitialInvestmentCents
}
