package domain

import "time"

type ChargeKind string

const (
	ChargeKindFine   ChargeKind = "FINE"
	ChargeKindDamage ChargeKind = "DAMAGE"
	ChargeKindToll   ChargeKind = "TOLL"
)

type SettledVia string

const (
	SettledViaRent    SettledVia = "rent"
	SettledViaDeposit SettledVia = "deposit"
)

// Charge is a fine, damage cost or Salik toll amount billed against a car.
// Fines and damages are tied to a customer; tolls are tied to the rental they
// accrued under and carry a date range instead of a single date.
//
// Invariant: an unpaid charge has no SettledVia; once Paid is set, SettledVia
// records whether it was covered by a rent payment or by the deposit.
type Charge struct {
	ID          int32      `json:"id"`
	Kind        ChargeKind `json:"kind"`
	CarID       int32      `json:"car_id"`
	CustomerID  *int32     `json:"customer_id,omitempty"`
	RentalID    *int32     `json:"rental_id,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	Paid        bool       `json:"paid"`
	SettledVia  *SettledVia `json:"settled_via,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
}
