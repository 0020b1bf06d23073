package domain

import "time"

// Payment is a flat credit against a rental's balance. Payments are never
// allocated to specific charges automatically; reconciliation against
// outstanding charges is an explicit step at payment-entry time.
type Payment struct {
	ID          int32     `json:"id"`
	RentalID    int32     `json:"rental_id"`
	AmountCents int64     `json:"amount_cents"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
}
