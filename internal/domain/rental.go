package domain

import "time"

type ContractType string

const (
	ContractTypeOpen  ContractType = "open"
	ContractTypeFixed ContractType = "fixed"
)

// Rental assigns a car to a customer over an inclusive date range. A nil
// EndDate means the rental is open-ended. Settlement is one-way: once
// DepositRefunded is set the rental is closed and never reopened.
type Rental struct {
	ID           int32        `json:"id"`
	CarID        int32        `json:"car_id"`
	CustomerID   int32        `json:"customer_id"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      *time.Time   `json:"end_date,omitempty"`
	ContractType ContractType `json:"contract_type"`

	PlannedRentCents int64 `json:"planned_rent_cents"`
	// ActualRentCents overrides the planned rent when non-nil.
	ActualRentCents *int64 `json:"actual_rent_cents,omitempty"`
	DepositCents    int64  `json:"deposit_cents"`

	BillingIntervalDays int32      `json:"billing_interval_days"`
	NextBillingDate     *time.Time `json:"next_billing_date,omitempty"`

	DepositRefunded            bool       `json:"deposit_refunded"`
	DepositRefundedAmountCents *int64     `json:"deposit_refunded_amount_cents,omitempty"`
	DepositRefundDate          *time.Time `json:"deposit_refund_date,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// RateCents is the effective rent rate: the agreed actual rent when present,
// the planned rent otherwise.
func (r *Rental) RateCents() int64 {
	if r.ActualRentCents != nil {
		return *r.ActualRentCents
	}
	return r.PlannedRentCents
}

// ActiveOn reports whether the rental covers the given date.
func (r *Rental) ActiveOn(day time.Time) bool {
	if day.Before(r.StartDate) {
		return false
	}
	return r.EndDate == nil || !r.EndDate.Before(day)
}
