package domain

import "time"

type OccupancyState string

const (
	OccupancyRented    OccupancyState = "RENTED"
	OccupancyBooked    OccupancyState = "BOOKED"
	OccupancyAvailable OccupancyState = "AVAILABLE"
)

// Occupancy describes a car's status on a reference date. For a rented car
// with a fixed end, AvailableFrom is the day after the rental ends; for an
// open-ended rental OpenEnded is set instead. For a booked car, BookedUntil
// is the booking's end date.
type Occupancy struct {
	CarID         int32          `json:"car_id"`
	Date          time.Time      `json:"date"`
	State         OccupancyState `json:"state"`
	OpenEnded     bool           `json:"open_ended,omitempty"`
	AvailableFrom *time.Time     `json:"available_from,omitempty"`
	BookedUntil   *time.Time     `json:"booked_until,omitempty"`
}

// RentDue is the recurring-billing position of a rental at a query date.
type RentDue struct {
	RentalID          int32     `json:"rental_id"`
	AsOf              time.Time `json:"as_of"`
	PeriodEnd         time.Time `json:"period_end"`
	IntervalsElapsed  int32     `json:"intervals_elapsed"`
	BaseDueCents      int64     `json:"base_due_cents"`
	ChargesDueCents   int64     `json:"charges_due_cents"`
	PaymentsTotalCents int64    `json:"payments_total_cents"`
	DueAmountCents    int64     `json:"due_amount_cents"`
	OutstandingCharges []Charge `json:"outstanding_charges"`
}

// SettlementPreview is the side-effect-free view of what committing a
// settlement would do.
type SettlementPreview struct {
	RentalID          int32    `json:"rental_id"`
	OutstandingFines  []Charge `json:"outstanding_fines"`
	OutstandingDamages []Charge `json:"outstanding_damages"`
	OutstandingTolls  []Charge `json:"outstanding_tolls"`
	TotalChargesCents int64    `json:"total_charges_cents"`
	DepositCents      int64    `json:"deposit_cents"`
	RefundableCents   int64    `json:"refundable_cents"`
}

// CarReport is the per-car utilisation and profit/loss rollup.
type CarReport struct {
	Car             Car      `json:"car"`
	DaysRented      int32    `json:"days_rented"`
	UtilisationPct  float64  `json:"utilisation_pct"`
	TotalRevenueCents int64  `json:"total_revenue_cents"`
	TotalExpensesCents int64 `json:"total_expenses_cents"`
	ProfitLossCents int64    `json:"profit_loss_cents"`
	// RecoveryPct is nil when the car carries no purchase price or initial
	// investment to recover.
	RecoveryPct *float64 `json:"recovery_pct,omitempty"`
}

// FleetSummary aggregates the active fleet list header.
type FleetSummary struct {
	TotalCars              int32    `json:"total_cars"`
	AverageAgeYears        *float64 `json:"average_age_years,omitempty"`
	TotalInitialValueCents int64    `json:"total_initial_value_cents"`
	TotalPlannedRentCents  int64    `json:"total_planned_rent_cents"`
	TotalExpensesCents     int64    `json:"total_expenses_cents"`
}

// CarListing is a fleet list row: the car plus its derived totals.
type CarListing struct {
	Car                Car   `json:"car"`
	TotalValueCents    int64 `json:"total_value_cents"`
	TotalExpensesCents int64 `json:"total_expenses_cents"`
}

// RenewalNotice flags a car whose registration is due within the lookahead
// window.
type RenewalNotice struct {
	Car  Car       `json:"car"`
	Kind string    `json:"kind"`
	Date time.Time `json:"date"`
}

// Dashboard is the landing-page rollup.
type Dashboard struct {
	Date             time.Time       `json:"date"`
	TotalCars        int32           `json:"total_cars"`
	RentedCount      int32           `json:"rented_count"`
	BookedCount      int32           `json:"booked_count"`
	AvailableCount   int32           `json:"available_count"`
	UpcomingRenewals []RenewalNotice `json:"upcoming_renewals"`
	OverdueRentals   []Rental        `json:"overdue_rentals"`
	UnpaidFinesCents   int64 `json:"unpaid_fines_cents"`
	UnpaidDamagesCents int64 `json:"unpaid_damages_cents"`
	SalikMonthCents    int64 `json:"salik_month_cents"`
}
