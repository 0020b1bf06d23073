package billing

import (
	"time"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
)

// DefaultIntervalDays is the recurrence period applied when a rental does not
// specify one: 30 days, roughly one month.
const DefaultIntervalDays = 30

// Position is the pure rent-due calculation for a rental at a query date.
type Position struct {
	PeriodEnd        time.Time
	DaysActive       int
	IntervalsElapsed int32
	RateCents        int64
	BaseDueCents     int64
}

// RentDue computes the recurring rent owed on a rental as of the given date.
//
// Billing has no proration: every elapsed interval bills the full rate, and
// one interval is always counted once the rental has started, even on day
// zero. A rental queried before its start owes nothing. A fixed end date caps
// the billed period; an open rental bills up to asOf.
func RentDue(r *domain.Rental, asOf time.Time) Position {
	periodEnd := asOf
	if r.EndDate != nil && r.EndDate.Before(asOf) {
		periodEnd = *r.EndDate
	}

	interval := int(r.BillingIntervalDays)
	if interval <= 0 {
		interval = DefaultIntervalDays
	}

	daysActive := dates.DaysBetween(r.StartDate, periodEnd)
	var intervals int32
	if daysActive >= 0 {
		intervals = int32(daysActive/interval) + 1
	}

	rate := r.RateCents()
	return Position{
		PeriodEnd:        periodEnd,
		DaysActive:       daysActive,
		IntervalsElapsed: intervals,
		RateCents:        rate,
		BaseDueCents:     rate * int64(intervals),
	}
}

// OutstandingTotal sums the amounts of the given unpaid charges.
func OutstandingTotal(charges []domain.Charge) int64 {
	var total int64
	for _, c := range charges {
		total += c.AmountCents
	}
	return total
}

// Balance nets base rent due plus outstanding charges against the payments
// recorded on the rental. Payments are a flat credit against the aggregate
// total; they are never allocated to individual charges.
func Balance(baseDueCents int64, charges []domain.Charge, paymentsTotalCents int64) int64 {
	return baseDueCents + OutstandingTotal(charges) - paymentsTotalCents
}

// Refundable is the deposit left after netting outstanding charges. The
// deposit never goes negative; a shortfall beyond the deposit is not tracked
// as a receivable.
func Refundable(depositCents, totalChargesCents int64) int64 {
	if refundable := depositCents - totalChargesCents; refundable > 0 {
		return refundable
	}
	return 0
}
