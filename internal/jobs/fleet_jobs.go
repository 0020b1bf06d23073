package jobs

import (
	"context"

	"fleetdesk-backend/internal/billing"
	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/logger"
)

// ScanOverdueRentals flags open rentals that have gone more than a billing
// interval without a payment. The scan only logs; chasing the customer stays
// a manual step.
func (jr *JobRunner) ScanOverdueRentals() {
	jr.runWithRecovery("ScanOverdueRentals", func() {
		ctx := context.Background()
		today := dates.Today()

		rentals, err := jr.store.RentalRepository.ListOpen(ctx)
		if err != nil {
			logger.Error("Failed to list open rentals", "error", err)
			return
		}

		count := 0
		for _, r := range rentals {
			if !r.ActiveOn(today) {
				continue
			}
			last, err := jr.store.PaymentRepository.LastPaymentDate(ctx, r.ID)
			if err != nil {
				logger.Error("Failed to read last payment date", "rental_id", r.ID, "error", err)
				continue
			}
			since := r.StartDate
			if last != nil {
				since = *last
			}
			interval := int(r.BillingIntervalDays)
			if interval <= 0 {
				interval = billing.DefaultIntervalDays
			}
			if dates.DaysBetween(since, today) > interval {
				count++
				logger.Warn("Rental overdue for payment",
					"rental_id", r.ID,
					"car_id", r.CarID,
					"customer_id", r.CustomerID,
					"last_payment", since.Format(dates.Layout),
					"interval_days", interval)
			}
		}
		logger.Info("Overdue rental scan finished", "open_rentals", len(rentals), "overdue", count)
	})
}

// ScanRegistrationRenewals flags active cars whose yearly registration
// renewal falls inside the configured lookahead window.
func (jr *JobRunner) ScanRegistrationRenewals() {
	jr.runWithRecovery("ScanRegistrationRenewals", func() {
		ctx := context.Background()
		today := dates.Today()
		lookahead := today.AddDate(0, 0, jr.config.Billing.RenewalLookaheadDays)

		cars, err := jr.store.CarRepository.ListActive(ctx)
		if err != nil {
			logger.Error("Failed to list active cars", "error", err)
			return
		}

		count := 0
		for _, car := range cars {
			if car.RegistrationDate == nil {
				continue
			}
			due := *car.RegistrationDate
			for due.Before(today) {
				due = due.AddDate(1, 0, 0)
			}
			if !due.After(lookahead) {
				count++
				logger.Warn("Registration renewal due",
					"car_id", car.ID,
					"licence_plate", car.LicencePlate,
					"due", due.Format(dates.Layout))
			}
		}
		logger.Info("Registration renewal scan finished", "active_cars", len(cars), "due_soon", count)
	})
}
