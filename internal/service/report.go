package service

import (
	"context"
	"math"
	"time"

	"fleetdesk-backend/internal/billing"
	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

type reportService struct {
	carRepo     repository.CarRepository
	rentalRepo  repository.RentalRepository
	paymentRepo repository.PaymentRepository
	chargeRepo  repository.ChargeRepository
	expenseRepo repository.ExpenseRepository
	bookingRepo repository.BookingRepository

	renewalLookaheadDays int32
}

func NewReportService(
	carRepo repository.CarRepository,
	rentalRepo repository.RentalRepository,
	paymentRepo repository.PaymentRepository,
	chargeRepo repository.ChargeRepository,
	expenseRepo repository.ExpenseRepository,
	bookingRepo repository.BookingRepository,
	renewalLookaheadDays int32,
) ReportService {
	if renewalLookaheadDays <= 0 {
		renewalLookaheadDays = 30
	}
	return &reportService{
		carRepo:              carRepo,
		rentalRepo:           rentalRepo,
		paymentRepo:          paymentRepo,
		chargeRepo:           chargeRepo,
		expenseRepo:          expenseRepo,
		bookingRepo:          bookingRepo,
		renewalLookaheadDays: renewalLookaheadDays,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FleetReport builds the per-car utilisation and profit rollup across the
// whole fleet, defleeted cars included, in fleet-rank order. Profit nets the
// purchase price and initial investment, so a car stays in the red until its
// revenue has paid back the money sunk into it.
func (s *reportService) FleetReport(ctx context.Context, asOf time.Time) ([]domain.CarReport, error) {
	if asOf.IsZero() {
		asOf = dates.Today()
	}
	cars, err := s.carRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.CarReport, 0, len(cars))
	for _, car := range cars {
		rentals, err := s.rentalRepo.ListByCar(ctx, car.ID)
		if err != nil {
			return nil, err
		}

		var daysRented int
		var earliestStart *time.Time
		for _, r := range rentals {
			if r.StartDate.After(asOf) {
				continue
			}
			end := asOf
			if r.EndDate != nil && r.EndDate.Before(asOf) {
				end = *r.EndDate
			}
			daysRented += dates.SpanDays(r.StartDate, end)
			if earliestStart == nil || r.StartDate.Before(*earliestStart) {
				start := r.StartDate
				earliestStart = &start
			}
		}

		var utilisation float64
		if earliestStart != nil {
			owned := dates.SpanDays(*earliestStart, asOf)
			if owned < 1 {
				owned = 1
			}
			utilisation = round2(100 * float64(daysRented) / float64(owned))
		}

		revenue, err := s.paymentRepo.TotalByCar(ctx, car.ID)
		if err != nil {
			return nil, err
		}
		runningCosts, err := s.expenseRepo.TotalByCar(ctx, car.ID)
		if err != nil {
			return nil, err
		}
		// Charges count as cost regardless of whether the customer has paid
		// them back yet.
		chargeCosts, err := s.chargeRepo.TotalByCar(ctx, car.ID)
		if err != nil {
			return nil, err
		}
		expenses := runningCosts + chargeCosts

		report := domain.CarReport{
			Car:                car,
			DaysRented:         int32(daysRented),
			UtilisationPct:     utilisation,
			TotalRevenueCents:  revenue,
			TotalExpensesCents: expenses,
			ProfitLossCents:    revenue - expenses - car.TotalValueCents(),
		}
		if invested := car.TotalValueCents(); invested > 0 {
			pct := round2(100 * float64(revenue) / float64(invested))
			report.RecoveryPct = &pct
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *reportService) Dashboard(ctx context.Context, asOf time.Time) (*domain.Dashboard, error) {
	if asOf.IsZero() {
		asOf = dates.Today()
	}
	cars, err := s.carRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	d := &domain.Dashboard{Date: asOf, TotalCars: int32(len(cars))}
	lookahead := asOf.AddDate(0, 0, int(s.renewalLookaheadDays))

	for _, car := range cars {
		rentals, err := s.rentalRepo.ListByCar(ctx, car.ID)
		if err != nil {
			return nil, err
		}
		bookings, err := s.bookingRepo.ListByCar(ctx, car.ID)
		if err != nil {
			return nil, err
		}

		switch {
		case anyRentalActive(rentals, asOf):
			d.RentedCount++
		case anyBookingCovers(bookings, asOf):
			d.BookedCount++
		default:
			d.AvailableCount++
		}

		if due := nextRegistrationRenewal(&car, asOf); due != nil && !due.After(lookahead) {
			d.UpcomingRenewals = append(d.UpcomingRenewals, domain.RenewalNotice{
				Car:  car,
				Kind: "registration",
				Date: *due,
			})
		}

		for _, r := range rentals {
			if r.DepositRefunded || !r.ActiveOn(asOf) {
				continue
			}
			overdue, err := s.isOverdue(ctx, &r, asOf)
			if err != nil {
				return nil, err
			}
			if overdue {
				d.OverdueRentals = append(d.OverdueRentals, r)
			}
		}
	}

	if d.UnpaidFinesCents, err = s.chargeRepo.UnpaidTotalByKind(ctx, domain.ChargeKindFine); err != nil {
		return nil, err
	}
	if d.UnpaidDamagesCents, err = s.chargeRepo.UnpaidTotalByKind(ctx, domain.ChargeKindDamage); err != nil {
		return nil, err
	}

	monthStart := dates.Day(asOf.Year(), asOf.Month(), 1)
	monthEnd := monthStart.AddDate(0, 1, -1)
	if d.SalikMonthCents, err = s.expenseRepo.CategoryTotalBetween(ctx, "%salik%", monthStart, monthEnd); err != nil {
		return nil, err
	}
	return d, nil
}

// isOverdue reports whether the rental has gone more than its own billing
// interval without a payment, the same rule the nightly scan applies. A
// rental with no payments yet counts from its start date.
func (s *reportService) isOverdue(ctx context.Context, r *domain.Rental, asOf time.Time) (bool, error) {
	last, err := s.paymentRepo.LastPaymentDate(ctx, r.ID)
	if err != nil {
		return false, err
	}
	since := r.StartDate
	if last != nil {
		since = *last
	}
	interval := int(r.BillingIntervalDays)
	if interval <= 0 {
		interval = billing.DefaultIntervalDays
	}
	return dates.DaysBetween(since, asOf) > interval, nil
}

func anyRentalActive(rentals []domain.Rental, day time.Time) bool {
	for i := range rentals {
		if rentals[i].ActiveOn(day) {
			return true
		}
	}
	return false
}

func anyBookingCovers(bookings []domain.Booking, day time.Time) bool {
	for i := range bookings {
		if dates.InRange(day, bookings[i].StartDate, bookings[i].EndDate) {
			return true
		}
	}
	return false
}

// nextRegistrationRenewal advances the car's registration date in yearly
// steps until it lands on or after asOf.
func nextRegistrationRenewal(car *domain.Car, asOf time.Time) *time.Time {
	if car.RegistrationDate == nil {
		return nil
	}
	due := *car.RegistrationDate
	for due.Before(asOf) {
		due = due.AddDate(1, 0, 0)
	}
	return &due
}
