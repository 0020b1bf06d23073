package service

import (
	"context"
	"time"

	"fleetdesk-backend/internal/billing"
	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

type rentalService struct {
	rentalRepo   repository.RentalRepository
	carRepo      repository.CarRepository
	customerRepo repository.CustomerRepository
	chargeRepo   repository.ChargeRepository
	paymentRepo  repository.PaymentRepository

	defaultIntervalDays int32
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	customerRepo repository.CustomerRepository,
	chargeRepo repository.ChargeRepository,
	paymentRepo repository.PaymentRepository,
	defaultIntervalDays int32,
) RentalService {
	if defaultIntervalDays <= 0 {
		defaultIntervalDays = billing.DefaultIntervalDays
	}
	return &rentalService{
		rentalRepo:          rentalRepo,
		carRepo:             carRepo,
		customerRepo:        customerRepo,
		chargeRepo:          chargeRepo,
		paymentRepo:         paymentRepo,
		defaultIntervalDays: defaultIntervalDays,
	}
}

func (s *rentalService) validate(ctx context.Context, rt *domain.Rental) error {
	if _, err := s.carRepo.GetByID(ctx, rt.CarID); err != nil {
		return err
	}
	if _, err := s.customerRepo.GetByID(ctx, rt.CustomerID); err != nil {
		return err
	}
	if rt.StartDate.IsZero() {
		return domain.NewValidationError("start_date", "start date is required")
	}
	if rt.EndDate != nil && rt.EndDate.Before(rt.StartDate) {
		return domain.NewValidationError("end_date", "end date precedes start date")
	}
	if rt.PlannedRentCents < 0 {
		return domain.NewValidationError("planned_rent_cents", "must not be negative")
	}
	if rt.ActualRentCents != nil && *rt.ActualRentCents < 0 {
		return domain.NewValidationError("actual_rent_cents", "must not be negative")
	}
	if rt.DepositCents < 0 {
		return domain.NewValidationError("deposit_cents", "must not be negative")
	}
	if rt.BillingIntervalDays < 0 {
		return domain.NewValidationError("billing_interval_days", "must be positive")
	}
	return nil
}

// checkOverlap rejects a rental whose inclusive period intersects another
// rental on the same car. An open end counts as infinite. The rental being
// edited is excluded from the comparison.
func (s *rentalService) checkOverlap(ctx context.Context, rt *domain.Rental) error {
	existing, err := s.rentalRepo.ListByCar(ctx, rt.CarID)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.ID == rt.ID {
			continue
		}
		if dates.Overlap(other.StartDate, other.EndDate, rt.StartDate, rt.EndDate) {
			return &domain.RentalOverlapError{
				CarID:      rt.CarID,
				ConflictID: other.ID,
				Start:      other.StartDate,
				End:        other.EndDate,
			}
		}
	}
	return nil
}

func (s *rentalService) CreateRental(ctx context.Context, rt *domain.Rental) error {
	if err := s.validate(ctx, rt); err != nil {
		return err
	}
	if err := s.checkOverlap(ctx, rt); err != nil {
		return err
	}

	if rt.BillingIntervalDays == 0 {
		rt.BillingIntervalDays = s.defaultIntervalDays
	}
	rt.ContractType = domain.ContractTypeOpen
	if rt.EndDate != nil {
		rt.ContractType = domain.ContractTypeFixed
	}
	next := rt.StartDate.AddDate(0, 0, int(rt.BillingIntervalDays))
	rt.NextBillingDate = &next

	return s.rentalRepo.Create(ctx, rt)
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) UpdateRental(ctx context.Context, rt *domain.Rental) error {
	existing, err := s.rentalRepo.GetByID(ctx, rt.ID)
	if err != nil {
		return err
	}
	if existing.DepositRefunded {
		return domain.ErrAlreadySettled
	}
	if err := s.validate(ctx, rt); err != nil {
		return err
	}
	if err := s.checkOverlap(ctx, rt); err != nil {
		return err
	}

	if rt.BillingIntervalDays == 0 {
		rt.BillingIntervalDays = existing.BillingIntervalDays
	}
	rt.ContractType = domain.ContractTypeOpen
	if rt.EndDate != nil {
		rt.ContractType = domain.ContractTypeFixed
	}
	rt.NextBillingDate = existing.NextBillingDate

	return s.rentalRepo.Update(ctx, rt)
}

func (s *rentalService) DeleteRental(ctx context.Context, id int32) error {
	return s.rentalRepo.Delete(ctx, id)
}

func (s *rentalService) ListOpenRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.ListOpen(ctx)
}

func (s *rentalService) ListSettledRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.ListSettled(ctx)
}

func (s *rentalService) RentDue(ctx context.Context, rentalID int32, asOf time.Time) (*domain.RentDue, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = dates.Today()
	}

	pos := billing.RentDue(rt, asOf)

	outstanding, err := s.chargeRepo.ListForRental(ctx, rt.CarID, rt.CustomerID, rt.ID, true)
	if err != nil {
		return nil, err
	}
	paymentsTotal, err := s.paymentRepo.TotalByRental(ctx, rt.ID)
	if err != nil {
		return nil, err
	}

	return &domain.RentDue{
		RentalID:           rt.ID,
		AsOf:               asOf,
		PeriodEnd:          pos.PeriodEnd,
		IntervalsElapsed:   pos.IntervalsElapsed,
		BaseDueCents:       pos.BaseDueCents,
		ChargesDueCents:    billing.OutstandingTotal(outstanding),
		PaymentsTotalCents: paymentsTotal,
		DueAmountCents:     billing.Balance(pos.BaseDueCents, outstanding, paymentsTotal),
		OutstandingCharges: outstanding,
	}, nil
}
