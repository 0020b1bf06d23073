package service

import (
	"context"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

type chargeService struct {
	chargeRepo   repository.ChargeRepository
	carRepo      repository.CarRepository
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
}

func NewChargeService(
	chargeRepo repository.ChargeRepository,
	carRepo repository.CarRepository,
	customerRepo repository.CustomerRepository,
	rentalRepo repository.RentalRepository,
) ChargeService {
	return &chargeService{
		chargeRepo:   chargeRepo,
		carRepo:      carRepo,
		customerRepo: customerRepo,
		rentalRepo:   rentalRepo,
	}
}

// AddFine records a traffic fine against a car and the customer who incurred
// it. Fines are keyed by (car, customer), not by rental, so a fine entered
// after a rental ended still surfaces when that pair settles.
func (s *chargeService) AddFine(ctx context.Context, c *domain.Charge) error {
	c.Kind = domain.ChargeKindFine
	return s.addPersonal(ctx, c)
}

func (s *chargeService) AddDamage(ctx context.Context, c *domain.Charge) error {
	c.Kind = domain.ChargeKindDamage
	return s.addPersonal(ctx, c)
}

func (s *chargeService) addPersonal(ctx context.Context, c *domain.Charge) error {
	if c.AmountCents <= 0 {
		return domain.NewValidationError("amount_cents", "must be positive")
	}
	if c.CustomerID == nil {
		return domain.NewValidationError("customer_id", "customer is required")
	}
	if _, err := s.carRepo.GetByID(ctx, c.CarID); err != nil {
		return err
	}
	if _, err := s.customerRepo.GetByID(ctx, *c.CustomerID); err != nil {
		return err
	}
	if c.Date == nil {
		today := dates.Today()
		c.Date = &today
	}
	c.RentalID = nil
	c.StartDate = nil
	c.EndDate = nil
	c.Paid = false
	c.SettledVia = nil
	return s.chargeRepo.Create(ctx, c)
}

// AddToll records a Salik toll total over a date range, tied to the rental it
// accrued under. The car is derived from the rental.
func (s *chargeService) AddToll(ctx context.Context, c *domain.Charge) error {
	if c.AmountCents <= 0 {
		return domain.NewValidationError("amount_cents", "must be positive")
	}
	if c.RentalID == nil {
		return domain.NewValidationError("rental_id", "rental is required")
	}
	rt, err := s.rentalRepo.GetByID(ctx, *c.RentalID)
	if err != nil {
		return err
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return domain.NewValidationError("end_date", "end date precedes start date")
	}

	c.Kind = domain.ChargeKindToll
	c.CarID = rt.CarID
	c.CustomerID = nil
	c.Date = nil
	c.Paid = false
	c.SettledVia = nil
	return s.chargeRepo.Create(ctx, c)
}

func (s *chargeService) GetCharge(ctx context.Context, id int32) (*domain.Charge, error) {
	return s.chargeRepo.GetByID(ctx, id)
}

func (s *chargeService) UpdateCharge(ctx context.Context, c *domain.Charge) error {
	existing, err := s.chargeRepo.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if c.AmountCents <= 0 {
		return domain.NewValidationError("amount_cents", "must be positive")
	}
	// The kind and its keying are fixed at creation time.
	c.Kind = existing.Kind
	c.CarID = existing.CarID
	c.CustomerID = existing.CustomerID
	c.RentalID = existing.RentalID

	if c.Paid && c.SettledVia == nil {
		via := domain.SettledViaRent
		c.SettledVia = &via
	}
	if !c.Paid {
		c.SettledVia = nil
	}
	return s.chargeRepo.Update(ctx, c)
}

func (s *chargeService) DeleteCharge(ctx context.Context, id int32) error {
	return s.chargeRepo.Delete(ctx, id)
}

func (s *chargeService) ListForRental(ctx context.Context, rentalID int32, unpaidOnly bool) ([]domain.Charge, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	return s.chargeRepo.ListForRental(ctx, rt.CarID, rt.CustomerID, rt.ID, unpaidOnly)
}
