package service

import (
	"context"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	rentalRepo  repository.RentalRepository
	chargeRepo  repository.ChargeRepository
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	rentalRepo repository.RentalRepository,
	chargeRepo repository.ChargeRepository,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		rentalRepo:  rentalRepo,
		chargeRepo:  chargeRepo,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, p *domain.Payment, settledChargeIDs []int32) error {
	if p.AmountCents <= 0 {
		return domain.NewValidationError("amount_cents", "must be positive")
	}
	rt, err := s.rentalRepo.GetByID(ctx, p.RentalID)
	if err != nil {
		return err
	}
	if rt.DepositRefunded {
		return domain.ErrAlreadySettled
	}
	if p.Date.IsZero() {
		p.Date = dates.Today()
	}

	if len(settledChargeIDs) > 0 {
		outstanding, err := s.chargeRepo.ListForRental(ctx, rt.CarID, rt.CustomerID, rt.ID, true)
		if err != nil {
			return err
		}
		eligible := make(map[int32]bool, len(outstanding))
		for _, c := range outstanding {
			eligible[c.ID] = true
		}
		for _, id := range settledChargeIDs {
			if !eligible[id] {
				return domain.NewValidationError("settled_charge_ids", "charge %d is not outstanding on this rental", id)
			}
		}
	}

	return s.paymentRepo.Record(ctx, p, settledChargeIDs)
}

func (s *paymentService) GetPayment(ctx context.Context, id int32) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) UpdatePayment(ctx context.Context, p *domain.Payment) error {
	if p.AmountCents <= 0 {
		return domain.NewValidationError("amount_cents", "must be positive")
	}
	existing, err := s.paymentRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	// A payment stays on the rental it was recorded against.
	p.RentalID = existing.RentalID
	if p.Date.IsZero() {
		p.Date = existing.Date
	}
	return s.paymentRepo.Update(ctx, p)
}

func (s *paymentService) DeletePayment(ctx context.Context, id int32) error {
	return s.paymentRepo.Delete(ctx, id)
}

func (s *paymentService) ListPayments(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	return s.paymentRepo.ListByRental(ctx, rentalID)
}
