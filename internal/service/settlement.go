package service

import (
	"context"

	"fleetdesk-backend/internal/billing"
	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/logger"
	"fleetdesk-backend/internal/repository"
)

type settlementService struct {
	rentalRepo     repository.RentalRepository
	chargeRepo     repository.ChargeRepository
	settlementRepo repository.SettlementRepository
}

func NewSettlementService(
	rentalRepo repository.RentalRepository,
	chargeRepo repository.ChargeRepository,
	settlementRepo repository.SettlementRepository,
) SettlementService {
	return &settlementService{
		rentalRepo:     rentalRepo,
		chargeRepo:     chargeRepo,
		settlementRepo: settlementRepo,
	}
}

func (s *settlementService) Preview(ctx context.Context, rentalID int32) (*domain.SettlementPreview, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.DepositRefunded {
		return nil, domain.ErrAlreadySettled
	}
	return s.preview(ctx, rt)
}

func (s *settlementService) preview(ctx context.Context, rt *domain.Rental) (*domain.SettlementPreview, error) {
	outstanding, err := s.chargeRepo.ListForRental(ctx, rt.CarID, rt.CustomerID, rt.ID, true)
	if err != nil {
		return nil, err
	}

	p := &domain.SettlementPreview{
		RentalID:     rt.ID,
		DepositCents: rt.DepositCents,
	}
	for _, c := range outstanding {
		switch c.Kind {
		case domain.ChargeKindFine:
			p.OutstandingFines = append(p.OutstandingFines, c)
		case domain.ChargeKindDamage:
			p.OutstandingDamages = append(p.OutstandingDamages, c)
		case domain.ChargeKindToll:
			p.OutstandingTolls = append(p.OutstandingTolls, c)
		}
	}
	p.TotalChargesCents = billing.OutstandingTotal(outstanding)
	p.RefundableCents = billing.Refundable(rt.DepositCents, p.TotalChargesCents)
	return p, nil
}

// Commit closes out a rental: every outstanding charge on the (car, customer)
// pair plus the rental's tolls is netted against the deposit and marked
// settled via deposit, the refund is stamped on the rental and an open-ended
// rental is ended today. The whole operation is one transaction guarded
// against a concurrent settlement.
func (s *settlementService) Commit(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.DepositRefunded {
		return nil, domain.ErrAlreadySettled
	}

	p, err := s.preview(ctx, rt)
	if err != nil {
		return nil, err
	}
	if p.TotalChargesCents > rt.DepositCents {
		logger.Warn("settlement shortfall beyond deposit",
			"rental_id", rt.ID,
			"deposit_cents", rt.DepositCents,
			"charges_cents", p.TotalChargesCents)
	}

	chargeIDs := make([]int32, 0, len(p.OutstandingFines)+len(p.OutstandingDamages)+len(p.OutstandingTolls))
	for _, set := range [][]domain.Charge{p.OutstandingFines, p.OutstandingDamages, p.OutstandingTolls} {
		for _, c := range set {
			chargeIDs = append(chargeIDs, c.ID)
		}
	}

	today := dates.Today()
	if rt.EndDate == nil {
		rt.EndDate = &today
		rt.ContractType = domain.ContractTypeFixed
	}
	rt.DepositRefunded = true
	rt.DepositRefundedAmountCents = &p.RefundableCents
	rt.DepositRefundDate = &today

	if err := s.settlementRepo.Commit(ctx, rt, chargeIDs); err != nil {
		return nil, err
	}

	logger.Info("rental settled",
		"rental_id", rt.ID,
		"charges_settled", len(chargeIDs),
		"refunded_cents", p.RefundableCents)
	return rt, nil
}
