package service

import (
	"context"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	carRepo     repository.CarRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, carRepo repository.CarRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, carRepo: carRepo}
}

func (s *expenseService) validate(ctx context.Context, e *domain.Expense) error {
	if _, err := s.carRepo.GetByID(ctx, e.CarID); err != nil {
		return err
	}
	if e.Category == "" {
		return domain.NewValidationError("category", "category is required")
	}
	if e.CostCents <= 0 {
		return domain.NewValidationError("cost_cents", "must be positive")
	}
	if e.Recurring && e.NextDueDate == nil {
		return domain.NewValidationError("next_due_date", "required for a recurring expense")
	}
	return nil
}

func (s *expenseService) AddExpense(ctx context.Context, e *domain.Expense) error {
	if e.Date.IsZero() {
		e.Date = dates.Today()
	}
	if err := s.validate(ctx, e); err != nil {
		return err
	}
	return s.expenseRepo.Create(ctx, e)
}

func (s *expenseService) GetExpense(ctx context.Context, id int32) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(ctx, id)
}

func (s *expenseService) UpdateExpense(ctx context.Context, e *domain.Expense) error {
	existing, err := s.expenseRepo.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	e.CarID = existing.CarID
	if e.Date.IsZero() {
		e.Date = existing.Date
	}
	if err := s.validate(ctx, e); err != nil {
		return err
	}
	return s.expenseRepo.Update(ctx, e)
}

func (s *expenseService) DeleteExpense(ctx context.Context, id int32) error {
	return s.expenseRepo.Delete(ctx, id)
}

func (s *expenseService) ListExpenses(ctx context.Context, carID int32) ([]domain.Expense, error) {
	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		return nil, err
	}
	return s.expenseRepo.ListByCar(ctx, carID)
}
