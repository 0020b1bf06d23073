package service

import (
	"context"
	"math"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

type fleetService struct {
	carRepo     repository.CarRepository
	rentalRepo  repository.RentalRepository
	expenseRepo repository.ExpenseRepository
}

func NewFleetService(
	carRepo repository.CarRepository,
	rentalRepo repository.RentalRepository,
	expenseRepo repository.ExpenseRepository,
) FleetService {
	return &fleetService{
		carRepo:     carRepo,
		rentalRepo:  rentalRepo,
		expenseRepo: expenseRepo,
	}
}

func (s *fleetService) AddCar(ctx context.Context, car *domain.Car) error {
	if car.Model == "" {
		return domain.NewValidationError("model", "model is required")
	}
	if car.LicencePlate == "" {
		return domain.NewValidationError("licence_plate", "licence plate is required")
	}

	maxRank, err := s.carRepo.MaxRank(ctx)
	if err != nil {
		return err
	}
	car.Status = domain.CarStatusActive
	car.FleetRank = maxRank + 1
	return s.carRepo.Create(ctx, car)
}

func (s *fleetService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *fleetService) UpdateCar(ctx context.Context, car *domain.Car) error {
	existing, err := s.carRepo.GetByID(ctx, car.ID)
	if err != nil {
		return err
	}
	// Ordering and lifecycle fields are managed by their own operations.
	car.Status = existing.Status
	car.DefleetedOn = existing.DefleetedOn
	car.FleetRank = existing.FleetRank
	return s.carRepo.Update(ctx, car)
}

func (s *fleetService) DeleteCar(ctx context.Context, id int32) error {
	if err := s.carRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.carRepo.NormalizeRanks(ctx)
}

func (s *fleetService) ListFleet(ctx context.Context) ([]domain.CarListing, *domain.FleetSummary, error) {
	cars, err := s.carRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}

	currentYear := dates.Today().Year()
	summary := &domain.FleetSummary{TotalCars: int32(len(cars))}
	var ageSum, ageCount int

	listings := make([]domain.CarListing, 0, len(cars))
	for _, car := range cars {
		expenses, err := s.expenseRepo.TotalByCar(ctx, car.ID)
		if err != nil {
			return nil, nil, err
		}
		listings = append(listings, domain.CarListing{
			Car:                car,
			TotalValueCents:    car.TotalValueCents(),
			TotalExpensesCents: expenses,
		})
		summary.TotalInitialValueCents += car.TotalValueCents()
		summary.TotalPlannedRentCents += car.PlannedRentCents
		summary.TotalExpensesCents += expenses
		if car.ModelYear > 0 {
			ageSum += currentYear - int(car.ModelYear)
			ageCount++
		}
	}
	if ageCount > 0 {
		avg := math.Round(float64(ageSum)/float64(ageCount)*100) / 100
		summary.AverageAgeYears = &avg
	}
	return listings, summary, nil
}

func (s *fleetService) ListDefleeted(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.ListDefleeted(ctx)
}

// DefleetCar removes the car from the active fleet. A car with an active,
// unsettled rental cannot be defleeted; the rental has to be settled first.
func (s *fleetService) DefleetCar(ctx context.Context, id int32) error {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if car.Status == domain.CarStatusDefleeted {
		return domain.ErrCarDefleeted
	}

	rentals, err := s.rentalRepo.ListByCar(ctx, id)
	if err != nil {
		return err
	}
	today := dates.Today()
	for _, r := range rentals {
		if !r.DepositRefunded && (r.EndDate == nil || !r.EndDate.Before(today)) {
			return domain.ErrCarRented
		}
	}

	car.Status = domain.CarStatusDefleeted
	car.DefleetedOn = &today
	if err := s.carRepo.Update(ctx, car); err != nil {
		return err
	}
	return s.carRepo.NormalizeRanks(ctx)
}

func (s *fleetService) MoveCarUp(ctx context.Context, id int32) error {
	return s.move(ctx, id, -1)
}

func (s *fleetService) MoveCarDown(ctx context.Context, id int32) error {
	return s.move(ctx, id, +1)
}

func (s *fleetService) move(ctx context.Context, id int32, direction int) error {
	cars, err := s.carRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, c := range cars {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	neighbour := idx + direction
	if neighbour < 0 || neighbour >= len(cars) {
		// Already at the edge of the list; nothing to swap with.
		return nil
	}
	if err := s.carRepo.SwapRanks(ctx, cars[idx].ID, cars[neighbour].ID); err != nil {
		return err
	}
	return s.carRepo.NormalizeRanks(ctx)
}
