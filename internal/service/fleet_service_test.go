package service

import (
	"context"
	"testing"
	"time"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newFleetFixture() (*MockCarRepo, *MockRentalRepo, *MockExpenseRepo, FleetService) {
	carRepo := new(MockCarRepo)
	rentalRepo := new(MockRentalRepo)
	expenseRepo := new(MockExpenseRepo)
	return carRepo, rentalRepo, expenseRepo, NewFleetService(carRepo, rentalRepo, expenseRepo)
}

func TestFleetService_AddCar(t *testing.T) {
	ctx := context.Background()
	carRepo, _, _, svc := newFleetFixture()

	carRepo.On("MaxRank", ctx).Return(int32(4), nil)
	carRepo.On("Create", ctx, mock.AnythingOfType("*domain.Car")).Return(nil)

	car := &domain.Car{Model: "Corolla", LicencePlate: "A 12345"}
	err := svc.AddCar(ctx, car)
	assert.NoError(t, err)
	assert.Equal(t, domain.CarStatusActive, car.Status)
	assert.Equal(t, int32(5), car.FleetRank)
}

func TestFleetService_DefleetCar(t *testing.T) {
	ctx := context.Background()

	t.Run("Car with an active rental cannot be defleeted", func(t *testing.T) {
		carRepo, rentalRepo, _, svc := newFleetFixture()
		car := &domain.Car{ID: 1, Status: domain.CarStatusActive}
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{
			{ID: 10, CarID: 1, StartDate: dates.Day(2026, time.January, 1)},
		}, nil)

		err := svc.DefleetCar(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrCarRented)
		carRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("Settled history does not block defleeting", func(t *testing.T) {
		carRepo, rentalRepo, _, svc := newFleetFixture()
		car := &domain.Car{ID: 1, Status: domain.CarStatusActive}
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		end := dates.Day(2025, time.June, 1)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{
			{ID: 10, CarID: 1, StartDate: dates.Day(2025, time.January, 1), EndDate: &end, DepositRefunded: true},
		}, nil)
		carRepo.On("Update", ctx, mock.AnythingOfType("*domain.Car")).Return(nil)
		carRepo.On("NormalizeRanks", ctx).Return(nil)

		err := svc.DefleetCar(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusDefleeted, car.Status)
		assert.NotNil(t, car.DefleetedOn)
	})

	t.Run("Defleeting twice fails", func(t *testing.T) {
		carRepo, _, _, svc := newFleetFixture()
		car := &domain.Car{ID: 1, Status: domain.CarStatusDefleeted}
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)

		err := svc.DefleetCar(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrCarDefleeted)
	})
}

func TestFleetService_MoveCar(t *testing.T) {
	ctx := context.Background()
	fleet := []domain.Car{
		{ID: 1, FleetRank: 1},
		{ID: 2, FleetRank: 2},
		{ID: 3, FleetRank: 3},
	}

	t.Run("Move up swaps with the previous car and renormalizes", func(t *testing.T) {
		carRepo, _, _, svc := newFleetFixture()
		carRepo.On("ListActive", ctx).Return(fleet, nil)
		carRepo.On("SwapRanks", ctx, int32(2), int32(1)).Return(nil)
		carRepo.On("NormalizeRanks", ctx).Return(nil)

		err := svc.MoveCarUp(ctx, 2)
		assert.NoError(t, err)
		carRepo.AssertExpectations(t)
	})

	t.Run("Moving the top car up is a no-op", func(t *testing.T) {
		carRepo, _, _, svc := newFleetFixture()
		carRepo.On("ListActive", ctx).Return(fleet, nil)

		err := svc.MoveCarUp(ctx, 1)
		assert.NoError(t, err)
		carRepo.AssertNotCalled(t, "SwapRanks", ctx, mock.Anything, mock.Anything)
	})

	t.Run("Unknown car is not found", func(t *testing.T) {
		carRepo, _, _, svc := newFleetFixture()
		carRepo.On("ListActive", ctx).Return(fleet, nil)

		err := svc.MoveCarDown(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestFleetService_ListFleet(t *testing.T) {
	ctx := context.Background()
	carRepo, _, expenseRepo, svc := newFleetFixture()

	currentYear := int32(dates.Today().Year())
	cars := []domain.Car{
		{ID: 1, ModelYear: currentYear - 2, PurchasePriceCents: 3000000, InitialInvestmentCents: 500000, PlannedRentCents: 200000},
		{ID: 2, ModelYear: currentYear - 4, PurchasePriceCents: 2000000, PlannedRentCents: 150000},
	}
	carRepo.On("ListActive", ctx).Return(cars, nil)
	expenseRepo.On("TotalByCar", ctx, int32(1)).Return(int64(100000), nil)
	expenseRepo.On("TotalByCar", ctx, int32(2)).Return(int64(0), nil)

	listings, summary, err := svc.ListFleet(ctx)
	assert.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Equal(t, int64(3500000), listings[0].TotalValueCents)
	assert.Equal(t, int32(2), summary.TotalCars)
	assert.Equal(t, int64(5500000), summary.TotalInitialValueCents)
	assert.Equal(t, int64(350000), summary.TotalPlannedRentCents)
	assert.Equal(t, int64(100000), summary.TotalExpensesCents)
	assert.NotNil(t, summary.AverageAgeYears)
	assert.Equal(t, 3.0, *summary.AverageAgeYears)
}
