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

func newRentalFixture() (*MockRentalRepo, *MockCarRepo, *MockCustomerRepo, *MockChargeRepo, *MockPaymentRepo, RentalService) {
	rentalRepo := new(MockRentalRepo)
	carRepo := new(MockCarRepo)
	customerRepo := new(MockCustomerRepo)
	chargeRepo := new(MockChargeRepo)
	paymentRepo := new(MockPaymentRepo)
	svc := NewRentalService(rentalRepo, carRepo, customerRepo, chargeRepo, paymentRepo, 30)
	return rentalRepo, carRepo, customerRepo, chargeRepo, paymentRepo, svc
}

func TestRentalService_CreateRental(t *testing.T) {
	ctx := context.Background()
	car := &domain.Car{ID: 1, Model: "Corolla", LicencePlate: "A 12345", Status: domain.CarStatusActive}
	customer := &domain.Customer{ID: 2, Name: "Ahmed"}

	t.Run("Success sets next billing date and contract type", func(t *testing.T) {
		rentalRepo, carRepo, customerRepo, _, _, svc := newRentalFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(customer, nil)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{}, nil)
		rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rt := &domain.Rental{
			CarID:            1,
			CustomerID:       2,
			StartDate:        dates.Day(2026, time.January, 1),
			PlannedRentCents: 300000,
			DepositCents:     500000,
		}
		err := svc.CreateRental(ctx, rt)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractTypeOpen, rt.ContractType)
		assert.Equal(t, int32(30), rt.BillingIntervalDays)
		assert.NotNil(t, rt.NextBillingDate)
		assert.Equal(t, dates.Day(2026, time.January, 31), *rt.NextBillingDate)
	})

	t.Run("Fixed end date makes a fixed contract", func(t *testing.T) {
		rentalRepo, carRepo, customerRepo, _, _, svc := newRentalFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(customer, nil)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{}, nil)
		rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		end := dates.Day(2026, time.March, 1)
		rt := &domain.Rental{
			CarID:      1,
			CustomerID: 2,
			StartDate:  dates.Day(2026, time.January, 1),
			EndDate:    &end,
		}
		err := svc.CreateRental(ctx, rt)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractTypeFixed, rt.ContractType)
	})

	t.Run("Overlapping rental is rejected with the conflict identified", func(t *testing.T) {
		rentalRepo, carRepo, customerRepo, _, _, svc := newRentalFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(customer, nil)
		existing := domain.Rental{
			ID:        7,
			CarID:     1,
			StartDate: dates.Day(2026, time.January, 10),
		}
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{existing}, nil)

		rt := &domain.Rental{
			CarID:      1,
			CustomerID: 2,
			StartDate:  dates.Day(2026, time.February, 1),
		}
		err := svc.CreateRental(ctx, rt)
		var overlap *domain.RentalOverlapError
		assert.ErrorAs(t, err, &overlap)
		assert.Equal(t, int32(7), overlap.ConflictID)
		rentalRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Adjacent ranges do not conflict", func(t *testing.T) {
		rentalRepo, carRepo, customerRepo, _, _, svc := newRentalFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(customer, nil)
		prevEnd := dates.Day(2026, time.January, 31)
		existing := domain.Rental{
			ID:        7,
			CarID:     1,
			StartDate: dates.Day(2026, time.January, 1),
			EndDate:   &prevEnd,
		}
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{existing}, nil)
		rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rt := &domain.Rental{
			CarID:      1,
			CustomerID: 2,
			StartDate:  dates.Day(2026, time.February, 1),
		}
		err := svc.CreateRental(ctx, rt)
		assert.NoError(t, err)
	})

	t.Run("End before start is invalid", func(t *testing.T) {
		_, carRepo, customerRepo, _, _, svc := newRentalFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(customer, nil)

		end := dates.Day(2025, time.December, 1)
		rt := &domain.Rental{
			CarID:      1,
			CustomerID: 2,
			StartDate:  dates.Day(2026, time.January, 1),
			EndDate:    &end,
		}
		err := svc.CreateRental(ctx, rt)
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
		assert.Equal(t, "end_date", validation.Field)
	})
}

func TestRentalService_UpdateRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Settled rental cannot be edited", func(t *testing.T) {
		rentalRepo, _, _, _, _, svc := newRentalFixture()
		settled := &domain.Rental{ID: 3, CarID: 1, CustomerID: 2, DepositRefunded: true}
		rentalRepo.On("GetByID", ctx, int32(3)).Return(settled, nil)

		err := svc.UpdateRental(ctx, &domain.Rental{ID: 3, CarID: 1, CustomerID: 2, StartDate: dates.Day(2026, time.January, 1)})
		assert.ErrorIs(t, err, domain.ErrAlreadySettled)
	})

	t.Run("Overlap check excludes the rental being edited", func(t *testing.T) {
		rentalRepo, carRepo, customerRepo, _, _, svc := newRentalFixture()
		car := &domain.Car{ID: 1, Status: domain.CarStatusActive}
		customer := &domain.Customer{ID: 2}
		existing := &domain.Rental{
			ID:                  3,
			CarID:               1,
			CustomerID:          2,
			StartDate:           dates.Day(2026, time.January, 1),
			BillingIntervalDays: 30,
		}
		rentalRepo.On("GetByID", ctx, int32(3)).Return(existing, nil)
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(customer, nil)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{*existing}, nil)
		rentalRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rt := &domain.Rental{ID: 3, CarID: 1, CustomerID: 2, StartDate: dates.Day(2026, time.January, 5)}
		err := svc.UpdateRental(ctx, rt)
		assert.NoError(t, err)
		assert.Equal(t, int32(30), rt.BillingIntervalDays)
	})
}

func TestRentalService_RentDue(t *testing.T) {
	ctx := context.Background()
	rentalRepo, _, _, chargeRepo, paymentRepo, svc := newRentalFixture()

	rt := &domain.Rental{
		ID:                  5,
		CarID:               1,
		CustomerID:          2,
		StartDate:           dates.Day(2026, time.January, 1),
		PlannedRentCents:    300000,
		BillingIntervalDays: 30,
	}
	rentalRepo.On("GetByID", ctx, int32(5)).Return(rt, nil)
	customerID := int32(2)
	charges := []domain.Charge{
		{ID: 11, Kind: domain.ChargeKindFine, CarID: 1, CustomerID: &customerID, AmountCents: 50000},
	}
	chargeRepo.On("ListForRental", ctx, int32(1), int32(2), int32(5), true).Return(charges, nil)
	paymentRepo.On("TotalByRental", ctx, int32(5)).Return(int64(300000), nil)

	// 45 days into the rental: a second interval has started.
	asOf := dates.Day(2026, time.February, 15)
	due, err := svc.RentDue(ctx, 5, asOf)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), due.IntervalsElapsed)
	assert.Equal(t, int64(600000), due.BaseDueCents)
	assert.Equal(t, int64(50000), due.ChargesDueCents)
	assert.Equal(t, int64(300000), due.PaymentsTotalCents)
	assert.Equal(t, int64(350000), due.DueAmountCents)
	assert.Len(t, due.OutstandingCharges, 1)
}
