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

func newChargeFixture() (*MockChargeRepo, *MockCarRepo, *MockCustomerRepo, *MockRentalRepo, ChargeService) {
	chargeRepo := new(MockChargeRepo)
	carRepo := new(MockCarRepo)
	customerRepo := new(MockCustomerRepo)
	rentalRepo := new(MockRentalRepo)
	svc := NewChargeService(chargeRepo, carRepo, customerRepo, rentalRepo)
	return chargeRepo, carRepo, customerRepo, rentalRepo, svc
}

func TestChargeService_AddFine(t *testing.T) {
	ctx := context.Background()
	chargeRepo, carRepo, customerRepo, _, svc := newChargeFixture()

	carRepo.On("GetByID", ctx, int32(1)).Return(&domain.Car{ID: 1}, nil)
	customerRepo.On("GetByID", ctx, int32(2)).Return(&domain.Customer{ID: 2}, nil)
	chargeRepo.On("Create", ctx, mock.AnythingOfType("*domain.Charge")).Return(nil)

	customerID := int32(2)
	c := &domain.Charge{CarID: 1, CustomerID: &customerID, AmountCents: 50000}
	err := svc.AddFine(ctx, c)
	assert.NoError(t, err)
	assert.Equal(t, domain.ChargeKindFine, c.Kind)
	assert.False(t, c.Paid)
	assert.Nil(t, c.SettledVia)
	assert.Nil(t, c.RentalID)
	assert.NotNil(t, c.Date)
}

func TestChargeService_AddFineWithoutCustomer(t *testing.T) {
	ctx := context.Background()
	_, _, _, _, svc := newChargeFixture()

	err := svc.AddFine(ctx, &domain.Charge{CarID: 1, AmountCents: 50000})
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "customer_id", validation.Field)
}

func TestChargeService_AddToll(t *testing.T) {
	ctx := context.Background()
	chargeRepo, _, _, rentalRepo, svc := newChargeFixture()

	rentalRepo.On("GetByID", ctx, int32(5)).Return(&domain.Rental{ID: 5, CarID: 7}, nil)
	chargeRepo.On("Create", ctx, mock.AnythingOfType("*domain.Charge")).Return(nil)

	rentalID := int32(5)
	start := dates.Day(2026, time.January, 1)
	end := dates.Day(2026, time.January, 31)
	c := &domain.Charge{RentalID: &rentalID, StartDate: &start, EndDate: &end, AmountCents: 12000}
	err := svc.AddToll(ctx, c)
	assert.NoError(t, err)
	assert.Equal(t, domain.ChargeKindToll, c.Kind)
	// The car comes from the rental, never from the request.
	assert.Equal(t, int32(7), c.CarID)
	assert.Nil(t, c.CustomerID)
}

func TestChargeService_UpdateCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("Marking paid records the settlement channel", func(t *testing.T) {
		chargeRepo, _, _, _, svc := newChargeFixture()
		customerID := int32(2)
		existing := &domain.Charge{ID: 11, Kind: domain.ChargeKindFine, CarID: 1, CustomerID: &customerID, AmountCents: 50000}
		chargeRepo.On("GetByID", ctx, int32(11)).Return(existing, nil)
		chargeRepo.On("Update", ctx, mock.AnythingOfType("*domain.Charge")).Return(nil)

		c := &domain.Charge{ID: 11, AmountCents: 50000, Paid: true}
		err := svc.UpdateCharge(ctx, c)
		assert.NoError(t, err)
		assert.NotNil(t, c.SettledVia)
		assert.Equal(t, domain.SettledViaRent, *c.SettledVia)
	})

	t.Run("Clearing paid clears the settlement channel", func(t *testing.T) {
		chargeRepo, _, _, _, svc := newChargeFixture()
		customerID := int32(2)
		via := domain.SettledViaRent
		existing := &domain.Charge{ID: 11, Kind: domain.ChargeKindFine, CarID: 1, CustomerID: &customerID, AmountCents: 50000, Paid: true, SettledVia: &via}
		chargeRepo.On("GetByID", ctx, int32(11)).Return(existing, nil)
		chargeRepo.On("Update", ctx, mock.AnythingOfType("*domain.Charge")).Return(nil)

		stale := domain.SettledViaRent
		c := &domain.Charge{ID: 11, AmountCents: 50000, Paid: false, SettledVia: &stale}
		err := svc.UpdateCharge(ctx, c)
		assert.NoError(t, err)
		assert.Nil(t, c.SettledVia)
	})
}
