package service

import (
	"context"
	"testing"
	"time"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestOccupancyService_Status(t *testing.T) {
	ctx := context.Background()
	day := dates.Day(2026, time.June, 15)
	car := &domain.Car{ID: 1, Status: domain.CarStatusActive}

	newFixture := func() (*MockCarRepo, *MockRentalRepo, *MockBookingRepo, OccupancyService) {
		carRepo := new(MockCarRepo)
		rentalRepo := new(MockRentalRepo)
		bookingRepo := new(MockBookingRepo)
		return carRepo, rentalRepo, bookingRepo, NewOccupancyService(carRepo, rentalRepo, bookingRepo)
	}

	t.Run("Rented with a fixed end exposes the day after", func(t *testing.T) {
		carRepo, rentalRepo, bookingRepo, svc := newFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		end := dates.Day(2026, time.June, 30)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{
			{ID: 10, CarID: 1, StartDate: dates.Day(2026, time.June, 1), EndDate: &end},
		}, nil)
		bookingRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Booking{}, nil)

		occ, err := svc.Status(ctx, 1, day)
		assert.NoError(t, err)
		assert.Equal(t, domain.OccupancyRented, occ.State)
		assert.False(t, occ.OpenEnded)
		assert.Equal(t, dates.Day(2026, time.July, 1), *occ.AvailableFrom)
	})

	t.Run("Open-ended rental has no available-from", func(t *testing.T) {
		carRepo, rentalRepo, bookingRepo, svc := newFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{
			{ID: 10, CarID: 1, StartDate: dates.Day(2026, time.June, 1)},
		}, nil)
		bookingRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Booking{}, nil)

		occ, err := svc.Status(ctx, 1, day)
		assert.NoError(t, err)
		assert.Equal(t, domain.OccupancyRented, occ.State)
		assert.True(t, occ.OpenEnded)
		assert.Nil(t, occ.AvailableFrom)
	})

	t.Run("Rented wins over booked", func(t *testing.T) {
		carRepo, rentalRepo, bookingRepo, svc := newFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{
			{ID: 10, CarID: 1, StartDate: dates.Day(2026, time.June, 1)},
		}, nil)
		bookingRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Booking{
			{ID: 20, CarID: 1, StartDate: dates.Day(2026, time.June, 10), EndDate: dates.Day(2026, time.June, 20)},
		}, nil)

		occ, err := svc.Status(ctx, 1, day)
		assert.NoError(t, err)
		assert.Equal(t, domain.OccupancyRented, occ.State)
	})

	t.Run("Booked reports the booking end", func(t *testing.T) {
		carRepo, rentalRepo, bookingRepo, svc := newFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{}, nil)
		until := dates.Day(2026, time.June, 20)
		bookingRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Booking{
			{ID: 20, CarID: 1, StartDate: dates.Day(2026, time.June, 10), EndDate: until},
		}, nil)

		occ, err := svc.Status(ctx, 1, day)
		assert.NoError(t, err)
		assert.Equal(t, domain.OccupancyBooked, occ.State)
		assert.Equal(t, until, *occ.BookedUntil)
	})

	t.Run("Neither rented nor booked is available", func(t *testing.T) {
		carRepo, rentalRepo, bookingRepo, svc := newFixture()
		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		past := dates.Day(2026, time.May, 31)
		rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{
			{ID: 10, CarID: 1, StartDate: dates.Day(2026, time.May, 1), EndDate: &past},
		}, nil)
		bookingRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Booking{}, nil)

		occ, err := svc.Status(ctx, 1, day)
		assert.NoError(t, err)
		assert.Equal(t, domain.OccupancyAvailable, occ.State)
	})
}

func TestOccupancyService_Availability(t *testing.T) {
	ctx := context.Background()
	day := dates.Day(2026, time.June, 15)

	carRepo := new(MockCarRepo)
	rentalRepo := new(MockRentalRepo)
	bookingRepo := new(MockBookingRepo)
	svc := NewOccupancyService(carRepo, rentalRepo, bookingRepo)

	carRepo.On("ListActive", ctx).Return([]domain.Car{{ID: 1}, {ID: 2}}, nil)
	rentalRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Rental{
		{ID: 10, CarID: 1, StartDate: dates.Day(2026, time.June, 1)},
	}, nil)
	bookingRepo.On("ListByCar", ctx, int32(1)).Return([]domain.Booking{}, nil)
	rentalRepo.On("ListByCar", ctx, int32(2)).Return([]domain.Rental{}, nil)
	bookingRepo.On("ListByCar", ctx, int32(2)).Return([]domain.Booking{}, nil)

	statuses, err := svc.Availability(ctx, day)
	assert.NoError(t, err)
	assert.Len(t, statuses, 2)
	assert.Equal(t, domain.OccupancyRented, statuses[0].State)
	assert.Equal(t, domain.OccupancyAvailable, statuses[1].State)
}
