package service

import (
	"context"
	"time"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/logger"
	"fleetdesk-backend/internal/repository"
)

type occupancyService struct {
	carRepo     repository.CarRepository
	rentalRepo  repository.RentalRepository
	bookingRepo repository.BookingRepository
}

func NewOccupancyService(
	carRepo repository.CarRepository,
	rentalRepo repository.RentalRepository,
	bookingRepo repository.BookingRepository,
) OccupancyService {
	return &occupancyService{
		carRepo:     carRepo,
		rentalRepo:  rentalRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *occupancyService) Status(ctx context.Context, carID int32, date time.Time) (*domain.Occupancy, error) {
	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = dates.Today()
	}

	rentals, err := s.rentalRepo.ListByCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	return s.resolve(carID, date, rentals, bookings), nil
}

// resolve applies the precedence rule: a covering rental wins over a covering
// booking, which wins over availability. The first covering rental in storage
// order is used; more than one covering the same day is a data problem and is
// logged at error level.
func (s *occupancyService) resolve(carID int32, date time.Time, rentals []domain.Rental, bookings []domain.Booking) *domain.Occupancy {
	occ := &domain.Occupancy{CarID: carID, Date: date, State: domain.OccupancyAvailable}

	var active *domain.Rental
	for i := range rentals {
		r := &rentals[i]
		if !r.ActiveOn(date) {
			continue
		}
		if active == nil {
			active = r
			continue
		}
		logger.Error("car has multiple rentals covering the same day",
			"car_id", carID, "date", date.Format(dates.Layout),
			"rental_id", active.ID, "conflicting_rental_id", r.ID)
	}
	if active != nil {
		occ.State = domain.OccupancyRented
		if active.EndDate == nil {
			occ.OpenEnded = true
		} else {
			from := active.EndDate.AddDate(0, 0, 1)
			occ.AvailableFrom = &from
		}
		return occ
	}

	for i := range bookings {
		b := &bookings[i]
		if dates.InRange(date, b.StartDate, b.EndDate) {
			occ.State = domain.OccupancyBooked
			until := b.EndDate
			occ.BookedUntil = &until
			return occ
		}
	}
	return occ
}

func (s *occupancyService) Availability(ctx context.Context, date time.Time) ([]domain.Occupancy, error) {
	if date.IsZero() {
		date = dates.Today()
	}
	cars, err := s.carRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]domain.Occupancy, 0, len(cars))
	for _, car := range cars {
		rentals, err := s.rentalRepo.ListByCar(ctx, car.ID)
		if err != nil {
			return nil, err
		}
		bookings, err := s.bookingRepo.ListByCar(ctx, car.ID)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *s.resolve(car.ID, date, rentals, bookings))
	}
	return statuses, nil
}
