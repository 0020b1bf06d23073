package service

import (
	"context"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/logger"
	"fleetdesk-backend/internal/repository"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	carRepo      repository.CarRepository
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	carRepo repository.CarRepository,
	customerRepo repository.CustomerRepository,
	rentalRepo repository.RentalRepository,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		customerRepo: customerRepo,
		rentalRepo:   rentalRepo,
	}
}

func (s *bookingService) validate(ctx context.Context, b *domain.Booking) error {
	car, err := s.carRepo.GetByID(ctx, b.CarID)
	if err != nil {
		return err
	}
	if car.Status == domain.CarStatusDefleeted {
		return domain.ErrCarDefleeted
	}
	if b.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, *b.CustomerID); err != nil {
			return err
		}
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return domain.NewValidationError("start_date", "start and end dates are required")
	}
	if b.EndDate.Before(b.StartDate) {
		return domain.NewValidationError("end_date", "end date precedes start date")
	}
	return nil
}

// warnOnConflict logs when a booking's window collides with an existing rental
// or another booking on the same car. Bookings are advisory, so a collision
// is worth flagging but never blocks the write.
func (s *bookingService) warnOnConflict(ctx context.Context, b *domain.Booking) {
	rentals, err := s.rentalRepo.ListByCar(ctx, b.CarID)
	if err == nil {
		for _, r := range rentals {
			if dates.Overlap(r.StartDate, r.EndDate, b.StartDate, &b.EndDate) {
				logger.Warn("booking overlaps a rental",
					"car_id", b.CarID, "rental_id", r.ID,
					"booking_start", b.StartDate.Format(dates.Layout),
					"booking_end", b.EndDate.Format(dates.Layout))
				return
			}
		}
	}
	bookings, err := s.bookingRepo.ListByCar(ctx, b.CarID)
	if err != nil {
		return
	}
	for _, other := range bookings {
		if other.ID == b.ID {
			continue
		}
		if dates.Overlap(other.StartDate, &other.EndDate, b.StartDate, &b.EndDate) {
			logger.Warn("booking overlaps another booking",
				"car_id", b.CarID, "booking_id", other.ID)
			return
		}
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, b *domain.Booking) error {
	if err := s.validate(ctx, b); err != nil {
		return err
	}
	s.warnOnConflict(ctx, b)
	return s.bookingRepo.Create(ctx, b)
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) UpdateBooking(ctx context.Context, b *domain.Booking) error {
	if _, err := s.bookingRepo.GetByID(ctx, b.ID); err != nil {
		return err
	}
	if err := s.validate(ctx, b); err != nil {
		return err
	}
	s.warnOnConflict(ctx, b)
	return s.bookingRepo.Update(ctx, b)
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int32) error {
	return s.bookingRepo.Delete(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookingRepo.List(ctx)
}
