package repository

import (
	"context"
	"time"

	"fleetdesk-backend/internal/domain"
)

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id int32) error
	ListActive(ctx context.Context) ([]domain.Car, error)
	ListDefleeted(ctx context.Context) ([]domain.Car, error)
	ListAll(ctx context.Context) ([]domain.Car, error)

	// Fleet ordering. SwapRanks exchanges the rank of two cars atomically;
	// NormalizeRanks rewrites active-fleet ranks to consecutive 1..N keeping
	// the current relative order.
	SwapRanks(ctx context.Context, aID, bID int32) error
	NormalizeRanks(ctx context.Context) error
	MaxRank(ctx context.Context) (int32, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Customer, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id int32) error
	ListByCar(ctx context.Context, carID int32) ([]domain.Rental, error)
	ListOpen(ctx context.Context) ([]domain.Rental, error)
	ListSettled(ctx context.Context) ([]domain.Rental, error)
}

type PaymentRepository interface {
	// Record inserts the payment and marks the given charges settled via
	// rent, atomically.
	Record(ctx context.Context, payment *domain.Payment, settledChargeIDs []int32) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id int32) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error)
	TotalByRental(ctx context.Context, rentalID int32) (int64, error)
	TotalByCar(ctx context.Context, carID int32) (int64, error)
	LastPaymentDate(ctx context.Context, rentalID int32) (*time.Time, error)
}

type ChargeRepository interface {
	Create(ctx context.Context, charge *domain.Charge) error
	GetByID(ctx context.Context, id int32) (*domain.Charge, error)
	Update(ctx context.Context, charge *domain.Charge) error
	Delete(ctx context.Context, id int32) error

	// ListForRental returns the fines and damages recorded against the
	// rental's (car, customer) pair plus the toll entries tied to the rental
	// itself. With unpaidOnly set it is the outstanding set consumed by
	// billing and settlement.
	ListForRental(ctx context.Context, carID, customerID, rentalID int32, unpaidOnly bool) ([]domain.Charge, error)
	ListByCar(ctx context.Context, carID int32) ([]domain.Charge, error)
	TotalByCar(ctx context.Context, carID int32) (int64, error)
	UnpaidTotalByKind(ctx context.Context, kind domain.ChargeKind) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Booking, error)
	ListByCar(ctx context.Context, carID int32) ([]domain.Booking, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id int32) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id int32) error
	ListByCar(ctx context.Context, carID int32) ([]domain.Expense, error)
	TotalByCar(ctx context.Context, carID int32) (int64, error)
	CategoryTotalBetween(ctx context.Context, categoryPattern string, start, end time.Time) (int64, error)
}

type SettlementRepository interface {
	// Commit applies a settlement in one transaction: the listed charges are
	// marked paid via deposit and the rental is stamped settled (and closed
	// if it was open-ended). Returns domain.ErrAlreadySettled when the
	// rental was settled before or concurrently.
	Commit(ctx context.Context, rental *domain.Rental, chargeIDs []int32) error
}
