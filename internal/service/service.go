package service

import (
	"context"
	"io"
	"time"

	"fleetdesk-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, operator, password string) (string, error)
}

type FleetService interface {
	AddCar(ctx context.Context, car *domain.Car) error
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	UpdateCar(ctx context.Context, car *domain.Car) error
	DeleteCar(ctx context.Context, id int32) error
	ListFleet(ctx context.Context) ([]domain.CarListing, *domain.FleetSummary, error)
	ListDefleeted(ctx context.Context) ([]domain.Car, error)
	DefleetCar(ctx context.Context, id int32) error
	MoveCarUp(ctx context.Context, id int32) error
	MoveCarDown(ctx context.Context, id int32) error
}

type CustomerService interface {
	AddCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, id int32) error
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	AttachDocument(ctx context.Context, customerID int32, kind, filename string, content io.Reader) (*domain.Customer, error)
	OpenDocument(ctx context.Context, customerID int32, kind string) (io.ReadCloser, string, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, rental *domain.Rental) error
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	UpdateRental(ctx context.Context, rental *domain.Rental) error
	DeleteRental(ctx context.Context, id int32) error
	ListOpenRentals(ctx context.Context) ([]domain.Rental, error)
	ListSettledRentals(ctx context.Context) ([]domain.Rental, error)

	// RentDue computes the amount owed on a rental at the query date: the
	// recurring base rent plus outstanding charges minus recorded payments.
	RentDue(ctx context.Context, rentalID int32, asOf time.Time) (*domain.RentDue, error)
}

type PaymentService interface {
	// RecordPayment stores a payment and settles the explicitly selected
	// outstanding charges via rent, atomically. The ids must be a subset of
	// the rental's currently outstanding charges.
	RecordPayment(ctx context.Context, payment *domain.Payment, settledChargeIDs []int32) error
	GetPayment(ctx context.Context, id int32) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, payment *domain.Payment) error
	DeletePayment(ctx context.Context, id int32) error
	ListPayments(ctx context.Context, rentalID int32) ([]domain.Payment, error)
}

type ChargeService interface {
	AddFine(ctx context.Context, charge *domain.Charge) error
	AddDamage(ctx context.Context, charge *domain.Charge) error
	AddToll(ctx context.Context, charge *domain.Charge) error
	GetCharge(ctx context.Context, id int32) (*domain.Charge, error)
	UpdateCharge(ctx context.Context, charge *domain.Charge) error
	DeleteCharge(ctx context.Context, id int32) error

	// ListForRental returns the charges attached to the rental's car and
	// customer (plus the rental's toll entries), optionally unpaid only.
	ListForRental(ctx context.Context, rentalID int32, unpaidOnly bool) ([]domain.Charge, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, booking *domain.Booking) error
	DeleteBooking(ctx context.Context, id int32) error
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

type ExpenseService interface {
	AddExpense(ctx context.Context, expense *domain.Expense) error
	GetExpense(ctx context.Context, id int32) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expense *domain.Expense) error
	DeleteExpense(ctx context.Context, id int32) error
	ListExpenses(ctx context.Context, carID int32) ([]domain.Expense, error)
}

type OccupancyService interface {
	// Status resolves whether a car is rented, booked or available on the
	// given date. Rented wins over booked.
	Status(ctx context.Context, carID int32, date time.Time) (*domain.Occupancy, error)
	// Availability returns status rows for the whole active fleet.
	Availability(ctx context.Context, date time.Time) ([]domain.Occupancy, error)
}

type SettlementService interface {
	// Preview computes what committing the settlement would do, without side
	// effects.
	Preview(ctx context.Context, rentalID int32) (*domain.SettlementPreview, error)
	// Commit closes the rental: nets outstanding charges against the
	// deposit, marks them settled via deposit and stamps the rental. Fails
	// with domain.ErrAlreadySettled on a settled rental.
	Commit(ctx context.Context, rentalID int32) (*domain.Rental, error)
}

type ReportService interface {
	FleetReport(ctx context.Context, asOf time.Time) ([]domain.CarReport, error)
	Dashboard(ctx context.Context, asOf time.Time) (*domain.Dashboard, error)
}
