package postgres

import (
	"database/sql"

	"fleetdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CarRepository
	repository.CustomerRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.ChargeRepository
	repository.BookingRepository
	repository.ExpenseRepository
	repository.SettlementRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		CarRepository:        NewCarRepository(db),
		CustomerRepository:   NewCustomerRepository(db),
		RentalRepository:     NewRentalRepository(db),
		PaymentRepository:    NewPaymentRepository(db),
		ChargeRepository:     NewChargeRepository(db),
		BookingRepository:    NewBookingRepository(db),
		ExpenseRepository:    NewExpenseRepository(db),
		SettlementRepository: NewSettlementRepository(db),
	}
}
