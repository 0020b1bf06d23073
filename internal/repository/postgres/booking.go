package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (car_id, customer_id, start_date, end_date, note, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.CarID, b.CustomerID, b.StartDate, b.EndDate, b.Note, time.Now()).Scan(&b.ID)
}

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var customerID sql.NullInt32
	err := row.Scan(&b.ID, &b.CarID, &customerID, &b.StartDate, &b.EndDate, &b.Note, &b.CreatedOn)
	if err != nil {
		return nil, err
	}
	b.CustomerID = int32Ptr(customerID)
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT id, car_id, customer_id, start_date, end_date, note, created_on FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET car_id=$1, customer_id=$2, start_date=$3, end_date=$4, note=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, b.CarID, b.CustomerID, b.StartDate, b.EndDate, b.Note, b.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *bookingRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *bookingRepository) list(ctx context.Context, where string, args ...any) ([]domain.Booking, error) {
	query := `SELECT id, car_id, customer_id, start_date, end_date, note, created_on FROM bookings ` +
		where + ` ORDER BY start_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx, ``)
}

func (r *bookingRepository) ListByCar(ctx context.Context, carID int32) ([]domain.Booking, error) {
	return r.list(ctx, `WHERE car_id = $1`, carID)
}
