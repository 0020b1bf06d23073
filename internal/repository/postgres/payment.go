package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"

	"github.com/lib/pq"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Record(ctx context.Context, p *domain.Payment, settledChargeIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO payments (rental_id, amount_cents, date, location, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, p.RentalID, p.AmountCents, p.Date, p.Location, time.Now()).Scan(&p.ID); err != nil {
		return err
	}

	if len(settledChargeIDs) > 0 {
		update := `UPDATE charges SET paid = true, settled_via = 'rent', updated_on = $1
		           WHERE id = ANY($2) AND paid = false`
		res, err := tx.ExecContext(ctx, update, time.Now(), pq.Array(settledChargeIDs))
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		// The service validated the ids against the outstanding set; a
		// mismatch here means a concurrent settlement got there first.
		if n != int64(len(settledChargeIDs)) {
			return domain.ErrAlreadySettled
		}
	}
	return tx.Commit()
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT id, rental_id, amount_cents, date, location, created_on FROM payments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.RentalID, &p.AmountCents, &p.Date, &p.Location, &p.CreatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET amount_cents=$1, date=$2, location=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, p.AmountCents, p.Date, p.Location, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *paymentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	query := `SELECT id, rental_id, amount_cents, date, location, created_on
	          FROM payments WHERE rental_id = $1 ORDER BY date ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.RentalID, &p.AmountCents, &p.Date, &p.Location, &p.CreatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) TotalByRental(ctx context.Context, rentalID int32) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE rental_id = $1`
	err := r.db.QueryRowContext(ctx, query, rentalID).Scan(&total)
	return total, err
}

func (r *paymentRepository) TotalByCar(ctx context.Context, carID int32) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(p.amount_cents), 0) FROM payments p
	          JOIN rentals r ON r.id = p.rental_id WHERE r.car_id = $1`
	err := r.db.QueryRowContext(ctx, query, carID).Scan(&total)
	return total, err
}

func (r *paymentRepository) LastPaymentDate(ctx context.Context, rentalID int32) (*time.Time, error) {
	var last sql.NullTime
	query := `SELECT MAX(date) FROM payments WHERE rental_id = $1`
	if err := r.db.QueryRowContext(ctx, query, rentalID).Scan(&last); err != nil {
		return nil, err
	}
	return timePtr(last), nil
}
