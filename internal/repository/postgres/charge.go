package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

const chargeColumns = `id, kind, car_id, customer_id, rental_id, date, start_date, end_date,
	description, amount_cents, paid, settled_via, created_on, updated_on`

type chargeRepository struct {
	db *sql.DB
}

func NewChargeRepository(db *sql.DB) repository.ChargeRepository {
	return &chargeRepository{db: db}
}

func (r *chargeRepository) Create(ctx context.Context, c *domain.Charge) error {
	query := `INSERT INTO charges (kind, car_id, customer_id, rental_id, date, start_date, end_date,
	          description, amount_cents, paid, settled_via, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Kind, c.CarID, c.CustomerID, c.RentalID,
		c.Date, c.StartDate, c.EndDate, c.Description, c.AmountCents, c.Paid, c.SettledVia, now, now).Scan(&c.ID)
}

func scanCharge(row interface{ Scan(...any) error }) (*domain.Charge, error) {
	c := &domain.Charge{}
	var customerID, rentalID sql.NullInt32
	var date, startDate, endDate sql.NullTime
	var settledVia sql.NullString
	err := row.Scan(&c.ID, &c.Kind, &c.CarID, &customerID, &rentalID, &date, &startDate, &endDate,
		&c.Description, &c.AmountCents, &c.Paid, &settledVia, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	c.CustomerID = int32Ptr(customerID)
	c.RentalID = int32Ptr(rentalID)
	c.Date = timePtr(date)
	c.StartDate = timePtr(startDate)
	c.EndDate = timePtr(endDate)
	c.SettledVia = settledViaPtr(settledVia)
	return c, nil
}

func (r *chargeRepository) GetByID(ctx context.Context, id int32) (*domain.Charge, error) {
	query := fmt.Sprintf(`SELECT %s FROM charges WHERE id = $1`, chargeColumns)
	c, err := scanCharge(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *chargeRepository) Update(ctx context.Context, c *domain.Charge) error {
	query := `UPDATE charges SET date=$1, start_date=$2, end_date=$3, description=$4,
	          amount_cents=$5, paid=$6, settled_via=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, c.Date, c.StartDate, c.EndDate, c.Description,
		c.AmountCents, c.Paid, c.SettledVia, time.Now(), c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *chargeRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM charges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *chargeRepository) queryList(ctx context.Context, where string, args ...any) ([]domain.Charge, error) {
	query := fmt.Sprintf(`SELECT %s FROM charges %s ORDER BY id ASC`, chargeColumns, where)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []domain.Charge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, *c)
	}
	return charges, rows.Err()
}

func (r *chargeRepository) ListForRental(ctx context.Context, carID, customerID, rentalID int32, unpaidOnly bool) ([]domain.Charge, error) {
	// Fines and damages attach to the (car, customer) pair; tolls attach to
	// the rental directly.
	where := `WHERE ((kind IN ('FINE', 'DAMAGE') AND car_id = $1 AND customer_id = $2)
	          OR (kind = 'TOLL' AND rental_id = $3))`
	if unpaidOnly {
		where += ` AND paid = false`
	}
	return r.queryList(ctx, where, carID, customerID, rentalID)
}

func (r *chargeRepository) ListByCar(ctx context.Context, carID int32) ([]domain.Charge, error) {
	return r.queryList(ctx, `WHERE car_id = $1`, carID)
}

func (r *chargeRepository) TotalByCar(ctx context.Context, carID int32) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM charges WHERE car_id = $1`
	err := r.db.QueryRowContext(ctx, query, carID).Scan(&total)
	return total, err
}

func (r *chargeRepository) UnpaidTotalByKind(ctx context.Context, kind domain.ChargeKind) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM charges WHERE kind = $1 AND paid = false`
	err := r.db.QueryRowContext(ctx, query, kind).Scan(&total)
	return total, err
}
