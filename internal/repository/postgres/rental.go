package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

const rentalColumns = `id, car_id, customer_id, start_date, end_date, contract_type,
	planned_rent_cents, actual_rent_cents, deposit_cents, billing_interval_days, next_billing_date,
	deposit_refunded, deposit_refunded_amount_cents, deposit_refund_date, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (car_id, customer_id, start_date, end_date, contract_type,
	          planned_rent_cents, actual_rent_cents, deposit_cents, billing_interval_days,
	          next_billing_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, rt.CarID, rt.CustomerID, rt.StartDate, rt.EndDate,
		rt.ContractType, rt.PlannedRentCents, rt.ActualRentCents, rt.DepositCents,
		rt.BillingIntervalDays, rt.NextBillingDate, now, now).Scan(&rt.ID)
}

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var endDate, nextBilling, refundDate sql.NullTime
	var actualRent, refundedAmount sql.NullInt64
	err := row.Scan(&rt.ID, &rt.CarID, &rt.CustomerID, &rt.StartDate, &endDate, &rt.ContractType,
		&rt.PlannedRentCents, &actualRent, &rt.DepositCents, &rt.BillingIntervalDays, &nextBilling,
		&rt.DepositRefunded, &refundedAmount, &refundDate, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	rt.EndDate = timePtr(endDate)
	rt.NextBillingDate = timePtr(nextBilling)
	rt.DepositRefundDate = timePtr(refundDate)
	rt.ActualRentCents = int64Ptr(actualRent)
	rt.DepositRefundedAmountCents = int64Ptr(refundedAmount)
	return rt, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE id = $1`, rentalColumns)
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET car_id=$1, customer_id=$2, start_date=$3, end_date=$4,
	          contract_type=$5, planned_rent_cents=$6, actual_rent_cents=$7, deposit_cents=$8,
	          billing_interval_days=$9, next_billing_date=$10, updated_on=$11 WHERE id=$12`
	res, err := r.db.ExecContext(ctx, query, rt.CarID, rt.CustomerID, rt.StartDate, rt.EndDate,
		rt.ContractType, rt.PlannedRentCents, rt.ActualRentCents, rt.DepositCents,
		rt.BillingIntervalDays, rt.NextBillingDate, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *rentalRepository) list(ctx context.Context, where string, args ...any) ([]domain.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals %s ORDER BY start_date ASC, id ASC`, rentalColumns, where)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) ListByCar(ctx context.Context, carID int32) ([]domain.Rental, error) {
	return r.list(ctx, `WHERE car_id = $1`, carID)
}

func (r *rentalRepository) ListOpen(ctx context.Context) ([]domain.Rental, error) {
	return r.list(ctx, `WHERE deposit_refunded = false`)
}

func (r *rentalRepository) ListSettled(ctx context.Context) ([]domain.Rental, error) {
	return r.list(ctx, `WHERE deposit_refunded = true`)
}
