package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (car_id, date, category, description, cost_cents, recurring, next_due_date, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.CarID, e.Date, e.Category, e.Description,
		e.CostCents, e.Recurring, e.NextDueDate, time.Now()).Scan(&e.ID)
}

func scanExpense(row interface{ Scan(...any) error }) (*domain.Expense, error) {
	e := &domain.Expense{}
	var nextDue sql.NullTime
	err := row.Scan(&e.ID, &e.CarID, &e.Date, &e.Category, &e.Description, &e.CostCents,
		&e.Recurring, &nextDue, &e.CreatedOn)
	if err != nil {
		return nil, err
	}
	e.NextDueDate = timePtr(nextDue)
	return e, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id int32) (*domain.Expense, error) {
	query := `SELECT id, car_id, date, category, description, cost_cents, recurring, next_due_date, created_on
	          FROM expenses WHERE id = $1`
	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *expenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	query := `UPDATE expenses SET date=$1, category=$2, description=$3, cost_cents=$4, recurring=$5, next_due_date=$6
	          WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, e.Date, e.Category, e.Description, e.CostCents,
		e.Recurring, e.NextDueDate, e.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *expenseRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *expenseRepository) ListByCar(ctx context.Context, carID int32) ([]domain.Expense, error) {
	query := `SELECT id, car_id, date, category, description, cost_cents, recurring, next_due_date, created_on
	          FROM expenses WHERE car_id = $1 ORDER BY date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func (r *expenseRepository) TotalByCar(ctx context.Context, carID int32) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(cost_cents), 0) FROM expenses WHERE car_id = $1`
	err := r.db.QueryRowContext(ctx, query, carID).Scan(&total)
	return total, err
}

func (r *expenseRepository) CategoryTotalBetween(ctx context.Context, categoryPattern string, start, end time.Time) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(cost_cents), 0) FROM expenses
	          WHERE category ILIKE $1 AND date >= $2 AND date <= $3`
	err := r.db.QueryRowContext(ctx, query, categoryPattern, start, end).Scan(&total)
	return total, err
}
