package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"
)

const carColumns = `id, model, model_year, licence_plate, colour, mileage_at_purchase,
	purchase_price_cents, initial_investment_cents, salik_tag, registration_date,
	tracker_installed, passing_cost_cents, registration_cost_cents, insurance_cost_cents,
	planned_rent_cents, status, defleeted_on, fleet_rank, created_on, updated_on`

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (model, model_year, licence_plate, colour, mileage_at_purchase,
	          purchase_price_cents, initial_investment_cents, salik_tag, registration_date,
	          tracker_installed, passing_cost_cents, registration_cost_cents, insurance_cost_cents,
	          planned_rent_cents, status, fleet_rank, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		c.Model, c.ModelYear, c.LicencePlate, c.Colour, c.MileageAtPurchase,
		c.PurchasePriceCents, c.InitialInvestmentCents, c.SalikTag, c.RegistrationDate,
		c.TrackerInstalled, c.PassingCostCents, c.RegistrationCostCents, c.InsuranceCostCents,
		c.PlannedRentCents, c.Status, c.FleetRank, now, now).Scan(&c.ID)
}

func scanCar(row interface{ Scan(...any) error }) (*domain.Car, error) {
	c := &domain.Car{}
	var regDate, defleetedOn sql.NullTime
	err := row.Scan(&c.ID, &c.Model, &c.ModelYear, &c.LicencePlate, &c.Colour, &c.MileageAtPurchase,
		&c.PurchasePriceCents, &c.InitialInvestmentCents, &c.SalikTag, &regDate,
		&c.TrackerInstalled, &c.PassingCostCents, &c.RegistrationCostCents, &c.InsuranceCostCents,
		&c.PlannedRentCents, &c.Status, &defleetedOn, &c.FleetRank, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	c.RegistrationDate = timePtr(regDate)
	c.DefleetedOn = timePtr(defleetedOn)
	return c, nil
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE id = $1`, carColumns)
	c, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET model=$1, model_year=$2, licence_plate=$3, colour=$4,
	          mileage_at_purchase=$5, purchase_price_cents=$6, initial_investment_cents=$7,
	          salik_tag=$8, registration_date=$9, tracker_installed=$10, passing_cost_cents=$11,
	          registration_cost_cents=$12, insurance_cost_cents=$13, planned_rent_cents=$14,
	          status=$15, defleeted_on=$16, updated_on=$17 WHERE id=$18`
	res, err := r.db.ExecContext(ctx, query,
		c.Model, c.ModelYear, c.LicencePlate, c.Colour, c.MileageAtPurchase,
		c.PurchasePriceCents, c.InitialInvestmentCents, c.SalikTag, c.RegistrationDate,
		c.TrackerInstalled, c.PassingCostCents, c.RegistrationCostCents, c.InsuranceCostCents,
		c.PlannedRentCents, c.Status, c.DefleetedOn, time.Now(), c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *carRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *carRepository) list(ctx context.Context, where string) ([]domain.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars %s ORDER BY fleet_rank ASC, id ASC`, carColumns, where)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

func (r *carRepository) ListActive(ctx context.Context) ([]domain.Car, error) {
	return r.list(ctx, `WHERE status = 'ACTIVE'`)
}

func (r *carRepository) ListDefleeted(ctx context.Context) ([]domain.Car, error) {
	return r.list(ctx, `WHERE status = 'DEFLEETED'`)
}

func (r *carRepository) ListAll(ctx context.Context) ([]domain.Car, error) {
	return r.list(ctx, ``)
}

func (r *carRepository) SwapRanks(ctx context.Context, aID, bID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var aRank, bRank int32
	if err := tx.QueryRowContext(ctx, `SELECT fleet_rank FROM cars WHERE id = $1`, aID).Scan(&aRank); err != nil {
		return notFound(err)
	}
	if err := tx.QueryRowContext(ctx, `SELECT fleet_rank FROM cars WHERE id = $1`, bID).Scan(&bRank); err != nil {
		return notFound(err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE cars SET fleet_rank = $1 WHERE id = $2`, bRank, aID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE cars SET fleet_rank = $1 WHERE id = $2`, aRank, bID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *carRepository) NormalizeRanks(ctx context.Context) error {
	// Rewrite ranks to 1..N in current order so repeated swaps and deletes
	// never leave gaps or duplicates.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM cars WHERE status = 'ACTIVE' ORDER BY fleet_rank ASC, id ASC`)
	if err != nil {
		return err
	}
	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE cars SET fleet_rank = $1 WHERE id = $2`, int32(i+1), id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *carRepository) MaxRank(ctx context.Context) (int32, error) {
	var max sql.NullInt32
	err := r.db.QueryRowContext(ctx, `SELECT MAX(fleet_rank) FROM cars WHERE status = 'ACTIVE'`).Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return max.Int32, nil
}
