package postgres

import (
	"context"
	"testing"
	"time"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chargeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "kind", "car_id", "customer_id", "rental_id", "date", "start_date", "end_date",
		"description", "amount_cents", "paid", "settled_via", "created_on", "updated_on",
	})
}

func TestChargeRepository_ListForRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Joins car-customer charges with rental tolls", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewChargeRepository(db)

		now := time.Now()
		mock.ExpectQuery(`kind IN \('FINE', 'DAMAGE'\)`).
			WithArgs(int32(1), int32(2), int32(5)).
			WillReturnRows(chargeRows().
				AddRow(11, "FINE", 1, 2, nil, dates.Day(2026, time.March, 3), nil, nil,
					"speeding", 50000, false, nil, now, now).
				AddRow(13, "TOLL", 1, nil, 5, nil, dates.Day(2026, time.January, 1),
					dates.Day(2026, time.January, 31), "", 12000, false, nil, now, now))

		charges, err := repo.ListForRental(ctx, 1, 2, 5, false)
		assert.NoError(t, err)
		require.Len(t, charges, 2)
		assert.Equal(t, domain.ChargeKindFine, charges[0].Kind)
		assert.Equal(t, int32(2), *charges[0].CustomerID)
		assert.Nil(t, charges[0].RentalID)
		assert.Equal(t, domain.ChargeKindToll, charges[1].Kind)
		assert.Equal(t, int32(5), *charges[1].RentalID)
		assert.Nil(t, charges[1].CustomerID)
	})

	t.Run("Unpaid filter narrows the set", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewChargeRepository(db)

		mock.ExpectQuery(`AND paid = false`).
			WithArgs(int32(1), int32(2), int32(5)).
			WillReturnRows(chargeRows())

		charges, err := repo.ListForRental(ctx, 1, 2, 5, true)
		assert.NoError(t, err)
		assert.Empty(t, charges)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestChargeRepository_UnpaidTotalByKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewChargeRepository(db)

	mock.ExpectQuery(`WHERE kind = \$1 AND paid = false`).
		WithArgs(domain.ChargeKindFine).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(75000))

	total, err := repo.UnpaidTotalByKind(context.Background(), domain.ChargeKindFine)
	assert.NoError(t, err)
	assert.Equal(t, int64(75000), total)
}
