package billing

import (
	"testing"
	"time"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func cents(v int64) *int64 { return &v }

func TestRentDue(t *testing.T) {
	t.Run("Open rental mid second interval", func(t *testing.T) {
		// start 2024-01-01, interval 30, actual rent 3000.00, asOf 2024-02-15:
		// 45 days active, floor(45/30)+1 = 2 intervals, 6000.00 due.
		r := &domain.Rental{
			StartDate:           dates.Day(2024, time.January, 1),
			BillingIntervalDays: 30,
			ActualRentCents:     cents(300000),
		}
		pos := RentDue(r, dates.Day(2024, time.February, 15))
		assert.Equal(t, 45, pos.DaysActive)
		assert.Equal(t, int32(2), pos.IntervalsElapsed)
		assert.Equal(t, int64(600000), pos.BaseDueCents)
	})

	t.Run("Day zero bills one interval", func(t *testing.T) {
		r := &domain.Rental{
			StartDate:           dates.Day(2024, time.January, 1),
			BillingIntervalDays: 30,
			PlannedRentCents:    250000,
		}
		pos := RentDue(r, dates.Day(2024, time.January, 1))
		assert.Equal(t, int32(1), pos.IntervalsElapsed)
		assert.Equal(t, int64(250000), pos.BaseDueCents)
	})

	t.Run("Not yet started owes nothing", func(t *testing.T) {
		r := &domain.Rental{
			StartDate:           dates.Day(2026, time.March, 1),
			BillingIntervalDays: 30,
			PlannedRentCents:    300000,
		}
		pos := RentDue(r, dates.Day(2026, time.February, 1))
		assert.Equal(t, -28, pos.DaysActive)
		assert.Equal(t, int32(0), pos.IntervalsElapsed)
		assert.Equal(t, int64(0), pos.BaseDueCents)
	})

	t.Run("End date caps the billed period", func(t *testing.T) {
		end := dates.Day(2024, time.January, 31)
		r := &domain.Rental{
			StartDate:           dates.Day(2024, time.January, 1),
			EndDate:             &end,
			BillingIntervalDays: 30,
			PlannedRentCents:    300000,
		}
		pos := RentDue(r, dates.Day(2024, time.June, 1))
		assert.Equal(t, end, pos.PeriodEnd)
		assert.Equal(t, int32(2), pos.IntervalsElapsed)
		assert.Equal(t, int64(600000), pos.BaseDueCents)
	})

	t.Run("Actual rent overrides planned", func(t *testing.T) {
		r := &domain.Rental{
			StartDate:           dates.Day(2024, time.January, 1),
			BillingIntervalDays: 30,
			PlannedRentCents:    300000,
			ActualRentCents:     cents(280000),
		}
		pos := RentDue(r, dates.Day(2024, time.January, 10))
		assert.Equal(t, int64(280000), pos.BaseDueCents)
	})

	t.Run("Zero interval falls back to default", func(t *testing.T) {
		r := &domain.Rental{
			StartDate:        dates.Day(2024, time.January, 1),
			PlannedRentCents: 100000,
		}
		pos := RentDue(r, dates.Day(2024, time.January, 31))
		assert.Equal(t, int32(2), pos.IntervalsElapsed)
	})

	t.Run("Monotonically non-decreasing in asOf", func(t *testing.T) {
		r := &domain.Rental{
			StartDate:           dates.Day(2024, time.January, 1),
			BillingIntervalDays: 30,
			PlannedRentCents:    300000,
		}
		var prev int64
		for day := 0; day < 120; day++ {
			pos := RentDue(r, r.StartDate.AddDate(0, 0, day))
			assert.GreaterOrEqual(t, pos.BaseDueCents, prev, "day %d", day)
			prev = pos.BaseDueCents
		}
	})
}

func TestBalance(t *testing.T) {
	charges := []domain.Charge{
		{Kind: domain.ChargeKindFine, AmountCents: 120000},
		{Kind: domain.ChargeKindToll, AmountCents: 30000},
	}
	assert.Equal(t, int64(150000), OutstandingTotal(charges))

	// Base 6000.00 + charges 1500.00 - payments 3000.00.
	assert.Equal(t, int64(450000), Balance(600000, charges, 300000))

	// Overpayment yields a negative (credit) balance.
	assert.Equal(t, int64(-50000), Balance(100000, nil, 150000))
}

func TestRefundable(t *testing.T) {
	assert.Equal(t, int64(350000), Refundable(500000, 150000))
	assert.Equal(t, int64(0), Refundable(100000, 150000))
	assert.Equal(t, int64(0), Refundable(0, 0))
}
