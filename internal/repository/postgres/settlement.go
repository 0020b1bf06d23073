package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/repository"

	"github.com/lib/pq"
)

type settlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

// Commit runs the settlement state transition in one transaction. The guard
// on deposit_refunded = false makes double settlement impossible even when
// two commits race: the loser sees zero rows updated and rolls back, leaving
// its charge updates unapplied.
func (r *settlementRepository) Commit(ctx context.Context, rt *domain.Rental, chargeIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if len(chargeIDs) > 0 {
		update := `UPDATE charges SET paid = true, settled_via = 'deposit', updated_on = $1
		           WHERE id = ANY($2) AND paid = false`
		if _, err := tx.ExecContext(ctx, update, now, pq.Array(chargeIDs)); err != nil {
			return err
		}
	}

	stamp := `UPDATE rentals SET end_date = $1, contract_type = $2, deposit_refunded = true,
	          deposit_refunded_amount_cents = $3, deposit_refund_date = $4, updated_on = $5
	          WHERE id = $6 AND deposit_refunded = false`
	res, err := tx.ExecContext(ctx, stamp, rt.EndDate, rt.ContractType,
		rt.DepositRefundedAmountCents, rt.DepositRefundDate, now, rt.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAlreadySettled
	}
	return tx.Commit()
}
