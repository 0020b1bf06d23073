package postgres

import (
	"database/sql"
	"errors"
	"time"

	"fleetdesk-backend/internal/domain"
)

// notFound translates sql.ErrNoRows into the domain sentinel so callers never
// see driver-level errors.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// requireRow maps a zero-row update or delete to domain.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func int32Ptr(v sql.NullInt32) *int32 {
	if !v.Valid {
		return nil
	}
	n := v.Int32
	return &n
}

func settledViaPtr(v sql.NullString) *domain.SettledVia {
	if !v.Valid {
		return nil
	}
	s := domain.SettledVia(v.String)
	return &s
}
