package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/torchtask/taskhub/internal/apperror"
)

// translateError is the single place raw store errors become typed ones.
// It is a pure function: callers return its result themselves, nothing here
// panics or rethrows on their behalf. Raw pg error text never crosses the
// repo boundary.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(entity + " not found")
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique violation
			return apperror.NewConflict(entity + " already exists")
		case "23503": // foreign key violation
			return apperror.NewInvalidReference("Invalid user reference")
		}
	}

	return apperror.NewDatabase(err)
}
