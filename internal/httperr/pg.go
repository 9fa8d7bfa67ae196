package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsConflictViolation reports whether err is a Postgres unique (23505) or
// exclusion (23P01) constraint violation. Lets the create path treat a lost
// insert race the same as a detected slot conflict.
func IsConflictViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
