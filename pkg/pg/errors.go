package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidConfig     = errors.New("pg: invalid connection config")
	ErrConnectionFailed  = errors.New("pg: failed to connect")
	ErrHealthcheckFailed = errors.New("pg: healthcheck failed")
	ErrMigrationFailed   = errors.New("pg: failed to apply migrations")
)

// IsNotFoundError reports whether err represents an empty query result.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError reports whether err is a unique constraint
// violation (SQLSTATE 23505), such as an already-taken username.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
