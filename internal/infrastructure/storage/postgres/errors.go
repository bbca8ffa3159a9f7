package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// MapConstraintError turns constraint violations into application errors.
// Other errors are returned unchanged.
func MapConstraintError(err error, table string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeForeignKeyViolation:
		return apperror.NewConflict("referenced row is missing or still in use").
			WithDetail("entity", table).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	case codeUniqueViolation:
		return apperror.NewDuplicate(table, pgErr.ConstraintName, pgErr.Detail).WithCause(err)
	case codeCheckViolation:
		return apperror.NewValidation("check constraint violated").
			WithDetail("entity", table).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	}
	return err
}
