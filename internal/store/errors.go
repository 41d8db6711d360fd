package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// ConstraintError carries the name of the violated constraint alongside
// ErrConflict, ErrInvalidReference or ErrCheckViolation so callers can tell constraints apart.
type ConstraintError struct {
	Err        error
	Constraint string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Constraint)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// ViolatedConstraint returns the constraint name carried by err, if any.
func ViolatedConstraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// mapErr translates driver errors into the store's sentinel errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConstraintError{Err: ErrConflict, Constraint: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			return &ConstraintError{Err: ErrInvalidReference, Constraint: pgErr.ConstraintName}
		case pgCheckViolation:
			return &ConstraintError{Err: ErrCheckViolation, Constraint: pgErr.ConstraintName}
		}
	}
	return err
}
