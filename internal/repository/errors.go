package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when no row matches the requested code.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness, foreign key
	// or check constraint.
	ErrConflict = errors.New("conflict")

	// ErrBusinessRule is wrapped by domain policy violations.
	ErrBusinessRule = errors.New("business rule violation")

	// ErrInvalidQuery is returned for malformed search, sort or pagination
	// parameters and for fields an entity does not accept.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrOperationFailed is returned for every other persistence fault.
	ErrOperationFailed = errors.New("operation failed")
)

const (
	sqlStateClassDataException = "22"
	sqlStateClassIntegrity     = "23"
)

// classify maps a store error to one of the package sentinels. Errors that are
// already classified pass through untouched. Conflicts and operation failures
// keep the driver error in the chain so callers can still inspect it.
func classify(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{ErrNotFound, ErrConflict, ErrBusinessRule, ErrInvalidQuery, ErrOperationFailed} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, op, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, sqlStateClassIntegrity):
			return fmt.Errorf("%s %s: %w: %w", entity, op, ErrConflict, err)
		case strings.HasPrefix(pgErr.Code, sqlStateClassDataException):
			// out of range numbers, bad dates and the like come from the caller
			return fmt.Errorf("%s %s: %w: %s", entity, op, ErrInvalidQuery, pgErr.Message)
		}
	}
	return fmt.Errorf("%s %s: %w: %w", entity, op, ErrOperationFailed, err)
}

// ConstraintName returns the violated constraint carried by err, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func invalidQuery(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
