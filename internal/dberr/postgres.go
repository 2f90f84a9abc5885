package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the Postgres adapter distinguishes.
const (
	pgUniqueViolation           = "23505"
	pgForeignKeyViolation       = "23503"
	pgNotNullViolation          = "23502"
	pgCheckViolation            = "23514"
	pgInvalidTextRepresentation = "22P02"
)

// MapCode maps a SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case pgUniqueViolation:
		return UniqueViolation
	case pgForeignKeyViolation:
		return ForeignKeyViolation
	case pgNotNullViolation:
		return NotNullViolation
	case pgCheckViolation:
		return CheckViolation
	case pgInvalidTextRepresentation:
		return InvalidID
	default:
		return Other
	}
}

// ConvertPgError copies the useful parts of a *pgconn.PgError.
func ConvertPgError(entity string, src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Entity:         entity,
		Message:        src.Message,
		DatabaseCode:   src.Code,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// FromPostgres classifies an error returned by pgx for an operation on
// the entity with the given id.
func FromPostgres(entity, id string, err error) error {
	if err == nil {
		return nil
	}

	var pgerr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return NewNotFound(entity, id)
	case errors.As(err, &pgerr):
		return ConvertPgError(entity, pgerr)
	default:
		return Wrap(entity, err)
	}
}
