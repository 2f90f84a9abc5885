// Package dberr turns store driver errors into typed errors.
//
// Repository adapters never hand raw pgx or mongo errors to the layers
// above. They convert them into *Error values carrying a Code and the
// entity involved, and HandleError later maps those codes onto the errs
// table (e.g. a NotFound on "item" becomes a 404 "Item not found").
package dberr

import (
	"errors"
	"fmt"
)

// Code classifies a store failure independently of the driver.
type Code string

const (
	Other               Code = "other"
	NotFound            Code = "not_found"
	InvalidID           Code = "invalid_id"
	Validation          Code = "validation"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
)

// Error is the typed error repository adapters return.
type Error struct {
	Code Code

	// Entity is the domain name the operation targeted ("item", "user").
	Entity string

	Message string

	// DatabaseCode is the raw driver code (SQLSTATE, Mongo server code).
	DatabaseCode   string
	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	if e.driverErr != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Entity, e.Code, e.Message, e.driverErr)
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// ErrCode returns the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Code
	}
	return Other
}

// NewNotFound reports that no entity with the given id exists.
func NewNotFound(entity, id string) *Error {
	return &Error{
		Code:    NotFound,
		Entity:  entity,
		Message: fmt.Sprintf("no %s with id %q", entity, id),
	}
}

// NewInvalidID reports that id cannot address any entity of the store.
func NewInvalidID(entity, id string) *Error {
	return &Error{
		Code:    InvalidID,
		Entity:  entity,
		Message: fmt.Sprintf("malformed %s id %q", entity, id),
	}
}

// NewValidation reports a document the store refused for its content.
func NewValidation(entity, message string, cause error) *Error {
	return &Error{
		Code:      Validation,
		Entity:    entity,
		Message:   message,
		driverErr: cause,
	}
}

// Wrap classifies an unexpected failure as Other.
func Wrap(entity string, err error) *Error {
	return &Error{
		Code:      Other,
		Entity:    entity,
		Message:   "store operation failed",
		driverErr: err,
	}
}
