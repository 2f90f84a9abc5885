package dberr

import (
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"
)

// documentValidationFailure is the server code for a $jsonSchema rejection.
const documentValidationFailure = 121

// FromMongo classifies an error returned by the Mongo driver for an
// operation on the entity with the given id.
func FromMongo(entity, id string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return NewNotFound(entity, id)
	}

	if mongo.IsDuplicateKeyError(err) {
		return &Error{
			Code:      UniqueViolation,
			Entity:    entity,
			Message:   "duplicate key",
			driverErr: err,
		}
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == documentValidationFailure {
				e := NewValidation(entity, "document failed validation", err)
				e.DatabaseCode = strconv.Itoa(we.Code)
				return e
			}
		}
	}

	return Wrap(entity, err)
}
