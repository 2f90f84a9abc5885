// Package model holds the API's domain types and request payloads.
package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh identifier. Every store uses ObjectID hex strings,
// so an id minted by one backend is well-formed for all of them.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed identifier
// (24 hexadecimal characters).
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// ParseID returns id in canonical lowercase form and whether it is
// well-formed. Hex is case-insensitive, so "507F..." names the same
// record as "507f...".
func ParseID(id string) (string, bool) {
	id = strings.ToLower(id)
	return id, IsValidID(id)
}

// Now is the creation clock, truncated to what every store can round-trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
