// Package validation binds request data into payloads and reports
// validation failures in the shape the client understands.
//
// Payload rules live in validator struct tags on the model types; this
// package only runs them and translates the result into field errors.
package validation
