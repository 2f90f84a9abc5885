// Package handler is the HTTP layer: the first entry point after the
// router.
//
// Each endpoint binds and validates its payload, makes exactly one
// service call and returns either the result or the error for the global
// error handler to shape.
package handler
