// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated payloads from the handlers, applies the domain rules (the
// owner of a new item is always the caller) and calls the repository
// adapters.
package service
