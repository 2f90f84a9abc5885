// Package errs is the error-code table of the API.
//
// Every failure a handler can produce ends up as an *HTTPError: a fixed
// status code, a machine-friendly code derived from the status text, and
// a human-readable message. The global error handler serializes it as
//
//	{"code": "NOT_FOUND", "message": "Item not found", "status": 404, ...}
//
// so clients can always rely on a `message` field on failure.
package errs
