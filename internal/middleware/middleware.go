// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// caller identity (static, JWT or Clerk), request ids, request logging,
// New Relic tracing, CORS, rate limiting and panic recovery. The global
// error handler that turns every returned error into a JSON response
// also lives here.
package middleware
