// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing and boundary
// validation are all handled at this layer before requests are forwarded
// to the service layer.
//
// Three access tiers share the router: public endpoints (signup bridge,
// login, PIN verification), session endpoints gated by the JWT auth
// middleware, and the anonymous QR endpoints gated per-request by the
// scoped bearer token.
package http
