package service

import "github.com/MKhiriev/go-fleet-keeper/models"

// AuthResult is the outcome of [AuthGateway.RequireUser]: either
// [Authenticated] or [Unauthenticated]. The transport layer turns the latter
// into a redirect to the login page.
type AuthResult interface {
	// ResponseHeaders must be written to the response in both cases.
	ResponseHeaders() *Headers

	authResult()
}

// Authenticated carries the current user and the renewed session.
type Authenticated struct {
	User    models.PublicUser
	Session models.Session

	// Headers holds the refreshed session cookie.
	Headers *Headers
}

func (a Authenticated) ResponseHeaders() *Headers { return a.Headers }

func (Authenticated) authResult() {}

// Unauthenticated means the request carries no usable session.
type Unauthenticated struct {
	// RedirectTo is the login path with the requested location attached
	// as the redirectTo query parameter.
	RedirectTo string

	// Headers may hold a cookie-clearing instruction.
	Headers *Headers
}

func (u Unauthenticated) ResponseHeaders() *Headers { return u.Headers }

func (Unauthenticated) authResult() {}
