// Package http is the REST transport of go-fleet-keeper.
//
// It wires the chi router, the session middleware that turns the
// __session cookie into a current user, the admin guard, and the
// account endpoints under /api/auth and /api/admin.
package http
