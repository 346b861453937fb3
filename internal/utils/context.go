// Package utils holds small helpers shared across layers: context keys,
// JSON responses, id generation and the outbound HTTP client.
package utils

import (
	"context"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

// contextKey is a private type for context keys, so keys never collide with
// string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// CurrentUserCtxKey stores the authenticated [models.PublicUser] of a request.
var CurrentUserCtxKey = contextKey("currentUser")

// WithCurrentUser returns a copy of ctx carrying user.
func WithCurrentUser(ctx context.Context, user models.PublicUser) context.Context {
	return context.WithValue(ctx, CurrentUserCtxKey, user)
}

// CurrentUserFromContext returns the user stored by [WithCurrentUser].
// ok is false when the request was not authenticated.
func CurrentUserFromContext(ctx context.Context) (models.PublicUser, bool) {
	user, ok := ctx.Value(CurrentUserCtxKey).(models.PublicUser)
	return user, ok
}
