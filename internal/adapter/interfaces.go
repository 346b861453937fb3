// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the go-fleet-keeper HTTP API.
//
// [AuthClient] carries the session cookie between calls and maps HTTP
// statuses to the sentinel errors in errors.go, so callers can use
// [errors.Is] (e.g. [ErrUnauthorized] for 401 and for the login redirect,
// [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

// AuthClient talks to the auth and admin endpoints of a go-fleet-keeper
// server.
type AuthClient interface {
	// SetToken installs a session token obtained earlier, for example one
	// saved by a previous process.
	SetToken(token string)

	// Token returns the current session token, or "" when signed out.
	Token() string

	// Register creates an account and signs in as it.
	Register(ctx context.Context, user models.NewUser) (models.LoginResponse, error)

	// Login signs in with an email or username. redirectTo may be empty.
	Login(ctx context.Context, identifier, password, redirectTo string) (models.LoginResponse, error)

	// Logout ends the current session. It succeeds when already signed out.
	Logout(ctx context.Context) error

	// Me returns the signed-in user.
	Me(ctx context.Context) (models.PublicUser, error)

	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	// Admin endpoints. They fail with [ErrForbidden] for non-admins.
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
	CreateUser(ctx context.Context, user models.NewUser) (models.PublicUser, error)
	UpdateRole(ctx context.Context, id string, role models.Role) (models.PublicUser, error)
	ResetPassword(ctx context.Context, id, password string) error
	DeleteUser(ctx context.Context, id string) error

	// Version returns the server version.
	Version(ctx context.Context) (models.AppInfo, error)
}
