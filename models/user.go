// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the coarse authorization level of a [User].
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"

	// RoleAdmin may manage other accounts. At least one admin must exist
	// once any user exists.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the stored identity record.
//
// PasswordHash is owned by the user directory and the credential hasher.
// It must never leave that boundary, which is why every public service
// method returns [PublicUser] instead.
type User struct {
	// ID is an opaque unique key (UUIDv7 string).
	ID string `json:"id"`

	// Email is normalized to lowercase and globally unique.
	Email string `json:"email"`

	// Username is normalized to lowercase and globally unique.
	Username string `json:"username"`

	// Name is the trimmed display name.
	Name string `json:"name"`

	// PasswordHash is the encoded KDF output ("salt_hex:key_hex").
	PasswordHash string `json:"-"`

	Role Role `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public returns the projection of u that is safe to hand to callers.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// IsAdmin reports whether u holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicUser is a [User] without any credential material. The type has no
// password field, so it cannot leak one through JSON or logs.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether u holds the admin role.
func (u PublicUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NewUser is the input for creating an account, either through
// self-registration or by an admin.
type NewUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`

	// Role is optional; an empty value means [RoleUser].
	Role Role `json:"role,omitempty"`
}
