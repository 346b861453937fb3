package models

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	// Identifier is either an email address or a username.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`

	// RedirectTo is the path the client was originally heading to.
	RedirectTo string `json:"redirect_to,omitempty"`
}

// LoginResponse is returned after a successful login or registration.
type LoginResponse struct {
	User       PublicUser `json:"user"`
	RedirectTo string     `json:"redirect_to"`
}

// ChangePasswordRequest is the body of PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ResetPasswordRequest is the body of PUT /api/admin/users/{id}/password.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// RoleUpdateRequest is the body of PUT /api/admin/users/{id}/role.
type RoleUpdateRequest struct {
	Role Role `json:"role"`
}

// AppInfo is returned by the version endpoint.
type AppInfo struct {
	Version string `json:"version"`
}
