package service

import "github.com/MKhiriev/go-fleet-keeper/models"

// RequireAdmin returns [ErrForbidden] unless user is an admin. It runs
// after authentication and does no I/O.
func RequireAdmin(user models.PublicUser) error {
	if !user.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
