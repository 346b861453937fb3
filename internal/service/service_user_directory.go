// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-fleet-keeper/internal/crypto"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/internal/validators"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// userDirectory is the [UserDirectory] backed by a [store.UserRepository].
type userDirectory struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	validator      validators.Validator
	ids            IDGenerator

	// ownedRecords is optional; nil means there is nothing to detach.
	ownedRecords OwnedRecordsHook

	now    func() time.Time
	logger *logger.Logger
}

// NewUserDirectory returns a [UserDirectory]. ownedRecords may be nil.
func NewUserDirectory(userRepository store.UserRepository, hasher crypto.PasswordHasher, ids IDGenerator, ownedRecords OwnedRecordsHook, logger *logger.Logger) UserDirectory {
	return &userDirectory{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validators.NewUserValidator(),
		ids:            ids,
		ownedRecords:   ownedRecords,
		now:            time.Now,
		logger:         logger,
	}
}

// normalizeKey prepares an email or username for storage and lookup.
func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (d *userDirectory) FindByEmail(ctx context.Context, email string) (models.PublicUser, bool, error) {
	return d.find(ctx, d.userRepository.FindUserByEmail, normalizeKey(email))
}

func (d *userDirectory) FindByUsername(ctx context.Context, username string) (models.PublicUser, bool, error) {
	return d.find(ctx, d.userRepository.FindUserByUsername, normalizeKey(username))
}

func (d *userDirectory) FindByID(ctx context.Context, id string) (models.PublicUser, bool, error) {
	return d.find(ctx, d.userRepository.FindUserByID, id)
}

func (d *userDirectory) find(ctx context.Context, lookup func(context.Context, string) (models.User, error), key string) (models.PublicUser, bool, error) {
	user, found, err := d.lookup(ctx, lookup, key)
	if err != nil || !found {
		return models.PublicUser{}, false, err
	}
	return user.Public(), true, nil
}

// lookup returns the full record, hash included. It must stay private.
func (d *userDirectory) lookup(ctx context.Context, lookup func(context.Context, string) (models.User, error), key string) (models.User, bool, error) {
	if key == "" {
		return models.User{}, false, nil
	}

	user, err := lookup(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, false, nil
		}
		logger.FromContext(ctx).Err(err).Str("func", "*userDirectory.lookup").Msg("error looking up user")
		return models.User{}, false, fmt.Errorf("error looking up user: %w", err)
	}

	return user, true, nil
}

func (d *userDirectory) Create(ctx context.Context, newUser models.NewUser) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	newUser.Email = normalizeKey(newUser.Email)
	newUser.Username = normalizeKey(newUser.Username)
	newUser.Name = strings.TrimSpace(newUser.Name)

	if err := d.validator.Validate(ctx, newUser); err != nil {
		log.Info().Err(err).Str("func", "*userDirectory.Create").Msg("invalid user data provided")
		return models.PublicUser{}, err
	}

	if _, found, err := d.lookup(ctx, d.userRepository.FindUserByEmail, newUser.Email); err != nil {
		return models.PublicUser{}, err
	} else if found {
		return models.PublicUser{}, ErrEmailAlreadyExists
	}

	if _, found, err := d.lookup(ctx, d.userRepository.FindUserByUsername, newUser.Username); err != nil {
		return models.PublicUser{}, err
	} else if found {
		return models.PublicUser{}, ErrUsernameAlreadyExists
	}

	role := newUser.Role
	if role == "" {
		role = models.RoleUser
	}

	// the first account bootstraps administration
	count, err := d.userRepository.CountUsers(ctx)
	if err != nil {
		log.Err(err).Str("func", "*userDirectory.Create").Msg("error counting users")
		return models.PublicUser{}, fmt.Errorf("error counting users: %w", err)
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	hash, err := d.hasher.Hash(newUser.Password)
	if err != nil {
		log.Err(err).Str("func", "*userDirectory.Create").Msg("error hashing password")
		return models.PublicUser{}, fmt.Errorf("error hashing password: %w", err)
	}

	now := d.now().UTC()
	created, err := d.userRepository.CreateUser(ctx, models.User{
		ID:           d.ids.Generate(),
		Email:        newUser.Email,
		Username:     newUser.Username,
		Name:         newUser.Name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailAlreadyExists):
			return models.PublicUser{}, ErrEmailAlreadyExists
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			return models.PublicUser{}, ErrUsernameAlreadyExists
		}
		log.Err(err).Str("func", "*userDirectory.Create").Msg("user creation ended with error")
		return models.PublicUser{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("func", "*userDirectory.Create").Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created.Public(), nil
}

func (d *userDirectory) VerifyLogin(ctx context.Context, identifier, password string) (models.PublicUser, bool, error) {
	log := logger.FromContext(ctx)
	key := normalizeKey(identifier)

	// no stored password can be this long, so skip the KDF entirely
	if utf8.RuneCountInString(password) > validators.PasswordMaxLen {
		log.Info().Str("func", "*userDirectory.VerifyLogin").Msg("login failed: password too long")
		return models.PublicUser{}, false, nil
	}

	user, found, err := d.lookup(ctx, d.userRepository.FindUserByEmail, key)
	if err != nil {
		return models.PublicUser{}, false, err
	}
	if !found {
		user, found, err = d.lookup(ctx, d.userRepository.FindUserByUsername, key)
		if err != nil {
			return models.PublicUser{}, false, err
		}
	}

	if !found {
		// burn the same KDF time as a real mismatch
		d.hasher.Verify(password, crypto.DummyHash)
		log.Info().Str("func", "*userDirectory.VerifyLogin").Msg("login failed")
		return models.PublicUser{}, false, nil
	}

	if !d.hasher.Verify(password, user.PasswordHash) {
		log.Info().Str("func", "*userDirectory.VerifyLogin").Str("user_id", user.ID).Msg("login failed")
		return models.PublicUser{}, false, nil
	}

	return user.Public(), true, nil
}

func (d *userDirectory) UpdateRole(ctx context.Context, id string, role models.Role) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	if err := d.validator.Validate(ctx, role); err != nil {
		return models.PublicUser{}, err
	}

	user, found, err := d.lookup(ctx, d.userRepository.FindUserByID, id)
	if err != nil {
		return models.PublicUser{}, err
	}
	if !found {
		return models.PublicUser{}, ErrUserNotFound
	}

	if user.Role == role {
		return user.Public(), nil
	}

	if user.IsAdmin() {
		if err = d.ensureNotLastAdmin(ctx); err != nil {
			return models.PublicUser{}, err
		}
	}

	updated, err := d.userRepository.UpdateUserRole(ctx, id, role, d.now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.PublicUser{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userDirectory.UpdateRole").Str("user_id", id).Msg("error updating role")
		return models.PublicUser{}, fmt.Errorf("error updating role: %w", err)
	}

	log.Info().Str("func", "*userDirectory.UpdateRole").Str("user_id", id).Str("role", string(role)).Msg("role updated")
	return updated.Public(), nil
}

func (d *userDirectory) UpdatePassword(ctx context.Context, id, password string) error {
	log := logger.FromContext(ctx)

	if err := validators.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := d.hasher.Hash(password)
	if err != nil {
		log.Err(err).Str("func", "*userDirectory.UpdatePassword").Msg("error hashing password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	// existing sessions stay valid
	if err = d.userRepository.UpdateUserPassword(ctx, id, hash, d.now().UTC()); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserNotFound
		}
		log.Err(err).Str("func", "*userDirectory.UpdatePassword").Str("user_id", id).Msg("error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}

	log.Info().Str("func", "*userDirectory.UpdatePassword").Str("user_id", id).Msg("password updated")
	return nil
}

func (d *userDirectory) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	user, found, err := d.lookup(ctx, d.userRepository.FindUserByID, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrUserNotFound
	}

	if user.IsAdmin() {
		if err = d.ensureNotLastAdmin(ctx); err != nil {
			return err
		}
	}

	if d.ownedRecords != nil {
		if err = d.ownedRecords.DetachUser(ctx, id); err != nil {
			log.Err(err).Str("func", "*userDirectory.Delete").Str("user_id", id).Msg("error detaching owned records")
			return fmt.Errorf("error detaching owned records: %w", err)
		}
	}

	if err = d.userRepository.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserNotFound
		}
		log.Err(err).Str("func", "*userDirectory.Delete").Str("user_id", id).Msg("error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}

	log.Info().Str("func", "*userDirectory.Delete").Str("user_id", id).Msg("user deleted")
	return nil
}

func (d *userDirectory) List(ctx context.Context) ([]models.PublicUser, error) {
	users, err := d.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userDirectory.List").Msg("error listing users")
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// ensureNotLastAdmin fails when removing one admin would leave none.
// The count and the following write are not atomic; two concurrent
// demotions of the last two admins can both pass.
func (d *userDirectory) ensureNotLastAdmin(ctx context.Context) error {
	admins, err := d.userRepository.CountUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userDirectory.ensureNotLastAdmin").Msg("error counting admins")
		return fmt.Errorf("error counting admins: %w", err)
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}
