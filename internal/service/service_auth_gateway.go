// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/cookie"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

type authGateway struct {
	users     UserDirectory
	sessions  SessionService
	cookies   cookie.Codec
	loginPath string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthGateway returns an [AuthGateway] redirecting unauthenticated
// requests to loginPath.
func NewAuthGateway(users UserDirectory, sessions SessionService, cookies cookie.Codec, loginPath string, logger *logger.Logger) AuthGateway {
	return &authGateway{
		users:     users,
		sessions:  sessions,
		cookies:   cookies,
		loginPath: loginPath,
		now:       time.Now,
		logger:    logger,
	}
}

func (g *authGateway) RequireUser(ctx context.Context, cookieHeader string, requested *url.URL) (AuthResult, error) {
	log := logger.FromContext(ctx)
	redirectTo := loginRedirect(g.loginPath, requested)

	token, ok := g.cookies.ExtractToken(cookieHeader)
	if !ok {
		return Unauthenticated{RedirectTo: redirectTo, Headers: NewHeaders()}, nil
	}

	unauthenticated := Unauthenticated{RedirectTo: redirectTo, Headers: g.clearCookie()}

	session, found, err := g.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !found {
		return unauthenticated, nil
	}

	if session.Expired(g.now().UTC()) {
		log.Info().Str("func", "*authGateway.RequireUser").Str("session_id", session.ID).Msg("session expired")
		if err = g.sessions.DeleteByID(ctx, session.ID); err != nil {
			return nil, err
		}
		return unauthenticated, nil
	}

	user, found, err := g.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Warn().Str("func", "*authGateway.RequireUser").
			Str("session_id", session.ID).
			Str("user_id", session.UserID).
			Msg("deleting orphaned session")
		if err = g.sessions.DeleteByID(ctx, session.ID); err != nil {
			return nil, err
		}
		return unauthenticated, nil
	}

	renewed, err := g.sessions.Renew(ctx, session)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return unauthenticated, nil
		}
		return nil, err
	}

	headers := NewHeaders()
	headers.SetCookie(g.cookies.Build(renewed.Token, g.sessions.Duration()))

	return Authenticated{User: user, Session: renewed, Headers: headers}, nil
}

func (g *authGateway) Login(ctx context.Context, identifier, password string) (models.PublicUser, *Headers, error) {
	user, ok, err := g.users.VerifyLogin(ctx, identifier, password)
	if err != nil {
		return models.PublicUser{}, nil, err
	}
	if !ok {
		return models.PublicUser{}, nil, ErrInvalidCredentials
	}

	headers, err := g.startSession(ctx, user)
	if err != nil {
		return models.PublicUser{}, nil, err
	}

	logger.FromContext(ctx).Info().Str("func", "*authGateway.Login").Str("user_id", user.ID).Msg("user logged in")
	return user, headers, nil
}

func (g *authGateway) Register(ctx context.Context, newUser models.NewUser) (models.PublicUser, *Headers, error) {
	user, err := g.users.Create(ctx, newUser)
	if err != nil {
		return models.PublicUser{}, nil, err
	}

	headers, err := g.startSession(ctx, user)
	if err != nil {
		return models.PublicUser{}, nil, err
	}

	return user, headers, nil
}

func (g *authGateway) Logout(ctx context.Context, cookieHeader string) (*Headers, error) {
	if token, ok := g.cookies.ExtractToken(cookieHeader); ok {
		if err := g.sessions.DeleteByToken(ctx, token); err != nil {
			return nil, err
		}
	}

	return g.clearCookie(), nil
}

func (g *authGateway) DeleteUser(ctx context.Context, actor models.PublicUser, id string) error {
	if actor.ID == id {
		return ErrSelfDeletion
	}
	return g.users.Delete(ctx, id)
}

func (g *authGateway) startSession(ctx context.Context, user models.PublicUser) (*Headers, error) {
	session, err := g.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error starting session: %w", err)
	}

	headers := NewHeaders()
	headers.SetCookie(g.cookies.Build(session.Token, g.sessions.Duration()))
	return headers, nil
}

func (g *authGateway) clearCookie() *Headers {
	headers := NewHeaders()
	headers.SetCookie(g.cookies.BuildClear())
	return headers
}
