// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/crypto"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

type sessionService struct {
	sessionRepository store.SessionRepository
	tokenIssuer       crypto.TokenIssuer
	ids               IDGenerator
	duration          time.Duration
	now               func() time.Time
	logger            *logger.Logger
}

// NewSessionService returns a [SessionService] with a sliding window of
// duration.
func NewSessionService(sessionRepository store.SessionRepository, tokenIssuer crypto.TokenIssuer, ids IDGenerator, duration time.Duration, logger *logger.Logger) SessionService {
	return &sessionService{
		sessionRepository: sessionRepository,
		tokenIssuer:       tokenIssuer,
		ids:               ids,
		duration:          duration,
		now:               time.Now,
		logger:            logger,
	}
}

func (s *sessionService) Duration() time.Duration {
	return s.duration
}

func (s *sessionService) Create(ctx context.Context, userID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	token, err := s.tokenIssuer.IssueToken()
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Create").Msg("error issuing session token")
		return models.Session{}, fmt.Errorf("error issuing session token: %w", err)
	}

	session := models.Session{
		ID:        s.ids.Generate(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: s.now().UTC().Add(s.duration),
	}

	if err = s.sessionRepository.CreateSession(ctx, session); err != nil {
		log.Err(err).Str("func", "*sessionService.Create").Str("user_id", userID).Msg("error saving session")
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Session{}, ErrUserNotFound
		}
		return models.Session{}, fmt.Errorf("error saving session: %w", err)
	}

	return session, nil
}

func (s *sessionService) FindByToken(ctx context.Context, token string) (models.Session, bool, error) {
	if token == "" {
		return models.Session{}, false, nil
	}

	session, err := s.sessionRepository.FindSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Session{}, false, nil
		}
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.FindByToken").Msg("error finding session")
		return models.Session{}, false, fmt.Errorf("error finding session: %w", err)
	}

	return session, true, nil
}

func (s *sessionService) Renew(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	if session.Expired(now) {
		log.Info().Str("func", "*sessionService.Renew").Str("session_id", session.ID).Msg("refusing to renew expired session")
		if err := s.DeleteByID(ctx, session.ID); err != nil {
			return models.Session{}, err
		}
		return models.Session{}, ErrSessionExpired
	}

	renewed, err := s.sessionRepository.ExtendSession(ctx, session.ID, now.Add(s.duration), now)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			// expired or deleted by a concurrent request since it was read
			if err = s.DeleteByID(ctx, session.ID); err != nil {
				return models.Session{}, err
			}
			return models.Session{}, ErrSessionExpired
		}
		log.Err(err).Str("func", "*sessionService.Renew").Str("session_id", session.ID).Msg("error extending session")
		return models.Session{}, fmt.Errorf("error extending session: %w", err)
	}

	return renewed, nil
}

func (s *sessionService) DeleteByToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessionRepository.DeleteSessionByToken(ctx, token); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.DeleteByToken").Msg("error deleting session")
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

func (s *sessionService) DeleteByID(ctx context.Context, id string) error {
	if err := s.sessionRepository.DeleteSessionByID(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.DeleteByID").Str("session_id", id).Msg("error deleting session")
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
